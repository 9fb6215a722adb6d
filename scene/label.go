// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
)

// labelAspect is the approximate width of one rendered character
// relative to the text height, used to size the label plane without
// shaping the actual font.
const labelAspect = 0.55

// Label is a flat text plane, the rich content shown for a node once
// it replaces the placeholder. The plane is centered on the node
// origin in the local XY plane, facing +Z; the frame scheduler keeps
// the containing group oriented toward the viewer.
type Label struct {
	Solid

	// Text is the displayed string.
	Text string

	// TextHeight is the height of one text line in local units.
	TextHeight float32 `default:"1"`

	// Refreshes counts the refresh ticks received since the label
	// was built, driven once per frame by the content scheduler.
	Refreshes int `edit:"-"`

	bbox math32.Box3
}

// NewLabel returns a new empty label, added to the optional parent.
func NewLabel(parent ...tree.Node) *Label {
	lb := &Label{}
	lb.TextHeight = 1
	lb.Mat.Defaults()
	lb.updateBBox()
	initNode(lb, parent...)
	return lb
}

// SetText sets the displayed string and resizes the plane.
func (lb *Label) SetText(text string) *Label {
	lb.Text = text
	lb.updateBBox()
	return lb
}

// SetTextHeight sets the line height and resizes the plane.
func (lb *Label) SetTextHeight(h float32) *Label {
	lb.TextHeight = h
	lb.updateBBox()
	return lb
}

// Refresh is the per-frame tick for live label content. It keeps the
// plane extents in sync with the current text.
func (lb *Label) Refresh() {
	lb.Refreshes++
	lb.updateBBox()
}

func (lb *Label) updateBBox() {
	n := len([]rune(lb.Text))
	if n == 0 || lb.TextHeight <= 0 {
		lb.bbox = math32.B3Empty()
		return
	}
	w := labelAspect * lb.TextHeight * float32(n) * 0.5
	h := lb.TextHeight * 0.6
	d := lb.TextHeight * 0.01
	lb.bbox = math32.Box3{
		Min: math32.Vec3(-w, -h, -d),
		Max: math32.Vec3(w, h, d),
	}
}

func (lb *Label) LocalBBox() math32.Box3 {
	return lb.bbox
}

var _ Node = &Label{}
