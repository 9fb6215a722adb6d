// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forcegraph

import (
	"image/color"
	"sync"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"github.com/gravitree/forcegraph/graph"
	"github.com/gravitree/forcegraph/scene"
)

// LabelBuilder constructs the rich label content for a node, detached
// from any parent. It runs on a background goroutine and must not
// touch the scene tree; attaching is done on the frame tick.
type LabelBuilder func(text string, height float32, clr color.RGBA, opacity float32) *scene.Label

// ContentFactory builds the per-node scene content. Build returns a
// container immediately, holding a placeholder sphere; the rich label
// is assembled on a background goroutine and attached on a later
// frame tick, replacing the placeholder exactly once.
type ContentFactory struct {

	// NodeRelSize scales the placeholder radius by the cube root of
	// the node's Val.
	NodeRelSize float32 `default:"4"`

	// SpinSpeed is the placeholder rotation rate in degrees per
	// second, a small liveness cue while the rich content builds.
	SpinSpeed float32 `default:"90"`

	// TextSize is the rich label height in layout units.
	TextSize float32 `default:"2"`

	// BuildLabel assembles rich content off the frame loop.
	// Replaceable for testing; never nil after [NewContentFactory].
	BuildLabel LabelBuilder

	// epoch invalidates in-flight builds from before the last Reset.
	epoch int

	views []*nodeView

	// mu guards completions, the only state touched off the frame loop.
	mu          sync.Mutex
	completions []func()
}

// nodeView is the per-node content state.
type nodeView struct {
	node        *graph.Node
	container   *scene.Group
	placeholder *scene.Sphere
	label       *scene.Label
	epoch       int
}

// NewContentFactory returns a factory with default sizing and the
// standard label builder.
func NewContentFactory() *ContentFactory {
	cf := &ContentFactory{}
	cf.Defaults()
	cf.BuildLabel = buildLabel
	return cf
}

func (cf *ContentFactory) Defaults() {
	if cf.NodeRelSize == 0 {
		cf.NodeRelSize = 4
	}
	if cf.SpinSpeed == 0 {
		cf.SpinSpeed = 90
	}
	if cf.TextSize == 0 {
		cf.TextSize = 2
	}
}

func buildLabel(text string, height float32, clr color.RGBA, opacity float32) *scene.Label {
	lb := scene.NewLabel().SetText(text).SetTextHeight(height)
	lb.Name = "label"
	lb.SetColor(clr).SetOpacity(opacity)
	return lb
}

// Build creates the container for a node under the given parent and
// returns it immediately, with the placeholder already in place. The
// rich build starts right away in the background, capturing the
// node's current name, color, opacity, and the factory text size by
// value; later configuration changes do not reach builds already in
// flight.
func (cf *ContentFactory) Build(gn *graph.Node, parent tree.Node) *scene.Group {
	ct := scene.NewGroup(parent)
	ct.Name = gn.ID
	r := cf.NodeRelSize * math32.Cbrt(gn.Val)
	ph := scene.NewSphere(ct).SetRadius(r)
	ph.Name = "point"
	ph.SetColor(gn.Color).SetOpacity(gn.Opacity)
	v := &nodeView{node: gn, container: ct, placeholder: ph, epoch: cf.epoch}
	cf.views = append(cf.views, v)

	text, height := gn.ID, cf.TextSize
	clr, opacity := gn.Color, gn.Opacity
	go func() {
		lb := cf.BuildLabel(text, height, clr, opacity)
		cf.enqueue(func() { cf.finish(v, lb) })
	}()
	return ct
}

// enqueue queues a completion for the next Tick. Safe to call from
// any goroutine.
func (cf *ContentFactory) enqueue(fn func()) {
	cf.mu.Lock()
	cf.completions = append(cf.completions, fn)
	cf.mu.Unlock()
}

// finish attaches rich content and retires the placeholder. Stale
// completions, from before a Reset or for a container that has been
// destroyed, are dropped.
func (cf *ContentFactory) finish(v *nodeView, lb *scene.Label) {
	if v.epoch != cf.epoch || v.container.This == nil || v.label != nil {
		return
	}
	v.container.AddChild(lb)
	if v.placeholder != nil {
		v.placeholder.Delete()
		v.placeholder = nil
	}
	v.label = lb
}

// Tick drains pending completions and then advances the cosmetic
// state of every view: placeholders spin, rich labels get their
// refresh tick. Runs on the frame loop only.
func (cf *ContentFactory) Tick(dt float32) {
	cf.mu.Lock()
	done := cf.completions
	cf.completions = nil
	cf.mu.Unlock()
	for _, fn := range done {
		fn()
	}
	for _, v := range cf.views {
		if v.epoch != cf.epoch || v.container.This == nil {
			continue
		}
		if v.placeholder != nil {
			v.placeholder.Pose.RotateOnAxis(0, 1, 0, cf.SpinSpeed*dt)
		} else if v.label != nil {
			v.label.Refresh()
		}
	}
}

// Reset invalidates all views and any in-flight builds. The caller
// owns removing the old containers from the scene.
func (cf *ContentFactory) Reset() {
	cf.epoch++
	cf.views = nil
}
