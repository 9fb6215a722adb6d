// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "cogentcore.org/core/math32"

// Fitter computes the uniform scale that fits a finished layout into
// a target width and height. The scale is absolute, derived from the
// unscaled layout bounds, so fitting the same bounds twice yields the
// same scale rather than compounding.
type Fitter struct {
	// Width and Height are the target extents in scene units.
	// Width bounds both horizontal axes of the layout.
	Width  float32
	Height float32

	scale float32
}

// NewFitter returns a fitter for the given target extents.
// The scale starts at 1 until the first successful fit.
func NewFitter(width, height float32) *Fitter {
	return &Fitter{Width: width, Height: height, scale: 1}
}

// Scale returns the most recently computed scale, 1 before any fit.
func (ft *Fitter) Scale() float32 {
	return ft.scale
}

// Reset returns the scale to 1, for use when the layout is rebuilt.
func (ft *Fitter) Reset() {
	ft.scale = 1
}

// Fit computes the scale that brings bb within the target extents,
// using the vertical extent against Height and the larger of the two
// horizontal extents against Width. An empty or degenerate box (zero
// extent on the deciding axes, as with a single node) is skipped: the
// previous scale is kept and ok is false.
func (ft *Fitter) Fit(bb math32.Box3) (scale float32, ok bool) {
	if bb.IsEmpty() || ft.Width <= 0 || ft.Height <= 0 {
		return ft.scale, false
	}
	sz := bb.Size()
	sizeH := sz.Y
	sizeW := math32.Max(sz.X, sz.Z)
	if sizeH <= 0 || sizeW <= 0 {
		return ft.scale, false
	}
	ft.scale = math32.Min(ft.Height/sizeH, ft.Width/sizeW)
	return ft.scale, true
}
