// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) math32.Box3 {
	bb := math32.B3Empty()
	bb.ExpandByPoint(math32.Vec3(minX, minY, minZ))
	bb.ExpandByPoint(math32.Vec3(maxX, maxY, maxZ))
	return bb
}

func TestFit(t *testing.T) {
	ft := NewFitter(2, 1)
	assert.Equal(t, float32(1), ft.Scale())

	// Height 5 against target 1 gives 0.2; width max(10, 4)
	// against target 2 gives 0.2 as well.
	sc, ok := ft.Fit(box(0, 0, 0, 10, 5, 4))
	assert.True(t, ok)
	assert.InDelta(t, 0.2, sc, 1e-6)

	// The wider horizontal axis decides: depth 20 against 2.
	sc, ok = ft.Fit(box(0, 0, 0, 4, 5, 20))
	assert.True(t, ok)
	assert.InDelta(t, 0.1, sc, 1e-6)
}

func TestFitIdempotent(t *testing.T) {
	ft := NewFitter(3, 3)
	bb := box(-5, -2, -1, 5, 2, 1)
	s1, ok := ft.Fit(bb)
	assert.True(t, ok)
	s2, ok := ft.Fit(bb)
	assert.True(t, ok)
	assert.Equal(t, s1, s2, "refitting an unchanged box must not compound")
}

func TestFitDegenerate(t *testing.T) {
	ft := NewFitter(2, 2)
	first, ok := ft.Fit(box(0, 0, 0, 4, 4, 4))
	assert.True(t, ok)

	sc, ok := ft.Fit(math32.B3Empty())
	assert.False(t, ok)
	assert.Equal(t, first, sc, "a skipped fit keeps the previous scale")

	// A single point has zero extent on every axis.
	pt := math32.B3Empty()
	pt.ExpandByPoint(math32.Vec3(1, 1, 1))
	_, ok = ft.Fit(pt)
	assert.False(t, ok)

	// Zero vertical extent is degenerate even with usable width.
	_, ok = ft.Fit(box(0, 0, 0, 4, 0, 4))
	assert.False(t, ok)
}

func TestFitReset(t *testing.T) {
	ft := NewFitter(1, 1)
	ft.Fit(box(0, 0, 0, 10, 10, 10))
	assert.NotEqual(t, float32(1), ft.Scale())
	ft.Reset()
	assert.Equal(t, float32(1), ft.Scale())
}
