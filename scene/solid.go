// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
)

// Material is the display surface of a solid. The scene tree does
// not render; these values are read by the embedding host.
type Material struct {
	// Color is the main surface color.
	Color color.RGBA

	// Opacity is the overall transparency, 0 to 1.
	Opacity float32 `default:"1"`
}

// Defaults sets a mid gray, fully opaque surface.
func (mt *Material) Defaults() {
	mt.Color = colors.FromRGB(128, 128, 128)
	mt.Opacity = 1
}

// Solid is the base for all scene nodes that carry geometry.
type Solid struct {
	NodeBase

	// Mat is the surface material of the solid.
	Mat Material
}

func (sld *Solid) IsSolid() bool {
	return true
}

func (sld *Solid) AsSolid() *Solid {
	return sld
}

// SetColor sets the material color and returns the solid.
func (sld *Solid) SetColor(clr color.RGBA) *Solid {
	sld.Mat.Color = clr
	return sld
}

// SetOpacity sets the material opacity and returns the solid.
func (sld *Solid) SetOpacity(op float32) *Solid {
	sld.Mat.Opacity = op
	return sld
}

// Sphere is a solid ball, the placeholder volume shown for a node
// before its rich content is ready.
type Sphere struct {
	Solid

	// Radius is the sphere radius in local units.
	Radius float32 `default:"1"`
}

// NewSphere returns a new unit sphere, added to the optional parent.
func NewSphere(parent ...tree.Node) *Sphere {
	sp := &Sphere{}
	sp.Radius = 1
	sp.Mat.Defaults()
	initNode(sp, parent...)
	return sp
}

// SetRadius sets the radius and returns the sphere.
func (sp *Sphere) SetRadius(r float32) *Sphere {
	sp.Radius = r
	return sp
}

func (sp *Sphere) LocalBBox() math32.Box3 {
	return math32.Box3{
		Min: math32.Vec3(-sp.Radius, -sp.Radius, -sp.Radius),
		Max: math32.Vec3(sp.Radius, sp.Radius, sp.Radius),
	}
}

// Segment is a straight line segment with width, used for link
// visuals. Its endpoints are in the parent's coordinate space and
// its own pose stays identity, so moving a link only means setting
// new endpoints.
type Segment struct {
	Solid

	// Start and End are the endpoints in parent space.
	Start math32.Vector3
	End   math32.Vector3

	// Width is the visual thickness of the segment.
	Width float32 `default:"1"`
}

// NewSegment returns a new zero-length segment, added to the
// optional parent.
func NewSegment(parent ...tree.Node) *Segment {
	sg := &Segment{}
	sg.Width = 1
	sg.Mat.Defaults()
	initNode(sg, parent...)
	return sg
}

// SetEndpoints sets both endpoints and returns the segment.
func (sg *Segment) SetEndpoints(start, end math32.Vector3) *Segment {
	sg.Start = start
	sg.End = end
	return sg
}

func (sg *Segment) LocalBBox() math32.Box3 {
	bb := math32.B3Empty()
	bb.ExpandByPoint(sg.Start)
	bb.ExpandByPoint(sg.End)
	bb.ExpandByScalar(sg.Width * 0.5)
	return bb
}

var (
	_ Node = &Sphere{}
	_ Node = &Segment{}
)
