// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"sort"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
)

// Group is a container node that holds other nodes and establishes a
// coordinate frame for them. Its world bounding box is the union of
// its visible children, so it prunes ray tests for everything below.
type Group struct {
	NodeBase
}

// NewGroup returns a new group, added to the given optional parent.
func NewGroup(parent ...tree.Node) *Group {
	gp := &Group{}
	initNode(gp, parent...)
	return gp
}

// GroupBBox sets the group's world box to the union of its visible
// children's world boxes.
func (gp *Group) GroupBBox() {
	bb := math32.B3Empty()
	for _, kid := range gp.Children {
		ki, kb := AsNode(kid)
		if ki == nil || !ki.IsVisible() {
			continue
		}
		if !kb.WorldBBox.IsEmpty() {
			bb.ExpandByBox(kb.WorldBBox)
		}
	}
	gp.WorldBBox = bb
}

// HitPoint is one solid intersected by a ray, with the world-space
// point where the ray enters its bounding box.
type HitPoint struct {
	Node  Node
	Point math32.Vector3
}

// RayIntersections returns the visible solids under this group whose
// world bounding box the given ray intersects, sorted from closest
// to furthest from the ray origin. Group boxes prune whole subtrees.
func (gp *Group) RayIntersections(ray math32.Ray) []*HitPoint {
	var hits []*HitPoint
	gp.WalkDown(func(k tree.Node) bool {
		ni, nb := AsNode(k)
		if ni == nil || !ni.IsVisible() {
			return tree.Break
		}
		pt, has := ray.IntersectBox(nb.WorldBBox)
		if !has {
			return tree.Break
		}
		if !ni.IsSolid() {
			return tree.Continue
		}
		hits = append(hits, &HitPoint{ni, pt})
		return tree.Break
	})

	sort.Slice(hits, func(i, j int) bool {
		di := hits[i].Point.DistanceTo(ray.Origin)
		dj := hits[j].Point.DistanceTo(ray.Origin)
		return di < dj
	})
	return hits
}

var _ Node = &Group{}
