// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the composite 3D scene tree for graph
// visuals: groups, solids, and billboarded labels with hierarchical
// transforms and ray hit-testing. The tree only models spatial
// structure; rendering is the embedding host's concern.
package scene

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
)

// Node is the common interface for all scene nodes.
type Node interface {
	tree.Node

	// AsNodeBase returns the scene [NodeBase] for this node,
	// giving access to the base-level data without interface
	// methods.
	AsNodeBase() *NodeBase

	// IsVisible reports whether this node participates in
	// rendering and picking. A destroyed node is not visible.
	IsVisible() bool

	// IsSolid reports whether this node carries geometry of its
	// own, as opposed to being a pure container.
	IsSolid() bool

	// AsSolid returns this node as a [Solid], or nil.
	AsSolid() *Solid

	// LocalBBox returns the local-space bounding box of this
	// node's own geometry, empty for containers.
	LocalBBox() math32.Box3

	// UpdateWorldMatrix updates the node's world matrix and world
	// bounding box from the given parent world matrix. Node types
	// that adjust their own orientation, like billboarded labels,
	// override this.
	UpdateWorldMatrix(parWorld *math32.Matrix4)

	// GroupBBox aggregates the world bounding boxes of children
	// into this node, after they have been updated.
	GroupBBox()
}

// NodeBase is the base type for all scene nodes.
type NodeBase struct {
	tree.NodeBase

	// Pose is the position, orientation, and scale relative to
	// the parent node.
	Pose Pose

	// Invisible excludes this node and everything below it from
	// rendering, picking, and transform updates.
	Invisible bool

	// WorldBBox is the world-space bounding box of this node,
	// updated during [UpdateWorldMatrices]. For groups it is the
	// union of the visible children.
	WorldBBox math32.Box3 `edit:"-"`
}

func (nb *NodeBase) AsNodeBase() *NodeBase {
	return nb
}

func (nb *NodeBase) IsVisible() bool {
	return nb.This != nil && !nb.Invisible
}

func (nb *NodeBase) IsSolid() bool {
	return false
}

func (nb *NodeBase) AsSolid() *Solid {
	return nil
}

func (nb *NodeBase) LocalBBox() math32.Box3 {
	return math32.B3Empty()
}

func (nb *NodeBase) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	nb.Pose.UpdateMatrix()
	nb.Pose.UpdateWorldMatrix(parWorld)
	lb := nb.This.(Node).LocalBBox()
	if lb.IsEmpty() {
		nb.WorldBBox = math32.B3Empty()
	} else {
		nb.WorldBBox = lb.MulMatrix4(&nb.Pose.WorldMatrix)
	}
}

func (nb *NodeBase) GroupBBox() {}

// AsNode returns the given tree node as a scene Node and NodeBase,
// or nil, nil if it is not one.
func AsNode(n tree.Node) (Node, *NodeBase) {
	ni, ok := n.(Node)
	if !ok {
		return nil, nil
	}
	return ni, ni.AsNodeBase()
}

// initNode wires a freshly constructed node into the tree, as a
// child of the optional parent or as a standalone root. The pose is
// defaulted here so rotation composition works before any matrix
// update has run.
func initNode(n tree.Node, parent ...tree.Node) {
	tree.InitNode(n)
	n.(Node).AsNodeBase().Pose.Defaults()
	if len(parent) > 0 && parent[0] != nil {
		parent[0].AsTree().AddChild(n)
	}
}

// UpdateWorldMatrices recomputes world matrices and bounding boxes
// for the whole tree under n, given the world matrix of n's parent
// (nil for a scene root). Invisible subtrees are skipped; group
// boxes are aggregated bottom-up after their children.
func UpdateWorldMatrices(n Node, parWorld *math32.Matrix4) {
	nb := n.AsNodeBase()
	if nb.This == nil || nb.Invisible {
		return
	}
	n.UpdateWorldMatrix(parWorld)
	for _, kid := range nb.Children {
		if ki, _ := AsNode(kid); ki != nil {
			UpdateWorldMatrices(ki, &nb.Pose.WorldMatrix)
		}
	}
	n.GroupBBox()
}
