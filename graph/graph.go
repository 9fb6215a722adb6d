// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph provides the node-link data model for force-directed
// graph scenes. A [Graph] is built from a [Document] (the decoded
// form of a graph data file) plus [BuildOptions] that say how to read
// node and link attributes out of the raw records, using [Accessor]
// expressions.
package graph

import (
	"fmt"
	"image/color"
	"strconv"

	"cogentcore.org/core/math32"
)

// Node is one node in a graph, carrying both the attributes read from
// the source document and the live simulation state (position and
// velocity) that the layout engine updates in place.
type Node struct {
	// ID uniquely identifies the node within its graph.
	ID string

	// Index is the position of the node in [Graph.Nodes].
	Index int

	// Group is the grouping key used for automatic coloring,
	// empty if no grouping accessor is configured.
	Group string

	// Val is the relative size value of the node, default 1.
	Val float32

	// Color is the display color of the node.
	Color color.RGBA

	// Opacity is the display opacity of the node, 0 to 1.
	Opacity float32

	// Degree is the number of links that start or end at this node.
	Degree int

	// Pos is the current position in layout space.
	Pos math32.Vector3

	// Vel is the current velocity in layout space.
	Vel math32.Vector3

	// Extra holds the raw source record for the node, for callers
	// that need attributes beyond the standard ones.
	Extra map[string]any
}

// Link is one link in a graph, connecting two nodes by pointer.
type Link struct {
	// Source and Target are the endpoint nodes.
	Source *Node
	Target *Node

	// Color is the display color of the link.
	Color color.RGBA

	// Opacity is the display opacity of the link, 0 to 1.
	Opacity float32

	// Visible is whether the link should be shown at all.
	Visible bool

	// Width is the display width of the link in layout units.
	Width float32
}

// Graph is an immutable node-link structure built by [Build].
// The node and link attribute fields are fixed at build time; only
// the per-node Pos and Vel fields are mutated afterward, by the
// layout engine.
type Graph struct {
	Nodes []*Node
	Links []*Link

	byID map[string]*Node
}

// NodeByID returns the node with the given identifier, or nil.
func (g *Graph) NodeByID(id string) *Node {
	return g.byID[id]
}

// defaultNodeColor and defaultLinkColor are used when a record has no
// usable color and no auto-color grouping applies.
const (
	defaultNodeColor = "#ffffaa"
	defaultLinkColor = "#f0f0f0"
)

// BuildOptions configures how [Build] reads node and link attributes
// out of the raw document records. The string fields are [Accessor]
// expressions. Zero values are replaced by defaults, see [BuildOptions.Defaults].
type BuildOptions struct {
	// NodeID reads the node identifier. Default "id". Records
	// without a usable identifier fall back to their index.
	NodeID string `default:"id"`

	// NodeVal reads the node size value. Default "val".
	NodeVal string `default:"val"`

	// NodeColor reads the node color. Default "color".
	NodeColor string `default:"color"`

	// NodeAutoColorBy reads a grouping key used to assign palette
	// colors to nodes that have no explicit color. Empty disables
	// auto-coloring.
	NodeAutoColorBy string

	// NodeOpacity is the display opacity for all nodes. Default 0.75.
	NodeOpacity float32 `default:"0.75"`

	// LinkSource and LinkTarget read the link endpoint identifiers.
	// Defaults "source" and "target".
	LinkSource string `default:"source"`
	LinkTarget string `default:"target"`

	// LinkVisibility reads whether a link is shown. Default is the
	// constant true.
	LinkVisibility string `default:"true"`

	// LinkColor reads the link color. Default "color".
	LinkColor string `default:"color"`

	// LinkAutoColorBy reads a grouping key used to assign palette
	// colors to links that have no explicit color. Empty disables
	// auto-coloring.
	LinkAutoColorBy string

	// LinkOpacity is the display opacity for all links. Default 0.2.
	LinkOpacity float32 `default:"0.2"`

	// LinkWidth reads the link width. Default is the constant 1.
	LinkWidth string `default:"1"`
}

// Defaults fills any zero-valued fields with their default values.
func (bo *BuildOptions) Defaults() {
	if bo.NodeID == "" {
		bo.NodeID = "id"
	}
	if bo.NodeVal == "" {
		bo.NodeVal = "val"
	}
	if bo.NodeColor == "" {
		bo.NodeColor = "color"
	}
	if bo.NodeOpacity == 0 {
		bo.NodeOpacity = 0.75
	}
	if bo.LinkSource == "" {
		bo.LinkSource = "source"
	}
	if bo.LinkTarget == "" {
		bo.LinkTarget = "target"
	}
	if bo.LinkVisibility == "" {
		bo.LinkVisibility = "true"
	}
	if bo.LinkColor == "" {
		bo.LinkColor = "color"
	}
	if bo.LinkOpacity == 0 {
		bo.LinkOpacity = 0.2
	}
	if bo.LinkWidth == "" {
		bo.LinkWidth = "1"
	}
}

// Build constructs a [Graph] from a decoded document. It is all or
// nothing: a duplicate node identifier or a link referencing a
// missing node returns an error and no graph, so a failed build never
// leaves a partially-connected structure behind.
func Build(doc *Document, opts *BuildOptions) (*Graph, error) {
	ob := BuildOptions{}
	if opts != nil {
		ob = *opts
	}
	ob.Defaults()

	nodeID := ParseAccessor(ob.NodeID)
	nodeVal := ParseAccessor(ob.NodeVal)
	nodeColor := ParseAccessor(ob.NodeColor)
	nodeGroup := ParseAccessor(ob.NodeAutoColorBy)
	linkSource := ParseAccessor(ob.LinkSource)
	linkTarget := ParseAccessor(ob.LinkTarget)
	linkVisibility := ParseAccessor(ob.LinkVisibility)
	linkColor := ParseAccessor(ob.LinkColor)
	linkGroup := ParseAccessor(ob.LinkAutoColorBy)
	linkWidth := ParseAccessor(ob.LinkWidth)

	g := &Graph{byID: make(map[string]*Node, len(doc.Nodes))}

	ids := make([]string, len(doc.Nodes))
	for i, rec := range doc.Nodes {
		it := Item{Rec: rec, Index: i}
		id := nodeID.Text(it, "")
		if id == "" {
			id = strconv.Itoa(i)
		}
		if _, dup := g.byID[id]; dup {
			return nil, fmt.Errorf("graph: duplicate node id %q", id)
		}
		ids[i] = id
		g.byID[id] = &Node{} // placeholder reserves the id
	}

	// Endpoints and degrees are resolved before any node attributes
	// so that degree-based accessors see final values and a dangling
	// link fails the build before anything is wired together.
	type ends struct{ src, tgt string }
	degrees := make(map[string]int, len(doc.Nodes))
	linkEnds := make([]ends, len(doc.Links))
	for i, rec := range doc.Links {
		it := Item{Rec: rec, Index: i}
		src := linkSource.Text(it, "")
		tgt := linkTarget.Text(it, "")
		if _, ok := g.byID[src]; !ok {
			return nil, fmt.Errorf("graph: link %d references missing source node %q", i, src)
		}
		if _, ok := g.byID[tgt]; !ok {
			return nil, fmt.Errorf("graph: link %d references missing target node %q", i, tgt)
		}
		linkEnds[i] = ends{src, tgt}
		degrees[src]++
		degrees[tgt]++
	}

	nodeColors := newAutoColors()
	g.Nodes = make([]*Node, len(doc.Nodes))
	for i, rec := range doc.Nodes {
		id := ids[i]
		it := Item{Rec: rec, Index: i, Degree: degrees[id]}
		nd := g.byID[id]
		nd.ID = id
		nd.Index = i
		nd.Degree = degrees[id]
		nd.Val = nodeVal.Float(it, 1)
		nd.Opacity = ob.NodeOpacity
		nd.Extra = rec
		if ob.NodeAutoColorBy != "" {
			nd.Group = nodeGroup.Text(it, "")
		}
		if cl, ok := nodeColor.Color(it); ok {
			nd.Color = cl
		} else if nd.Group != "" {
			nd.Color = nodeColors.color(nd.Group)
		} else {
			nd.Color = namedColor(defaultNodeColor)
		}
		g.Nodes[i] = nd
	}

	linkColors := newAutoColors()
	g.Links = make([]*Link, len(doc.Links))
	for i, rec := range doc.Links {
		it := Item{Rec: rec, Index: i}
		lk := &Link{
			Source:  g.byID[linkEnds[i].src],
			Target:  g.byID[linkEnds[i].tgt],
			Opacity: ob.LinkOpacity,
			Visible: linkVisibility.Bool(it, true),
			Width:   linkWidth.Float(it, 1),
		}
		if cl, ok := linkColor.Color(it); ok {
			lk.Color = cl
		} else if ob.LinkAutoColorBy != "" {
			if key := linkGroup.Text(it, ""); key != "" {
				lk.Color = linkColors.color(key)
			} else {
				lk.Color = namedColor(defaultLinkColor)
			}
		} else {
			lk.Color = namedColor(defaultLinkColor)
		}
		g.Links[i] = lk
	}
	return g, nil
}
