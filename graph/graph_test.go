// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *Document {
	return &Document{
		Nodes: []map[string]any{
			{"id": "a", "val": 2.0, "group": "x"},
			{"id": "b", "group": "y"},
			{"id": "c", "group": "x", "color": "#102030"},
		},
		Links: []map[string]any{
			{"source": "a", "target": "b"},
			{"source": "b", "target": "c", "color": "#405060"},
		},
	}
}

func TestBuild(t *testing.T) {
	g, err := Build(testDoc(), nil)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Links, 2)

	a := g.NodeByID("a")
	require.NotNil(t, a)
	assert.Equal(t, 0, a.Index)
	assert.Equal(t, float32(2), a.Val)
	assert.Equal(t, 1, a.Degree)
	assert.Equal(t, float32(0.75), a.Opacity)

	b := g.NodeByID("b")
	require.NotNil(t, b)
	assert.Equal(t, float32(1), b.Val, "missing val defaults to 1")
	assert.Equal(t, 2, b.Degree)

	assert.Same(t, a, g.Links[0].Source)
	assert.Same(t, b, g.Links[0].Target)
	assert.True(t, g.Links[0].Visible)
	assert.Equal(t, float32(1), g.Links[0].Width)
	assert.Equal(t, float32(0.2), g.Links[0].Opacity)
}

func TestBuildDanglingLink(t *testing.T) {
	doc := testDoc()
	doc.Links = append(doc.Links, map[string]any{"source": "a", "target": "nope"})
	g, err := Build(doc, nil)
	assert.Error(t, err)
	assert.Nil(t, g, "a failed build must not return a partial graph")
}

func TestBuildDuplicateID(t *testing.T) {
	doc := &Document{
		Nodes: []map[string]any{{"id": "a"}, {"id": "a"}},
	}
	g, err := Build(doc, nil)
	assert.Error(t, err)
	assert.Nil(t, g)
}

func TestBuildNumericIDs(t *testing.T) {
	doc := &Document{
		Nodes: []map[string]any{{"id": 1.0}, {"id": 2.0}},
		Links: []map[string]any{{"source": 1.0, "target": "2"}},
	}
	g, err := Build(doc, nil)
	require.NoError(t, err)
	assert.NotNil(t, g.NodeByID("1"))
	assert.Same(t, g.NodeByID("2"), g.Links[0].Target, "numeric and string ids share a key space")
}

func TestBuildMissingID(t *testing.T) {
	doc := &Document{
		Nodes: []map[string]any{{"val": 3.0}, {"id": "x"}},
	}
	g, err := Build(doc, nil)
	require.NoError(t, err)
	assert.NotNil(t, g.NodeByID("0"), "nodes without an id fall back to their index")
	assert.NotNil(t, g.NodeByID("x"))
}

func TestBuildAutoColor(t *testing.T) {
	opts := &BuildOptions{NodeAutoColorBy: "group"}
	g, err := Build(testDoc(), opts)
	require.NoError(t, err)

	a := g.NodeByID("a")
	b := g.NodeByID("b")
	c := g.NodeByID("c")
	assert.NotEqual(t, a.Color, b.Color, "different groups get different colors")
	assert.Equal(t, namedColor("#102030"), c.Color, "an explicit color wins over the group color")

	// Rebuilding the same document assigns the same colors.
	g2, err := Build(testDoc(), opts)
	require.NoError(t, err)
	assert.Equal(t, a.Color, g2.NodeByID("a").Color)
	assert.Equal(t, b.Color, g2.NodeByID("b").Color)
}

func TestBuildLinkOptions(t *testing.T) {
	doc := &Document{
		Nodes: []map[string]any{{"id": "a"}, {"id": "b"}},
		Links: []map[string]any{
			{"source": "a", "target": "b", "w": 3.0, "shown": false},
		},
	}
	opts := &BuildOptions{LinkWidth: "w", LinkVisibility: "shown", LinkOpacity: 0.5}
	g, err := Build(doc, opts)
	require.NoError(t, err)
	lk := g.Links[0]
	assert.Equal(t, float32(3), lk.Width)
	assert.False(t, lk.Visible)
	assert.Equal(t, float32(0.5), lk.Opacity)
}

func TestBuildDefaultColors(t *testing.T) {
	doc := &Document{
		Nodes: []map[string]any{{"id": "a"}, {"id": "b"}},
		Links: []map[string]any{{"source": "a", "target": "b"}},
	}
	g, err := Build(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, namedColor(defaultNodeColor), g.Nodes[0].Color)
	assert.Equal(t, namedColor(defaultLinkColor), g.Links[0].Color)
}

func TestBuildEmpty(t *testing.T) {
	g, err := Build(&Document{}, nil)
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Links)
}
