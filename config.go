// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forcegraph

import (
	"log/slog"
	"os"

	"github.com/gravitree/forcegraph/graph"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all host-settable properties of a graph entity. The
// accessor fields (NodeID through LinkWidth) are [graph.Accessor]
// expressions; the rest are plain values. A zero Config is not
// usable, start from [NewConfig] or call [Config.Defaults].
type Config struct {

	// Name labels the entity in logs and scene paths.
	Name string `toml:"name"`

	// IsNetworked enables sharing the view orientation through the
	// entity's bridge transport. The transport itself is attached
	// when the entity is created (see [Options.Transport]).
	IsNetworked bool `toml:"is_networked"`

	// IsInteractive enables pointer hover and click handling.
	IsInteractive bool `toml:"is_interactive"`

	// IsDraggable enables rotating the graph by dragging. It has no
	// effect unless IsInteractive is also set.
	IsDraggable bool `toml:"is_draggable"`

	// Height and Width are the target extents of the fitted graph
	// in scene units.
	Height float32 `toml:"height" default:"1"`
	Width  float32 `toml:"width" default:"1"`

	// TextSize is the height of node labels in layout units.
	TextSize float32 `toml:"text_size" default:"2"`

	// DocumentURL locates the graph document, as an http(s) URL or
	// a local file path. Empty means an empty graph.
	DocumentURL string `toml:"document_url"`

	// ChargeForce is the node repulsion strength, negative to repel.
	ChargeForce float32 `toml:"charge_force" default:"-30"`

	// XForce, YForce, and ZForce pull nodes toward the origin along
	// one axis each. Zero disables an axis entirely.
	XForce float32 `toml:"x_force"`
	YForce float32 `toml:"y_force"`
	ZForce float32 `toml:"z_force"`

	// Node accessors, see [graph.BuildOptions].
	NodeID          string  `toml:"node_id" default:"id"`
	NodeVal         string  `toml:"node_val" default:"val"`
	NodeColor       string  `toml:"node_color" default:"color"`
	NodeAutoColorBy string  `toml:"node_auto_color_by"`
	NodeOpacity     float32 `toml:"node_opacity" default:"0.75"`

	// Link accessors, see [graph.BuildOptions].
	LinkSource      string  `toml:"link_source" default:"source"`
	LinkTarget      string  `toml:"link_target" default:"target"`
	LinkVisibility  string  `toml:"link_visibility" default:"true"`
	LinkColor       string  `toml:"link_color" default:"color"`
	LinkAutoColorBy string  `toml:"link_auto_color_by"`
	LinkOpacity     float32 `toml:"link_opacity" default:"0.2"`
	LinkWidth       string  `toml:"link_width" default:"1"`
}

// NewConfig returns a config with all defaults applied.
func NewConfig() *Config {
	cf := &Config{}
	cf.Defaults()
	return cf
}

// Defaults fills zero-valued fields with their default values.
func (cf *Config) Defaults() {
	if cf.Height == 0 {
		cf.Height = 1
	}
	if cf.Width == 0 {
		cf.Width = 1
	}
	if cf.TextSize == 0 {
		cf.TextSize = 2
	}
	if cf.ChargeForce == 0 {
		cf.ChargeForce = -30
	}
	bo := cf.BuildOptions()
	cf.NodeID = bo.NodeID
	cf.NodeVal = bo.NodeVal
	cf.NodeColor = bo.NodeColor
	cf.NodeOpacity = bo.NodeOpacity
	cf.LinkSource = bo.LinkSource
	cf.LinkTarget = bo.LinkTarget
	cf.LinkVisibility = bo.LinkVisibility
	cf.LinkColor = bo.LinkColor
	cf.LinkOpacity = bo.LinkOpacity
	cf.LinkWidth = bo.LinkWidth
}

// BuildOptions maps the accessor fields onto graph build options,
// applying the shared defaults.
func (cf *Config) BuildOptions() *graph.BuildOptions {
	bo := &graph.BuildOptions{
		NodeID:          cf.NodeID,
		NodeVal:         cf.NodeVal,
		NodeColor:       cf.NodeColor,
		NodeAutoColorBy: cf.NodeAutoColorBy,
		NodeOpacity:     cf.NodeOpacity,
		LinkSource:      cf.LinkSource,
		LinkTarget:      cf.LinkTarget,
		LinkVisibility:  cf.LinkVisibility,
		LinkColor:       cf.LinkColor,
		LinkAutoColorBy: cf.LinkAutoColorBy,
		LinkOpacity:     cf.LinkOpacity,
		LinkWidth:       cf.LinkWidth,
	}
	bo.Defaults()
	return bo
}

// OpenConfig loads a TOML config file. A missing or malformed file
// is not fatal: the error is logged and the defaults are returned,
// so a bad config never takes the component down.
func OpenConfig(filename string) *Config {
	cf := NewConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		slog.Error("forcegraph: config not readable, using defaults", "file", filename, "err", err)
		return cf
	}
	if err := toml.Unmarshal(data, cf); err != nil {
		slog.Error("forcegraph: config not parseable, using defaults", "file", filename, "err", err)
		return NewConfig()
	}
	cf.Defaults()
	return cf
}

// Diff classifies what changed between two configs, so [Entity.Update]
// can take the cheapest sufficient action.
type Diff struct {
	// Rebuild means a shape-affecting field changed: the document
	// must be refetched and the graph and scene content rebuilt.
	Rebuild bool

	// Forces means a force strength changed: retune the running
	// simulation in place.
	Forces bool

	// Fit means a target extent changed: refit the existing layout.
	Fit bool
}

// Diff compares the receiver (the old config) against the new one.
func (cf *Config) Diff(nw *Config) Diff {
	var df Diff
	df.Rebuild = cf.Name != nw.Name ||
		cf.DocumentURL != nw.DocumentURL ||
		cf.TextSize != nw.TextSize ||
		cf.NodeID != nw.NodeID ||
		cf.NodeVal != nw.NodeVal ||
		cf.NodeColor != nw.NodeColor ||
		cf.NodeAutoColorBy != nw.NodeAutoColorBy ||
		cf.NodeOpacity != nw.NodeOpacity ||
		cf.LinkSource != nw.LinkSource ||
		cf.LinkTarget != nw.LinkTarget ||
		cf.LinkVisibility != nw.LinkVisibility ||
		cf.LinkColor != nw.LinkColor ||
		cf.LinkAutoColorBy != nw.LinkAutoColorBy ||
		cf.LinkOpacity != nw.LinkOpacity ||
		cf.LinkWidth != nw.LinkWidth
	df.Forces = cf.ChargeForce != nw.ChargeForce ||
		cf.XForce != nw.XForce ||
		cf.YForce != nw.YForce ||
		cf.ZForce != nw.ZForce
	df.Fit = cf.Width != nw.Width || cf.Height != nw.Height
	return df
}
