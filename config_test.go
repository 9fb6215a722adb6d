// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forcegraph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cf := NewConfig()
	assert.Equal(t, float32(1), cf.Height)
	assert.Equal(t, float32(1), cf.Width)
	assert.Equal(t, float32(2), cf.TextSize)
	assert.Equal(t, float32(-30), cf.ChargeForce)
	assert.Equal(t, float32(0), cf.XForce)
	assert.Equal(t, "id", cf.NodeID)
	assert.Equal(t, "val", cf.NodeVal)
	assert.Equal(t, "color", cf.NodeColor)
	assert.Equal(t, float32(0.75), cf.NodeOpacity)
	assert.Equal(t, "source", cf.LinkSource)
	assert.Equal(t, "target", cf.LinkTarget)
	assert.Equal(t, "true", cf.LinkVisibility)
	assert.Equal(t, float32(0.2), cf.LinkOpacity)
	assert.Equal(t, "1", cf.LinkWidth)
}

func TestOpenConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "graph.toml")
	data := `
name = "web"
is_interactive = true
charge_force = -80.0
node_auto_color_by = "group"
width = 3.0
`
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	cf := OpenConfig(fn)
	assert.Equal(t, "web", cf.Name)
	assert.True(t, cf.IsInteractive)
	assert.Equal(t, float32(-80), cf.ChargeForce)
	assert.Equal(t, "group", cf.NodeAutoColorBy)
	assert.Equal(t, float32(3), cf.Width)
	assert.Equal(t, float32(1), cf.Height, "unset fields keep defaults")
	assert.Equal(t, "id", cf.NodeID)
}

func TestOpenConfigMissing(t *testing.T) {
	cf := OpenConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Equal(t, *NewConfig(), *cf, "missing file falls back to defaults")
}

func TestOpenConfigMalformed(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(fn, []byte(`name = [unclosed`), 0o644))
	cf := OpenConfig(fn)
	assert.Equal(t, *NewConfig(), *cf, "malformed file falls back to defaults")
}

func TestConfigDiff(t *testing.T) {
	base := NewConfig()

	same := *base
	assert.Equal(t, Diff{}, base.Diff(&same))

	shape := *base
	shape.DocumentURL = "other.json"
	df := base.Diff(&shape)
	assert.True(t, df.Rebuild)
	assert.False(t, df.Forces)
	assert.False(t, df.Fit)

	forces := *base
	forces.ChargeForce = -120
	forces.YForce = 0.5
	df = base.Diff(&forces)
	assert.False(t, df.Rebuild)
	assert.True(t, df.Forces)
	assert.False(t, df.Fit)

	fit := *base
	fit.Width = 4
	df = base.Diff(&fit)
	assert.False(t, df.Rebuild)
	assert.False(t, df.Forces)
	assert.True(t, df.Fit)

	both := *base
	both.XForce = 0.1
	both.Height = 2
	df = base.Diff(&both)
	assert.False(t, df.Rebuild)
	assert.True(t, df.Forces)
	assert.True(t, df.Fit)

	accessor := *base
	accessor.NodeColor = "#ff0000"
	assert.True(t, base.Diff(&accessor).Rebuild, "accessor changes rebuild")
}
