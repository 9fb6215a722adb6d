// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gravitree/forcegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutDoc = `{
	"nodes": [{"id": "a", "group": 1}, {"id": "b", "group": 2}],
	"links": [{"source": "a", "target": "b"}]
}`

func writeLayoutDoc(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(p, []byte(layoutDoc), 0666))
	return p
}

func TestLayoutOnce(t *testing.T) {
	cf := forcegraph.NewConfig()
	cf.DocumentURL = writeLayoutDoc(t)
	var buf bytes.Buffer
	opts := &layoutOptions{seed: 1, maxSteps: 300, dt: 1.0 / 60}
	require.NoError(t, layoutOnce(&buf, cf, opts))

	var rows []nodePosition
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "b", rows[1].ID)
	assert.NotEqual(t, rows[0], rows[1])
}

func TestLayoutCommand(t *testing.T) {
	doc := writeLayoutDoc(t)
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"layout", doc, "--seed", "1", "--max-steps", "300"})
	require.NoError(t, root.Execute())

	var rows []nodePosition
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	assert.Len(t, rows, 2)
}

func TestLayoutCommandToFile(t *testing.T) {
	doc := writeLayoutDoc(t)
	out := filepath.Join(t.TempDir(), "positions.json")
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"layout", doc, "--seed", "1", "--max-steps", "300", "--out", out})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rows []nodePosition
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Len(t, rows, 2)
}

func TestLayoutCommandNoDocument(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"layout"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no graph document")
}

func TestLayoutCommandWatchNeedsFile(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"layout", "https://example.com/graph.json", "--watch"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local file")
}
