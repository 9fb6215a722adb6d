// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
)

// paletteHex is the categorical palette used for auto-coloring,
// assigned to grouping keys in first-seen order and cycled when there
// are more groups than colors.
var paletteHex = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

var palette []color.RGBA

func init() {
	palette = make([]color.RGBA, len(paletteHex))
	for i, h := range paletteHex {
		palette[i] = errors.Log1(colors.FromString(h))
	}
}

// namedColor parses a known-good color string.
func namedColor(s string) color.RGBA {
	return errors.Log1(colors.FromString(s))
}

// autoColors assigns palette colors to grouping keys. Assignment is
// deterministic for a given key encounter order, so rebuilding the
// same document yields the same colors.
type autoColors struct {
	byKey map[string]color.RGBA
}

func newAutoColors() *autoColors {
	return &autoColors{byKey: make(map[string]color.RGBA)}
}

// color returns the palette color for key, assigning the next unused
// palette entry on first sight.
func (ac *autoColors) color(key string) color.RGBA {
	if cl, ok := ac.byKey[key]; ok {
		return cl
	}
	cl := palette[len(ac.byKey)%len(palette)]
	ac.byKey[key] = cl
	return cl
}
