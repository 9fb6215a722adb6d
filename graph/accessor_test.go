// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccessor(t *testing.T) {
	tests := []struct {
		expr string
		kind kinds
	}{
		{"12", numberKind},
		{"-0.5", numberKind},
		{"true", boolKind},
		{"false", boolKind},
		{"#ff8800", colorKind},
		{"@index", transformKind},
		{"@degree", transformKind},
		{"@one", transformKind},
		{"weight", fieldKind},
		{"", fieldKind},
		{"#nothex", fieldKind},
		{"12abc", fieldKind},
	}
	for _, tt := range tests {
		a := ParseAccessor(tt.expr)
		assert.Equal(t, tt.kind, a.kind, tt.expr)
		assert.Equal(t, tt.expr, a.String())
	}
}

func TestAccessorFloat(t *testing.T) {
	it := Item{Rec: map[string]any{"w": 2.5, "s": "3", "bad": "x"}, Index: 4, Degree: 7}

	assert.Equal(t, float32(12), ParseAccessor("12").Float(it, 0))
	assert.Equal(t, float32(2.5), ParseAccessor("w").Float(it, 0))
	assert.Equal(t, float32(3), ParseAccessor("s").Float(it, 0), "numeric strings coerce")
	assert.Equal(t, float32(9), ParseAccessor("bad").Float(it, 9), "unusable values yield the default")
	assert.Equal(t, float32(9), ParseAccessor("missing").Float(it, 9))
	assert.Equal(t, float32(4), ParseAccessor("@index").Float(it, 0))
	assert.Equal(t, float32(7), ParseAccessor("@degree").Float(it, 0))
	assert.Equal(t, float32(1), ParseAccessor("@one").Float(it, 0))
}

func TestAccessorBool(t *testing.T) {
	it := Item{Rec: map[string]any{"on": true, "off": false, "n": 0.0, "s": "true"}}

	assert.True(t, ParseAccessor("true").Bool(it, false))
	assert.False(t, ParseAccessor("false").Bool(it, true))
	assert.True(t, ParseAccessor("on").Bool(it, false))
	assert.False(t, ParseAccessor("off").Bool(it, true))
	assert.False(t, ParseAccessor("n").Bool(it, true), "zero is false")
	assert.True(t, ParseAccessor("s").Bool(it, false))
	assert.True(t, ParseAccessor("missing").Bool(it, true))
}

func TestAccessorText(t *testing.T) {
	it := Item{Rec: map[string]any{"name": "core", "n": 7.0}, Index: 2}

	assert.Equal(t, "core", ParseAccessor("name").Text(it, ""))
	assert.Equal(t, "7", ParseAccessor("n").Text(it, ""), "whole numbers format without a fraction")
	assert.Equal(t, "2", ParseAccessor("@index").Text(it, ""))
	assert.Equal(t, "d", ParseAccessor("missing").Text(it, "d"))
}

func TestAccessorColor(t *testing.T) {
	it := Item{Rec: map[string]any{"c": "#010203", "name": "red", "n": 5.0}}

	cl, ok := ParseAccessor("#ff8800").Color(it)
	assert.True(t, ok)
	assert.Equal(t, namedColor("#ff8800"), cl)

	cl, ok = ParseAccessor("c").Color(it)
	assert.True(t, ok)
	assert.Equal(t, namedColor("#010203"), cl)

	cl, ok = ParseAccessor("name").Color(it)
	assert.True(t, ok, "named colors resolve from record values")
	assert.Equal(t, namedColor("red"), cl)

	_, ok = ParseAccessor("n").Color(it)
	assert.False(t, ok, "numbers are not colors")

	_, ok = ParseAccessor("missing").Color(it)
	assert.False(t, ok)
}
