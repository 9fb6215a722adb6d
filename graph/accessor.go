// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"image/color"
	"strconv"
	"strings"

	"cogentcore.org/core/colors"
)

// kinds is the set of accessor forms recognized by [ParseAccessor].
type kinds int32

const (
	// numberKind is a numeric constant, e.g. "12" or "-0.5".
	numberKind kinds = iota

	// boolKind is the constant "true" or "false".
	boolKind

	// colorKind is a hex color constant, e.g. "#ff8800".
	colorKind

	// fieldKind looks the raw string up as a field of the record.
	fieldKind

	// transformKind is one of the built-in transforms:
	// "@index", "@degree", or "@one".
	transformKind
)

// Accessor reads one value per record out of a graph document.
// It is parsed from a configuration string by [ParseAccessor] and is
// one of a closed set of forms: a numeric constant, a boolean
// constant, a hex color constant, a built-in transform ("@index",
// "@degree", "@one"), or a field name looked up in the record.
// Any string that is not a recognized constant or transform is a
// field name, so a malformed value degrades to a lookup that yields
// the default instead of failing the build.
type Accessor struct {
	raw   string
	kind  kinds
	num   float32
	flag  bool
	color color.RGBA
}

// Built-in accessor transforms.
const (
	TransformIndex  = "@index"
	TransformDegree = "@degree"
	TransformOne    = "@one"
)

// ParseAccessor parses an accessor expression. It never fails:
// unrecognized input becomes a field-name accessor.
func ParseAccessor(expr string) Accessor {
	a := Accessor{raw: expr, kind: fieldKind}
	switch expr {
	case TransformIndex, TransformDegree, TransformOne:
		a.kind = transformKind
		return a
	case "true", "false":
		a.kind = boolKind
		a.flag = expr == "true"
		return a
	}
	if f, err := strconv.ParseFloat(expr, 32); err == nil {
		a.kind = numberKind
		a.num = float32(f)
		return a
	}
	if strings.HasPrefix(expr, "#") {
		if cl, err := colors.FromString(expr); err == nil {
			a.kind = colorKind
			a.color = cl
			return a
		}
	}
	return a
}

// String returns the expression the accessor was parsed from.
func (a Accessor) String() string {
	return a.raw
}

// Item is one record presented to an accessor, along with the
// positional context the built-in transforms need.
type Item struct {
	// Rec is the raw decoded record.
	Rec map[string]any

	// Index is the position of the record in its document list.
	Index int

	// Degree is the link degree of the node, 0 for link records.
	Degree int
}

// field returns the raw field value for a field accessor.
func (a Accessor) field(it Item) (any, bool) {
	if a.kind != fieldKind || it.Rec == nil {
		return nil, false
	}
	v, ok := it.Rec[a.raw]
	return v, ok
}

// Float evaluates the accessor as a number, returning def if the
// record has no usable value.
func (a Accessor) Float(it Item, def float32) float32 {
	switch a.kind {
	case numberKind:
		return a.num
	case boolKind:
		if a.flag {
			return 1
		}
		return 0
	case transformKind:
		switch a.raw {
		case TransformIndex:
			return float32(it.Index)
		case TransformDegree:
			return float32(it.Degree)
		}
		return 1 // TransformOne
	case fieldKind:
		if v, ok := a.field(it); ok {
			if f, ok := toFloat(v); ok {
				return f
			}
		}
	}
	return def
}

// Bool evaluates the accessor as a boolean, returning def if the
// record has no usable value. Numbers are true when nonzero.
func (a Accessor) Bool(it Item, def bool) bool {
	switch a.kind {
	case boolKind:
		return a.flag
	case numberKind:
		return a.num != 0
	case transformKind:
		return a.Float(it, 0) != 0
	case fieldKind:
		if v, ok := a.field(it); ok {
			switch b := v.(type) {
			case bool:
				return b
			case string:
				if pb, err := strconv.ParseBool(b); err == nil {
					return pb
				}
			default:
				if f, ok := toFloat(v); ok {
					return f != 0
				}
			}
		}
	}
	return def
}

// Text evaluates the accessor as a string, returning def if the
// record has no usable value. Numeric values are formatted without a
// trailing fraction, so an id of 7 and an id of "7" are the same key.
func (a Accessor) Text(it Item, def string) string {
	switch a.kind {
	case numberKind:
		return strconv.FormatFloat(float64(a.num), 'g', -1, 32)
	case boolKind:
		return strconv.FormatBool(a.flag)
	case transformKind:
		return strconv.FormatFloat(float64(a.Float(it, 0)), 'g', -1, 32)
	case fieldKind:
		if v, ok := a.field(it); ok {
			return toText(v)
		}
	}
	return def
}

// Color evaluates the accessor as a color. The second return is false
// if the record has no usable color, so the caller can fall back to
// auto or default coloring.
func (a Accessor) Color(it Item) (color.RGBA, bool) {
	switch a.kind {
	case colorKind:
		return a.color, true
	case fieldKind:
		if v, ok := a.field(it); ok {
			if s, ok := v.(string); ok && s != "" {
				if cl, err := colors.FromString(s); err == nil {
					return cl, true
				}
			}
		}
	}
	return color.RGBA{}, false
}

// toFloat coerces a decoded record value to a number. JSON decoding
// yields float64; YAML can also yield int and int64.
func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 32); err == nil {
			return float32(f), true
		}
	}
	return 0, false
}

// toText coerces a decoded record value to a string key.
func toText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return ""
}
