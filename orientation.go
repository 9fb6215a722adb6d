// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forcegraph

import (
	"encoding/json"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"github.com/gravitree/forcegraph/share"
)

// orientationInterval is the minimum time between shared orientation
// records while a drag is running. The final state of a gesture is
// always flushed regardless.
const orientationInterval = 100 * time.Millisecond

// orientationEpsilon is the rotation difference in radians below
// which two orientation records count as equal and are not resent.
const orientationEpsilon = 1e-4

// orientation is the shared view state: the graph root rotation in
// radians. It is the entity's record payload on the bridge.
type orientation struct {
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

func orientationRecord(yaw, pitch float32) share.Record {
	return errors.Log1(json.Marshal(orientation{Yaw: yaw, Pitch: pitch}))
}

// orientationEq compares two records as orientations within
// [orientationEpsilon], falling back to byte equality when either
// side does not decode.
func orientationEq(a, b share.Record) bool {
	var oa, ob orientation
	if json.Unmarshal(a, &oa) != nil || json.Unmarshal(b, &ob) != nil {
		return a.Equal(b)
	}
	return math32.Abs(oa.Yaw-ob.Yaw) < orientationEpsilon &&
		math32.Abs(oa.Pitch-ob.Pitch) < orientationEpsilon
}

// shareOrientation publishes the current rotation through the
// debounced bridge; force flushes unconditionally, for gesture ends.
func (en *Entity) shareOrientation(force bool) {
	rec := orientationRecord(en.yaw, en.pitch)
	if force {
		errors.Log(en.deb.Force(en.bridge, rec))
		return
	}
	_, err := en.deb.Send(en.bridge, rec)
	errors.Log(err)
}
