// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// BillboardScratch holds the temporaries for billboard orientation
// math. The frame scheduler owns one instance and passes it in each
// frame, so per-node orientation updates allocate nothing and no
// state hides in package globals.
type BillboardScratch struct {
	inv math32.Quat
}

// BillboardQuat returns the local rotation that makes a node face
// the viewer: the inverse of the scene's world orientation composed
// with the viewer's world orientation. Setting the result as the
// node's local quaternion cancels every rotation above it in the
// tree and then applies the viewer's.
func BillboardQuat(sceneWorld, viewer math32.Quat, sc *BillboardScratch) math32.Quat {
	sc.inv = sceneWorld.Inverse()
	return sc.inv.Mul(viewer)
}
