// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/core/math32"

// Pose is the full position, orientation, and scale of a scene node,
// always relative to the parent node.
type Pose struct {
	// Pos is the position of the center of the node.
	Pos math32.Vector3

	// Scale is the scale relative to the parent.
	Scale math32.Vector3

	// Quat is the rotation relative to the parent.
	Quat math32.Quat

	// Matrix is the local transform matrix, computed from Pos,
	// Quat, and Scale by [Pose.UpdateMatrix].
	Matrix math32.Matrix4 `display:"-"`

	// ParMatrix is the parent's world matrix, cached so this node
	// can update its own world matrix independently.
	ParMatrix math32.Matrix4 `display:"-"`

	// WorldMatrix is the full transform relative to the scene
	// root, Matrix premultiplied by ParMatrix.
	WorldMatrix math32.Matrix4 `display:"-"`
}

// Defaults sets a unit scale and identity rotation if the current
// values are zero.
func (ps *Pose) Defaults() {
	if ps.Scale == (math32.Vector3{}) {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// CopyFrom copies the pose fields from op, critically not copying
// ParMatrix so the receiver keeps its place in its own tree.
func (ps *Pose) CopyFrom(op *Pose) {
	ps.Pos = op.Pos
	ps.Scale = op.Scale
	ps.Quat = op.Quat
	ps.UpdateMatrix()
}

// UpdateMatrix updates the local matrix from Pos, Quat, and Scale.
func (ps *Pose) UpdateMatrix() {
	ps.Defaults()
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// UpdateWorldMatrix updates the world matrix from the local Matrix
// and the given parent world matrix (nil keeps the cached one).
// It does not call UpdateMatrix, so overrides can add other factors.
func (ps *Pose) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	if parWorld != nil {
		ps.ParMatrix.CopyFrom(parWorld)
	}
	ps.WorldMatrix.MulMatrices(&ps.ParMatrix, &ps.Matrix)
}

// MoveOnAxis translates the given distance along the given local
// axis, relative to the current rotation.
func (ps *Pose) MoveOnAxis(x, y, z, dist float32) {
	ps.Pos.SetAdd(math32.Vec3(x, y, z).Normal().MulQuat(ps.Quat).MulScalar(dist))
}

// SetAxisRotation sets the rotation from an axis and angle in degrees.
func (ps *Pose) SetAxisRotation(x, y, z, angle float32) {
	ps.Quat.SetFromAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle))
}

// SetEulerRotation sets the rotation from Euler angles in degrees.
func (ps *Pose) SetEulerRotation(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z).MulScalar(math32.DegToRadFactor))
}

// EulerRotation returns the current rotation as Euler angles in degrees.
func (ps *Pose) EulerRotation() math32.Vector3 {
	return ps.Quat.ToEuler().MulScalar(math32.RadToDegFactor)
}

// RotateOnAxis rotates around the given local axis by the given
// angle in degrees, composing with the existing rotation.
func (ps *Pose) RotateOnAxis(x, y, z, angle float32) {
	ps.Quat.SetMul(math32.NewQuatAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle)))
}

// WorldPos returns the current world position.
func (ps *Pose) WorldPos() math32.Vector3 {
	pos := math32.Vector3{}
	pos.SetFromMatrixPos(&ps.WorldMatrix)
	return pos
}

// WorldQuat returns the current world rotation.
func (ps *Pose) WorldQuat() math32.Quat {
	_, quat, _ := ps.WorldMatrix.Decompose()
	return quat
}

// WorldScale returns the current world scale.
func (ps *Pose) WorldScale() math32.Vector3 {
	_, _, scale := ps.WorldMatrix.Decompose()
	return scale
}
