// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact tracks pointer interaction with a scene tree:
// hover polling over ray sources, a press/drag state machine, and
// 2D drag delta accumulation for the frame loop to consume.
package interact

import (
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/gravitree/forcegraph/scene"
)

// Phases are the states of the interaction machine.
type Phases int32

const (
	// Idle means no press is in progress; hover polling runs.
	Idle Phases = iota

	// Clicked means a press resolved to a target and has not yet
	// become a drag or been released.
	Clicked

	// Dragging means drag motion is being accumulated.
	Dragging
)

func (ph Phases) String() string {
	switch ph {
	case Idle:
		return "Idle"
	case Clicked:
		return "Clicked"
	case Dragging:
		return "Dragging"
	}
	return "Invalid"
}

// MaxPointers is the number of simultaneous pointer ray sources
// tracked, one per physical control ray.
const MaxPointers = 2

// Hover is one pointer source currently intersecting the scene.
type Hover struct {
	// Pointer is the index of the source in the polled set.
	Pointer int

	// Hit is the closest solid under that source's ray.
	Hit *scene.HitPoint
}

// Controller runs pointer interaction against one scene tree.
// It is driven by the frame loop and is not safe for concurrent use.
type Controller struct {
	// Draggable enables the drag phase; without it a press can
	// only click.
	Draggable bool

	root   *scene.Group
	phase  Phases
	target *scene.HitPoint
	hovers []Hover
	total  math32.Vector2
	frame  math32.Vector2
}

// NewController returns a controller testing rays against root.
func NewController(root *scene.Group) *Controller {
	return &Controller{root: root}
}

// Phase returns the current interaction phase.
func (ct *Controller) Phase() Phases {
	return ct.phase
}

// Target returns the hit resolved by the current press, nil in Idle.
func (ct *Controller) Target() *scene.HitPoint {
	return ct.target
}

// Hovers returns the pointer sources intersecting the scene as of
// the last poll. The slice is rebuilt every poll; callers must not
// retain it.
func (ct *Controller) Hovers() []Hover {
	return ct.hovers
}

// Poll recomputes the hover set from the given pointer rays. It only
// runs while Idle, so hover feedback never fights an active press.
// At most [MaxPointers] rays are considered; the hover set is thrown
// away and rebuilt from scratch each time, never patched.
func (ct *Controller) Poll(rays []math32.Ray) {
	ct.hovers = ct.hovers[:0]
	if ct.phase != Idle {
		return
	}
	if len(rays) > MaxPointers {
		rays = rays[:MaxPointers]
	}
	for i, ray := range rays {
		hits := ct.root.RayIntersections(ray)
		if len(hits) > 0 {
			ct.hovers = append(ct.hovers, Hover{Pointer: i, Hit: hits[0]})
		}
	}
}

// Press resolves a press ray to its closest intersected solid and
// enters Clicked. A press with no intersection is dropped with a
// diagnostic, and the machine stays Idle.
func (ct *Controller) Press(ray math32.Ray) bool {
	if ct.phase != Idle {
		return false
	}
	hits := ct.root.RayIntersections(ray)
	if len(hits) == 0 {
		slog.Warn("interact: press without intersection", "origin", ray.Origin)
		return false
	}
	ct.target = hits[0]
	ct.phase = Clicked
	return true
}

// Release ends a press that never became a drag, returning the
// clicked target so the caller can dispatch it. It returns nil in
// any other phase.
func (ct *Controller) Release() *scene.HitPoint {
	if ct.phase != Clicked {
		return nil
	}
	tg := ct.target
	ct.reset()
	return tg
}

// DragStart transitions a Clicked press into Dragging. It refuses
// when dragging is disabled or nothing is pressed.
func (ct *Controller) DragStart() bool {
	if !ct.Draggable || ct.phase != Clicked {
		return false
	}
	ct.phase = Dragging
	return true
}

// Drag accumulates 2D drag motion while Dragging, into both the
// running total and the per-frame delta.
func (ct *Controller) Drag(dx, dy float32) {
	if ct.phase != Dragging {
		return
	}
	ct.total.X += dx
	ct.total.Y += dy
	ct.frame.X += dx
	ct.frame.Y += dy
}

// DragEnd leaves Dragging, clearing the target and both deltas.
func (ct *Controller) DragEnd() {
	if ct.phase != Dragging {
		return
	}
	ct.reset()
}

// Delta returns the total drag motion since DragStart.
func (ct *Controller) Delta() math32.Vector2 {
	return ct.total
}

// TakeFrameDelta returns the drag motion accumulated since the last
// take and zeroes it, for once-per-frame consumption.
func (ct *Controller) TakeFrameDelta() math32.Vector2 {
	fd := ct.frame
	ct.frame = math32.Vector2{}
	return fd
}

func (ct *Controller) reset() {
	ct.phase = Idle
	ct.target = nil
	ct.total = math32.Vector2{}
	ct.frame = math32.Vector2{}
}
