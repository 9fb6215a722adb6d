// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forcegraph

import (
	"cogentcore.org/core/math32"
	"github.com/gravitree/forcegraph/interact"
	"github.com/gravitree/forcegraph/scene"
)

// The Handle methods queue host pointer events for the next Tick, so
// hosts can deliver events whenever their own loop produces them
// while all interaction state changes stay inside the frame order.
// They must be called from the frame loop goroutine.

type eventKinds int32

const (
	clickEvent eventKinds = iota
	releaseEvent
	dragStartEvent
	dragEvent
	dragEndEvent
)

type pointerEvent struct {
	kind  eventKinds
	ray   math32.Ray
	delta math32.Vector2
}

// HandleClick queues a press along the given scene-space ray.
func (en *Entity) HandleClick(ray math32.Ray) {
	en.events = append(en.events, pointerEvent{kind: clickEvent, ray: ray})
}

// HandleRelease queues the end of a press. A plain click fires the
// click callbacks; a drag in progress ends instead.
func (en *Entity) HandleRelease() {
	en.events = append(en.events, pointerEvent{kind: releaseEvent})
}

// HandleDragStart queues the start of a drag gesture.
func (en *Entity) HandleDragStart() {
	en.events = append(en.events, pointerEvent{kind: dragStartEvent})
}

// HandleDrag queues a drag movement in view-plane units.
func (en *Entity) HandleDrag(dx, dy float32) {
	en.events = append(en.events, pointerEvent{kind: dragEvent, delta: math32.Vec2(dx, dy)})
}

// HandleDragEnd queues the end of a drag gesture.
func (en *Entity) HandleDragEnd() {
	en.events = append(en.events, pointerEvent{kind: dragEndEvent})
}

// drainEvents feeds the queued events through the controller. When
// the entity is not interactive the queue is simply discarded.
func (en *Entity) drainEvents() {
	evs := en.events
	en.events = nil
	if !en.Config.IsInteractive {
		return
	}
	for _, ev := range evs {
		switch ev.kind {
		case clickEvent:
			en.ctrl.Press(ev.ray)
		case releaseEvent:
			if en.ctrl.Phase() == interact.Dragging {
				en.endDrag()
			} else if hp := en.ctrl.Release(); hp != nil {
				en.fireClick(hp)
			}
		case dragStartEvent:
			en.ctrl.DragStart()
		case dragEvent:
			en.ctrl.Drag(ev.delta.X, ev.delta.Y)
		case dragEndEvent:
			en.endDrag()
		}
	}
}

// endDrag ends the gesture, harvesting any increment from this same
// frame first so the final movement is not lost to the reset.
func (en *Entity) endDrag() {
	if en.ctrl.Phase() == interact.Dragging {
		en.pendingDrag = en.pendingDrag.Add(en.ctrl.TakeFrameDelta())
	}
	en.ctrl.DragEnd()
}

func (en *Entity) fireClick(hp *scene.HitPoint) {
	gn, lk := en.resolve(hp)
	switch {
	case gn != nil && en.OnNodeClick != nil:
		en.OnNodeClick(gn)
	case lk != nil && en.OnLinkClick != nil:
		en.OnLinkClick(lk)
	}
}
