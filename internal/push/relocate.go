// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package push

import (
	"context"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/tileevent"
	"github.com/holomush/tileworld/internal/world"
)

// relocate moves every event owned by obj one tile towards res.Direction, in
// ownership order, and reconciles the jump events around each move.
func (c *Coordinator) relocate(ctx context.Context, obj *world.InteractableObject, res *Result) {
	dx, dy := geometry.UnitVector(res.Direction)
	layer := obj.TargetLayer()

	for _, e := range obj.Events() {
		oldX, oldY := e.X(), e.Y()
		from := e.Key()
		if !c.m.Events.Move(e, oldX+dx, oldY+dy) {
			c.logger.WarnContext(ctx, "relocated event was not filed under its key",
				"object_id", obj.ID,
				"event_id", e.ID(),
				"key", from.String(),
			)
		}
		res.Moves = append(res.Moves, EventMove{EventID: e.ID(), From: from, To: e.Key()})

		for _, s := range c.m.Events.Neighbors(e.X(), e.Y(), c.jumpRadius) {
			for _, j := range c.m.EventsAt(s.X, s.Y) {
				if isJumpOn(j, layer) && setFlag(j, geometry.Opposite(s.Direction), true) {
					res.JumpsActivated++
				}
			}
		}
		for _, s := range c.m.Events.Neighbors(oldX, oldY, c.jumpRadius) {
			for _, j := range c.m.EventsAt(s.X, s.Y) {
				if isJumpOn(j, layer) && !j.Dynamic() && setFlag(j, geometry.Opposite(s.Direction), false) {
					res.JumpsDeactivated++
				}
			}
		}
	}

	obj.CurrentX += dx
	obj.CurrentY += dy
}

func isJumpOn(e *tileevent.Event, layer int) bool {
	return e.Kind() == tileevent.KindJump && e.OnLayer(layer)
}

// setFlag sets the activation flag of e at the cardinal direction dir and
// reports whether it changed.
func setFlag(e *tileevent.Event, dir geometry.Direction, v bool) bool {
	before := e.IsActive(dir)
	if v {
		e.ActivateAt(dir)
	} else {
		e.DeactivateAt(dir)
	}
	return e.IsActive(dir) != before
}
