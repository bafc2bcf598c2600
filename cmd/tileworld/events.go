// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/holomush/tileworld/internal/tileevent"
)

// eventLogger reports fired events. The simulator has no game layer to hand
// them to.
type eventLogger struct {
	logger *slog.Logger
}

var _ tileevent.Handler = eventLogger{}

func (l eventLogger) fired(ctx context.Context, e *tileevent.Event, attrs ...any) error {
	attrs = append([]any{"event_id", e.ID(), "kind", e.Kind(), "x", e.X(), "y", e.Y()}, attrs...)
	l.logger.InfoContext(ctx, "event fired", attrs...)
	return nil
}

func (l eventLogger) Climb(ctx context.Context, e *tileevent.Event, v tileevent.Climb) error {
	return l.fired(ctx, e, "collision_layer", v.ChangeToCollisionLayer)
}

func (l eventLogger) Speed(ctx context.Context, e *tileevent.Event, v tileevent.Speed) error {
	return l.fired(ctx, e, "speed", v.Speed)
}

func (l eventLogger) Teleport(ctx context.Context, e *tileevent.Event, v tileevent.Teleport) error {
	return l.fired(ctx, e, "target_map", v.TargetMap, "target_x", v.X, "target_y", v.Y)
}

func (l eventLogger) Jump(ctx context.Context, e *tileevent.Event, _ tileevent.Jump) error {
	return l.fired(ctx, e)
}

func (l eventLogger) Step(ctx context.Context, e *tileevent.Event, v tileevent.Step) error {
	return l.fired(ctx, e, "step_direction", v.StepDirection)
}

func (l eventLogger) Collision(ctx context.Context, e *tileevent.Event, v tileevent.Collision) error {
	return l.fired(ctx, e, "collision_layer", v.DestCollisionLayer)
}

func (l eventLogger) Slider(ctx context.Context, e *tileevent.Event, v tileevent.Slider) error {
	return l.fired(ctx, e, "target_x", v.XTarget, "target_y", v.YTarget)
}

func (l eventLogger) Trigger(ctx context.Context, e *tileevent.Event, v tileevent.Trigger) error {
	return l.fired(ctx, e, "game_events", v.GameEvents)
}

func (l eventLogger) IceSlide(ctx context.Context, e *tileevent.Event, _ tileevent.IceSlide) error {
	return l.fired(ctx, e)
}
