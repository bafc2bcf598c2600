// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package tileevent

import (
	"context"

	"github.com/samber/oops"
)

// CodeUnknownVariant is the error code returned by Fire for a payload outside
// the closed variant set.
const CodeUnknownVariant = "EVENT_UNKNOWN_VARIANT"

// Handler applies the side effect of each event kind.
// Fire may call a handler at most once per qualifying frame; handlers must not
// rely on being called again for the same frame.
type Handler interface {
	Climb(ctx context.Context, e *Event, v Climb) error
	Speed(ctx context.Context, e *Event, v Speed) error
	Teleport(ctx context.Context, e *Event, v Teleport) error
	Jump(ctx context.Context, e *Event, v Jump) error
	Step(ctx context.Context, e *Event, v Step) error
	Collision(ctx context.Context, e *Event, v Collision) error
	Slider(ctx context.Context, e *Event, v Slider) error
	Trigger(ctx context.Context, e *Event, v Trigger) error
	IceSlide(ctx context.Context, e *Event, v IceSlide) error
}

// Fire dispatches the event to the handler method for its kind.
func Fire(ctx context.Context, e *Event, h Handler) error {
	switch v := e.variant.(type) {
	case Climb:
		return h.Climb(ctx, e, v)
	case Speed:
		return h.Speed(ctx, e, v)
	case Teleport:
		return h.Teleport(ctx, e, v)
	case Jump:
		return h.Jump(ctx, e, v)
	case Step:
		return h.Step(ctx, e, v)
	case Collision:
		return h.Collision(ctx, e, v)
	case Slider:
		return h.Slider(ctx, e, v)
	case Trigger:
		return h.Trigger(ctx, e, v)
	case IceSlide:
		return h.IceSlide(ctx, e, v)
	default:
		return oops.Code(CodeUnknownVariant).
			With("event_id", e.id).
			Errorf("unknown tile event variant %T", e.variant)
	}
}

// NopHandler ignores every event. Embed it to implement only some kinds.
type NopHandler struct{}

func (NopHandler) Climb(context.Context, *Event, Climb) error         { return nil }
func (NopHandler) Speed(context.Context, *Event, Speed) error         { return nil }
func (NopHandler) Teleport(context.Context, *Event, Teleport) error   { return nil }
func (NopHandler) Jump(context.Context, *Event, Jump) error           { return nil }
func (NopHandler) Step(context.Context, *Event, Step) error           { return nil }
func (NopHandler) Collision(context.Context, *Event, Collision) error { return nil }
func (NopHandler) Slider(context.Context, *Event, Slider) error       { return nil }
func (NopHandler) Trigger(context.Context, *Event, Trigger) error     { return nil }
func (NopHandler) IceSlide(context.Context, *Event, IceSlide) error   { return nil }

var _ Handler = NopHandler{}
