// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package push moves interactable objects by one tile, relocating the tile
// events they own and keeping physics paused until the visual slide ends.
package push

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/world"
)

var tracer = otel.Tracer("tileworld/push")

// Error codes for coordinator misuse.
const (
	CodeConfig           = "PUSH_CONFIG"
	CodeInvalidDirection = "PUSH_INVALID_DIRECTION"
	CodeNoHero           = "PUSH_NO_HERO"
)

// Defaults for push tuning.
const (
	DefaultShift      = 16.0
	DefaultDuration   = 320 * time.Millisecond
	DefaultJumpRadius = 2
)

// Physics is the simulation the coordinator holds still during a push.
type Physics interface {
	Pause()
	Resume()
}

// Tweener animates bodies.
type Tweener interface {
	// Tween moves body to dest over d. The returned channel is closed exactly
	// once, when the animation has finished.
	Tween(ctx context.Context, body *world.Body, dest world.Point, d time.Duration) <-chan struct{}
}

// Hooks are caller callbacks around the visual transition.
type Hooks struct {
	// BeforeMove runs synchronously after relocation and before the
	// transition destinations are computed, so bodies it repositions are
	// animated from their new position. shift is the pixel offset every body
	// slides by.
	BeforeMove func(shift world.Point)
	// OnEnd runs after every transition finished and physics resumed.
	OnEnd func()
}

// Coordinator runs push requests against one map.
type Coordinator struct {
	m       *world.Map
	physics Physics
	tweener Tweener

	shift      float64
	duration   time.Duration
	jumpRadius int
	logger     *slog.Logger
	observe    func(State)
}

// Option configures a Coordinator during construction.
type Option func(*Coordinator)

// WithShift sets the pixel distance bodies slide per push.
func WithShift(px float64) Option {
	return func(c *Coordinator) { c.shift = px }
}

// WithDuration sets the length of the visual transition.
func WithDuration(d time.Duration) Option {
	return func(c *Coordinator) { c.duration = d }
}

// WithJumpRadius sets the distance of the jump tiles reconciled around moved
// events.
func WithJumpRadius(r int) Option {
	return func(c *Coordinator) { c.jumpRadius = r }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithStateObserver registers a callback invoked on every state transition.
func WithStateObserver(fn func(State)) Option {
	return func(c *Coordinator) { c.observe = fn }
}

// NewCoordinator creates a coordinator for m.
func NewCoordinator(m *world.Map, physics Physics, tweener Tweener, opts ...Option) (*Coordinator, error) {
	if m == nil {
		return nil, oops.Code(CodeConfig).Errorf("map is required")
	}
	if physics == nil {
		return nil, oops.Code(CodeConfig).Errorf("physics is required")
	}
	if tweener == nil {
		return nil, oops.Code(CodeConfig).Errorf("tweener is required")
	}
	c := &Coordinator{
		m:          m,
		physics:    physics,
		tweener:    tweener,
		shift:      DefaultShift,
		duration:   DefaultDuration,
		jumpRadius: DefaultJumpRadius,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.shift <= 0 {
		return nil, oops.Code(CodeConfig).With("shift", c.shift).Errorf("shift must be positive")
	}
	if c.duration < 0 {
		return nil, oops.Code(CodeConfig).With("duration", c.duration).Errorf("duration must not be negative")
	}
	if c.jumpRadius <= 0 {
		return nil, oops.Code(CodeConfig).With("jump_radius", c.jumpRadius).Errorf("jump radius must be positive")
	}
	return c, nil
}

// NormalPush consumes the hero's pending push request against obj.
//
// The request is cleared whatever the outcome. The push only proceeds when
// the request is cardinal, matches the hero's facing, the hero is neither
// casting nor jumping, and the hero stands on the side of obj opposite to the
// push direction. Rejections are reported in the Result, not as errors.
func (c *Coordinator) NormalPush(ctx context.Context, obj *world.InteractableObject, hooks Hooks) (Result, error) {
	hero := c.m.Hero
	if hero == nil {
		return Result{}, oops.Code(CodeNoHero).With("map", c.m.Name).Errorf("map has no hero")
	}
	if err := checkObject(obj); err != nil {
		return Result{}, err
	}
	if hero.Body == nil {
		return Result{}, oops.Code(CodeConfig).With("map", c.m.Name).Errorf("hero has no body")
	}
	dir, requested := hero.PushRequest()
	hero.ClearPushRequest()

	res := Result{ID: newPushID(), Mode: ModeNormal, Outcome: OutcomeRejected, Direction: dir}
	switch {
	case !requested:
		res.Reason = ReasonNoRequest
	case !dir.IsCardinal():
		res.Reason = ReasonNotCardinal
	case dir != hero.Facing:
		res.Reason = ReasonFacingMismatch
	case hero.Casting:
		res.Reason = ReasonCasting
	case hero.Jumping:
		res.Reason = ReasonJumping
	case !obj.Pushable:
		res.Reason = ReasonNotPushable
	}
	if res.Reason != ReasonNone {
		return c.reject(ctx, obj, res), nil
	}
	return c.run(ctx, obj, res, hero, hooks), nil
}

// TargetOnlyPush moves obj one tile towards dir without any hero involvement
// or side check. Only the object's own body is animated.
func (c *Coordinator) TargetOnlyPush(ctx context.Context, obj *world.InteractableObject, dir geometry.Direction, hooks Hooks) (Result, error) {
	if err := checkObject(obj); err != nil {
		return Result{}, err
	}
	if !dir.IsCardinal() {
		return Result{}, oops.Code(CodeInvalidDirection).
			With("object_id", obj.ID).
			With("direction", dir.String()).
			Errorf("target-only push needs a cardinal direction")
	}
	res := Result{ID: newPushID(), Mode: ModeTargetOnly, Outcome: OutcomeRejected, Direction: dir}
	return c.run(ctx, obj, res, nil, hooks), nil
}

func checkObject(obj *world.InteractableObject) error {
	if obj == nil {
		return oops.Code(CodeConfig).Errorf("object is required")
	}
	if obj.Body == nil {
		return oops.Code(CodeConfig).With("object_id", obj.ID).Errorf("object has no body")
	}
	return nil
}

// run validates (normal mode), relocates and animates. hero is nil for
// target-only pushes.
func (c *Coordinator) run(ctx context.Context, obj *world.InteractableObject, res Result, hero *world.Hero, hooks Hooks) Result {
	ctx, span := tracer.Start(ctx, "push.execute",
		trace.WithAttributes(
			attribute.String("push.id", res.ID.String()),
			attribute.String("push.mode", string(res.Mode)),
			attribute.String("push.direction", res.Direction.String()),
			attribute.String("object.id", obj.ID),
		),
	)
	defer span.End()

	// Overlapping pushes on one object are rejected rather than queued.
	if !obj.BeginRelocation() {
		res.Reason = ReasonInProgress
		return c.reject(ctx, obj, res)
	}

	if hero != nil {
		c.setState(StateValidatingDirection)
		side := SideOf(hero.Body.Position(), obj.Body.Position())
		if side != res.Direction {
			obj.EndRelocation()
			c.setState(StateIdle)
			span.SetAttributes(attribute.String("push.side", side.String()))
			res.Reason = ReasonWrongSide
			return c.reject(ctx, obj, res)
		}
	}

	start := time.Now()
	c.physics.Pause()

	c.setState(StateRelocating)
	c.relocate(ctx, obj, &res)

	c.setState(StateAwaitingVisualCompletion)
	shift := c.pixelShift(res.Direction)
	if hooks.BeforeMove != nil {
		hooks.BeforeMove(shift)
	}
	transitions := c.transitions(obj, hero, res.Direction, shift)
	// Once validated a push always runs to completion.
	c.await(context.WithoutCancel(ctx), transitions)

	c.physics.Resume()
	obj.EndRelocation()
	c.setState(StateIdle)

	res.Outcome = OutcomePushed
	elapsed := time.Since(start)
	recordResult(res, elapsed)
	span.SetAttributes(attribute.Int("push.events", len(res.Moves)))

	c.logger.InfoContext(ctx, "object pushed",
		"push_id", res.ID.String(),
		"mode", res.Mode,
		"object_id", obj.ID,
		"direction", res.Direction.String(),
		"x", obj.CurrentX,
		"y", obj.CurrentY,
		"events", len(res.Moves),
		"jumps_activated", res.JumpsActivated,
		"jumps_deactivated", res.JumpsDeactivated,
		"duration_ms", elapsed.Milliseconds(),
	)

	if hooks.OnEnd != nil {
		hooks.OnEnd()
	}
	return res
}

func (c *Coordinator) reject(ctx context.Context, obj *world.InteractableObject, res Result) Result {
	recordResult(res, 0)
	c.logger.DebugContext(ctx, "push rejected",
		"push_id", res.ID.String(),
		"mode", res.Mode,
		"object_id", obj.ID,
		"direction", res.Direction.String(),
		"reason", res.Reason,
	)
	return res
}

func (c *Coordinator) setState(s State) {
	if c.observe != nil {
		c.observe(s)
	}
}
