// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package tween animates bodies towards destinations on a fixed tick.
package tween

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/holomush/tileworld/internal/world"
)

// DefaultTick is the animation step used by Run when none is configured.
const DefaultTick = 16 * time.Millisecond

type tween struct {
	body     *world.Body
	from, to world.Point
	duration time.Duration
	elapsed  time.Duration
	done     chan struct{}
}

func (t *tween) finish() {
	t.body.SetPosition(t.to)
	close(t.done)
}

// Engine interpolates body positions linearly. Every completion channel is
// closed exactly once: when its tween reaches the destination or when the
// engine is flushed. Once Run has returned, new tweens complete immediately.
type Engine struct {
	mu      sync.Mutex
	active  []*tween
	stopped bool
	logger  *slog.Logger
}

// New creates an idle engine. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Tween starts moving body to dest over d. A non-positive duration moves the
// body immediately and returns a closed channel.
func (e *Engine) Tween(_ context.Context, body *world.Body, dest world.Point, d time.Duration) <-chan struct{} {
	t := &tween{
		body:     body,
		from:     body.Position(),
		to:       dest,
		duration: d,
		done:     make(chan struct{}),
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if d <= 0 || e.stopped {
		t.finish()
		return t.done
	}
	e.active = append(e.active, t)
	return t.done
}

// Advance moves every running tween forward by dt and completes those that
// reached their destination. It returns the number of tweens still running.
func (e *Engine) Advance(dt time.Duration) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	running := e.active[:0]
	for _, t := range e.active {
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.finish()
			continue
		}
		f := float64(t.elapsed) / float64(t.duration)
		t.body.SetPosition(world.Point{
			X: t.from.X + (t.to.X-t.from.X)*f,
			Y: t.from.Y + (t.to.Y-t.from.Y)*f,
		})
		running = append(running, t)
	}
	clear(e.active[len(running):])
	e.active = running
	return len(running)
}

// Pending returns the number of running tweens.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}

// Flush completes every running tween at its destination.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushLocked()
}

func (e *Engine) flushLocked() {
	for _, t := range e.active {
		t.finish()
	}
	clear(e.active)
	e.active = e.active[:0]
}

// Run advances the engine every tick until ctx is done, then flushes the
// remaining tweens so no waiter is left blocked. An engine runs once.
func (e *Engine) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if n := e.Pending(); n > 0 {
				e.logger.DebugContext(ctx, "flushing tweens on shutdown", "pending", n)
			}
			e.mu.Lock()
			e.stopped = true
			e.flushLocked()
			e.mu.Unlock()
			return nil
		case <-ticker.C:
			e.Advance(tick)
		}
	}
}
