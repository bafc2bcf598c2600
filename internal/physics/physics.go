// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package physics is a minimal pausable body simulation. Pushes hold it
// paused while objects are relocated so no body drifts mid-transition.
package physics

import (
	"sync"
	"time"

	"github.com/holomush/tileworld/internal/world"
)

// Clock returns the current real time.
type Clock func() time.Time

// Simulation integrates body velocities while it is not paused.
//
// Pauses nest: the simulation runs again once every Pause has been matched
// by a Resume.
type Simulation struct {
	mu sync.Mutex

	now        Clock
	depth      int
	pausedAt   time.Time
	pausedFor  time.Duration
	pauseCount int
	steps      int

	velocities map[*world.Body]world.Point
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithClock replaces the wall clock used for pause accounting.
func WithClock(c Clock) Option {
	return func(s *Simulation) { s.now = c }
}

// New creates a running simulation.
func New(opts ...Option) *Simulation {
	s := &Simulation{
		now:        time.Now,
		velocities: make(map[*world.Body]world.Point),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetVelocity sets the velocity of b in pixels per second. A zero velocity
// removes the body from the simulation.
func (s *Simulation) SetVelocity(b *world.Body, v world.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v == (world.Point{}) {
		delete(s.velocities, b)
		return
	}
	s.velocities[b] = v
}

// Step advances every moving body by dt. It does nothing while paused and
// reports whether the simulation advanced.
func (s *Simulation) Step(dt time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth > 0 {
		return false
	}
	sec := dt.Seconds()
	for b, v := range s.velocities {
		p := b.Position()
		b.SetPosition(world.Point{X: p.X + v.X*sec, Y: p.Y + v.Y*sec})
	}
	s.steps++
	return true
}

// Pause stops the simulation.
func (s *Simulation) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth == 0 {
		s.pausedAt = s.now()
		s.pauseCount++
	}
	s.depth++
}

// Resume undoes one Pause. Unmatched calls are ignored.
func (s *Simulation) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth == 0 {
		return
	}
	s.depth--
	if s.depth == 0 {
		s.pausedFor += s.now().Sub(s.pausedAt)
		s.pausedAt = time.Time{}
	}
}

// Paused reports whether the simulation is paused.
func (s *Simulation) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth > 0
}

// Stats is a snapshot of the simulation counters.
type Stats struct {
	Pauses       int
	Steps        int
	PausedFor    time.Duration
	Paused       bool
	MovingBodies int
}

// Stats returns the current counters. PausedFor includes the running pause.
func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.pausedFor
	if s.depth > 0 {
		total += s.now().Sub(s.pausedAt)
	}
	return Stats{
		Pauses:       s.pauseCount,
		Steps:        s.steps,
		PausedFor:    total,
		Paused:       s.depth > 0,
		MovingBodies: len(s.velocities),
	}
}
