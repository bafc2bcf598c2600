// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package tileevent models spatial triggers anchored to map tiles.
package tileevent

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/location"
)

// ID identifies an event for as long as its identity registry is not reset.
type ID int

// Event is a trigger anchored to one tile.
//
// An Event is not safe for concurrent mutation. Position changes go through
// registry.Registry.Move, which serialises writers for the owning map.
type Event struct {
	id      ID
	variant Variant

	x, y int
	key  location.Key

	directions       []geometry.Direction
	active           []bool
	affectedByReveal []bool

	dynamic bool
	layers  mapset.Set[int]
	origin  string
}

// Option configures an Event during construction.
type Option func(*Event)

// WithActivationDirections sets the directions the event tracks activation
// for. Every direction starts active unless WithActive says otherwise.
func WithActivationDirections(dirs ...geometry.Direction) Option {
	return func(e *Event) {
		e.directions = slices.Clone(dirs)
	}
}

// WithActive sets the initial activation flags, one per activation
// direction. Missing trailing flags default to true.
func WithActive(flags ...bool) Option {
	return func(e *Event) {
		e.active = slices.Clone(flags)
	}
}

// WithAffectedByReveal marks which activation directions are sensitive to the
// reveal world state, one flag per activation direction.
func WithAffectedByReveal(flags ...bool) Option {
	return func(e *Event) {
		e.affectedByReveal = slices.Clone(flags)
	}
}

// WithCollisionLayers sets the collision layers the event may fire on.
func WithCollisionLayers(layers ...int) Option {
	return func(e *Event) {
		for _, l := range layers {
			e.layers.Put(l)
		}
	}
}

// WithOrigin records the id of the interactable object that owns the event.
func WithOrigin(objectID string) Option {
	return func(e *Event) {
		e.origin = objectID
	}
}

// Dynamic marks the event as spawned at runtime.
func Dynamic() Option {
	return func(e *Event) {
		e.dynamic = true
	}
}

// New creates an unregistered event at (x, y). It has no id until it is
// passed to Registry.Register.
func New(x, y int, variant Variant, opts ...Option) *Event {
	e := &Event{
		variant: variant,
		layers:  mapset.New[int](),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.SetPosition(x, y)

	e.active = fitFlags(e.active, len(e.directions), true)
	e.affectedByReveal = fitFlags(e.affectedByReveal, len(e.directions), false)
	if e.layers.Size() == 0 {
		e.layers.Put(0)
	}
	return e
}

func fitFlags(flags []bool, n int, fill bool) []bool {
	out := make([]bool, n)
	for i := range out {
		if i < len(flags) {
			out[i] = flags[i]
		} else {
			out[i] = fill
		}
	}
	return out
}

// ID returns the event id.
func (e *Event) ID() ID { return e.id }

// Kind returns the event kind.
func (e *Event) Kind() Kind { return e.variant.Kind() }

// Variant returns the kind-specific payload.
func (e *Event) Variant() Variant { return e.variant }

// X returns the tile column.
func (e *Event) X() int { return e.x }

// Y returns the tile row.
func (e *Event) Y() int { return e.y }

// Key returns the location key of the event's tile.
func (e *Event) Key() location.Key { return e.key }

// Dynamic reports whether the event was spawned at runtime.
func (e *Event) Dynamic() bool { return e.dynamic }

// Origin returns the owning object's id, or "" when the event belongs to the
// map itself.
func (e *Event) Origin() string { return e.origin }

// SetPosition moves the event to (x, y) and recomputes its location key.
func (e *Event) SetPosition(x, y int) {
	e.x, e.y = x, y
	e.key = location.Encode(x, y)
}

// ActivationDirections returns a copy of the tracked directions.
func (e *Event) ActivationDirections() []geometry.Direction {
	return slices.Clone(e.directions)
}

// Activations returns a copy of the activation flags, parallel to
// ActivationDirections.
func (e *Event) Activations() []bool {
	return slices.Clone(e.active)
}

// CollisionLayers returns the collision layers in ascending order.
func (e *Event) CollisionLayers() []int {
	out := make([]int, 0, e.layers.Size())
	e.layers.Each(func(l int) {
		out = append(out, l)
	})
	slices.Sort(out)
	return out
}

// OnLayer reports whether the event may fire on the given collision layer.
func (e *Event) OnLayer(layer int) bool {
	return e.layers.Has(layer)
}

// IsActive reports whether any elementary direction of dir is active.
func (e *Event) IsActive(dir geometry.Direction) bool {
	for _, d := range geometry.Split(dir) {
		if i := slices.Index(e.directions, d); i >= 0 && e.active[i] {
			return true
		}
	}
	return false
}

// AffectedByReveal reports whether activation in dir depends on the reveal
// world state. Unknown directions report false.
func (e *Event) AffectedByReveal(dir geometry.Direction) bool {
	i := slices.Index(e.directions, dir)
	return i >= 0 && e.affectedByReveal[i]
}

// ActivateAt sets the flag for dir. Directions the event does not track are
// ignored.
func (e *Event) ActivateAt(dir geometry.Direction) {
	e.setAt(dir, true)
}

// DeactivateAt clears the flag for dir. Directions the event does not track
// are ignored.
func (e *Event) DeactivateAt(dir geometry.Direction) {
	e.setAt(dir, false)
}

func (e *Event) setAt(dir geometry.Direction, v bool) {
	if i := slices.Index(e.directions, dir); i >= 0 {
		e.active[i] = v
	}
}

// Activate sets every activation flag.
func (e *Event) Activate() {
	for i := range e.active {
		e.active[i] = true
	}
}

// Deactivate clears every activation flag.
func (e *Event) Deactivate() {
	for i := range e.active {
		e.active[i] = false
	}
}

// CheckPosition reports whether the event sits on the given tile, normally
// the hero's current tile.
func (e *Event) CheckPosition(tileX, tileY int) bool {
	return e.x == tileX && e.y == tileY
}
