// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/holomush/tileworld/internal/tileevent"
)

// InteractableObject is a map object that can own tile events and be pushed.
// Its event list is authoritative for which events move together.
type InteractableObject struct {
	ID                 string
	CurrentX, CurrentY int
	BaseCollisionLayer int
	JumpLayerShift     int
	Pushable           bool
	Body               *Body

	mu         sync.Mutex
	events     []*tileevent.Event
	relocating atomic.Bool
}

// Events returns the owned events in ownership order.
func (o *InteractableObject) Events() []*tileevent.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.events)
}

// TargetLayer is the collision layer of jump events the object lands next to.
func (o *InteractableObject) TargetLayer() int {
	return o.JumpLayerShift + o.BaseCollisionLayer
}

// BeginRelocation marks the object as being pushed. It returns false when a
// previous push has not finished yet.
func (o *InteractableObject) BeginRelocation() bool {
	return o.relocating.CompareAndSwap(false, true)
}

// EndRelocation clears the in-progress mark set by BeginRelocation.
func (o *InteractableObject) EndRelocation() {
	o.relocating.Store(false)
}

// Relocating reports whether a push of this object is in flight.
func (o *InteractableObject) Relocating() bool {
	return o.relocating.Load()
}

func (o *InteractableObject) attach(e *tileevent.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *InteractableObject) detach(e *tileevent.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = slices.DeleteFunc(o.events, func(other *tileevent.Event) bool {
		return other == e
	})
}

func (o *InteractableObject) clearEvents() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = nil
}
