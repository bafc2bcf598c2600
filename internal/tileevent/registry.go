// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package tileevent

import (
	"sync"
)

// Registry assigns event ids and resolves ids back to events.
// It is owned by the map loader and reset once per map load.
type Registry struct {
	mu     sync.RWMutex
	next   ID
	events map[ID]*Event
	resets int
}

// NewRegistry creates an empty identity registry.
func NewRegistry() *Registry {
	return &Registry{
		events: make(map[ID]*Event),
	}
}

// Register assigns the next id to e and records it.
func (r *Registry) Register(e *Event) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.id = r.next
	r.next++
	r.events[e.id] = e
	return e.id
}

// Get returns the event with the given id.
func (r *Registry) Get(id ID) (*Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	return e, ok
}

// Remove forgets the event with the given id. The id is not handed out again
// until the next Reset.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.events, id)
}

// Reset clears every event and restarts ids at zero.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next = 0
	r.events = make(map[ID]*Event)
	r.resets++
}

// Len returns the number of registered events.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.events)
}

// NextID returns the id the next Register call will assign.
func (r *Registry) NextID() ID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.next
}

// Resets returns how many times the registry has been reset.
func (r *Registry) Resets() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.resets
}
