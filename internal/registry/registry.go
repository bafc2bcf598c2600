// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package registry indexes a map's tile events by location key.
package registry

import (
	"maps"
	"slices"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/location"
	"github.com/holomush/tileworld/internal/tileevent"
)

// CodeInvariant marks a registry whose buckets break the indexing invariants.
const CodeInvariant = "REGISTRY_INVARIANT"

// Registry maps location keys to the ordered set of events on that tile.
// A key present in the registry always has a non-empty bucket.
type Registry struct {
	mu      sync.RWMutex
	buckets map[location.Key][]*tileevent.Event
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		buckets: make(map[location.Key][]*tileevent.Event),
	}
}

// Insert appends e to the bucket for key, creating the bucket if needed.
// Inserting an event already in the bucket is a no-op.
func (r *Registry) Insert(key location.Key, e *tileevent.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertLocked(key, e)
}

func (r *Registry) insertLocked(key location.Key, e *tileevent.Event) {
	bucket := r.buckets[key]
	if slices.ContainsFunc(bucket, sameEvent(e)) {
		return
	}
	r.buckets[key] = append(bucket, e)
}

// Remove drops e from the bucket for key and deletes the key once the bucket
// is empty. It reports whether e was present; removing an absent event is a
// no-op.
func (r *Registry) Remove(key location.Key, e *tileevent.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(key, e)
}

func (r *Registry) removeLocked(key location.Key, e *tileevent.Event) bool {
	bucket, ok := r.buckets[key]
	if !ok {
		return false
	}
	kept := slices.DeleteFunc(slices.Clone(bucket), sameEvent(e))
	if len(kept) == 0 {
		delete(r.buckets, key)
	} else {
		r.buckets[key] = kept
	}
	return len(kept) != len(bucket)
}

// Move relocates e to (x, y): it leaves its current bucket, takes the new
// position and joins the new bucket under a single lock, so readers never see
// the event outside every bucket. It reports whether e was found in its old
// bucket.
func (r *Registry) Move(e *tileevent.Event, x, y int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := r.removeLocked(e.Key(), e)
	e.SetPosition(x, y)
	r.insertLocked(e.Key(), e)
	return found
}

// At returns a copy of the bucket for key.
func (r *Registry) At(key location.Key) []*tileevent.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.buckets[key])
}

// Has reports whether any event sits on key.
func (r *Registry) Has(key location.Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.buckets[key]
	return ok
}

// Keys returns every occupied key in unspecified order.
func (r *Registry) Keys() []location.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Collect(maps.Keys(r.buckets))
}

// Len returns the number of occupied keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.buckets)
}

// Clear removes every bucket.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buckets = make(map[location.Key][]*tileevent.Event)
}

// Neighbors returns the tiles radius tiles away from (x, y) in the four
// cardinal directions. It does not consult the registry.
func (r *Registry) Neighbors(x, y, radius int) []geometry.Surrounding {
	return geometry.Surroundings(x, y, false, radius)
}

// Check verifies the registry invariants: no bucket is empty, and every event
// sits in the bucket matching its own key.
func (r *Registry) Check() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for key, bucket := range r.buckets {
		if len(bucket) == 0 {
			return oops.Code(CodeInvariant).
				With("key", key.String()).
				Errorf("empty bucket at %s", key)
		}
		for _, e := range bucket {
			if e.Key() != key {
				return oops.Code(CodeInvariant).
					With("key", key.String()).
					With("event_id", e.ID()).
					Errorf("event %d at %s is filed under %s", e.ID(), e.Key(), key)
			}
		}
	}
	return nil
}

func sameEvent(e *tileevent.Event) func(*tileevent.Event) bool {
	return func(other *tileevent.Event) bool {
		return other == e
	}
}
