// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package world holds the in-memory state of a loaded map: its event
// registries, interactable objects and hero.
package world

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/oops"

	"github.com/holomush/tileworld/internal/location"
	"github.com/holomush/tileworld/internal/registry"
	"github.com/holomush/tileworld/internal/tileevent"
)

// MapConfig holds the dimensions and registries of a map.
type MapConfig struct {
	Name       string
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	Identity   *tileevent.Registry
	Logger     *slog.Logger
}

// Map is a loaded map.
type Map struct {
	Name       string
	Width      int
	Height     int
	TileWidth  int
	TileHeight int

	Events   *registry.Registry
	Identity *tileevent.Registry
	Hero     *Hero

	logger *slog.Logger

	mu      sync.RWMutex
	objects map[string]*InteractableObject
}

// NewMap creates an empty map. The identity registry is shared with the
// loader, which resets it when a new map is loaded.
func NewMap(cfg MapConfig) *Map {
	identity := cfg.Identity
	if identity == nil {
		identity = tileevent.NewRegistry()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Map{
		Name:       cfg.Name,
		Width:      cfg.Width,
		Height:     cfg.Height,
		TileWidth:  cfg.TileWidth,
		TileHeight: cfg.TileHeight,
		Events:     registry.New(),
		Identity:   identity,
		logger:     logger.With("map", cfg.Name),
		objects:    make(map[string]*InteractableObject),
	}
}

// AddObject adds an interactable object to the map.
func (m *Map) AddObject(obj *InteractableObject) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[obj.ID]; ok {
		return ErrObjectDuplicate(obj.ID)
	}
	m.objects[obj.ID] = obj
	return nil
}

// Object returns the object with the given id.
func (m *Map) Object(id string) (*InteractableObject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[id]
	if !ok {
		return nil, ErrObjectNotFound(id)
	}
	return obj, nil
}

// Objects returns every object sorted by id.
func (m *Map) Objects() []*InteractableObject {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*InteractableObject, 0, len(m.objects))
	for _, obj := range m.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SpawnEvent registers e, files it under its tile and, when it names an
// origin object, attaches it to that object.
func (m *Map) SpawnEvent(e *tileevent.Event) (tileevent.ID, error) {
	var owner *InteractableObject
	if origin := e.Origin(); origin != "" {
		obj, err := m.Object(origin)
		if err != nil {
			return 0, oops.With("kind", e.Kind()).Wrap(err)
		}
		owner = obj
	}

	id := m.Identity.Register(e)
	m.Events.Insert(e.Key(), e)
	if owner != nil {
		owner.attach(e)
	}
	m.logger.Debug("tile event spawned",
		"event_id", id,
		"kind", e.Kind(),
		"location", e.Key().String(),
		"dynamic", e.Dynamic(),
	)
	return id, nil
}

// DespawnEvent removes the event with the given id from every registry and
// from its owner.
func (m *Map) DespawnEvent(id tileevent.ID) error {
	e, ok := m.Identity.Get(id)
	if !ok {
		return ErrEventUnregistered(id)
	}
	if !m.Events.Remove(e.Key(), e) {
		m.logger.Warn("despawned event was not filed under its tile",
			"event_id", id,
			"location", e.Key().String(),
		)
	}
	if origin := e.Origin(); origin != "" {
		if owner, err := m.Object(origin); err == nil {
			owner.detach(e)
		}
	}
	m.Identity.Remove(id)
	return nil
}

// Teardown removes every event of the map from both registries.
func (m *Map) Teardown() {
	for _, key := range m.Events.Keys() {
		for _, e := range m.Events.At(key) {
			m.Identity.Remove(e.ID())
		}
	}
	m.Events.Clear()

	m.mu.RLock()
	for _, obj := range m.objects {
		obj.clearEvents()
	}
	m.mu.RUnlock()

	m.logger.Info("map torn down")
}

// EventsAt returns the events on tile (x, y).
func (m *Map) EventsAt(x, y int) []*tileevent.Event {
	return m.Events.At(location.Encode(x, y))
}

// Eligible returns the events on the hero's tile that may fire: active for
// the hero's facing, on the hero's collision layer, and positioned on the
// hero's tile.
func (m *Map) Eligible(h *Hero) []*tileevent.Event {
	var out []*tileevent.Event
	for _, e := range m.EventsAt(h.TileX, h.TileY) {
		if !e.CheckPosition(h.TileX, h.TileY) {
			continue
		}
		if !e.IsActive(h.Facing) || !e.OnLayer(h.CollisionLayer) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FireEligible fires every eligible event once and returns how many fired.
// It stops at the first handler error.
func (m *Map) FireEligible(ctx context.Context, h *Hero, handler tileevent.Handler) (int, error) {
	fired := 0
	for _, e := range m.Eligible(h) {
		if err := tileevent.Fire(ctx, e, handler); err != nil {
			return fired, oops.Code(CodeFireFailed).
				With("event_id", e.ID()).
				With("kind", e.Kind()).
				Wrap(err)
		}
		fired++
	}
	return fired, nil
}
