// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package mapdata

import (
	"log/slog"
	"os"

	"github.com/samber/oops"

	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/tileevent"
	"github.com/holomush/tileworld/internal/world"
)

// Load validates data against the schema, parses it and builds the map.
//
// The identity registry is reset exactly once, before any event of the new
// map is registered. A nil identity gets a fresh registry.
func Load(data []byte, identity *tileevent.Registry, logger *slog.Logger) (*world.Map, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(f, identity, logger)
}

// LoadFile reads and loads a map file.
func LoadFile(path string, identity *tileevent.Registry, logger *slog.Logger) (*world.Map, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, oops.Code(CodeParse).With("path", path).Wrapf(err, "read map file")
	}
	m, err := Load(data, identity, logger)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return m, nil
}

// Build creates a world.Map from a parsed file.
func Build(f *File, identity *tileevent.Registry, logger *slog.Logger) (*world.Map, error) {
	if identity == nil {
		identity = tileevent.NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	identity.Reset()

	m := world.NewMap(world.MapConfig{
		Name:       f.Name,
		Width:      f.Width,
		Height:     f.Height,
		TileWidth:  f.TileWidth,
		TileHeight: f.TileHeight,
		Identity:   identity,
		Logger:     logger,
	})

	if h := f.Hero; h != nil {
		facing, err := parseOptionalDirection(h.Facing, geometry.Down)
		if err != nil {
			return nil, oops.Code(CodeInvalid).With("map", f.Name).Wrap(err)
		}
		m.Hero = world.NewHero(h.X, h.Y, f.TileWidth, f.TileHeight, facing)
		m.Hero.CollisionLayer = h.CollisionLayer
	}

	for i := range f.Objects {
		spec := &f.Objects[i]
		obj := &world.InteractableObject{
			ID:                 spec.ID,
			CurrentX:           spec.X,
			CurrentY:           spec.Y,
			BaseCollisionLayer: spec.BaseCollisionLayer,
			JumpLayerShift:     spec.JumpLayerShift,
			Pushable:           spec.Pushable,
			Body: world.NewBody(spec.ID, world.Point{
				X: world.CenteredPos(spec.X, f.TileWidth),
				Y: world.CenteredPos(spec.Y, f.TileHeight),
			}),
		}
		if err := m.AddObject(obj); err != nil {
			return nil, oops.With("map", f.Name).Wrap(err)
		}
		for j := range spec.Events {
			ev := &spec.Events[j]
			e, err := newEvent(&ev.EventSpec, spec.X+ev.XShift, spec.Y+ev.YShift,
				spec.BaseCollisionLayer+ev.CollisionLayerShift, tileevent.WithOrigin(spec.ID))
			if err != nil {
				return nil, oops.Code(CodeInvalid).With("map", f.Name).With("object_id", spec.ID).With("event", j).Wrap(err)
			}
			if _, err := m.SpawnEvent(e); err != nil {
				return nil, oops.With("map", f.Name).Wrap(err)
			}
		}
	}

	for i := range f.Events {
		ev := &f.Events[i]
		e, err := newEvent(&ev.EventSpec, ev.X, ev.Y, 0)
		if err != nil {
			return nil, oops.Code(CodeInvalid).With("map", f.Name).With("event", i).Wrap(err)
		}
		if _, err := m.SpawnEvent(e); err != nil {
			return nil, oops.With("map", f.Name).Wrap(err)
		}
	}

	logger.Info("map loaded",
		"map", f.Name,
		"objects", len(f.Objects),
		"events", identity.Len(),
		"tiles", m.Events.Len(),
	)
	return m, nil
}

func newEvent(spec *EventSpec, x, y, layerShift int, extra ...tileevent.Option) (*tileevent.Event, error) {
	v, err := spec.variant()
	if err != nil {
		return nil, err
	}
	opts, err := spec.options(layerShift)
	if err != nil {
		return nil, err
	}
	return tileevent.New(x, y, v, append(opts, extra...)...), nil
}
