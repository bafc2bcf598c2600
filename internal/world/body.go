// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

import "sync"

// Point is a pixel position.
type Point struct {
	X, Y float64
}

// Body is a named visual body. Animations update its position from their own
// goroutine, so access goes through the accessors.
type Body struct {
	name string

	mu  sync.RWMutex
	pos Point
}

// NewBody creates a body at the given pixel position.
func NewBody(name string, pos Point) *Body {
	return &Body{name: name, pos: pos}
}

// Name returns the body name used in logs.
func (b *Body) Name() string { return b.name }

// Position returns the current pixel position.
func (b *Body) Position() Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pos
}

// SetPosition moves the body.
func (b *Body) SetPosition(p Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pos = p
}

// CenteredPos returns the pixel coordinate of the centre of a tile along one
// axis.
func CenteredPos(tile, tileSize int) float64 {
	return float64(tile*tileSize) + float64(tileSize)/2
}

// TileAt returns the tile index containing the pixel coordinate px.
func TileAt(px float64, tileSize int) int {
	if tileSize <= 0 {
		return 0
	}
	t := int(px) / tileSize
	if px < 0 && float64(t*tileSize) != px {
		t--
	}
	return t
}
