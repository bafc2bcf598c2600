// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package world

import "github.com/holomush/tileworld/internal/geometry"

// Hero is the player-controlled actor.
type Hero struct {
	TileX, TileY   int
	Facing         geometry.Direction
	CollisionLayer int
	Casting        bool
	Jumping        bool

	Body   *Body
	Shadow *Body

	tryingToPush  bool
	pushDirection geometry.Direction
}

// NewHero creates a hero standing at the centre of a tile.
func NewHero(tileX, tileY, tileWidth, tileHeight int, facing geometry.Direction) *Hero {
	center := Point{X: CenteredPos(tileX, tileWidth), Y: CenteredPos(tileY, tileHeight)}
	return &Hero{
		TileX:  tileX,
		TileY:  tileY,
		Facing: facing,
		Body:   NewBody("hero", center),
		Shadow: NewBody("hero_shadow", center),
	}
}

// RequestPush records that the hero is trying to push towards dir.
func (h *Hero) RequestPush(dir geometry.Direction) {
	h.tryingToPush = true
	h.pushDirection = dir
}

// PushRequest returns the pending push direction, if any.
func (h *Hero) PushRequest() (geometry.Direction, bool) {
	return h.pushDirection, h.tryingToPush
}

// ClearPushRequest drops the pending push request.
func (h *Hero) ClearPushRequest() {
	h.tryingToPush = false
}

// Place moves the hero, body and shadow to the centre of a tile.
func (h *Hero) Place(tileX, tileY, tileWidth, tileHeight int) {
	h.TileX, h.TileY = tileX, tileY
	center := Point{X: CenteredPos(tileX, tileWidth), Y: CenteredPos(tileY, tileHeight)}
	h.Body.SetPosition(center)
	h.Shadow.SetPosition(center)
}

// SyncTile recomputes the tile position from the body position.
func (h *Hero) SyncTile(tileWidth, tileHeight int) {
	p := h.Body.Position()
	h.TileX = TileAt(p.X, tileWidth)
	h.TileY = TileAt(p.Y, tileHeight)
}
