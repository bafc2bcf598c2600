// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package push

import (
	"github.com/holomush/tileworld/internal/geometry"
	"github.com/holomush/tileworld/internal/world"
)

// Limits projects the hero position against the object's visual anchor onto
// the two isometric diagonals through the anchor.
func Limits(hero, sprite world.Point) (positive, negative float64) {
	positive = hero.X + (-sprite.Y - sprite.X)
	negative = -hero.X + (-sprite.Y + sprite.X)
	return positive, negative
}

// ClassifySide returns the push direction implied by the hero's side of the
// object. Comparisons are inclusive; ties resolve to down, then left, then up.
func ClassifySide(positive, negative, heroY float64) geometry.Direction {
	y := -heroY
	switch {
	case y >= positive && y >= negative:
		return geometry.Down
	case y <= positive && y >= negative:
		return geometry.Left
	case y <= positive && y <= negative:
		return geometry.Up
	default:
		return geometry.Right
	}
}

// SideOf classifies the hero's side of the object from their pixel positions.
func SideOf(hero, sprite world.Point) geometry.Direction {
	positive, negative := Limits(hero, sprite)
	return ClassifySide(positive, negative, hero.Y)
}
