// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package geometry provides tile-grid direction helpers shared by tile events
// and the push coordinator.
package geometry

import (
	"fmt"

	"github.com/samber/oops"
)

// CodeUnknownDirection marks names that are not one of the eight directions.
const CodeUnknownDirection = "DIRECTION_UNKNOWN"

// Direction is one of the eight grid directions.
// Values follow the counter-clockwise order starting at right.
type Direction int

// Grid directions.
const (
	Right Direction = iota
	UpRight
	Up
	UpLeft
	Left
	DownLeft
	Down
	DownRight
)

// directionCount is the number of directions in the compass.
const directionCount = 8

var directionNames = [directionCount]string{
	"right", "up_right", "up", "up_left", "left", "down_left", "down", "down_right",
}

// Names returns the snake_case names of all directions in compass order.
func Names() []string {
	names := make([]string, directionCount)
	copy(names, directionNames[:])
	return names
}

// String returns the snake_case name of the direction.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// Valid reports whether d is one of the eight known directions.
func (d Direction) Valid() bool {
	return d >= Right && d <= DownRight
}

// IsCardinal reports whether d is right, up, left or down.
func (d Direction) IsCardinal() bool {
	return d == Right || d == Up || d == Left || d == Down
}

// IsDiagonal reports whether d is a composite of two cardinal directions.
func (d Direction) IsDiagonal() bool {
	return d.Valid() && !d.IsCardinal()
}

// ParseDirection parses a snake_case direction name.
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, oops.Code(CodeUnknownDirection).
		With("direction", name).
		Errorf("unknown direction %q", name)
}

// Opposite returns the direction pointing the other way.
func Opposite(d Direction) Direction {
	return (d + directionCount/2) % directionCount
}

// Split decomposes a direction into its elementary cardinal directions.
// Cardinal directions split into themselves; diagonals split into the
// vertical component followed by the horizontal one.
func Split(d Direction) []Direction {
	switch d {
	case UpRight:
		return []Direction{Up, Right}
	case UpLeft:
		return []Direction{Up, Left}
	case DownLeft:
		return []Direction{Down, Left}
	case DownRight:
		return []Direction{Down, Right}
	default:
		return []Direction{d}
	}
}

// UnitVector returns the tile offset of one step in direction d.
// The y axis grows downwards.
func UnitVector(d Direction) (dx, dy int) {
	for _, part := range Split(d) {
		switch part {
		case Right:
			dx++
		case Left:
			dx--
		case Up:
			dy--
		case Down:
			dy++
		}
	}
	return dx, dy
}
