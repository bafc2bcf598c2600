// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package geometry

// Surrounding is a tile at a fixed distance from an origin tile, tagged with
// the direction that leads from the origin to it.
type Surrounding struct {
	X, Y      int
	Direction Direction
}

// Surroundings returns the tiles exactly shift tiles away from (x, y).
// Cardinal neighbours come first in the order left, right, up, down; when
// withDiagonals is set the diagonal tiles follow as up_left, up_right,
// down_left, down_right.
func Surroundings(x, y int, withDiagonals bool, shift int) []Surrounding {
	out := []Surrounding{
		{X: x - shift, Y: y, Direction: Left},
		{X: x + shift, Y: y, Direction: Right},
		{X: x, Y: y - shift, Direction: Up},
		{X: x, Y: y + shift, Direction: Down},
	}
	if withDiagonals {
		out = append(out,
			Surrounding{X: x - shift, Y: y - shift, Direction: UpLeft},
			Surrounding{X: x + shift, Y: y - shift, Direction: UpRight},
			Surrounding{X: x - shift, Y: y + shift, Direction: DownLeft},
			Surrounding{X: x + shift, Y: y + shift, Direction: DownRight},
		)
	}
	return out
}
