// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package location

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_RoundTrip(t *testing.T) {
	coords := [][2]int{
		{0, 0},
		{3, 4},
		{-1, 0},
		{0, -1},
		{-7, -9},
		{math.MaxInt32, math.MinInt32},
		{math.MinInt32, math.MaxInt32},
	}
	for _, c := range coords {
		x, y := Encode(c[0], c[1]).Decode()
		assert.Equal(t, c[0], x)
		assert.Equal(t, c[1], y)
	}
}

func TestEncode_Injective(t *testing.T) {
	seen := make(map[Key][2]int)
	for x := -20; x <= 20; x++ {
		for y := -20; y <= 20; y++ {
			k := Encode(x, y)
			if prev, ok := seen[k]; ok {
				t.Fatalf("key collision between %v and (%d,%d)", prev, x, y)
			}
			seen[k] = [2]int{x, y}
		}
	}
}

func TestEncode_Stable(t *testing.T) {
	assert.Equal(t, Encode(12, -3), Encode(12, -3))
	assert.NotEqual(t, Encode(1, 2), Encode(2, 1))
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "3/4", Encode(3, 4).String())
	assert.Equal(t, "-2/-5", Encode(-2, -5).String())
}
