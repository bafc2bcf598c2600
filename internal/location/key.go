// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package location encodes tile coordinates into registry keys.
package location

import "strconv"

// Key identifies a single tile. It is only meant to be used as a map key;
// its numeric ordering carries no meaning.
type Key int64

// Encode packs a tile coordinate into a Key.
// The mapping is injective for coordinates that fit in an int32.
func Encode(x, y int) Key {
	return Key(int64(int32(x))<<32 | int64(uint32(int32(y))))
}

// Decode returns the tile coordinate the key was built from.
func (k Key) Decode() (x, y int) {
	return int(int32(int64(k) >> 32)), int(int32(uint32(int64(k))))
}

// String renders the key as "x/y".
func (k Key) String() string {
	x, y := k.Decode()
	return strconv.Itoa(x) + "/" + strconv.Itoa(y)
}
