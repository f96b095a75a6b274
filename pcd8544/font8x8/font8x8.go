// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package font8x8 is a fixed 8x8 pixel font covering printable ASCII, laid
// out for displays addressed in vertical bytes of 8 pixels.
package font8x8

const (
	// First is the first encoded character, space.
	First = 0x20
	// Last is the last encoded character. It is also used for every rune
	// outside of First..Last.
	Last = 0x7F
	// Width is the number of bytes, or pixel columns, of a glyph.
	Width = 8
)

// Glyph returns the glyph of r, or the glyph of Last when r isn't encoded.
//
// The returned slice aliases Glyphs and must not be modified.
func Glyph(r rune) []byte {
	if r < First || r > Last {
		r = Last
	}
	return Glyphs[r-First][:]
}
