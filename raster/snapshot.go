// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import "image"

// Snapshot is an immutable copy of a rectangle of surface pixels.
//
// A Snapshot never exposes its backing slice, so once captured it cannot be
// changed by the surface it came from or by its holder. The zero value is an
// empty snapshot; restoring it has no effect.
type Snapshot struct {
	rect image.Rectangle
	pix  []uint8
}

// Rect returns the surface rectangle the snapshot covers.
func (s Snapshot) Rect() image.Rectangle {
	return s.rect
}

// Empty reports whether the snapshot covers no pixels.
func (s Snapshot) Empty() bool {
	return s.rect.Empty()
}

// Bytes returns the memory retained by the snapshot's pixel data.
func (s Snapshot) Bytes() int {
	return len(s.pix)
}

// Pixel returns the captured color at surface coordinates (x, y).
// Coordinates outside the snapshot return Transparent.
func (s Snapshot) Pixel(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(s.rect) {
		return Transparent
	}
	i := ((y-s.rect.Min.Y)*s.rect.Dx() + (x - s.rect.Min.X)) * 4
	return Color{s.pix[i+0], s.pix[i+1], s.pix[i+2], s.pix[i+3]}
}
