// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// Surface is a fixed-size RGBA pixel buffer.
//
// The dimensions never change after creation. Every write is clipped to the
// buffer, so no paint operation can fail. Surface is not safe for concurrent
// use.
//
// Example:
//
//	s := raster.NewSurface(100, 100)
//	s.PaintRegion(20, 20, 10, raster.MustParseColor("#ff0000"))
//	data, _ := s.ExportPNG()
type Surface struct {
	width      int
	height     int
	background Color
	data       []uint8 // RGBA format, 4 bytes per pixel, non-premultiplied
}

// SurfaceOption configures a Surface during creation.
type SurfaceOption func(*Surface)

// WithBackground sets the color used by NewSurface and Clear.
// The default background is opaque white.
func WithBackground(c Color) SurfaceOption {
	return func(s *Surface) {
		s.background = c
	}
}

// NewSurface creates a surface of the given size filled with its background.
// Dimensions below 1 are clamped to 1.
func NewSurface(width, height int, opts ...SurfaceOption) *Surface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	s := &Surface{
		width:      width,
		height:     height,
		background: White,
		data:       make([]uint8, width*height*4),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Clear()
	return s
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	return s.height
}

// Background returns the color the surface is cleared to.
func (s *Surface) Background() Color {
	return s.background
}

// Pixel returns the color of a single pixel.
// Coordinates outside the surface return Transparent.
func (s *Surface) Pixel(x, y int) Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Transparent
	}
	i := (y*s.width + x) * 4
	return Color{s.data[i+0], s.data[i+1], s.data[i+2], s.data[i+3]}
}

// PaintRegion fills the axis-aligned square of side size whose top-left
// corner is (x, y). The square is clipped to the surface; the returned
// rectangle is the area actually written and is empty when nothing was.
func (s *Surface) PaintRegion(x, y, size int, c Color) image.Rectangle {
	r := Square(x, y, size).Intersect(s.Bounds())
	if r.Empty() {
		return image.Rectangle{}
	}

	stride := s.width * 4
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := s.data[py*stride : (py+1)*stride]
		for px := r.Min.X; px < r.Max.X; px++ {
			i := px * 4
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
	return r
}

// Square returns the square of side size whose top-left corner is (x, y).
// It is empty when size is not positive. A corner past math.MaxInt
// saturates instead of wrapping.
func Square(x, y, size int) image.Rectangle {
	if size <= 0 {
		return image.Rectangle{}
	}
	return image.Rectangle{
		Min: image.Pt(x, y),
		Max: image.Pt(addSat(x, size), addSat(y, size)),
	}
}

// addSat returns a+b for b > 0, clamped to math.MaxInt.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// Clear resets every pixel to the background color.
func (s *Surface) Clear() {
	c := s.background
	for i := 0; i < len(s.data); i += 4 {
		s.data[i+0] = c.R
		s.data[i+1] = c.G
		s.data[i+2] = c.B
		s.data[i+3] = c.A
	}
}

// Snapshot returns an immutable copy of the whole buffer.
// The cost is O(width*height).
func (s *Surface) Snapshot() Snapshot {
	return s.SnapshotRegion(s.Bounds())
}

// SnapshotRegion returns an immutable copy of r clipped to the surface.
func (s *Surface) SnapshotRegion(r image.Rectangle) Snapshot {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return Snapshot{}
	}

	rowBytes := r.Dx() * 4
	pix := make([]uint8, rowBytes*r.Dy())
	stride := s.width * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := y*stride + r.Min.X*4
		copy(pix[(y-r.Min.Y)*rowBytes:], s.data[src:src+rowBytes])
	}
	return Snapshot{rect: r, pix: pix}
}

// Restore writes a snapshot back at the rectangle it was taken from.
// A full snapshot overwrites the entire buffer. Parts of the snapshot that
// fall outside the surface are ignored.
func (s *Surface) Restore(snap Snapshot) {
	r := snap.rect.Intersect(s.Bounds())
	if r.Empty() {
		return
	}

	srcRowBytes := snap.rect.Dx() * 4
	n := r.Dx() * 4
	stride := s.width * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := (y-snap.rect.Min.Y)*srcRowBytes + (r.Min.X-snap.rect.Min.X)*4
		dst := y*stride + r.Min.X*4
		copy(s.data[dst:dst+n], snap.pix[src:src+n])
	}
}

// Equal reports whether two surfaces have the same size and pixels.
func (s *Surface) Equal(other *Surface) bool {
	if other == nil || s.width != other.width || s.height != other.height {
		return false
	}
	return bytes.Equal(s.data, other.data)
}

// Image returns a copy of the buffer as an *image.NRGBA.
func (s *Surface) Image() *image.NRGBA {
	img := image.NewNRGBA(s.Bounds())
	copy(img.Pix, s.data)
	return img
}

// EncodePNG encodes the current buffer as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.Image()); err != nil {
		return fmt.Errorf("raster: encode PNG: %w", err)
	}
	return nil
}

// ExportPNG returns the current buffer as PNG-encoded bytes.
func (s *Surface) ExportPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return s.Pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}
