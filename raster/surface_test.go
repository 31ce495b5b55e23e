// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"
)

var red = Color{255, 0, 0, 255}

// TestNewSurface tests surface creation and the white background.
func TestNewSurface(t *testing.T) {
	s := NewSurface(100, 50)

	if s.Width() != 100 {
		t.Errorf("Width() = %d, want 100", s.Width())
	}
	if s.Height() != 50 {
		t.Errorf("Height() = %d, want 50", s.Height())
	}
	if got := s.Pixel(99, 49); got != White {
		t.Errorf("Pixel(99, 49) = %v, want %v", got, White)
	}
}

// TestNewSurfaceInvalidSize tests handling of invalid dimensions.
func TestNewSurfaceInvalidSize(t *testing.T) {
	s := NewSurface(0, -3)
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("expected 1x1, got %dx%d", s.Width(), s.Height())
	}
}

func TestNewSurfaceWithBackground(t *testing.T) {
	bg := Color{10, 20, 30, 255}
	s := NewSurface(4, 4, WithBackground(bg))

	if s.Background() != bg {
		t.Errorf("Background() = %v, want %v", s.Background(), bg)
	}
	if got := s.Pixel(2, 2); got != bg {
		t.Errorf("Pixel(2, 2) = %v, want %v", got, bg)
	}
}

func TestPaintRegion(t *testing.T) {
	s := NewSurface(100, 100)

	r := s.PaintRegion(20, 20, 10, red)
	if want := image.Rect(20, 20, 30, 30); r != want {
		t.Errorf("PaintRegion() = %v, want %v", r, want)
	}

	tests := []struct {
		x, y int
		want Color
	}{
		{20, 20, red},
		{25, 25, red},
		{29, 29, red},
		{30, 30, White},
		{19, 25, White},
		{25, 30, White},
	}
	for _, tt := range tests {
		if got := s.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// TestPaintRegionClipped verifies out-of-bounds writes are clipped, never fatal.
func TestSquare(t *testing.T) {
	tests := []struct {
		x, y, size int
		want       image.Rectangle
	}{
		{20, 20, 10, image.Rect(20, 20, 30, 30)},
		{-15, 5, 10, image.Rect(-15, 5, -5, 15)},
		{3, 3, 0, image.Rectangle{}},
		{math.MaxInt - 5, 0, 10, image.Rectangle{Min: image.Pt(math.MaxInt-5, 0), Max: image.Pt(math.MaxInt, 10)}},
	}
	for _, tt := range tests {
		if got := Square(tt.x, tt.y, tt.size); got != tt.want {
			t.Errorf("Square(%d, %d, %d) = %v, want %v", tt.x, tt.y, tt.size, got, tt.want)
		}
	}
}

func TestPaintRegionClipped(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		size    int
		want    image.Rectangle
		painted image.Point
	}{
		{"top-left overhang", -5, -5, 10, image.Rect(0, 0, 5, 5), image.Pt(0, 0)},
		{"bottom-right overhang", 95, 95, 10, image.Rect(95, 95, 100, 100), image.Pt(99, 99)},
		{"fully outside", 200, 200, 10, image.Rectangle{}, image.Pt(-1, -1)},
		{"fully outside negative", -50, 10, 10, image.Rectangle{}, image.Pt(-1, -1)},
		{"zero size", 10, 10, 0, image.Rectangle{}, image.Pt(-1, -1)},
		{"negative size", 10, 10, -4, image.Rectangle{}, image.Pt(-1, -1)},
		{"corner past MaxInt", math.MaxInt - 5, 0, 10, image.Rectangle{}, image.Pt(-1, -1)},
		{"both corners past MaxInt", math.MaxInt - 5, math.MaxInt - 5, 10, image.Rectangle{}, image.Pt(-1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(100, 100)
			got := s.PaintRegion(tt.x, tt.y, tt.size, red)
			if got != tt.want {
				t.Errorf("PaintRegion() = %v, want %v", got, tt.want)
			}
			if tt.painted.X >= 0 {
				if c := s.Pixel(tt.painted.X, tt.painted.Y); c != red {
					t.Errorf("Pixel(%v) = %v, want %v", tt.painted, c, red)
				}
			} else if !s.Equal(NewSurface(100, 100)) {
				t.Error("surface modified by a fully clipped paint")
			}
		})
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	s := NewSurface(10, 10)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if got := s.Pixel(p.X, p.Y); got != Transparent {
			t.Errorf("Pixel(%v) = %v, want Transparent", p, got)
		}
	}
}

// TestClear verifies Clear resets to white, not to transparent.
func TestClear(t *testing.T) {
	s := NewSurface(10, 10)
	s.PaintRegion(0, 0, 10, red)
	s.Clear()

	if !s.Equal(NewSurface(10, 10)) {
		t.Error("Clear() did not restore the background")
	}
	if got := s.Pixel(5, 5); got != White {
		t.Errorf("Pixel(5, 5) after Clear = %v, want %v", got, White)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := NewSurface(50, 50)
	s.PaintRegion(0, 0, 10, red)
	snap := s.Snapshot()

	if snap.Rect() != s.Bounds() {
		t.Errorf("Snapshot().Rect() = %v, want %v", snap.Rect(), s.Bounds())
	}
	if snap.Bytes() != 50*50*4 {
		t.Errorf("Snapshot().Bytes() = %d, want %d", snap.Bytes(), 50*50*4)
	}

	s.Clear()
	s.PaintRegion(30, 30, 10, Black)
	s.Restore(snap)

	if got := s.Pixel(5, 5); got != red {
		t.Errorf("Pixel(5, 5) after Restore = %v, want %v", got, red)
	}
	if got := s.Pixel(35, 35); got != White {
		t.Errorf("Pixel(35, 35) after Restore = %v, want %v", got, White)
	}
}

// TestSnapshotImmutable verifies later paints do not leak into a snapshot.
func TestSnapshotImmutable(t *testing.T) {
	s := NewSurface(10, 10)
	snap := s.Snapshot()
	s.PaintRegion(0, 0, 10, red)

	if got := snap.Pixel(3, 3); got != White {
		t.Errorf("snapshot Pixel(3, 3) = %v, want %v", got, White)
	}
}

func TestSnapshotRegion(t *testing.T) {
	s := NewSurface(100, 100)
	s.PaintRegion(20, 20, 10, red)

	snap := s.SnapshotRegion(image.Rect(15, 15, 25, 25))
	if snap.Bytes() != 10*10*4 {
		t.Errorf("Bytes() = %d, want %d", snap.Bytes(), 10*10*4)
	}
	if got := snap.Pixel(22, 22); got != red {
		t.Errorf("snap.Pixel(22, 22) = %v, want %v", got, red)
	}
	if got := snap.Pixel(16, 16); got != White {
		t.Errorf("snap.Pixel(16, 16) = %v, want %v", got, White)
	}
	if got := snap.Pixel(50, 50); got != Transparent {
		t.Errorf("snap.Pixel(50, 50) = %v, want Transparent", got)
	}

	// Restoring a region only touches that region.
	s.Clear()
	s.PaintRegion(60, 60, 10, Black)
	s.Restore(snap)

	if got := s.Pixel(22, 22); got != red {
		t.Errorf("Pixel(22, 22) = %v, want %v", got, red)
	}
	if got := s.Pixel(27, 27); got != White {
		t.Errorf("Pixel(27, 27) = %v, want %v (outside restored region)", got, White)
	}
	if got := s.Pixel(65, 65); got != Black {
		t.Errorf("Pixel(65, 65) = %v, want %v (untouched)", got, Black)
	}
}

func TestSnapshotRegionClipped(t *testing.T) {
	s := NewSurface(10, 10)

	snap := s.SnapshotRegion(image.Rect(-5, -5, 5, 5))
	if want := image.Rect(0, 0, 5, 5); snap.Rect() != want {
		t.Errorf("Rect() = %v, want %v", snap.Rect(), want)
	}

	empty := s.SnapshotRegion(image.Rect(20, 20, 30, 30))
	if !empty.Empty() {
		t.Errorf("expected empty snapshot, got %v", empty.Rect())
	}
	s.Restore(empty) // must not panic
	s.Restore(Snapshot{})
}

func TestRestoreFromLargerSurface(t *testing.T) {
	big := NewSurface(20, 20)
	big.PaintRegion(0, 0, 20, red)
	small := NewSurface(10, 10)

	small.Restore(big.Snapshot())

	if got := small.Pixel(9, 9); got != red {
		t.Errorf("Pixel(9, 9) = %v, want %v", got, red)
	}
}

func TestExportPNG(t *testing.T) {
	s := NewSurface(16, 8)
	s.PaintRegion(0, 0, 4, red)

	data, err := s.ExportPNG()
	if err != nil {
		t.Fatalf("ExportPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds() != s.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", img.Bounds(), s.Bounds())
	}
	if got := FromColor(img.At(1, 1)); got != red {
		t.Errorf("decoded At(1, 1) = %v, want %v", got, red)
	}
	if got := FromColor(img.At(10, 5)); got != White {
		t.Errorf("decoded At(10, 5) = %v, want %v", got, White)
	}
}

func TestImageIsCopy(t *testing.T) {
	s := NewSurface(4, 4)
	img := s.Image()
	img.Pix[0] = 0

	if got := s.Pixel(0, 0); got != White {
		t.Errorf("Pixel(0, 0) = %v, want %v (Image must copy)", got, White)
	}
}

func TestEqual(t *testing.T) {
	a := NewSurface(4, 4)
	b := NewSurface(4, 4)
	if !a.Equal(b) {
		t.Error("fresh surfaces should be equal")
	}
	b.PaintRegion(0, 0, 1, red)
	if a.Equal(b) {
		t.Error("surfaces with different pixels should not be equal")
	}
	if a.Equal(NewSurface(4, 5)) {
		t.Error("surfaces with different sizes should not be equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
}
