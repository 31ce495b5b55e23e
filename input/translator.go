// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input turns pointer drags into grid-quantized paint commands.
//
// A Translator sits between a UI and a history.History. The UI reports
// pointer-down, pointer-move and pointer-up in canvas coordinates; the
// Translator takes a checkpoint when a drag starts and, for every move while
// the pointer is down, snaps the position to the grid and executes one
// PaintRegion command.
//
// Moves are not interpolated. A pointer that travels more than one cell
// between two samples leaves the cells in between unpainted.
package input

import (
	"image"
	"math"

	"github.com/gogpu/pixeldraw/history"
	"github.com/gogpu/pixeldraw/raster"
)

// DefaultGridSize is the side of one paint cell in canvas pixels.
const DefaultGridSize = 10

// Translator maps pointer input to paint commands.
// It is not safe for concurrent use.
type Translator struct {
	history  *history.History
	surface  *raster.Surface
	gridSize int
	color    raster.Color
	eraser   bool
	dragging bool
}

// Option configures a Translator during creation.
type Option func(*Translator)

// WithGridSize sets the cell size. Values below 1 become 1.
func WithGridSize(n int) Option {
	return func(t *Translator) {
		t.gridSize = max(n, 1)
	}
}

// WithColor sets the initial paint color. The default is black.
func WithColor(c raster.Color) Option {
	return func(t *Translator) {
		t.color = c
	}
}

// NewTranslator creates a translator that records into h.
func NewTranslator(h *history.History, opts ...Option) *Translator {
	t := &Translator{
		history:  h,
		surface:  h.Surface(),
		gridSize: DefaultGridSize,
		color:    raster.Black,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PointerDown starts a drag and records a checkpoint, so that the first
// paint of the drag is undoable even though nothing has been painted yet.
func (t *Translator) PointerDown() {
	t.dragging = true
	t.history.Checkpoint()
}

// PointerMove paints the cell under (x, y) if a drag is in progress.
// It returns the area painted and whether a command was recorded. A move
// outside the canvas still records a command; its area is empty.
func (t *Translator) PointerMove(x, y float64) (image.Rectangle, bool) {
	if !t.dragging {
		return image.Rectangle{}, false
	}

	cx := Quantize(x, t.gridSize)
	cy := Quantize(y, t.gridSize)
	c := t.color
	if t.eraser {
		c = t.surface.Background()
	}

	cmd := history.NewPaintRegion(t.surface, cx, cy, t.gridSize, c)
	t.history.Do(cmd)
	return cmd.Rect().Intersect(t.surface.Bounds()), true
}

// PointerUp ends the drag. Moves after it are ignored until the next
// PointerDown.
func (t *Translator) PointerUp() {
	t.dragging = false
}

// Dragging reports whether a drag is in progress.
func (t *Translator) Dragging() bool {
	return t.dragging
}

// SetColor sets the paint color and switches the eraser off.
func (t *Translator) SetColor(c raster.Color) {
	t.color = c
	t.eraser = false
}

// Color returns the paint color used outside eraser mode.
func (t *Translator) Color() raster.Color {
	return t.color
}

// SetEraser switches eraser mode on or off. In eraser mode cells are
// painted with the surface background.
func (t *Translator) SetEraser(on bool) {
	t.eraser = on
}

// ToggleEraser flips eraser mode and returns the new state.
func (t *Translator) ToggleEraser() bool {
	t.eraser = !t.eraser
	return t.eraser
}

// Eraser reports whether eraser mode is on.
func (t *Translator) Eraser() bool {
	return t.eraser
}

// GridSize returns the cell size.
func (t *Translator) GridSize() int {
	return t.gridSize
}

// MaxCoord bounds the coordinates Quantize returns. It lies far outside any
// canvas a Surface can hold.
const MaxCoord = 1 << 30

// Quantize snaps v to the nearest lower multiple of grid.
// Negative values round toward negative infinity. Values beyond ±MaxCoord,
// infinities and NaN are clamped first, NaN to -MaxCoord, so they always
// land off the canvas.
func Quantize(v float64, grid int) int {
	if grid < 1 {
		grid = 1
	}
	switch {
	case math.IsNaN(v) || v < -MaxCoord:
		v = -MaxCoord
	case v > MaxCoord:
		v = MaxCoord
	}
	g := float64(grid)
	return int(math.Floor(v/g)) * grid
}
