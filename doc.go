// Package pixeldraw is a pixel-art drawing engine with unlimited undo.
//
// # Overview
//
// A drawing is a fixed-size RGBA canvas painted in square grid cells. Every
// edit is a command recorded in a linear history, so any sequence of edits,
// including clearing the canvas, can be undone and redone.
//
// # Quick Start
//
//	import "github.com/gogpu/pixeldraw"
//
//	s := pixeldraw.NewSession(pixeldraw.WithCanvasSize(100, 100))
//	defer s.Close()
//
//	_ = s.SetColor("#ff0000")
//	s.PointerDown()
//	s.PointerMove(25, 25) // paints the cell at (20, 20)
//	s.PointerUp()
//
//	s.Undo() // back to a white canvas
//	s.Redo() // red cell again
//
//	png, _ := s.ExportPNG()
//
// # Architecture
//
// The library is organized into:
//   - raster: the pixel surface, colors and snapshots
//   - history: commands and the undo/redo stack
//   - input: pointer drags to grid-quantized paint commands
//   - export: image encoders (png, bmp, tiff) and upscaling
//   - Session (this package): one drawing, safe for concurrent use
//
// Frontends live in server (HTTP API plus a browser page) and tui
// (terminal). Both are driven by config.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - A grid cell at (x, y) covers [x, x+grid) × [y, y+grid)
package pixeldraw

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
