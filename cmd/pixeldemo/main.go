// Command pixeldemo draws a small scripted picture through a session,
// exercising undo, redo and clear, and saves the result.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/export"
)

func main() {
	var (
		width  = flag.Int("width", 320, "canvas width")
		height = flag.Int("height", 240, "canvas height")
		grid   = flag.Int("grid", 10, "grid size")
		format = flag.String("format", export.DefaultFormat, "output format (png, bmp, tiff)")
		scale  = flag.Int("scale", 2, "upscale factor")
		output = flag.String("output", "", "output file (default pixel-art.<format>)")
	)
	flag.Parse()

	s := pixeldraw.NewSession(
		pixeldraw.WithCanvasSize(*width, *height),
		pixeldraw.WithGridSize(*grid),
	)
	defer s.Close()

	g := float64(*grid)

	// Background stripes, then cleared: clear is undoable.
	stroke(s, "lightsteelblue", g, 0, 0, 32, 1)
	s.Clear()
	s.Undo()

	drawFace(s, g)

	// A stray stroke, undone and redone, then undone for good.
	stroke(s, "black", g, 2, 20, 10, 0)
	s.Undo()
	s.Redo()
	s.Undo()

	name := *output
	if name == "" {
		name = export.FileName(export.DefaultBaseName, *format)
	}
	f, err := os.Create(name)
	if err != nil {
		log.Fatalf("Failed to create: %v", err)
	}
	if err := s.Export(f, *format, *scale); err != nil {
		f.Close()
		log.Fatalf("Failed to export: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	st := s.State()
	log.Printf("Demo saved to %s (%dx%d, %d commands, cursor %d)\n",
		name, st.Width*(*scale), st.Height*(*scale), st.Entries, st.Cursor)
}

// stroke drags across n cells starting at cell (cx, cy), stepping by
// (dx, 1-dx) cells.
func stroke(s *pixeldraw.Session, color string, g float64, cx, cy, n, dx int) {
	if err := s.SetColor(color); err != nil {
		log.Fatalf("SetColor(%q): %v", color, err)
	}
	dy := 1 - dx
	s.PointerDown()
	for i := 0; i < n; i++ {
		s.PointerMove(float64(cx+i*dx)*g, float64(cy+i*dy)*g)
	}
	s.PointerUp()
}

func drawFace(s *pixeldraw.Session, g float64) {
	// Head outline
	for _, row := range []struct{ cx, cy, n int }{
		{10, 4, 12}, {10, 19, 12},
	} {
		stroke(s, "gold", g, row.cx, row.cy, row.n, 1)
	}
	stroke(s, "gold", g, 9, 5, 14, 0)
	stroke(s, "gold", g, 22, 5, 14, 0)

	// Eyes
	stroke(s, "black", g, 13, 8, 2, 0)
	stroke(s, "black", g, 18, 8, 2, 0)

	// Smile
	stroke(s, "crimson", g, 12, 15, 1, 1)
	stroke(s, "crimson", g, 13, 16, 6, 1)
	stroke(s, "crimson", g, 19, 15, 1, 1)
}
