// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/gogpu/pixeldraw/help"
	"github.com/gogpu/pixeldraw/raster"
)

const closeMark = "[x]"

// box is a screen rectangle, inclusive of its border.
type box struct {
	x, y, w, h int
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// closeAt reports whether (x, y) is on the close mark in the top border.
func (b box) closeAt(x, y int) bool {
	cx := b.x + b.w - len(closeMark) - 1
	return y == b.y && x >= cx && x < cx+len(closeMark)
}

func toTcell(c raster.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw renders the canvas, the status line and, when open, the help
// overlay, then shows the screen.
func (a *App) Draw() {
	a.screen.Clear()
	w, h := a.screen.Size()

	img := a.session.Image()
	b := img.Bounds()
	for ty := 0; ty < h-1; ty++ {
		for tx := 0; tx < w; tx++ {
			px, py := tx*a.grid, ty*a.grid
			if px >= b.Max.X || py >= b.Max.Y {
				continue
			}
			c := img.NRGBAAt(px, py)
			bg := toTcell(raster.Color{R: c.R, G: c.G, B: c.B, A: c.A})
			a.screen.SetContent(tx, ty, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}

	a.drawStatus(w, h)
	if a.showHelp {
		a.drawHelp(w, h)
	}
	a.screen.Show()
}

func (a *App) drawStatus(w, h int) {
	st := a.session.State()
	mode := "paint"
	if st.Eraser {
		mode = "eraser"
	}
	line := fmt.Sprintf(" %s %s | undo %s | redo %s | 1-8 color  e eraser  c clear  s save  ? help  q quit",
		st.Color, mode, yesNo(st.CanUndo), yesNo(st.CanRedo))
	if a.message != "" {
		line += " | " + a.message
	}

	style := tcell.StyleDefault.Reverse(true)
	swatch := tcell.StyleDefault.Background(toTcell(raster.MustParseColor(st.Color)))
	a.screen.SetContent(0, h-1, ' ', nil, swatch)
	putString(a.screen, 1, h-1, w-1, line, style)
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func (a *App) drawHelp(w, h int) {
	title := help.Title(a.lang)
	lines := help.Lines(a.lang)

	inner := runewidth.StringWidth(title) + len(closeMark) + 2
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l.Text)+2)
	}
	bw := min(inner+2, w)
	bh := min(len(lines)+4, h-1)
	a.helpBox = box{x: max((w-bw)/2, 0), y: max((h-1-bh)/2, 0), w: bw, h: bh}
	bx := a.helpBox

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	for y := bx.y; y < bx.y+bx.h; y++ {
		for x := bx.x; x < bx.x+bx.w; x++ {
			r := ' '
			switch {
			case y == bx.y || y == bx.y+bx.h-1:
				r = tcell.RuneHLine
			case x == bx.x || x == bx.x+bx.w-1:
				r = tcell.RuneVLine
			}
			a.screen.SetContent(x, y, r, nil, style)
		}
	}

	right := bx.x + bx.w - 1
	putString(a.screen, bx.x+2, bx.y, right, " "+title+" ", style.Bold(true))
	putString(a.screen, bx.x+bx.w-len(closeMark)-1, bx.y, right, closeMark, style)
	for i, l := range lines {
		y := bx.y + 2 + i
		if y >= bx.y+bx.h-1 {
			break
		}
		putString(a.screen, bx.x+2, y, right, l.Text, style)
	}
}

// putString writes s from (x, y), stopping before column limit.
func putString(s tcell.Screen, x, y, limit int, str string, style tcell.Style) {
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if x+rw > limit {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x += max(rw, 1)
	}
}
