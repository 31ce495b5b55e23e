// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tui is a terminal frontend for a drawing session.
//
// One terminal cell shows one grid cell of the canvas, starting at the
// canvas origin. The bottom row is a status line. Drawing uses the mouse:
// press and drag with the primary button.
package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/export"
	"github.com/gogpu/pixeldraw/help"
	"github.com/gogpu/pixeldraw/raster"
)

// Palette is the set of colors bound to keys 1 through 8.
var Palette = []raster.Color{
	raster.Black,
	raster.MustParseColor("red"),
	raster.MustParseColor("orange"),
	raster.MustParseColor("yellow"),
	raster.MustParseColor("green"),
	raster.MustParseColor("blue"),
	raster.MustParseColor("purple"),
	raster.White,
}

// App drives a Session from terminal events.
type App struct {
	screen  tcell.Screen
	session *pixeldraw.Session
	grid    int

	lang     language.Tag
	dir      string
	baseName string
	format   string
	scale    int

	pressed  bool
	showHelp bool
	helpBox  box
	message  string
}

// Option configures an App.
type Option func(*App)

// WithLanguage selects the help overlay language.
func WithLanguage(tag language.Tag) Option {
	return func(a *App) {
		a.lang = tag
	}
}

// WithExport sets where and how the save key writes the canvas.
func WithExport(dir, baseName, format string, scale int) Option {
	return func(a *App) {
		a.dir = dir
		a.baseName = baseName
		a.format = format
		a.scale = scale
	}
}

// New creates an App drawing into session on screen. The screen must
// already be initialized.
func New(screen tcell.Screen, session *pixeldraw.Session, opts ...Option) *App {
	a := &App{
		screen:   screen,
		session:  session,
		grid:     session.State().GridSize,
		lang:     help.Supported[0],
		dir:      ".",
		baseName: export.DefaultBaseName,
		format:   export.DefaultFormat,
		scale:    1,
	}
	for _, opt := range opts {
		opt(a)
	}
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()
	return a
}

// Run draws and handles events until the user quits or the screen is
// finalized.
func (a *App) Run() {
	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent applies one event. It returns false when the app should
// exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.showHelp {
		a.showHelp = false
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlZ:
		a.undo()
		return true
	case tcell.KeyCtrlY:
		a.redo()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return false
	case r == 'u':
		a.undo()
	case r == 'r':
		a.redo()
	case r == 'e':
		if a.session.ToggleEraser() {
			a.message = "eraser on"
		} else {
			a.message = "eraser off"
		}
	case r == 'c':
		a.session.Clear()
		a.message = "cleared"
	case r == 's':
		a.save()
	case r == '?':
		a.showHelp = true
	case r >= '1' && r <= '8':
		c := Palette[r-'1']
		if err := a.session.SetColor(c.Hex()); err != nil {
			a.message = err.Error()
		} else {
			a.message = "color " + c.Hex()
		}
	}
	return true
}

func (a *App) undo() {
	if !a.session.Undo() {
		a.message = "nothing to undo"
		return
	}
	a.message = "undo"
}

func (a *App) redo() {
	if !a.session.Redo() {
		a.message = "nothing to redo"
		return
	}
	a.message = "redo"
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	if a.showHelp {
		// Dismiss on a fresh press on the close mark or outside the box.
		if down && !a.pressed && (a.helpBox.closeAt(x, y) || !a.helpBox.contains(x, y)) {
			a.showHelp = false
		}
		a.pressed = down
		return
	}

	switch {
	case down && !a.pressed:
		a.pressed = true
		a.message = ""
		a.session.PointerDown()
		a.paint(x, y)
	case down:
		a.paint(x, y)
	case a.pressed:
		a.pressed = false
		a.session.PointerUp()
	}
}

// paint maps terminal cell (x, y) to the grid cell it shows. The status
// row is not part of the canvas.
func (a *App) paint(x, y int) {
	_, h := a.screen.Size()
	if y >= h-1 {
		return
	}
	a.session.PointerMove(float64(x*a.grid), float64(y*a.grid))
}

// save writes the canvas to the export directory.
func (a *App) save() {
	path := filepath.Join(a.dir, export.FileName(a.baseName, a.format))
	if err := a.writeFile(path); err != nil {
		a.message = err.Error()
		pixeldraw.Logger().Error("tui: save failed", "path", path, "err", err)
		return
	}
	a.message = "saved " + path
	pixeldraw.Logger().Info("tui: saved", "path", path)
}

func (a *App) writeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tui: save: %w", err)
	}
	if err := a.session.Export(f, a.format, a.scale); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("tui: save: %w", err)
	}
	return nil
}
