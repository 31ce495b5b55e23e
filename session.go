package pixeldraw

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/pixeldraw/export"
	"github.com/gogpu/pixeldraw/history"
	"github.com/gogpu/pixeldraw/input"
	"github.com/gogpu/pixeldraw/raster"
)

// Session is one drawing: a surface, its undo history and the pointer
// translator feeding it.
//
// All methods are safe for concurrent use. Calls are serialized, so events
// from concurrent callers are applied in the order they acquire the session.
type Session struct {
	mu         sync.Mutex
	id         string
	surface    *raster.Surface
	history    *history.History
	translator *input.Translator
	closed     bool
}

// State is a point-in-time summary of a session, suitable for a UI to
// enable or disable its controls.
type State struct {
	ID         string `json:"id"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	GridSize   int    `json:"grid_size"`
	Background string `json:"background"`
	Color      string `json:"color"`
	Eraser     bool   `json:"eraser"`
	CanUndo    bool   `json:"can_undo"`
	CanRedo    bool   `json:"can_redo"`
	Cursor     int    `json:"cursor"`
	Entries    int    `json:"entries"`
	Bytes      int    `json:"bytes"`
	Evictions  uint64 `json:"evictions"`
}

// NewSession creates a session with a blank canvas filled with the
// background color.
func NewSession(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = newID()
	}

	s := &Session{id: o.id}
	s.surface = raster.NewSurface(o.width, o.height, raster.WithBackground(o.background))
	s.history = history.New(s.surface,
		history.WithMaxEntries(o.maxEntries),
		history.WithMaxBytes(o.maxBytes),
		history.WithOnEvict(s.logEvict),
	)
	s.translator = input.NewTranslator(s.history,
		input.WithGridSize(o.gridSize),
		input.WithColor(o.color),
	)

	Logger().Info("pixeldraw: session created",
		"session", s.id,
		"width", s.surface.Width(),
		"height", s.surface.Height(),
		"grid", s.translator.GridSize())
	return s
}

// newID returns a time-ordered UUIDv7, falling back to a random UUIDv4 if
// the v7 generator fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *Session) logEvict(cmd history.Command) {
	Logger().Warn("pixeldraw: history entry evicted",
		"session", s.id,
		"type", cmd.Type(),
		"bytes", cmd.Bytes())
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// PointerDown starts a drag.
func (s *Session) PointerDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translator.PointerDown()
}

// PointerMove paints the grid cell under (x, y) while a drag is in
// progress. It returns the painted area, clipped to the canvas, and whether
// a command was recorded.
func (s *Session) PointerMove(x, y float64) (image.Rectangle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.move(x, y)
}

// Move is PointerMove followed by State, with no other call on the session
// in between.
func (s *Session) Move(x, y float64) (image.Rectangle, bool, State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.move(x, y)
	return r, ok, s.state()
}

func (s *Session) move(x, y float64) (image.Rectangle, bool) {
	r, ok := s.translator.PointerMove(x, y)
	if ok {
		Logger().Debug("pixeldraw: paint",
			"session", s.id,
			"rect", r,
			"cursor", s.history.Cursor())
	}
	return r, ok
}

// PointerUp ends the drag.
func (s *Session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translator.PointerUp()
}

// SetColor parses value as a hex color or CSS color name and makes it the
// paint color. It turns the eraser off.
func (s *Session) SetColor(value string) error {
	c, err := raster.ParseColor(value)
	if err != nil {
		Logger().Warn("pixeldraw: rejected color", "session", s.id, "value", value)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translator.SetColor(c)
	return nil
}

// SetEraser turns eraser mode on or off.
func (s *Session) SetEraser(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.translator.SetEraser(on)
}

// ToggleEraser flips eraser mode and returns the new value.
func (s *Session) ToggleEraser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.translator.ToggleEraser()
}

// Undo steps back one command. It returns false when there is nothing to
// undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.history.Undo()
	Logger().Debug("pixeldraw: undo", "session", s.id, "applied", ok, "cursor", s.history.Cursor())
	return ok
}

// Redo re-applies the next command. It returns false when there is nothing
// to redo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.history.Redo()
	Logger().Debug("pixeldraw: redo", "session", s.id, "applied", ok, "cursor", s.history.Cursor())
	return ok
}

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Clear fills the canvas with the background color. The clear is recorded,
// so it can be undone.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Do(history.NewClear(s.surface))
	Logger().Info("pixeldraw: canvas cleared", "session", s.id, "cursor", s.history.Cursor())
}

// Pixel returns the color at (x, y), or transparent outside the canvas.
func (s *Session) Pixel(x, y int) raster.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Pixel(x, y)
}

// Image returns a copy of the current canvas.
func (s *Session) Image() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.Image()
}

// ExportPNG returns the canvas encoded as PNG at its native size.
func (s *Session) ExportPNG() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.ExportPNG()
}

// Export writes the canvas to w in the named format, upscaled by scale.
// The surface is copied under the lock and encoded after it is released.
func (s *Session) Export(w io.Writer, format string, scale int) error {
	img := s.Image()
	if err := export.Encode(w, img, format, scale); err != nil {
		return fmt.Errorf("pixeldraw: export session %s: %w", s.id, err)
	}
	return nil
}

// State returns a summary of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	st := s.history.Stats()
	return State{
		ID:         s.id,
		Width:      s.surface.Width(),
		Height:     s.surface.Height(),
		GridSize:   s.translator.GridSize(),
		Background: s.surface.Background().Hex(),
		Color:      s.translator.Color().Hex(),
		Eraser:     s.translator.Eraser(),
		CanUndo:    s.history.CanUndo(),
		CanRedo:    s.history.CanRedo(),
		Cursor:     st.Cursor,
		Entries:    st.Entries,
		Bytes:      st.Bytes,
		Evictions:  st.Evictions,
	}
}

// Close releases the undo history. The canvas stays readable, but the
// session has nothing left to undo or redo. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.translator.PointerUp()
	st := s.history.Stats()
	s.history.Reset()
	Logger().Info("pixeldraw: session closed",
		"session", s.id,
		slog.Int("entries", st.Entries),
		slog.Int("bytes", st.Bytes))
}
