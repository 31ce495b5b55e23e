// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package history

import "github.com/gogpu/pixeldraw/raster"

// History is a linear undo/redo log of commands with a single cursor.
//
// The cursor indexes the most recently applied command; -1 means nothing is
// applied. It always stays in [-1, Len()-1]. Recording a command while the
// cursor is not at the end discards every command after the cursor: there is
// no branching timeline.
//
// By default the history grows without bound. WithMaxEntries and
// WithMaxBytes cap it; once a cap is exceeded the oldest commands are
// evicted and can no longer be undone.
//
// History is not safe for concurrent use.
type History struct {
	surface  *raster.Surface
	commands []Command
	cursor   int
	bytes    int

	maxEntries int
	maxBytes   int
	onEvict    func(Command)
	evictions  uint64
}

// Option configures a History during creation.
type Option func(*History)

// WithMaxEntries caps the number of retained commands. Zero or a negative
// value means no cap.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		h.maxEntries = max(n, 0)
	}
}

// WithMaxBytes caps the memory retained by undo data. Zero or a negative
// value means no cap. The most recent command is always kept, even when it
// alone exceeds the cap.
func WithMaxBytes(n int) Option {
	return func(h *History) {
		h.maxBytes = max(n, 0)
	}
}

// WithOnEvict registers a function called for every command dropped by a
// cap. It is not called for commands discarded by branching or Reset.
func WithOnEvict(fn func(Command)) Option {
	return func(h *History) {
		h.onEvict = fn
	}
}

// New creates an empty history bound to s.
func New(s *raster.Surface, opts ...Option) *History {
	h := &History{
		surface:  s,
		commands: make([]Command, 0, 64),
		cursor:   -1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Surface returns the surface the history applies commands to.
func (h *History) Surface() *raster.Surface {
	return h.surface
}

// Record appends a command that the caller has ALREADY executed.
// Commands after the cursor are discarded first, then the cursor moves to
// the new command. Prefer Do, which executes and records in one step.
func (h *History) Record(cmd Command) {
	if cmd == nil {
		return
	}
	h.truncate()
	h.commands = append(h.commands, cmd)
	h.bytes += cmd.Bytes()
	h.cursor = len(h.commands) - 1
	h.enforceLimits()
}

// Do executes cmd against the surface and records it.
func (h *History) Do(cmd Command) {
	if cmd == nil {
		return
	}
	Apply(h.surface, cmd)
	h.Record(cmd)
}

// Checkpoint records a command that captures the current surface and has no
// visual effect. Taking one before a multi-step edit gives that edit a
// single point to undo back to.
func (h *History) Checkpoint() {
	h.Record(NewCheckpoint(h.surface))
}

// Undo reverts the command at the cursor and moves the cursor back.
// It is a no-op returning false when nothing is applied.
func (h *History) Undo() bool {
	if h.cursor < 0 {
		return false
	}
	Revert(h.surface, h.commands[h.cursor])
	h.cursor--
	return true
}

// Redo moves the cursor forward and re-applies the command there.
// It is a no-op returning false when the cursor is at the end.
func (h *History) Redo() bool {
	if h.cursor >= len(h.commands)-1 {
		return false
	}
	h.cursor++
	Apply(h.surface, h.commands[h.cursor])
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.commands)-1
}

// Cursor returns the index of the most recently applied command, or -1.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of retained commands, including redoable ones.
func (h *History) Len() int {
	return len(h.commands)
}

// At returns the command at index i, or nil if i is out of range.
func (h *History) At(i int) Command {
	if i < 0 || i >= len(h.commands) {
		return nil
	}
	return h.commands[i]
}

// Bytes returns the memory retained by all commands' undo data.
func (h *History) Bytes() int {
	return h.bytes
}

// Reset drops every command and returns to the empty state.
// The surface is left as it is.
func (h *History) Reset() {
	clear(h.commands)
	h.commands = h.commands[:0]
	h.cursor = -1
	h.bytes = 0
}

// Stats describes the current size of a History.
type Stats struct {
	Entries   int
	Cursor    int
	Bytes     int
	Evictions uint64
}

// Stats returns the current history statistics.
func (h *History) Stats() Stats {
	return Stats{
		Entries:   len(h.commands),
		Cursor:    h.cursor,
		Bytes:     h.bytes,
		Evictions: h.evictions,
	}
}

// truncate discards every command after the cursor.
func (h *History) truncate() {
	keep := h.cursor + 1
	for _, cmd := range h.commands[keep:] {
		h.bytes -= cmd.Bytes()
	}
	clear(h.commands[keep:])
	h.commands = h.commands[:keep]
}

// enforceLimits evicts the oldest commands until both caps hold.
// It runs right after Record, so the cursor is at the end and stays >= 0.
func (h *History) enforceLimits() {
	evict := 0
	bytes := h.bytes
	for len(h.commands)-evict > 1 {
		overEntries := h.maxEntries > 0 && len(h.commands)-evict > h.maxEntries
		overBytes := h.maxBytes > 0 && bytes > h.maxBytes
		if !overEntries && !overBytes {
			break
		}
		bytes -= h.commands[evict].Bytes()
		evict++
	}
	if evict == 0 {
		return
	}

	if h.onEvict != nil {
		for _, cmd := range h.commands[:evict] {
			h.onEvict(cmd)
		}
	}
	n := copy(h.commands, h.commands[evict:])
	clear(h.commands[n:])
	h.commands = h.commands[:n]
	h.bytes = bytes
	h.cursor -= evict
	h.evictions += uint64(evict)
}
