// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package history

import (
	"fmt"
	"image"

	"github.com/gogpu/pixeldraw/raster"
)

// CommandType identifies the kind of a command.
type CommandType uint8

const (
	CmdCheckpoint  CommandType = iota // Capture state, no visual effect
	CmdPaintRegion                    // Fill a grid square
	CmdClear                          // Reset to the background color
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCheckpoint:  "Checkpoint",
	CmdPaintRegion: "PaintRegion",
	CmdClear:       "Clear",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a reversible unit of drawing work.
//
// Commands are values: each one captures, at construction, the pixels it is
// about to change, and never changes afterwards. Undoing a command needs
// nothing but the command itself and the surface it was built against.
//
// The set of commands is closed: only this package can implement Command,
// and Apply dispatches on the concrete type.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	// Bytes returns the memory retained by the command's undo data.
	Bytes() int

	prior() raster.Snapshot
}

// CheckpointCommand marks a point the history can return to.
// Executing it has no effect; undoing it restores the full surface as it
// was when the checkpoint was taken.
type CheckpointCommand struct {
	before raster.Snapshot
}

// NewCheckpoint captures the whole surface.
func NewCheckpoint(s *raster.Surface) CheckpointCommand {
	return CheckpointCommand{before: s.Snapshot()}
}

// Type implements Command.
func (CheckpointCommand) Type() CommandType { return CmdCheckpoint }

// Bytes implements Command.
func (c CheckpointCommand) Bytes() int { return c.before.Bytes() }

func (c CheckpointCommand) prior() raster.Snapshot { return c.before }

// PaintRegionCommand fills a square of Size pixels at (X, Y) with Color.
// Only the clipped square is captured for undo.
type PaintRegionCommand struct {
	X, Y  int
	Size  int
	Color raster.Color

	before raster.Snapshot
}

// NewPaintRegion builds a paint command and captures the pixels under the
// square before anything is painted.
func NewPaintRegion(s *raster.Surface, x, y, size int, c raster.Color) PaintRegionCommand {
	cmd := PaintRegionCommand{X: x, Y: y, Size: size, Color: c}
	if size > 0 {
		cmd.before = s.SnapshotRegion(cmd.Rect())
	}
	return cmd
}

// Type implements Command.
func (PaintRegionCommand) Type() CommandType { return CmdPaintRegion }

// Bytes implements Command.
func (c PaintRegionCommand) Bytes() int { return c.before.Bytes() }

func (c PaintRegionCommand) prior() raster.Snapshot { return c.before }

// Rect returns the unclipped square the command paints.
func (c PaintRegionCommand) Rect() image.Rectangle {
	return raster.Square(c.X, c.Y, c.Size)
}

// String implements fmt.Stringer.
func (c PaintRegionCommand) String() string {
	return fmt.Sprintf("PaintRegion(%d,%d,%d,%s)", c.X, c.Y, c.Size, c.Color)
}

// ClearCommand resets the surface to its background color.
type ClearCommand struct {
	before raster.Snapshot
}

// NewClear captures the whole surface before it is cleared.
func NewClear(s *raster.Surface) ClearCommand {
	return ClearCommand{before: s.Snapshot()}
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// Bytes implements Command.
func (c ClearCommand) Bytes() int { return c.before.Bytes() }

func (c ClearCommand) prior() raster.Snapshot { return c.before }

// Apply executes cmd against s.
func Apply(s *raster.Surface, cmd Command) {
	switch c := cmd.(type) {
	case CheckpointCommand:
		// Nothing to draw.
	case PaintRegionCommand:
		s.PaintRegion(c.X, c.Y, c.Size, c.Color)
	case ClearCommand:
		s.Clear()
	}
}

// Revert undoes cmd by restoring the pixels it captured at construction.
// It assumes s is in the state cmd left it in, which History guarantees by
// only reverting the most recently applied command.
func Revert(s *raster.Surface, cmd Command) {
	s.Restore(cmd.prior())
}
