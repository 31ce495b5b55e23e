// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package history implements command-based undo and redo over a
// raster.Surface.
//
// # Commands
//
// A Command is a closed tagged variant with three kinds:
//
//   - CheckpointCommand: captures the whole surface, draws nothing
//   - PaintRegionCommand: fills one grid square, captures only that square
//   - ClearCommand: resets to the background, captures the whole surface
//
// Every command captures its undo data when it is constructed, before it is
// executed, so the snapshot always reflects the state immediately prior to
// the command's own effect.
//
// # History
//
// History keeps commands in order with a cursor at the last applied one:
//
//	h := history.New(surface)
//	h.Checkpoint()
//	h.Do(history.NewPaintRegion(surface, 20, 20, 10, red))
//	h.Undo() // square gone
//	h.Redo() // square back
//
// Do executes and records in one call. Record exists for callers that have
// already executed the command themselves.
package history
