// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster provides the fixed-size pixel buffer that pixeldraw paints
// on.
//
// A Surface stores non-premultiplied 8-bit RGBA pixels. It supports square
// region fills clipped to its bounds, full and rectangular snapshots that can
// be restored later, clearing to a background color, and PNG export.
//
// Snapshots are immutable values. Rectangular snapshots are how the history
// package keeps undo data proportional to the damaged area instead of the
// whole canvas.
package raster
