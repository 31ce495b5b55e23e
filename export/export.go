// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package export encodes canvas images for download.
//
// Formats are looked up by name in a registry. png, bmp and tiff are
// registered by this package; others can be added with Register:
//
//	func init() {
//	    export.Register("webp", "webp", "image/webp", encodeWebP)
//	}
//
// Encode optionally upscales the image by an integer factor with
// nearest-neighbour sampling, which keeps pixel-art edges sharp.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Defaults used by the download buttons.
const (
	DefaultFormat   = "png"
	DefaultBaseName = "pixel-art"

	// MaxScale bounds the upscale factor accepted by Encode.
	MaxScale = 16
)

// Export errors.
var (
	// ErrUnknownFormat is returned when no encoder is registered for a name.
	ErrUnknownFormat = errors.New("export: unknown format")

	// ErrInvalidScale is returned when a scale is outside [1, MaxScale].
	ErrInvalidScale = errors.New("export: invalid scale")
)

func init() {
	Register("png", "png", "image/png", png.Encode)
	Register("bmp", "bmp", "image/bmp", bmp.Encode)
	Register("tiff", "tiff", "image/tiff", func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	})
}

// Encode writes img to w in the named format, scaled by an integer factor.
func Encode(w io.Writer, img image.Image, format string, scale int) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	if scale < 1 || scale > MaxScale {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidScale, scale, MaxScale)
	}

	if scale > 1 {
		img = Scale(img, scale)
	}
	if err := f.encode(w, img); err != nil {
		return fmt.Errorf("export: encode %s: %w", f.Name, err)
	}
	return nil
}

// Scale returns img enlarged by factor using nearest-neighbour sampling.
func Scale(img image.Image, factor int) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FileName returns the download name for a format, e.g. "pixel-art.png".
// An empty base uses DefaultBaseName; an unknown format falls back to the
// format name as extension.
func FileName(base, format string) string {
	if base == "" {
		base = DefaultBaseName
	}
	ext := format
	if f, err := Lookup(format); err == nil {
		ext = f.Ext
	}
	return base + "." + ext
}
