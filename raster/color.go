// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("raster: invalid color")

// Color is a non-premultiplied 8-bit RGBA color.
// It is the unit stored by a Surface, one per pixel.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{0, 0, 0, 0}
	White       = Color{255, 255, 255, 255}
	Black       = Color{0, 0, 0, 255}
)

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns c as a standard library color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex formats the color as "#rrggbb", or "#rrggbbaa" when not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseColor parses a hex color or an SVG 1.1 color name.
// Supported hex formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", each with an
// optional leading '#'. Names are matched case-insensitively ("red",
// "CornflowerBlue").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromColor(named), nil
	}

	hex := strings.TrimPrefix(s, "#")
	var digits [8]uint8
	for i := 0; i < len(hex); i++ {
		if i >= len(digits) {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		digits[i] = v
	}

	switch len(hex) {
	case 3: // RGB
		return Color{digits[0] * 17, digits[1] * 17, digits[2] * 17, 255}, nil
	case 4: // RGBA
		return Color{digits[0] * 17, digits[1] * 17, digits[2] * 17, digits[3] * 17}, nil
	case 6: // RRGGBB
		return Color{
			digits[0]<<4 | digits[1],
			digits[2]<<4 | digits[3],
			digits[4]<<4 | digits[5],
			255,
		}, nil
	case 8: // RRGGBBAA
		return Color{
			digits[0]<<4 | digits[1],
			digits[2]<<4 | digits[3],
			digits[4]<<4 | digits[5],
			digits[6]<<4 | digits[7],
		}, nil
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

// MustParseColor is like ParseColor but panics on error.
// Intended for package-level defaults and tests.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
