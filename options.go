package pixeldraw

import (
	"github.com/gogpu/pixeldraw/input"
	"github.com/gogpu/pixeldraw/raster"
)

// Canvas defaults, matching the reference page.
const (
	DefaultWidth    = 1920
	DefaultHeight   = 1080
	DefaultGridSize = input.DefaultGridSize
)

// Option configures a Session during creation.
//
// Example:
//
//	s := pixeldraw.NewSession(
//	    pixeldraw.WithCanvasSize(640, 480),
//	    pixeldraw.WithGridSize(16),
//	)
type Option func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	id            string
	width, height int
	gridSize      int
	background    raster.Color
	color         raster.Color
	maxEntries    int
	maxBytes      int
}

// defaultOptions returns the default session options.
func defaultOptions() sessionOptions {
	return sessionOptions{
		width:      DefaultWidth,
		height:     DefaultHeight,
		gridSize:   DefaultGridSize,
		background: raster.White,
		color:      raster.Black,
	}
}

// WithID sets the session identifier. When empty, NewSession generates a
// UUIDv7.
func WithID(id string) Option {
	return func(o *sessionOptions) {
		o.id = id
	}
}

// WithCanvasSize sets the fixed canvas dimensions.
func WithCanvasSize(width, height int) Option {
	return func(o *sessionOptions) {
		o.width = width
		o.height = height
	}
}

// WithGridSize sets the side of one paint cell in canvas pixels.
func WithGridSize(n int) Option {
	return func(o *sessionOptions) {
		o.gridSize = n
	}
}

// WithBackground sets the color used by clear and by the eraser.
func WithBackground(c raster.Color) Option {
	return func(o *sessionOptions) {
		o.background = c
	}
}

// WithColor sets the initial paint color.
func WithColor(c raster.Color) Option {
	return func(o *sessionOptions) {
		o.color = c
	}
}

// WithHistoryLimits caps the undo history by entry count and by retained
// bytes. Zero means unbounded for either limit.
func WithHistoryLimits(maxEntries, maxBytes int) Option {
	return func(o *sessionOptions) {
		o.maxEntries = maxEntries
		o.maxBytes = maxBytes
	}
}
