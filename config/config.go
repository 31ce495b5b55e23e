// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads pixeldraw settings from YAML.
//
// Every field has a default, so an empty file, or no file at all, gives a
// working 1920×1080 canvas with a 10 pixel grid served on :8080.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/export"
	"github.com/gogpu/pixeldraw/raster"
)

// Config is the top-level pixeldraw configuration.
type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	History HistoryConfig `yaml:"history"`
	Export  ExportConfig  `yaml:"export"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// CanvasConfig sets the drawing surface.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	GridSize   int    `yaml:"grid_size"`
	Background string `yaml:"background"`
	Color      string `yaml:"color"`
}

// HistoryConfig caps undo memory. Zero means unbounded.
type HistoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
	MaxBytes   int `yaml:"max_bytes"`
}

// ExportConfig controls downloads and saved files.
type ExportConfig struct {
	BaseName string `yaml:"base_name"`
	Format   string `yaml:"format"`
	Scale    int    `yaml:"scale"`
}

// ServerConfig controls the HTTP frontend.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxSessions     int           `yaml:"max_sessions"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig selects the slog handler built by Logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Load decodes YAML from r, fills in defaults and validates the result.
// Unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = pixeldraw.DefaultWidth
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = pixeldraw.DefaultHeight
	}
	if c.Canvas.GridSize <= 0 {
		c.Canvas.GridSize = pixeldraw.DefaultGridSize
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = "#ffffff"
	}
	if c.Canvas.Color == "" {
		c.Canvas.Color = "#000000"
	}
	if c.Export.BaseName == "" {
		c.Export.BaseName = export.DefaultBaseName
	}
	if c.Export.Format == "" {
		c.Export.Format = export.DefaultFormat
	}
	if c.Export.Scale == 0 {
		c.Export.Scale = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxSessions <= 0 {
		c.Server.MaxSessions = 64
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.GridSize <= 0 {
		return fmt.Errorf("config: canvas grid_size %d must be positive", c.Canvas.GridSize)
	}
	if _, err := raster.ParseColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("config: canvas background: %w", err)
	}
	if _, err := raster.ParseColor(c.Canvas.Color); err != nil {
		return fmt.Errorf("config: canvas color: %w", err)
	}
	if c.History.MaxEntries < 0 || c.History.MaxBytes < 0 {
		return errors.New("config: history limits must not be negative")
	}
	if _, err := export.Lookup(c.Export.Format); err != nil {
		return fmt.Errorf("config: export: %w", err)
	}
	if c.Export.Scale < 1 || c.Export.Scale > export.MaxScale {
		return fmt.Errorf("config: export scale %d: %w", c.Export.Scale, export.ErrInvalidScale)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log format %q: want text or json", c.Log.Format)
	}
	return nil
}

// SessionOptions translates the canvas and history settings into options
// for pixeldraw.NewSession. It assumes the config has been validated.
func (c *Config) SessionOptions() []pixeldraw.Option {
	bg, err := raster.ParseColor(c.Canvas.Background)
	if err != nil {
		bg = raster.White
	}
	fg, err := raster.ParseColor(c.Canvas.Color)
	if err != nil {
		fg = raster.Black
	}
	return []pixeldraw.Option{
		pixeldraw.WithCanvasSize(c.Canvas.Width, c.Canvas.Height),
		pixeldraw.WithGridSize(c.Canvas.GridSize),
		pixeldraw.WithBackground(bg),
		pixeldraw.WithColor(fg),
		pixeldraw.WithHistoryLimits(c.History.MaxEntries, c.History.MaxBytes),
	}
}

// Logger builds a slog.Logger writing to w at the configured level and
// format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return level, nil
}
