// Command pixelterm is a terminal pixel-art editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/config"
	"github.com/gogpu/pixeldraw/help"
	"github.com/gogpu/pixeldraw/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (defaults apply when empty)")
		outDir     = flag.String("out", ".", "directory the save key writes to")
		logPath    = flag.String("log", "", "log file (logging is off when empty)")
	)
	flag.Parse()

	if err := run(*configPath, *outDir, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "pixelterm:", err)
		os.Exit(1)
	}
}

func run(configPath, outDir, logPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}

	// The terminal owns stdout and stderr while the app runs.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	if logOut != io.Discard {
		pixeldraw.SetLogger(cfg.Logger(logOut))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()

	sess := pixeldraw.NewSession(cfg.SessionOptions()...)
	defer sess.Close()

	lang := help.MatchLocale(os.Getenv("LANG"))
	pixeldraw.Logger().Info("pixelterm started", "session", sess.ID(), "lang", lang.String(), slog.String("out", outDir))

	app := tui.New(screen, sess,
		tui.WithLanguage(lang),
		tui.WithExport(outDir, cfg.Export.BaseName, cfg.Export.Format, cfg.Export.Scale),
	)
	app.Run()
	return nil
}
