// Command pixelserve serves the pixel-art editor over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/config"
	"github.com/gogpu/pixeldraw/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (defaults apply when empty)")
		addr       = flag.String("addr", "", "listen address, overrides server.addr")
	)
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintln(os.Stderr, "pixelserve:", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger := cfg.Logger(os.Stderr)
	pixeldraw.SetLogger(logger)
	logger.Info("starting",
		"version", pixeldraw.Version,
		"addr", cfg.Server.Addr,
		"canvas", fmt.Sprintf("%dx%d", cfg.Canvas.Width, cfg.Canvas.Height),
		"max_sessions", cfg.Server.MaxSessions)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.New(cfg).Run(ctx)
}
