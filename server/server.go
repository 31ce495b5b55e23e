// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package server exposes drawing sessions over HTTP and serves the browser
// editor.
//
// Each browser tab creates its own session and drives it with pointer and
// toolbar requests. Sessions live in a bounded LRU store; the least recently
// used one is closed when the store is full.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/config"
	"github.com/gogpu/pixeldraw/internal/store"
)

// Server is the HTTP frontend.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions *store.Store[*pixeldraw.Session]
	router   *chi.Mux
}

// New creates a server for cfg. A nil cfg uses config.Default().
// The server logs through pixeldraw.Logger().
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: pixeldraw.Logger().With("component", "server"),
	}
	s.sessions = store.New(cfg.Server.MaxSessions, store.OnEvict(s.evicted))
	s.router = s.routes()
	return s
}

func (s *Server) evicted(id string, sess *pixeldraw.Session) {
	s.logger.Warn("session evicted", "session", id)
	sess.Close()
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", serveIndex)
	r.Handle("/static/*", http.FileServerFS(staticFS))
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/help", handleHelp)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(s.withSession)
			r.Get("/", handleState)
			r.Delete("/", s.handleDelete)
			r.Post("/pointer/down", handlePointerDown)
			r.Post("/pointer/move", handlePointerMove)
			r.Post("/pointer/up", handlePointerUp)
			r.Post("/color", handleColor)
			r.Post("/eraser", handleEraser)
			r.Post("/undo", handleUndo)
			r.Post("/redo", handleRedo)
			r.Post("/clear", handleClear)
			r.Get("/canvas.png", handleCanvas)
			r.Get("/export", s.handleExport)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	return s.sessions.Len()
}

// Close closes every live session.
func (s *Server) Close() {
	var ids []string
	s.sessions.Range(func(id string, _ *pixeldraw.Session) bool {
		ids = append(ids, id)
		return true
	})
	for _, id := range ids {
		if sess, ok := s.sessions.Delete(id); ok {
			sess.Close()
		}
	}
}

// Run serves HTTP on cfg.Server.Addr until ctx is canceled, then shuts down
// gracefully within cfg.Server.ShutdownTimeout and closes all sessions.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run but accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:      s,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- hs.Serve(ln)
	}()

	select {
	case err := <-errc:
		s.Close()
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "sessions", s.sessions.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	err := hs.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
