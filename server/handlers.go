// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/export"
	"github.com/gogpu/pixeldraw/help"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Stats(),
	})
}

type helpResponse struct {
	Lang  string       `json:"lang"`
	Title string       `json:"title"`
	Lines []help.Entry `json:"lines"`
}

func handleHelp(w http.ResponseWriter, r *http.Request) {
	tag := help.Match(r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Language", tag.String())
	w.Header().Add("Vary", "Accept-Language")
	writeJSON(w, http.StatusOK, helpResponse{
		Lang:  tag.String(),
		Title: help.Title(tag),
		Lines: help.Lines(tag),
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, _ *http.Request) {
	sess := pixeldraw.NewSession(s.cfg.SessionOptions()...)
	s.sessions.Put(sess.ID(), sess)
	w.Header().Set("Location", "/api/sessions/"+sess.ID())
	writeJSON(w, http.StatusCreated, sess.State())
}

func handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).State())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if _, ok := s.sessions.Delete(sess.ID()); ok {
		sess.Close()
	}
	w.WriteHeader(http.StatusNoContent)
}

func handlePointerDown(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.PointerDown()
	writeJSON(w, http.StatusOK, sess.State())
}

type moveRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// rect is an image.Rectangle as origin plus size.
type rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func toRect(r image.Rectangle) rect {
	return rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

type moveResponse struct {
	Painted bool            `json:"painted"`
	Rect    rect            `json:"rect"`
	Color   string          `json:"color,omitempty"`
	State   pixeldraw.State `json:"state"`
}

func handlePointerMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.X == nil || req.Y == nil {
		writeError(w, http.StatusBadRequest, errors.New("x and y are required"))
		return
	}

	sess := sessionFrom(r)
	area, painted, st := sess.Move(*req.X, *req.Y)
	resp := moveResponse{Painted: painted, Rect: toRect(area), State: st}
	if painted {
		resp.Color = st.Color
		if st.Eraser {
			resp.Color = st.Background
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func handlePointerUp(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.PointerUp()
	writeJSON(w, http.StatusOK, sess.State())
}

func handleColor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Color string `json:"color"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess := sessionFrom(r)
	if err := sess.SetColor(req.Color); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// handleEraser sets eraser mode from {"on": bool}, or toggles it when the
// field is absent.
func handleEraser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		On *bool `json:"on"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess := sessionFrom(r)
	if req.On != nil {
		sess.SetEraser(*req.On)
	} else {
		sess.ToggleEraser()
	}
	writeJSON(w, http.StatusOK, sess.State())
}

func handleUndo(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Undo()
	writeJSON(w, http.StatusOK, sess.State())
}

func handleRedo(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Redo()
	writeJSON(w, http.StatusOK, sess.State())
}

func handleClear(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	sess.Clear()
	writeJSON(w, http.StatusOK, sess.State())
}

func handleCanvas(w http.ResponseWriter, r *http.Request) {
	data, err := sessionFrom(r).ExportPNG()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// handleExport encodes the canvas as a download. Query parameters format
// and scale default to the export section of the config.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("format")
	if name == "" {
		name = s.cfg.Export.Format
	}
	scale := s.cfg.Export.Scale
	if v := q.Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("scale %q: %w", v, export.ErrInvalidScale))
			return
		}
		scale = n
	}

	format, err := export.Lookup(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := sessionFrom(r).Export(&buf, name, scale); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, export.ErrInvalidScale) || errors.Is(err, export.ErrUnknownFormat) {
			code = http.StatusBadRequest
		}
		writeError(w, code, err)
		return
	}

	filename := export.FileName(s.cfg.Export.BaseName, name)
	w.Header().Set("Content-Type", format.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
