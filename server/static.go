// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"embed"
	"io"
	"net/http"
)

//go:embed static
var staticFS embed.FS

func serveIndex(w http.ResponseWriter, _ *http.Request) {
	f, err := staticFS.Open("static/index.html")
	if err != nil {
		http.Error(w, "index not found", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.Copy(w, f)
}
