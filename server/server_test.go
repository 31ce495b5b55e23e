// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/pixeldraw"
	"github.com/gogpu/pixeldraw/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Canvas.Width = 100
	cfg.Canvas.Height = 100
	return cfg
}

type testServer struct {
	t   *testing.T
	srv *Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	srv := New(testConfig())
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv}
}

func (ts *testServer) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func (ts *testServer) create() string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/sessions", "")
	if rec.Code != http.StatusCreated {
		ts.t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body)
	}
	return "/api/sessions/" + decode[pixeldraw.State](ts.t, rec).ID
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode[map[string]any](t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %v, want ok", got)
	}
}

func TestIndexAndStatic(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<canvas") {
		t.Errorf("GET / = %d, body lacks canvas", rec.Code)
	}
	for _, path := range []string{"/static/app.js", "/static/style.css"} {
		if rec := ts.do(http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
	js := ts.do(http.MethodGet, "/static/app.js", "").Body.String()
	for _, label := range []string{"Eraser: On", "Eraser: Off"} {
		if !strings.Contains(js, label) {
			t.Errorf("app.js lacks eraser label %q", label)
		}
	}
}

func TestHelpLocalized(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/help", "", "Accept-Language", "fr-FR,fr;q=0.9")
	resp := decode[helpResponse](t, rec)
	if resp.Lang != "fr" {
		t.Errorf("lang = %q, want fr", resp.Lang)
	}
	if len(resp.Lines) == 0 || resp.Title == "" {
		t.Errorf("empty help: %+v", resp)
	}

	rec = ts.do(http.MethodGet, "/api/help", "")
	if got := decode[helpResponse](t, rec).Lang; got != "en" {
		t.Errorf("default lang = %q, want en", got)
	}
}

func TestCreateAndGetSession(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()

	rec := ts.do(http.MethodGet, base, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET session = %d", rec.Code)
	}
	st := decode[pixeldraw.State](t, rec)
	if st.Width != 100 || st.Height != 100 || st.GridSize != 10 || st.Cursor != -1 {
		t.Errorf("state = %+v", st)
	}
	if ts.srv.Sessions() != 1 {
		t.Errorf("Sessions() = %d, want 1", ts.srv.Sessions())
	}
}

func TestUnknownSession(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/api/sessions/nope", "/api/sessions/nope/undo"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "undo") {
			method = http.MethodPost
		}
		rec := ts.do(method, path, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s = %d, want 404", method, path, rec.Code)
		}
		if _, ok := decode[map[string]string](t, rec)["error"]; !ok {
			t.Errorf("%s body lacks error field", path)
		}
	}
}

func TestPaintUndoRedo(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()

	ts.do(http.MethodPost, base+"/color", `{"color":"#ff0000"}`)
	ts.do(http.MethodPost, base+"/pointer/down", "")
	rec := ts.do(http.MethodPost, base+"/pointer/move", `{"x":25,"y":25}`)
	ts.do(http.MethodPost, base+"/pointer/up", "")

	move := decode[moveResponse](t, rec)
	if !move.Painted || move.Rect != (rect{X: 20, Y: 20, W: 10, H: 10}) {
		t.Errorf("move = %+v", move)
	}
	if move.Color != "#ff0000" {
		t.Errorf("painted color = %q, want #ff0000", move.Color)
	}
	if !move.State.CanUndo || move.State.Cursor != 1 {
		t.Errorf("state after move = %+v", move.State)
	}

	st := decode[pixeldraw.State](t, ts.do(http.MethodPost, base+"/undo", ""))
	if st.Cursor != 0 || !st.CanRedo {
		t.Errorf("after undo = %+v", st)
	}
	if px := pixelAt(t, ts, base, 25, 25); px != [3]uint32{0xffff, 0xffff, 0xffff} {
		t.Errorf("after undo (25,25) = %v, want white", px)
	}

	ts.do(http.MethodPost, base+"/redo", "")
	if px := pixelAt(t, ts, base, 25, 25); px != [3]uint32{0xffff, 0, 0} {
		t.Errorf("after redo (25,25) = %v, want red", px)
	}
}

func pixelAt(t *testing.T, ts *testServer, base string, x, y int) [3]uint32 {
	t.Helper()
	rec := ts.do(http.MethodGet, base+"/canvas.png", "")
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("canvas Content-Type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]uint32{r, g, b}
}

func TestUndoRedoAtBoundaries(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()
	for _, op := range []string{"/undo", "/redo"} {
		rec := ts.do(http.MethodPost, base+op, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s on empty history = %d, want 200", op, rec.Code)
		}
	}
}

func TestClearUndoable(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()

	ts.do(http.MethodPost, base+"/color", `{"color":"blue"}`)
	ts.do(http.MethodPost, base+"/pointer/down", "")
	ts.do(http.MethodPost, base+"/pointer/move", `{"x":5,"y":5}`)
	ts.do(http.MethodPost, base+"/pointer/up", "")

	ts.do(http.MethodPost, base+"/clear", "")
	if px := pixelAt(t, ts, base, 5, 5); px != [3]uint32{0xffff, 0xffff, 0xffff} {
		t.Errorf("after clear (5,5) = %v, want white", px)
	}
	ts.do(http.MethodPost, base+"/undo", "")
	if px := pixelAt(t, ts, base, 5, 5); px != [3]uint32{0, 0, 0xffff} {
		t.Errorf("after undo clear (5,5) = %v, want blue", px)
	}
}

func TestColorInvalid(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()

	for _, body := range []string{`{"color":"nope"}`, `{"colour":"red"}`, `{`} {
		if rec := ts.do(http.MethodPost, base+"/color", body); rec.Code != http.StatusBadRequest {
			t.Errorf("color %s = %d, want 400", body, rec.Code)
		}
	}
}

func TestMoveRequiresCoordinates(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()
	if rec := ts.do(http.MethodPost, base+"/pointer/move", `{"x":1}`); rec.Code != http.StatusBadRequest {
		t.Errorf("move without y = %d, want 400", rec.Code)
	}
}

func TestMoveFarOffCanvas(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()
	ts.do(http.MethodPost, base+"/pointer/down", "")

	for _, body := range []string{
		`{"x":1e300,"y":5}`,
		`{"x":-1e300,"y":5}`,
		`{"x":5,"y":1e300}`,
	} {
		move := decode[moveResponse](t, ts.do(http.MethodPost, base+"/pointer/move", body))
		if !move.Painted || move.Rect != (rect{}) {
			t.Errorf("move %s = %+v, want painted with an empty rect", body, move)
		}
	}
	if px := pixelAt(t, ts, base, 0, 5); px != [3]uint32{0xffff, 0xffff, 0xffff} {
		t.Errorf("(0,5) = %v, want white", px)
	}
}

func TestEraser(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()

	st := decode[pixeldraw.State](t, ts.do(http.MethodPost, base+"/eraser", ""))
	if !st.Eraser {
		t.Error("toggle from off did not enable eraser")
	}
	st = decode[pixeldraw.State](t, ts.do(http.MethodPost, base+"/eraser", `{"on":true}`))
	if !st.Eraser {
		t.Error(`{"on":true} disabled eraser`)
	}
	ts.do(http.MethodPost, base+"/pointer/down", "")
	move := decode[moveResponse](t, ts.do(http.MethodPost, base+"/pointer/move", `{"x":1,"y":1}`))
	if move.Color != "#ffffff" {
		t.Errorf("eraser painted %q, want background #ffffff", move.Color)
	}
	st = decode[pixeldraw.State](t, ts.do(http.MethodPost, base+"/color", `{"color":"red"}`))
	if st.Eraser {
		t.Error("picking a color left the eraser on")
	}
}

func TestExport(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()

	rec := ts.do(http.MethodGet, base+"/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d: %s", rec.Code, rec.Body)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="pixel-art.png"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	if err != nil || cfg.Width != 100 {
		t.Errorf("DecodeConfig = %+v, %v", cfg, err)
	}

	rec = ts.do(http.MethodGet, base+"/export?format=bmp&scale=2", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/bmp" {
		t.Errorf("bmp export = %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "pixel-art.bmp") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	for _, q := range []string{"?format=gif", "?scale=0", "?scale=x", "?scale=99"} {
		if rec := ts.do(http.MethodGet, base+"/export"+q, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("export%s = %d, want 400", q, rec.Code)
		}
	}
}

func TestDeleteSession(t *testing.T) {
	ts := newTestServer(t)
	base := ts.create()

	if rec := ts.do(http.MethodDelete, base, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d, want 204", rec.Code)
	}
	if rec := ts.do(http.MethodGet, base, ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET after DELETE = %d, want 404", rec.Code)
	}
}

func TestSessionEviction(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxSessions = 1
	srv := New(cfg)
	defer srv.Close()

	for i := 0; i < 40; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	}
	// One entry per shard at most.
	if n := srv.Sessions(); n > 16 {
		t.Errorf("Sessions() = %d, want <= 16", n)
	}
}

func TestServeShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Server.ShutdownTimeout = time.Second
	srv := New(cfg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Post("http://"+ln.Addr().String()+"/api/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if srv.Sessions() != 0 {
		t.Errorf("Sessions() = %d after shutdown, want 0", srv.Sessions())
	}
}
