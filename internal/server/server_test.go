package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/config"
	terrors "github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/pipeline"
)

const hourBody = `{
	"start": "2024-01-01T00:00:00Z",
	"end": "2024-01-01T01:00:00Z",
	"width": 700,
	"events": [
		{"start": "2024-01-01T00:10:00Z", "label": "Deploy"},
		{"start": "2024-01-01T00:20:00Z", "end": "2024-01-01T00:40:00Z", "label": "Migration", "color": "#c00"}
	]
}`

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.New(io.Discard)
	return New(pipeline.NewRunner(c, nil, logger), cfg, logger)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, err := uuid.Parse(rec.Header().Get("X-Request-Id")); err != nil {
		t.Errorf("X-Request-Id = %q, want a UUID", rec.Header().Get("X-Request-Id"))
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestRequestIDEcho(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("X-Request-Id = %q, want echo", got)
	}
}

func TestRenderSVG(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/v1/render", hourBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<svg") {
		t.Errorf("body does not start with <svg: %.40s", body)
	}
	for _, want := range []string{"Deploy", "Migration", `stroke="#c00"`} {
		if !strings.Contains(body, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if rec.Header().Get("X-Timeline-Scale") == "" {
		t.Error("X-Timeline-Scale header missing")
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}
}

func TestRenderJSONCached(t *testing.T) {
	s := newTestServer(t, nil)
	first := do(t, s, http.MethodPost, "/v1/render?format=json", hourBody)
	second := do(t, s, http.MethodPost, "/v1/render?format=json", hourBody)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d, %d", first.Code, second.Code)
	}
	if second.Header().Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", second.Header().Get("X-Cache"))
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached body differs")
	}

	var out struct {
		Width float64 `json:"width"`
		Rows  []struct {
			Label   string `json:"label"`
			Visible bool   `json:"visible"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if out.Width != 700 || len(out.Rows) != 2 || !out.Rows[1].Visible {
		t.Errorf("layout = %+v", out)
	}
}

func TestRenderOptionsMerge(t *testing.T) {
	s := newTestServer(t, nil)
	body := `{
		"start": 1704067200000,
		"end": 1704070800000,
		"events": [{"start": "2024-01-01T00:30:00Z", "label": "x"}],
		"options": {"data": {"color": "#123456"}, "font_file": "/does/not/exist.ttf"}
	}`
	rec := do(t, s, http.MethodPost, "/v1/render", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "#123456") {
		t.Error("request color not applied")
	}
}

func TestRenderOptionsZeroMargin(t *testing.T) {
	s := newTestServer(t, nil)
	body := `{
		"start": "2024-01-01T00:00:00Z",
		"end": "2024-01-01T01:00:00Z",
		"options": {"margin": {"left": 0, "right": 0}}
	}`
	rec := do(t, s, http.MethodPost, "/v1/render?format=json", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var out struct {
		Width     float64 `json:"width"`
		DrawLeft  float64 `json:"draw_left"`
		DrawRight float64 `json:"draw_right"`
		Top       float64 `json:"top"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if out.DrawLeft != 0 || out.DrawRight != out.Width {
		t.Errorf("drawing area = %v..%v, want 0..%v", out.DrawLeft, out.DrawRight, out.Width)
	}
	if out.Top != 20 {
		t.Errorf("top = %v, want the default 20", out.Top)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"bad format", "/v1/render?format=gif", hourBody, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad json", "/v1/render", `{"events": [`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad date", "/v1/render", `{"events": [{"start": "soon"}]}`, http.StatusBadRequest, "INVALID_DATE"},
		{"end before start", "/v1/render", `{"events": [{"start": "2024-01-02", "end": "2024-01-01"}]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad color", "/v1/render", `{"options": {"scale": {"color": "#12"}}}`, http.StatusBadRequest, "INVALID_OPTIONS"},
		{"negative width", "/v1/render", `{"width": -5}`, http.StatusBadRequest, "INVALID_OPTIONS"},
	}
	s := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			e := decodeError(t, rec)
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body missing request_id")
			}
		})
	}
}

func TestRenderBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBody = 16
	s := newTestServer(t, cfg)
	rec := do(t, s, http.MethodPost, "/v1/render", hourBody)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestScale(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet,
		"/v1/scale?start=2024-01-01T00:00:00Z&end=2024-01-01T01:00:00Z&width=700&label_width=60&fill=0.5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var res pipeline.ScaleResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Spec.Major != 900 || res.Spec.Minor != 300 || res.Major != "15m0s" {
		t.Errorf("result = %+v", res)
	}

	for _, target := range []string{
		"/v1/scale?start=2024-01-01",
		"/v1/scale?start=2024-01-01&end=2024-01-02&width=wide",
		"/v1/scale?start=2024-01-01&end=2024-01-02&fill=-1",
	} {
		if rec := do(t, s, http.MethodGet, target, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestRouting(t *testing.T) {
	s := newTestServer(t, nil)
	if rec := do(t, s, http.MethodGet, "/v1/nothing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown route: %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/v1/render", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET render: %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{terrors.New(terrors.ErrCodeInvalidDate, "x"), http.StatusBadRequest},
		{terrors.New(terrors.ErrCodeInvalidContainer, "x"), http.StatusBadRequest},
		{terrors.New(terrors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{terrors.New(terrors.ErrCodeTimeout, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestServeShutdown(t *testing.T) {
	s := newTestServer(t, nil)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
