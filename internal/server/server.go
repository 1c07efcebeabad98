// Package server exposes timeline rendering over HTTP.
//
// Routes:
//
//	POST /v1/render?format=svg|png|pdf|json   render a JSON request body
//	GET  /v1/scale?start=&end=&width=         plan an axis without events
//	GET  /healthz                             liveness
//
// Every response carries an X-Request-Id header; a request ID sent by the
// client is echoed back, otherwise a UUID is generated.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/timeline/pkg/config"
	terrors "github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/pipeline"
	"github.com/matzehuels/timeline/pkg/timeline"
)

const shutdownTimeout = 5 * time.Second

// Server serves render requests through a shared pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	defaults timeline.Options
	width    float64
	maxBody  int64
	logger   *log.Logger
	srv      *http.Server
}

// New creates a server. Timeline defaults and the render width come from
// cfg.Timeline and cfg.Render; request options are merged on top.
func New(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		defaults: cfg.Timeline,
		width:    cfg.Render.Width,
		maxBody:  cfg.Server.MaxBody,
		logger:   logger,
	}
	if s.width <= 0 {
		s.width = pipeline.DefaultWidth
	}
	if s.maxBody <= 0 {
		s.maxBody = 1 << 20
	}
	s.srv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       time.Minute,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/scale", s.handleScale)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, string(terrors.ErrCodeNotFound), "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe serves on addr (the configured address when empty) until
// ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = s.srv.Addr
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.logger.Info("listening", "addr", lis.Addr().String())
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(lis) }()

	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := s.srv.Shutdown(cctx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
