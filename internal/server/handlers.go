package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/timeline/pkg/buildinfo"
	terrors "github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/pipeline"
	"github.com/matzehuels/timeline/pkg/sink"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// renderRequest is the body of POST /v1/render.
type renderRequest struct {
	Events  []timeline.Event  `json:"events"`
	Start   any               `json:"start,omitempty"`
	End     any               `json:"end,omitempty"`
	Width   float64           `json:"width,omitempty"`
	Options json.RawMessage   `json:"options,omitempty"`
	Refresh bool              `json:"refresh,omitempty"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := sink.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var req renderRequest
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE",
				"request body exceeds "+strconv.FormatInt(s.maxBody, 10)+" bytes")
			return
		}
		s.fail(w, r, terrors.Wrap(terrors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	opts, err := s.options(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	width := req.Width
	if width == 0 {
		width = s.width
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Events:   req.Events,
		Width:    width,
		Timeline: opts,
		Formats:  []string{string(format)},
		Refresh:  req.Refresh,
		Logger:   s.logger,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Cache", cacheStatus)
	if res.Layout.HasScale() {
		w.Header().Set("X-Timeline-Scale", res.Layout.Spec.String())
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[string(format)])
}

// options decodes the request's options, then its period, onto the server
// defaults key by key, so an explicit 0 in the request wins. Fonts stay
// under server control.
func (s *Server) options(req renderRequest) (timeline.Options, error) {
	opts := s.defaults
	if len(req.Options) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Options))
		dec.UseNumber()
		if err := dec.Decode(&opts); err != nil {
			return timeline.Options{}, terrors.Wrap(terrors.ErrCodeInvalidOptions, err, "decode options")
		}
		opts.FontFile = s.defaults.FontFile
	}
	if req.Start != nil {
		opts.Start = req.Start
	}
	if req.End != nil {
		opts.End = req.End
	}
	return opts, nil
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := pipeline.ScaleRequest{Timeline: s.defaults, Width: s.width}
	if v := q.Get("start"); v != "" {
		req.Start = v
	}
	if v := q.Get("end"); v != "" {
		req.End = v
	}
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"width", &req.Width},
		{"label_width", &req.LabelWidth},
		{"fill", &req.FillFactor},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			s.fail(w, r, terrors.New(terrors.ErrCodeInvalidOptions, "%s must be a positive number, got %q", p.name, v))
			return
		}
		*p.dst = f
	}

	res, err := pipeline.PlanScale(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// fail maps err to a status and writes it as JSON.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	code := string(terrors.GetCode(err))
	if code == "" {
		code = string(terrors.ErrCodeInternal)
	}
	writeJSON(w, status, errorResponse{
		Error:     terrors.UserMessage(err),
		Code:      code,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// statusFor maps error codes to HTTP statuses: INVALID_* is the client's
// fault, UNSUPPORTED means a missing converter, anything else is ours.
func statusFor(err error) int {
	switch {
	case terrors.IsInvalid(err):
		return http.StatusBadRequest
	case terrors.Is(err, terrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
