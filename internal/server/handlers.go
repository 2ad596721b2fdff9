package server

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/matzehuels/onepercent/pkg/buildinfo"
	"github.com/matzehuels/onepercent/pkg/dataview"
	"github.com/matzehuels/onepercent/pkg/errors"
	"github.com/matzehuels/onepercent/pkg/pipeline"
)

// Response headers set by POST /render.
const (
	RenderIDHeader  = "X-Render-ID"
	FrameHashHeader = "X-Frame-Hash"
	CacheHeader     = "X-Cache"
)

type errorBody struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.maxBodyBytes))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	opts, err := s.renderOptions(r, body)
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Warn("render failed", "id", RequestID(r.Context()), "error", err)
		s.writeError(w, r, 0, err)
		return
	}

	format := opts.Formats[0]
	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set(RenderIDHeader, res.ID)
	h.Set(FrameHashHeader, res.FrameHash)
	if res.CacheHit {
		h.Set(CacheHeader, "hit")
	} else {
		h.Set(CacheHeader, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// renderOptions builds pipeline options from the server defaults and the
// request's query parameters.
func (s *Server) renderOptions(r *http.Request, body []byte) (pipeline.Options, error) {
	opts := s.defaults
	opts.Palette = append([]string(nil), s.defaults.Palette...)
	opts.Data = body
	opts.DataFormat = dataview.FormatFromContentType(r.Header.Get("Content-Type"))
	opts.Source = "http"

	if len(body) == 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	var err error
	if opts.Width, err = floatParam(q.Get("width"), opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), opts.Height); err != nil {
		return opts, err
	}
	if opts.Scale, err = floatParam(q.Get("scale"), opts.Scale); err != nil {
		return opts, err
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid seed %q", v)
		}
	}
	if v := q.Get("static"); v != "" {
		if opts.Static, err = strconv.ParseBool(v); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid static %q", v)
		}
	}
	return opts, nil
}

func floatParam(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid number %q", v)
	}
	return f, nil
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, 0, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	entries, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	entry, err := s.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "error", err)
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

// writeError responds with err. A zero status is derived from the error code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status == 0 {
		status = errors.HTTPStatus(err)
	}
	s.writeJSON(w, status, errorBody{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: RequestID(r.Context()),
	})
}
