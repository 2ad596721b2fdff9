package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/matzehuels/onepercent/pkg/history"
	"github.com/matzehuels/onepercent/pkg/observability"
	"github.com/matzehuels/onepercent/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore(10)
	runner := pipeline.NewRunner(nil, nil, nil)
	runner.History = store
	return New(runner, store, opts...), store
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
}

func TestRequestID_Echoed(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		wantType    string
		wantSubstr  string
	}{
		{"json svg", "/render", "application/json", `[[42, "answer"]]`, "image/svg+xml", "onepercent_circles"},
		{"csv text", "/render?format=txt", "text/csv", "value,label\n30,thirty\n", "text/plain; charset=utf-8", "30%"},
		{"yaml json", "/render?format=json", "application/yaml", "- [12, twelve]\n", "application/json", `"circles"`},
		{"yaml non-finite cell", "/render?format=txt", "application/yaml", "rows:\n  - [.nan, 42, On Track]\n", "text/plain; charset=utf-8", "42%"},
		{"sniffed", "/render?format=dot&width=400&height=300", "", `{"rows": [[5]]}`, "text/vnd.graphviz; charset=utf-8", "graph onepercent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := do(t, s, http.MethodPost, tt.target, tt.contentType, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if !strings.Contains(rec.Body.String(), tt.wantSubstr) {
				t.Errorf("body lacks %q", tt.wantSubstr)
			}
			if rec.Header().Get(RenderIDHeader) == "" || rec.Header().Get(FrameHashHeader) == "" {
				t.Error("missing render headers")
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty body", "/render", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "/render?format=gif", "[[1]]", http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad width", "/render?width=wide", "[[1]]", http.StatusBadRequest, "INVALID_INPUT"},
		{"negative height", "/render?height=-3", "[[1]]", http.StatusBadRequest, "INVALID_VIEWPORT"},
		{"bad seed", "/render?seed=x", "[[1]]", http.StatusBadRequest, "INVALID_INPUT"},
		{"no rows", "/render", "[]", http.StatusBadRequest, "INVALID_INPUT"},
		{"png raster too large", "/render?format=png&width=16384&height=16384&scale=100", "[[1]]", http.StatusBadRequest, "INVALID_VIEWPORT"},
		{"nan scale", "/render?scale=NaN", "[[1]]", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := do(t, s, http.MethodPost, tt.target, "application/json", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			body := decodeError(t, rec)
			if string(body.Code) != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.RequestID == "" {
				t.Error("error body lacks request ID")
			}
		})
	}
}

func TestRender_BodyTooLarge(t *testing.T) {
	s, _ := newTestServer(t, WithMaxBodyBytes(8))
	rec := do(t, s, http.MethodPost, "/render", "application/json", `[[1, "far too long a description"]]`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHistory(t *testing.T) {
	s, store := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/render", "application/json", `[[64, "squares"]]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d", rec.Code)
	}
	id := rec.Header().Get(RenderIDHeader)

	entries, _ := store.List(context.Background(), 0)
	if len(entries) != 1 || entries[0].Source != "http" {
		t.Fatalf("store entries = %+v", entries)
	}

	rec = do(t, s, http.MethodGet, "/history", "", "")
	var list struct {
		Entries []history.Entry `json:"entries"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 1 || list.Entries[0].ID != id {
		t.Errorf("history list = %+v", list)
	}

	rec = do(t, s, http.MethodGet, "/history/"+id, "", "")
	var entry history.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Value != 64 || entry.Description != "squares" {
		t.Errorf("entry = %+v", entry)
	}

	rec = do(t, s, http.MethodGet, "/history/unknown", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown entry status = %d, want 404", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/history?limit=-1", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative limit status = %d, want 400", rec.Code)
	}
}

func TestVersion(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/version", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"go_version"`) {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)

	s, _ := newTestServer(t)
	do(t, s, http.MethodGet, "/history/missing", "", "")

	if hooks.requests != 1 || hooks.lastStatus != http.StatusNotFound {
		t.Errorf("hooks = %+v", hooks)
	}
}

func TestWithDefaults_DropsInput(t *testing.T) {
	s, _ := newTestServer(t, WithDefaults(pipeline.Options{Input: "secret.csv", Width: 320, Height: 240}))
	if s.defaults.Input != "" {
		t.Error("WithDefaults kept the input path")
	}
	if s.defaults.Width != 320 {
		t.Errorf("Width = %v, want 320", s.defaults.Width)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	requests   int
	lastStatus int
}

func (h *recordingHooks) OnRequest(context.Context, string, string) { h.requests++ }
func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.lastStatus = status
}
