package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/onepercent/pkg/history"
	"github.com/matzehuels/onepercent/pkg/pipeline"
)

// Default limits.
const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultHistoryLimit = 50
	shutdownTimeout     = 5 * time.Second
)

// Server serves the render API.
type Server struct {
	runner       *pipeline.Runner
	history      history.Store
	defaults     pipeline.Options
	logger       *log.Logger
	maxBodyBytes int64
	historyLimit int
	router       chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the render options every request starts from.
// Input fields of opts are ignored.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) {
		opts.DataView, opts.Data, opts.Input, opts.DataFormat = nil, nil, "", ""
		s.defaults = opts
	}
}

// WithMaxBodyBytes limits the size of a render request body.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithHistoryLimit sets the default page size of GET /history.
func WithHistoryLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// New creates a server rendering with runner and listing renders from store.
// A nil store means the runner's history store.
func New(runner *pipeline.Runner, store history.Store, opts ...Option) *Server {
	if store == nil {
		store = runner.History
	}
	if store == nil {
		store = history.NewMemoryStore(0)
		runner.History = store
	}
	s := &Server{
		runner:       runner,
		history:      store,
		logger:       log.NewWithOptions(io.Discard, log.Options{}),
		maxBodyBytes: DefaultMaxBodyBytes,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Post("/render", s.handleRender)
	r.Get("/history", s.handleHistoryList)
	r.Get("/history/{id}", s.handleHistoryGet)
	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
