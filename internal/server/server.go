// Package server exposes the word-cloud pipeline over HTTP.
//
// Routes:
//
//	POST /v1/layout   words or text → layout JSON
//	POST /v1/render   words or text → SVG, PNG or JSON artifact
//	POST /v1/visualize  layout JSON → artifact
//	GET  /v1/shapes   available shapes and palettes
//	GET  /healthz     liveness and version
//
// Request bodies are [pipeline.Options] encoded as JSON, so the API accepts
// exactly the options the CLI does. Every response carries an X-Request-ID;
// errors are JSON objects with a machine-readable code.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultRequestTimeout bounds a single pipeline run.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxBodyBytes caps request bodies.
	DefaultMaxBodyBytes = 4 << 20

	// keyPrefix scopes API cache entries away from CLI entries in shared
	// backends.
	keyPrefix = "api:"

	shutdownTimeout = 10 * time.Second
)

// Config configures a Server. Zero values select defaults.
type Config struct {
	Addr           string
	Cache          cache.Cache
	Logger         *log.Logger
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// Server serves the pipeline over HTTP.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a Server. The server owns cfg.Cache and closes it in
// [Server.Close].
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	keyer := cache.NewScopedKeyer(&cache.DefaultKeyer{}, keyPrefix)
	s := &Server{
		cfg:    cfg,
		runner: pipeline.NewRunner(cfg.Cache, keyer, cfg.Logger),
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s
}

// routes builds the chi router with middleware.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(serverHeader)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/shapes", s.handleShapes)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))
			r.Use(middleware.AllowContentType("application/json"))
			r.Post("/layout", s.handleLayout)
			r.Post("/render", s.handleRender)
			r.Post("/visualize", s.handleVisualize)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, errMethodNotAllowed(r.Method))
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.serve(ctx, srv)
}

func (s *Server) serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the cache.
func (s *Server) Close() error {
	return s.runner.Close()
}
