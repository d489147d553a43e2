// Package server exposes label sheet generation over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness probe, returns "ok"
//	GET  /version   build information
//	GET  /presets   JSON list of label stocks
//	GET  /preview   one label as PNG (?value=&header=&preset=)
//	POST /labels    JSON or form request, responds with the artifact
//
// Generation runs through a shared pipeline.Runner, so identical requests
// are served from its artifact cache.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/labelsheet/pkg/geometry"
	"github.com/matzehuels/labelsheet/pkg/httputil"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 64 << 10

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	Addr     string
	Runner   *pipeline.Runner
	Registry *geometry.Registry
	Logger   *log.Logger
	Workers  int // label render workers per request, 0 means one per CPU
	MaxCount int // 0 means pipeline.DefaultMaxCount
}

// Server is the label sheet HTTP service.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Registry == nil {
		cfg.Registry = geometry.NewRegistry()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}

	s := &Server{cfg: cfg, logger: cfg.Logger.WithPrefix("http")}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(httputil.LimitBody(MaxBodyBytes))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/presets", s.handlePresets)
	r.Get("/preview", s.handlePreview)
	r.Post("/labels", s.handleLabels)
	return r
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
