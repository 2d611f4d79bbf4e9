// Package server exposes the generated site configuration over HTTP for
// inspection while authoring docs.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/generator"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
)

// Server serves the most recently published generation result.
type Server struct {
	router  chi.Router
	log     *slog.Logger
	errs    *foundation.HTTPErrorAdapter
	metrics http.Handler
	started time.Time

	mu      sync.RWMutex
	current *generator.Result
}

// New creates the server. metricsHandler may be nil, in which case /metrics
// answers 404.
func New(log *slog.Logger, metricsHandler http.Handler) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		log:     log,
		errs:    foundation.NewHTTPErrorAdapter(log),
		metrics: metricsHandler,
		started: time.Now(),
	}
	s.setupRoutes()
	return s
}

// Publish makes res the state served by the API.
func (s *Server) Publish(res *generator.Result) {
	s.mu.Lock()
	s.current = res
	s.mu.Unlock()
	if res != nil {
		s.log.Debug("Published generation result", logfields.BuildID(res.BuildID))
	}
}

func (s *Server) snapshot() (*generator.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, foundation.RuntimeError("no generation result published yet").Build()
	}
	return s.current, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(recoverer(s.errs))

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/sidebar", s.handleSidebar)
		r.Get("/head", s.handleHead)
		r.Get("/components", s.handleComponents)
		r.Get("/report", s.handleReport)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errs.WriteErrorResponse(w, r, foundation.NotFoundError("no such endpoint").WithContext("path", r.URL.Path).Build())
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryRuntime, "listen").WithContext("addr", addr).Build()
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("Inspect server listening", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return foundation.WrapError(err, foundation.CategoryRuntime, "serve").Build()
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return foundation.WrapError(err, foundation.CategoryRuntime, "shutdown").Build()
	}
	<-errCh
	return nil
}
