package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wordser/wordser/internal/config"
	"github.com/wordser/wordser/internal/core"
	apperrors "github.com/wordser/wordser/internal/errors"
	"github.com/wordser/wordser/internal/observability"
	"github.com/wordser/wordser/internal/server/handlers"
	servermw "github.com/wordser/wordser/internal/server/middleware"
)

// Lookups is the set of pipelines the API routes call. *engine.Service
// satisfies it.
type Lookups interface {
	Synonyms(ctx context.Context, req core.LookupRequest) (core.Synonyms, error)
	Summarize(ctx context.Context, req core.LookupRequest) (core.Summary, error)
	Sentiment(ctx context.Context, req core.LookupRequest) (core.Sentiment, error)
	Keywords(ctx context.Context, req core.LookupRequest) (core.Keywords, error)
}

// Server represents the HTTP server. The underlying *http.Server is built
// once in New, so Serve and Shutdown may run on different goroutines.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	cfg     config.ServerConfig
	lookups Lookups
}

// New builds the router. API routes are registered only when lookups is
// non-nil.
func New(cfg config.ServerConfig, lookups Lookups) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(servermw.RequestID)      // correlation ID first
	r.Use(servermw.RequestMetrics) // measures everything below
	r.Use(servermw.Recovery)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewNotFoundError("The requested resource was not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		HandleError(w, req, apperrors.NewMethodNotAllowedError("The requested method is not allowed for this resource"))
	})

	s := &Server{
		router:  r,
		cfg:     cfg,
		lookups: lookups,
		server: &http.Server{
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}

	handlers.SetHTTPErrorResponder(HandleError)
	s.registerRoutes()

	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Start listens on the configured address and blocks until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. After Shutdown it closes ln and returns
// nil immediately.
func (s *Server) Serve(ln net.Listener) error {
	if logger := observability.ServerLogger; logger != nil {
		logger.Info("Starting HTTP server",
			zap.String("host", s.cfg.Host),
			zap.Int("port", s.cfg.Port),
			zap.String("addr", ln.Addr().String()))
	}

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	if logger := observability.ServerLogger; logger != nil {
		logger.Info("Shutting down HTTP server")
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the underlying router for testing and instrumentation
func (s *Server) Handler() http.Handler {
	return s.router
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.cfg.Port
}
