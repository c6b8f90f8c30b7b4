// Package server exposes the sequence engines over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/agbru/fiblike/internal/cache"
	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/logging"
)

// Server is the HTTP API. Results are memoized in an LRU cache shared by all
// requests.
type Server struct {
	factory    *engine.Factory
	cfg        config.AppConfig
	httpServer *http.Server
	logger     logging.Logger
	limiter    *RateLimiter
	security   SecurityConfig
	metrics    *Metrics
	timeouts   Timeouts
	results    *cache.Cache[computed]
}

// NewServer builds a server for cfg. The security limit and request timeout
// default to cfg.MaxN and cfg.Timeout.
func NewServer(factory *engine.Factory, cfg config.AppConfig, opts ...Option) (*Server, error) {
	s := &Server{
		factory:  factory,
		cfg:      cfg,
		logger:   logging.NewLogger(os.Stdout, "server"),
		security: DefaultSecurityConfig(),
		metrics:  NewMetrics(),
		timeouts: DefaultServerTimeouts(),
	}
	if cfg.MaxN > 0 {
		s.security.MaxNValue = cfg.MaxN
	}
	if cfg.Timeout > 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	results, err := cache.New[computed](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	s.results = results

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.Routes(),
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s, nil
}

// Routes returns the router with the full middleware chain.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(SecurityMiddleware(s.security))
	r.Use(s.loggingMiddleware)
	r.Use(s.metrics.Middleware)

	r.Get("/health", s.handleHealth)
	r.Get("/numerics", s.handleNumerics)
	r.Handle("/metrics", s.metrics)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(s.limiter))
		r.Get("/term", s.handleTerm)
		r.Get("/find", s.handleFind)
		r.Get("/list", s.handleList)
	})
	return r
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("duration", time.Since(start)),
			logging.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Start serves on the configured port until ctx is done or SIGINT/SIGTERM is
// received, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", logging.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	go s.cleanupLoop(ctx)

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections")
	case err := <-errCh:
		if err != nil {
			return apperrors.NewServerError("server stopped unexpectedly", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// cleanupLoop periodically forgets idle rate limit buckets.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.limiter.Cleanup(); n > 0 {
				s.logger.Debug("rate limiter cleanup", logging.Int("removed", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
