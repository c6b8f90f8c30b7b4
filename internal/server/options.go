package server

import (
	"log"
	"time"

	"github.com/agbru/fiblike/internal/logging"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. A nil logger keeps the default.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger logs through a standard library logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithTimeouts replaces the HTTP timeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) { s.timeouts = timeouts }
}

// WithSecurityConfig replaces the security headers and limits.
func WithSecurityConfig(cfg SecurityConfig) Option {
	return func(s *Server) { s.security = cfg }
}

// WithRateLimiter replaces the per-client rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		if rl != nil {
			s.limiter = rl
		}
	}
}

// Timeouts holds the HTTP server timeouts.
type Timeouts struct {
	// RequestTimeout bounds a single computation.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// DefaultServerTimeouts returns the timeouts used when none are configured.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  time.Minute,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    2 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}
