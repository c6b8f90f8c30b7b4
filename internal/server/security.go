package server

import (
	"net/http"
	"strings"

	"github.com/agbru/fiblike/internal/config"
)

// SecurityConfig holds the response security headers and input limits.
type SecurityConfig struct {
	EnableCORS bool
	// AllowedOrigins lists the CORS origins; "*" allows any.
	AllowedOrigins []string
	AllowedMethods []string
	// MaxNValue bounds positions and list counts.
	MaxNValue uint64
}

// DefaultSecurityConfig allows GET from any origin and bounds positions to
// config.DefaultMaxN.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxNValue:      config.DefaultMaxN,
	}
}

// SecurityMiddleware sets the security headers and, when enabled, the CORS
// headers. Preflight OPTIONS requests are answered with 204 without reaching
// next.
func SecurityMiddleware(cfg SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			if cfg.EnableCORS {
				origin := r.Header.Get("Origin")
				for _, allowed := range cfg.AllowedOrigins {
					if allowed == "*" || allowed == origin {
						h.Set("Access-Control-Allow-Origin", allowed)
						h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
						h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
						h.Set("Access-Control-Max-Age", "86400")
						break
					}
				}
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
