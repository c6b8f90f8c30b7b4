package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fiblike_active_requests",
		Help: "Current number of requests being served.",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fiblike_requests_total",
		Help: "Requests served, by response status code.",
	}, []string{"code"})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fiblike_cache_lookups_total",
		Help: "Result cache lookups, by outcome.",
	}, []string{"result"})
)

// Metrics exposes the server metrics in the Prometheus text format.
type Metrics struct {
	handler http.Handler
}

// NewMetrics returns the /metrics handler backed by the default registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// ServeHTTP writes the metrics.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Middleware tracks active requests and counts responses by status code.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		activeRequests.Inc()
		defer activeRequests.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		totalRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	})
}

func recordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}
