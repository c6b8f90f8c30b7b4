package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fiblike/internal/sequence"
)

var (
	computationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fiblike_computations_total",
			Help: "The total number of sequence computations processed",
		},
		[]string{"numeric", "mode", "status"},
	)
	computationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fiblike_computation_duration_seconds",
			Help: "The duration of sequence computations in seconds",
		},
		[]string{"numeric", "mode"},
	)
)

// Status labels recorded for each computation.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// statusOf classifies a computation outcome. A missing value is a normal
// answer of the find mode, not a failure.
func statusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, sequence.ErrNotFound):
		return StatusNotFound
	default:
		return StatusError
	}
}

// instrumented decorates an Engine with a trace span, Prometheus metrics and
// a debug log event per call.
type instrumented struct {
	Engine
}

// Instrument wraps e. Wrapping an already instrumented engine returns it
// unchanged.
func Instrument(e Engine) Engine {
	if _, ok := e.(*instrumented); ok {
		return e
	}
	return &instrumented{Engine: e}
}

func (i *instrumented) observe(ctx context.Context, mode string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := otel.Tracer("engine").Start(ctx, mode,
		trace.WithAttributes(append(attrs,
			attribute.String("numeric", i.Name()),
		)...))
	start := time.Now()

	return ctx, func(err error) {
		duration := time.Since(start).Seconds()
		status := statusOf(err)
		if status == StatusError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		computationsTotal.WithLabelValues(i.Name(), mode, status).Inc()
		computationDuration.WithLabelValues(i.Name(), mode).Observe(duration)

		log.Debug().
			Str("numeric", i.Name()).
			Str("mode", mode).
			Float64("duration", duration).
			Str("status", status).
			Msg("computation completed")
	}
}

// finish reports the outcome of a call through done. A panic is recorded as
// an error and then resumed.
func finish(done func(error), err *error) {
	if r := recover(); r != nil {
		done(fmt.Errorf("panic: %v", r))
		panic(r)
	}
	done(*err)
}

func (i *instrumented) Term(ctx context.Context, seed Seed, n uint64, report sequence.ProgressFunc) (result string, err error) {
	ctx, done := i.observe(ctx, "term", attribute.Int64("n", int64(n)))
	defer finish(done, &err)
	return i.Engine.Term(ctx, seed, n, report)
}

func (i *instrumented) Find(ctx context.Context, seed Seed, target string) (pos uint64, err error) {
	ctx, done := i.observe(ctx, "find", attribute.Int("target_digits", len(target)))
	defer finish(done, &err)
	return i.Engine.Find(ctx, seed, target)
}

func (i *instrumented) Terms(ctx context.Context, seed Seed, count int) (terms []string, err error) {
	ctx, done := i.observe(ctx, "list", attribute.Int("count", count))
	defer finish(done, &err)
	return i.Engine.Terms(ctx, seed, count)
}
