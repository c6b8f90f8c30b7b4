package orchestration

import (
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/fiblike/internal/config"
)

// CalculationResult is the outcome of one backend for one request. Exactly one
// of Value, Position or Terms is meaningful, depending on the mode.
type CalculationResult struct {
	// Name is the backend name ("big", "int64", ...).
	Name string
	// Mode is the computation that ran: "term", "find" or "list".
	Mode string
	// Value is the decimal term in term mode.
	Value string
	// Position is the 1-based position in find mode.
	Position uint64
	// Terms are the leading terms in list mode.
	Terms    []string
	Duration time.Duration
	Err      error
}

// Answer renders the result so that answers from different backends can be
// compared as strings.
func (r CalculationResult) Answer() string {
	switch r.Mode {
	case config.ModeFind:
		return strconv.FormatUint(r.Position, 10)
	case config.ModeList:
		return strings.Join(r.Terms, ", ")
	default:
		return r.Value
	}
}

// ProgressUpdate is a progress report from the backend at Index.
type ProgressUpdate struct {
	Index int
	Value float64
}

// ProgressReporter displays progress updates until the channel is closed, then
// calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, count int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan ProgressUpdate, count int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, count int, out io.Writer) {
	f(wg, updates, count, out)
}

// NullProgressReporter drains the updates without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(updates)
}

// ResultPresenter formats results for the user.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per backend.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult displays the final answer.
	PresentResult(result CalculationResult, cfg config.AppConfig, out io.Writer)
	ErrorHandler
}

// ErrorHandler reports a failed computation and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
