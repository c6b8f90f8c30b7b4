package orchestration

import (
	"time"

	"github.com/agbru/fiblike/internal/format"
)

// ProgressAggregator folds the updates of several backends into one average
// and an ETA. Both the CLI spinner and the TUI use it.
type ProgressAggregator struct {
	state *format.Progress
	count int
}

// NewProgressAggregator returns an aggregator for count backends, or nil when
// count is not positive.
func NewProgressAggregator(count int) *ProgressAggregator {
	if count <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgress(count), count: count}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	Index   int
	Value   float64
	Average float64
	ETA     time.Duration
}

// Update records u and returns the new aggregate.
func (a *ProgressAggregator) Update(u ProgressUpdate) AggregatedProgress {
	a.state.Update(u.Index, u.Value)
	return AggregatedProgress{
		Index:   u.Index,
		Value:   u.Value,
		Average: a.state.Average(),
		ETA:     a.state.ETA(),
	}
}

// Average returns the current mean progress.
func (a *ProgressAggregator) Average() float64 { return a.state.Average() }

// ETA returns the current remaining-time estimate.
func (a *ProgressAggregator) ETA() time.Duration { return a.state.ETA() }

// Count returns the number of backends tracked.
func (a *ProgressAggregator) Count() int { return a.count }

// IsMulti reports whether more than one backend is tracked.
func (a *ProgressAggregator) IsMulti() bool { return a.count > 1 }

// DrainChannel discards every update until the channel is closed.
func DrainChannel(updates <-chan ProgressUpdate) {
	for range updates {
	}
}
