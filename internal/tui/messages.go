package tui

import (
	"time"

	"github.com/agbru/fiblike/internal/orchestration"
)

// ProgressMsg carries the progress of the running computation.
type ProgressMsg struct {
	Generation uint64
	Value      float64
	ETA        time.Duration
}

// ResultMsg carries the outcome of a computation.
type ResultMsg struct {
	Generation uint64
	Result     orchestration.CalculationResult
}
