package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Progress aggregates the completion of several concurrent computations and
// estimates the remaining time from the elapsed time, assuming a constant
// pace. It is safe for concurrent use.
type Progress struct {
	mu     sync.Mutex
	values []float64
	start  time.Time
	now    func() time.Time
}

// NewProgress tracks n computations.
func NewProgress(n int) *Progress {
	return &Progress{values: make([]float64, n), start: time.Now(), now: time.Now}
}

// Update records the completion of computation index, clamped to [0, 1].
// Out-of-range indexes are ignored.
func (p *Progress) Update(index int, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.values) {
		return
	}
	p.values[index] = min(max(value, 0), 1)
}

// Average returns the mean completion.
func (p *Progress) Average() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.averageLocked()
}

func (p *Progress) averageLocked() float64 {
	if len(p.values) == 0 {
		return 0
	}
	var total float64
	for _, v := range p.values {
		total += v
	}
	return total / float64(len(p.values))
}

// ETA estimates the remaining time. It returns 0 until some progress has been
// made, and once everything is done.
func (p *Progress) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	avg := p.averageLocked()
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := p.now().Sub(p.start)
	return time.Duration(float64(elapsed) * (1 - avg) / avg)
}

// ProgressBar renders a bar of width cells for progress in [0, 1].
func ProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), min(max(progress, 0), 1)*100, FormatETA(eta))
}
