package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fiblike/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the pointer has to survive the copies for the
// computation goroutines to reach the program.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if one is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// progressReporter forwards orchestration progress as ProgressMsg.
type progressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*progressReporter)(nil)

// DisplayProgress drains the channel and sends one ProgressMsg per update.
func (p *progressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, count int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(count)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}
	for u := range updates {
		ap := agg.Update(u)
		p.ref.Send(ProgressMsg{Generation: p.generation, Value: ap.Average, ETA: ap.ETA})
	}
}
