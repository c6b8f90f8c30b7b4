//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fiblike/internal/format"
	"github.com/agbru/fiblike/internal/orchestration"
)

const (
	// TruncationLimit is the digit count above which the details section
	// abbreviates a value.
	TruncationLimit = 100
	// DisplayEdges is the number of digits kept on each side of an
	// abbreviated value.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in cells.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// progressLabel names the bar depending on how many backends contribute.
func progressLabel(count int) string {
	if count > 1 {
		return "Avg progress"
	}
	return "Progress"
}

// DisplayProgress shows a spinner with a progress bar and an ETA until
// updates is closed, then prints a final 100% line.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, count int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(count)
	if agg == nil {
		orchestration.DrainChannel(updates)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	label := progressLabel(count)
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "%s: %s\n", label, format.FormatProgressBarWithETA(1, time.Nanosecond, ProgressBarWidth))
				return
			}
			agg.Update(u)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label, format.FormatProgressBarWithETA(agg.Average(), agg.ETA(), ProgressBarWidth)))
		}
	}
}
