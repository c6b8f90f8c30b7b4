package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/fiblike/internal/config"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/format"
	"github.com/agbru/fiblike/internal/metrics"
	"github.com/agbru/fiblike/internal/orchestration"
	"github.com/agbru/fiblike/internal/ui"
)

// CLIProgressReporter displays progress with DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, count int, out io.Writer) {
	DisplayProgress(wg, updates, count, out)
}

// CLIResultPresenter presents results on the terminal.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per backend. Padding is computed on
// the plain text so colour codes do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durWidth := len("Numeric"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durWidth = max(durWidth, len(FormatDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%s%-*s   %-*s   %s%s\n", th.Bold, nameWidth, "Numeric", durWidth, "Duration", "Status", th.Reset)
	for _, res := range results {
		status := fmt.Sprintf("%sSuccess%s", th.Success, th.Reset)
		if res.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", th.Error, res.Err, th.Reset)
		}
		fmt.Fprintf(out, "%s%-*s%s   %s%-*s%s   %s\n",
			th.Primary, nameWidth, res.Name, th.Reset,
			th.Warning, durWidth, FormatDuration(res.Duration), th.Reset,
			status)
	}
}

// PresentResult prints the result line.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, cfg config.AppConfig, out io.Writer) {
	fmt.Fprintln(out)
	DisplayResult(result, cfg, out)
}

// HandleError prints a status line for err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.Colors{})
}

// FormatDuration formats d for tables, showing "< 1µs" for zero.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// DisplayMemoryStats prints the memory used by a computation.
func DisplayMemoryStats(usage metrics.MemoryUsage, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(usage.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(usage.Allocated))
	fmt.Fprintf(out, "  Heap objects:    %s\n", format.GroupDigits(fmt.Sprint(usage.Objects)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", usage.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %s\n", FormatDuration(usage.GCPause))
}
