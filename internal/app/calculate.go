package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/fiblike/internal/cli"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/metrics"
	"github.com/agbru/fiblike/internal/orchestration"
	"github.com/agbru/fiblike/internal/ui"
)

// runCalculate runs one computation on the selected backends and prints the
// answer.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := setupLifecycle(ctx, a.Config.Timeout)
	defer cancel()

	engines, err := a.Factory.Resolve(a.Config.Numeric)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if a.Config.Details && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(engines, out)
	}

	// Progress goes to stderr so that stdout carries only the answer.
	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.ErrWriter
	if a.Config.Quiet || !ui.IsTerminal(a.ErrWriter) {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	var results []orchestration.CalculationResult
	usage := metrics.Measure(func() {
		results = orchestration.ExecuteCalculations(ctx, engines, a.Config, reporter, progressOut)
	})

	code := a.presentResults(results, out)
	if code != apperrors.ExitSuccess {
		return code
	}

	best := orchestration.FastestSuccess(results)
	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(usage, out)
	}
	if a.Config.OutputFile != "" {
		if err := cli.WriteResultToFile(a.Config.OutputFile, *best, a.Config); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			cli.DisplaySavedNotice(out, a.Config.OutputFile)
		}
	}
	return apperrors.ExitSuccess
}

// presentResults prints the answer, or the comparison when several backends
// ran, and returns the exit code. In quiet mode the comparison goes to the
// error writer and only the answer is printed on out.
func (a *Application) presentResults(results []orchestration.CalculationResult, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}

	if len(results) > 1 {
		if !a.Config.Quiet {
			return orchestration.AnalyzeComparisonResults(results, a.Config, presenter, out)
		}
		code := orchestration.AnalyzeComparisonResults(results, a.Config, presenter, a.ErrWriter)
		if code == apperrors.ExitSuccess {
			cli.DisplayQuietResult(out, *orchestration.FastestSuccess(results))
		}
		return code
	}

	best := orchestration.FastestSuccess(results)
	if best == nil {
		return presenter.HandleError(results[0].Err, results[0].Duration, out)
	}
	if a.Config.Quiet {
		cli.DisplayQuietResult(out, *best)
		return apperrors.ExitSuccess
	}
	cli.DisplayResult(*best, a.Config, out)
	return apperrors.ExitSuccess
}
