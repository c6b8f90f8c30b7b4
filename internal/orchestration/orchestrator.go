package orchestration

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/sequence"
)

// ProgressBufferMultiplier sizes the progress channel relative to the number
// of backends.
const ProgressBufferMultiplier = 5

// ExecuteCalculations runs the computation described by cfg on every engine
// concurrently and returns one result per engine, in the same order. A
// failing engine does not stop the others.
func ExecuteCalculations(ctx context.Context, engines []engine.Engine, cfg config.AppConfig, reporter ProgressReporter, out io.Writer) []CalculationResult {
	var g errgroup.Group
	results := make([]CalculationResult, len(engines))
	updates := make(chan ProgressUpdate, len(engines)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, len(engines), out)

	for i, e := range engines {
		g.Go(func() error {
			report := func(p float64) {
				select {
				case updates <- ProgressUpdate{Index: i, Value: p}:
				case <-ctx.Done():
				}
			}
			start := time.Now()
			res := run(ctx, e, cfg, report)
			res.Duration = time.Since(start)
			results[i] = res
			return nil
		})
	}

	_ = g.Wait()
	close(updates)
	displayWg.Wait()

	return results
}

// run performs a single computation on e.
func run(ctx context.Context, e engine.Engine, cfg config.AppConfig, report sequence.ProgressFunc) CalculationResult {
	res := CalculationResult{Name: e.Name(), Mode: cfg.Mode}
	switch cfg.Mode {
	case config.ModeFind:
		res.Position, res.Err = e.Find(ctx, cfg.Seed, cfg.Target)
		report(1)
	case config.ModeList:
		if cfg.N > math.MaxInt {
			res.Err = apperrors.ValidationError{Field: "count", Message: fmt.Sprintf("%d terms cannot be held in memory", cfg.N)}
		} else {
			res.Terms, res.Err = e.Terms(ctx, cfg.Seed, int(cfg.N))
		}
		report(1)
	default:
		res.Value, res.Err = e.Term(ctx, cfg.Seed, cfg.N, report)
	}
	return res
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// presents the comparison table and checks that every backend agrees. A
// backend reporting "not found" while another found the value counts as a
// disagreement. It returns the exit code.
func AnalyzeComparisonResults(results []CalculationResult, cfg config.AppConfig, presenter ResultPresenter, out io.Writer) int {
	slices.SortStableFunc(results, func(a, b CalculationResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Duration, b.Duration)
	})

	var firstValid *CalculationResult
	var firstError error
	notFound := false
	for i := range results {
		if err := results[i].Err; err != nil {
			if firstError == nil {
				firstError = err
			}
			notFound = notFound || errors.Is(err, sequence.ErrNotFound)
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No backend could complete the computation.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	mismatch := notFound
	for _, res := range results {
		if res.Err == nil && res.Answer() != firstValid.Answer() {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The backends disagree on the result.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, cfg, out)
	return apperrors.ExitSuccess
}

// FastestSuccess returns the quickest successful result, or nil.
func FastestSuccess(results []CalculationResult) *CalculationResult {
	var best *CalculationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}
