package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/metrics"
	"github.com/agbru/fiblike/internal/orchestration"
)

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	results := []orchestration.CalculationResult{
		{Name: "big", Duration: 1500 * time.Microsecond},
		{Name: "uint64", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Numeric", "Duration", "Status", "big", "1ms", "Success", "Failure (boom)", "< 1µs"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := lines[1]
	if strings.Index(header, "Duration") != strings.Index(lines[2], "1ms") {
		t.Errorf("columns not aligned:\n%s", out)
	}
}

func TestPresentResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	res := orchestration.CalculationResult{Mode: config.ModeTerm, Value: "2"}
	CLIResultPresenter{}.PresentResult(res, config.AppConfig{Mode: config.ModeTerm, Seed: engine.DefaultSeed, Argument: "3"}, &buf)
	if !strings.Contains(buf.String(), "The \"3\" number of the fibonacci sequence is:\n2\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Timeout"},
		{"invalid", apperrors.ValidationError{Field: "n", Message: "position must be at least 1"}, apperrors.ExitErrorConfig, "Invalid input"},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric, "unexpected error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if code := (CLIResultPresenter{}).HandleError(tt.err, 0, &buf); code != tt.code {
				t.Errorf("code = %d, want %d", code, tt.code)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemoryUsage{Allocated: 2048, Objects: 12345, GCCycles: 2, PeakHeap: 1 << 20}, &buf)
	for _, want := range []string{"Memory Stats:", "1.0 MiB", "2.0 KiB", "12,345", "GC cycles:       2"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	if FormatDuration(0) != "< 1µs" {
		t.Error("zero duration should read < 1µs")
	}
	if FormatDuration(2*time.Millisecond) != "2ms" {
		t.Errorf("FormatDuration(2ms) = %q", FormatDuration(2*time.Millisecond))
	}
}

func TestPrintExecution(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{Mode: config.ModeFind, Seed: engine.Seed{First: "2", Second: "1"}, Target: "76", Timeout: time.Minute}
	PrintExecutionConfig(cfg, &buf)
	PrintExecutionMode([]engine.Engine{engine.NewDefaultFactory().MustGet("big")}, &buf)
	out := buf.String()
	for _, want := range []string{"Looking up 76 in the sequence (2, 1)", "timeout of 1m0s", "Single computation with the big backend", "Starting Execution"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	all, _ := engine.NewDefaultFactory().Resolve("all")
	PrintExecutionMode(all, &buf)
	if !strings.Contains(buf.String(), "Parallel comparison") {
		t.Errorf("output = %q", buf.String())
	}
}
