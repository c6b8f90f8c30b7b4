package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	"github.com/agbru/fiblike/internal/orchestration"
)

func TestFormatResultLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		res  orchestration.CalculationResult
		cfg  config.AppConfig
		want string
	}{
		{
			name: "term",
			res:  orchestration.CalculationResult{Mode: config.ModeTerm, Value: "610"},
			cfg:  config.AppConfig{Mode: config.ModeTerm, Seed: engine.DefaultSeed, Argument: "15", N: 15},
			want: "The \"15\" number of the fibonacci sequence is:\n610",
		},
		{
			name: "custom seed",
			res:  orchestration.CalculationResult{Mode: config.ModeTerm, Value: "8"},
			cfg:  config.AppConfig{Mode: config.ModeTerm, Seed: engine.Seed{First: "2", Second: "3"}, Argument: "4", N: 4},
			want: "The \"4\" number of the sequence (2, 3) is:\n8",
		},
		{
			name: "find",
			res:  orchestration.CalculationResult{Mode: config.ModeFind, Position: 15},
			cfg:  config.AppConfig{Mode: config.ModeFind, Seed: engine.DefaultSeed, Target: "610"},
			want: "The \"610\" number of the fibonacci sequence is:\n15",
		},
		{
			name: "list",
			res:  orchestration.CalculationResult{Mode: config.ModeList, Terms: []string{"1", "1", "2"}},
			cfg:  config.AppConfig{Mode: config.ModeList, Seed: engine.DefaultSeed, Argument: "3", N: 3},
			want: "The first \"3\" numbers of the fibonacci sequence are:\n1, 1, 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatResultLine(tt.res, tt.cfg); got != tt.want {
				t.Errorf("FormatResultLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayResult_Details(t *testing.T) {
	t.Parallel()
	value := "354224848179261915075"
	res := orchestration.CalculationResult{Name: "big", Mode: config.ModeTerm, Value: value, Duration: 3 * time.Millisecond}
	cfg := config.AppConfig{Mode: config.ModeTerm, Seed: engine.DefaultSeed, Argument: "100", N: 100, Details: true}

	var buf bytes.Buffer
	DisplayResult(res, cfg, &buf)
	out := buf.String()
	for _, want := range []string{value, "Detailed result analysis", "Numeric backend    : big", "Number of digits   : 21", "Binary size", "Scientific notation: 3.542248e+20", "3ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayDetails_LongValueShowsEdges(t *testing.T) {
	t.Parallel()
	value := strings.Repeat("9", TruncationLimit+1)
	var buf bytes.Buffer
	DisplayDetails(orchestration.CalculationResult{Mode: config.ModeTerm, Value: value}, &buf)
	want := strings.Repeat("9", DisplayEdges) + "..." + strings.Repeat("9", DisplayEdges)
	if !strings.Contains(buf.String(), want) {
		t.Errorf("details should show the abbreviated value, got:\n%s", buf.String())
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, orchestration.CalculationResult{Mode: config.ModeFind, Position: 12})
	if buf.String() != "12\n" {
		t.Errorf("quiet output = %q", buf.String())
	}
}

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "result.txt")
	res := orchestration.CalculationResult{Name: "big", Mode: config.ModeTerm, Value: "610", Duration: time.Millisecond}
	cfg := config.AppConfig{Mode: config.ModeTerm, Seed: engine.DefaultSeed, N: 15}

	if err := WriteResultToFile(path, res, cfg); err != nil {
		t.Fatalf("WriteResultToFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	for _, want := range []string{"# fiblike result", "# Mode: term", "# Numeric: big", "# Seed: (1, 1)", "# Argument: 15", "# Digits: 3", "\n610\n"} {
		if !strings.Contains(content, want) {
			t.Errorf("file missing %q:\n%s", want, content)
		}
	}

	if err := WriteResultToFile("", res, cfg); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestDisplaySavedNotice(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplaySavedNotice(&buf, "out.txt")
	if !strings.Contains(buf.String(), "Result saved to: out.txt") {
		t.Errorf("notice = %q", buf.String())
	}
}
