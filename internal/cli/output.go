package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/format"
	"github.com/agbru/fiblike/internal/orchestration"
	"github.com/agbru/fiblike/internal/ui"
)

// SequenceName describes the sequence selected by cfg: "fibonacci sequence"
// for the default seed, "sequence (a, b)" otherwise.
func SequenceName(cfg config.AppConfig) string {
	if cfg.Seed.IsDefault() {
		return "fibonacci sequence"
	}
	return "sequence " + cfg.Seed.String()
}

// FormatResultLine renders the answer in the form
//
//	The "15" number of the fibonacci sequence is:
//	610
//
// In find mode the quoted input is the target and the answer its position.
// In list mode the line announces the first N terms.
func FormatResultLine(res orchestration.CalculationResult, cfg config.AppConfig) string {
	input := cfg.Argument
	if input == "" {
		input = argumentOf(cfg)
	}
	if cfg.Mode == config.ModeList {
		return fmt.Sprintf("The first \"%s\" numbers of the %s are:\n%s", input, SequenceName(cfg), res.Answer())
	}
	return fmt.Sprintf("The \"%s\" number of the %s is:\n%s", input, SequenceName(cfg), res.Answer())
}

// argumentOf rebuilds the positional argument from the resolved fields.
func argumentOf(cfg config.AppConfig) string {
	if cfg.Mode == config.ModeFind {
		return cfg.Target
	}
	return strconv.FormatUint(cfg.N, 10)
}

// FormatQuietResult returns only the answer.
func FormatQuietResult(res orchestration.CalculationResult) string {
	return res.Answer()
}

// DisplayQuietResult prints only the answer.
func DisplayQuietResult(out io.Writer, res orchestration.CalculationResult) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResult prints the result line, followed by an analysis of the value
// when details are requested.
func DisplayResult(res orchestration.CalculationResult, cfg config.AppConfig, out io.Writer) {
	fmt.Fprintln(out, FormatResultLine(res, cfg))
	if cfg.Details {
		DisplayDetails(res, out)
	}
}

// DisplayDetails prints the computation time and, in term mode, the size of
// the value.
func DisplayDetails(res orchestration.CalculationResult, out io.Writer) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", th.Bold, th.Reset)
	fmt.Fprintf(out, "Numeric backend    : %s%s%s\n", th.Primary, res.Name, th.Reset)
	fmt.Fprintf(out, "Calculation time   : %s%s%s\n", th.Success, FormatDuration(res.Duration), th.Reset)
	if res.Mode != config.ModeTerm && res.Mode != "" {
		return
	}

	digits := format.CountDigits(res.Value)
	fmt.Fprintf(out, "Number of digits   : %s%s%s\n", th.Info, format.GroupDigits(strconv.Itoa(digits)), th.Reset)
	if v, ok := new(big.Int).SetString(res.Value, 10); ok {
		fmt.Fprintf(out, "Binary size        : %s%s%s bits\n", th.Info, format.GroupDigits(strconv.Itoa(v.BitLen())), th.Reset)
		if digits > 6 {
			fmt.Fprintf(out, "Scientific notation: %s%.6e%s\n", th.Info, new(big.Float).SetInt(v), th.Reset)
		}
	}
	if digits > TruncationLimit {
		fmt.Fprintf(out, "Edges              : %s\n", format.Truncate(res.Value, TruncationLimit, DisplayEdges))
	}
}

// WriteResultToFile writes the answer to path, preceded by a commented
// metadata header. Missing parent directories are created.
func WriteResultToFile(path string, res orchestration.CalculationResult, cfg config.AppConfig) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# fiblike result\n")
	fmt.Fprintf(&b, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "# Mode: %s\n", cfg.Mode)
	fmt.Fprintf(&b, "# Numeric: %s\n", res.Name)
	fmt.Fprintf(&b, "# Seed: %s\n", cfg.Seed)
	fmt.Fprintf(&b, "# Argument: %s\n", argumentOf(cfg))
	fmt.Fprintf(&b, "# Duration: %s\n", res.Duration)
	if cfg.Mode == config.ModeTerm {
		fmt.Fprintf(&b, "# Digits: %d\n", format.CountDigits(res.Value))
	}
	fmt.Fprintf(&b, "\n%s\n", res.Answer())

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplaySavedNotice confirms that the result was written to path.
func DisplaySavedNotice(out io.Writer, path string) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n%sResult saved to: %s%s%s\n", th.Success, th.Primary, path, th.Reset)
}
