package apperrors

import (
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies terminal colour codes without importing the ui
// package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider returns empty colour codes.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError writes a status line describing err to out and
// returns the matching exit code. colors may be nil.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	code := ExitCode(err)
	if code == ExitSuccess {
		return code
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
	case ExitErrorNotFound:
		fmt.Fprintf(out, "Status: Not found. %v\n", err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Status: Invalid input. %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	}
	return code
}
