package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agbru/fiblike/internal/sequence"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unexpected failure.
	ExitErrorTimeout  = 2   // The --timeout deadline was reached.
	ExitErrorMismatch = 3   // Numeric backends disagreed in comparison mode.
	ExitErrorConfig   = 4   // Invalid flags, arguments or seed.
	ExitErrorNotFound = 5   // Find mode: the value is not a term of the sequence.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ConfigError is a user configuration error: a bad flag, a missing or
// malformed argument.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError returns a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure that happened while computing.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap returns the cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports that an operation exceeded its deadline.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap returns context.DeadlineExceeded so a TimeoutError is handled like
// an expired context.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError reports an input value that cannot be used, such as a seed
// term outside the range of the selected numeric backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// ServerError reports a failure to start or stop the HTTP server.
type ServerError struct {
	Message string
	Cause   error
}

// NewServerError returns a ServerError wrapping cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

func (e ServerError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the cause.
func (e ServerError) Unwrap() error { return e.Cause }

// WrapError adds context to err. It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err comes from a cancelled or expired
// context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsInputError reports whether err is a ConfigError or a ValidationError
// anywhere in its chain.
func IsInputError(err error) bool {
	var cfgErr ConfigError
	var valErr ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, sequence.ErrNotFound):
		return ExitErrorNotFound
	case IsInputError(err):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
