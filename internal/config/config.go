// Package config builds the application configuration from command-line
// flags, FIBLIKE_* environment variables and the positional argument, and
// validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/logging"
)

// EnvPrefix prefixes every environment variable read by fiblike.
const EnvPrefix = "FIBLIKE_"

// Modes.
const (
	ModeTerm = "term"
	ModeFind = "find"
	ModeList = "list"
)

// Default configuration values.
const (
	DefaultMode      = ModeTerm
	DefaultSeed      = "1,1"
	DefaultTimeout   = time.Minute
	DefaultPort      = "8080"
	DefaultLogLevel  = "warn"
	DefaultCacheSize = 1024
	DefaultMaxN      = 1_000_000
)

// User-facing messages for a bad positional argument.
const (
	MsgMissingNumber = "Please enter a number"
	MsgInvalidNumber = "Please pass a valid number"
	MsgPositionZero  = "Position must be at least 1"
	MsgCountTooLarge = "Too many terms requested"
)

// ValidModes lists the accepted --mode values.
var ValidModes = []string{ModeTerm, ModeFind, ModeList}

// ValidShells lists the accepted --completion values.
var ValidShells = []string{"bash", "zsh", "fish"}

// AppConfig is the fully resolved configuration of one run.
type AppConfig struct {
	// Mode is "term", "find" or "list".
	Mode string
	// Numeric is a registered backend name or "all".
	Numeric string
	// SeedText is the raw --seed value; Seed is its parsed form.
	SeedText string
	Seed     engine.Seed
	// Argument is the positional argument as typed.
	Argument string
	// N is the position (term mode) or the count (list mode).
	N uint64
	// Target is the normalised decimal value to look up in find mode.
	Target string

	Timeout    time.Duration
	Quiet      bool
	Details    bool
	OutputFile string
	NoColor    bool
	LogLevel   string

	ServerMode bool
	Port       string
	CacheSize  int
	MaxN       uint64

	TUI        bool
	Completion string
}

// NeedsArgument reports whether the run computes a single answer from the
// positional argument, as opposed to the server, TUI and completion modes.
func (c AppConfig) NeedsArgument() bool {
	return !c.ServerMode && !c.TUI && c.Completion == ""
}

// Validate checks the flag values. availableNumerics are the registered
// backend names.
func (c AppConfig) Validate(availableNumerics []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if !slices.Contains(ValidModes, c.Mode) {
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: [%s]", c.Mode, strings.Join(ValidModes, ", "))
	}
	if c.Numeric != "all" && !slices.Contains(availableNumerics, c.Numeric) {
		return apperrors.NewConfigError("unrecognized numeric backend: '%s'. Valid values are: 'all' or [%s]", c.Numeric, strings.Join(availableNumerics, ", "))
	}
	if _, err := engine.ParseSeed(c.SeedText); err != nil {
		return apperrors.NewConfigError("invalid --seed: %v", err)
	}
	if c.CacheSize <= 0 {
		return apperrors.NewConfigError("cache size must be strictly positive: %d", c.CacheSize)
	}
	if c.MaxN == 0 {
		return apperrors.NewConfigError("max-n must be at least 1")
	}
	if c.Port == "" {
		return apperrors.NewConfigError("port cannot be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Completion != "" && !slices.Contains(ValidShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell for completion: '%s'. Valid values are: [%s]", c.Completion, strings.Join(ValidShells, ", "))
	}
	return nil
}

// argumentError is a ConfigError found while resolving the positional
// argument. Unlike flag errors, ParseConfig does not print it.
type argumentError struct {
	apperrors.ConfigError
}

func (e argumentError) Unwrap() error { return e.ConfigError }

func newArgumentError(format string, a ...any) error {
	return argumentError{ConfigError: apperrors.ConfigError{Message: fmt.Sprintf(format, a...)}}
}

// IsArgumentError reports whether err concerns the positional argument (or
// its combination with the seed) and has not been printed yet.
func IsArgumentError(err error) bool {
	var argErr argumentError
	return errors.As(err, &argErr)
}

// resolveArgument checks the positional arguments against the mode and fills
// N or Target. Non-monotonic sequences are rejected in find mode because the
// lookup could never stop.
func (c *AppConfig) resolveArgument(positional []string) error {
	if c.Mode == ModeFind && c.Seed.IsNegative() {
		return newArgumentError("find mode requires non-negative seeds, got %s", c.Seed)
	}
	if !c.NeedsArgument() {
		return nil
	}
	switch len(positional) {
	case 0:
		return newArgumentError(MsgMissingNumber)
	case 1:
	default:
		return newArgumentError("Expected exactly one number, got %d arguments", len(positional))
	}

	return c.SetArgument(positional[0])
}

// SetArgument interprets arg for the current mode: a position in term mode, a
// count in list mode, a value in find mode. It fills Argument and N or Target,
// and returns a ConfigError carrying one of the Msg* messages when arg is
// unusable.
func (c *AppConfig) SetArgument(arg string) error {
	c.Argument = strings.TrimSpace(arg)
	if c.Argument == "" {
		return newArgumentError(MsgMissingNumber)
	}
	if c.Mode == ModeFind {
		v, ok := new(big.Int).SetString(c.Argument, 10)
		if !ok {
			return newArgumentError(MsgInvalidNumber)
		}
		c.Target = v.String()
		return nil
	}

	n, err := strconv.ParseUint(c.Argument, 10, 64)
	if err != nil {
		return newArgumentError(MsgInvalidNumber)
	}
	if n == 0 {
		return newArgumentError(MsgPositionZero)
	}
	if c.Mode == ModeList && c.MaxN > 0 && n > c.MaxN {
		return newArgumentError("%s: %d exceeds the maximum allowed count (%d)", MsgCountTooLarge, n, c.MaxN)
	}
	c.N = n
	return nil
}

// ParseConfig parses args (without the program name), applies environment
// overrides for flags not given explicitly, validates the result and resolves
// the positional argument. Flags may appear before or after the number.
//
// Flag syntax and validation errors are reported on errorWriter together with
// the usage text. Positional argument errors are returned as
// apperrors.ConfigError carrying one of the Msg* messages.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableNumerics []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", DefaultMode, "Operation: 'term' (nth term), 'find' (position of a value) or 'list' (first N terms).")
	fs.StringVar(&config.Numeric, "numeric", engine.DefaultNumeric,
		fmt.Sprintf("Numeric backend: 'all' to compare, or one of [%s].", strings.Join(availableNumerics, ", ")))
	fs.StringVar(&config.SeedText, "seed", DefaultSeed, "The two first terms, as 'a,b'.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time of a computation.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Alias for -quiet.")
	fs.BoolVar(&config.Details, "details", false, "Show the execution header, durations and memory statistics.")
	fs.BoolVar(&config.Details, "d", false, "Alias for -details.")
	fs.StringVar(&config.OutputFile, "output", "", "Also write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Alias for -output.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: trace, debug, info, warn, error or disabled.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start the HTTP server.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.IntVar(&config.CacheSize, "cache-size", DefaultCacheSize, "Number of results kept in the server cache.")
	fs.Uint64Var(&config.MaxN, "max-n", DefaultMaxN, "Largest count accepted in list mode, and largest position accepted by the server and the TUI.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive terminal UI.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")

	setCustomUsage(fs)

	positional, err := parseInterspersed(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return AppConfig{}, err
	}
	if err != nil {
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	applyEnvOverrides(&config, fs)
	config.Mode = strings.ToLower(config.Mode)
	config.Numeric = strings.ToLower(config.Numeric)

	if err := config.Validate(availableNumerics); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	config.Seed, _ = engine.ParseSeed(config.SeedText)

	if err := config.resolveArgument(positional); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// parseInterspersed runs fs.Parse repeatedly so flags may follow the
// positional argument. Everything after "--" is positional, and so is a
// negative integer that is not the value of the preceding flag.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	args, positional := extractNegativeNumbers(fs, args)
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// fs.Parse consumed a "--" terminator when the remaining arguments
		// are shorter than what preceded them in args.
		consumed := len(args) - len(rest)
		if consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// extractNegativeNumbers removes negative integer literals such as "-5" from
// args, which the flag package would otherwise reject as unknown flags.
// Tokens after "--" and values of non-boolean flags are left in place.
func extractNegativeNumbers(fs *flag.FlagSet, args []string) (rest, numbers []string) {
	rest = make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(rest, args[i:]...), numbers
		}
		if isNegativeInteger(arg) && (i == 0 || !expectsValue(fs, args[i-1])) {
			numbers = append(numbers, arg)
			continue
		}
		rest = append(rest, arg)
	}
	return rest, numbers
}

func isNegativeInteger(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, ok := new(big.Int).SetString(arg[1:], 10)
	return ok && arg[1] != '-' && arg[1] != '+'
}

// expectsValue reports whether token is a flag that takes the next argument
// as its value.
func expectsValue(fs *flag.FlagSet, token string) bool {
	if !strings.HasPrefix(token, "-") || strings.Contains(token, "=") {
		return false
	}
	f := fs.Lookup(strings.TrimLeft(token, "-"))
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}
