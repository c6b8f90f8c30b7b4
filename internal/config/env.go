package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether name was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one FIBLIKE_* variable to the flag(s) it stands in for.
// Invalid values are ignored and the flag default is kept; Validate then
// sees a well-typed configuration.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

var envOverrides = []envOverride{
	{"MODE", []string{"mode"}, func(c *AppConfig, v string) { c.Mode = v }},
	{"NUMERIC", []string{"numeric"}, func(c *AppConfig, v string) { c.Numeric = v }},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) { c.SeedText = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},
	{"PORT", []string{"port"}, func(c *AppConfig, v string) { c.Port = v }},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"CACHE_SIZE", []string{"cache-size"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.CacheSize = parsed
		}
	}},
	{"MAX_N", []string{"max-n"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MaxN = parsed
		}
	}},

	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"DETAILS", []string{"details", "d"}, func(c *AppConfig, v string) { c.Details = parseBoolEnv(v, c.Details) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
	{"SERVER", []string{"server"}, func(c *AppConfig, v string) { c.ServerMode = parseBoolEnv(v, c.ServerMode) }},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) { c.TUI = parseBoolEnv(v, c.TUI) }},
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides fills in FIBLIKE_* values for every flag that was not
// set explicitly: CLI flags > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
