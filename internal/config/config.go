// Package config loads the settings of the lapse command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

// Config holds the settings of the lapse command.
type Config struct {
	// Prefix is prepended to the description of every timer.
	Prefix string `mapstructure:"prefix"`
	// Quiet disables the start and end messages of the timers.
	Quiet bool `mapstructure:"quiet"`
	// EndInNewLine prints the end message of a timer on its own line.
	EndInNewLine bool `mapstructure:"end_in_new_line"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// Repeat is the number of times each command is run by exec.
	Repeat int `mapstructure:"repeat"`
	// MetricsNamespace prefixes the exported metric names.
	MetricsNamespace string `mapstructure:"metrics_namespace"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Prefix:           "...",
		Quiet:            false,
		EndInNewLine:     true,
		LogLevel:         "info",
		Repeat:           1,
		MetricsNamespace: "lapse",
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Repeat < 1 {
		errs = append(errs, fmt.Errorf("repeat must be >= 1, got %d", c.Repeat))
	}
	if strings.ContainsAny(c.MetricsNamespace, " -.") {
		errs = append(errs, fmt.Errorf("invalid metrics namespace %q", c.MetricsNamespace))
	}

	return errors.Join(errs...)
}

// ParseLevel converts a level name into a [slog.Level].
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
