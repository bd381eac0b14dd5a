// Package lapse provides timers for measuring elapsed wall-clock time of code
// sections and aggregating the results.
//
// A [Timer] can be started, paused, split into segments and reset. Timers can
// be collected in a [Group] whose statistics are compared side by side:
//
//	 Group
//	  ├ Timer 0  (split 0, split 1, ...)
//	  └ Timer 1  (split 0, ...)
//
// Statistics are presented in a tabular manner.
package lapse

import (
	"os"

	"golang.org/x/exp/slog"
)

// Version is the library version reported by the lapse command.
const Version = "0.3.0"

var defaultPrefix = "..."

func init() {
	logLevel = new(slog.LevelVar)
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(h)
}

var (
	logger   *slog.Logger
	logLevel *slog.LevelVar
)

// SetLogger set the logger used by lapse for its own diagnostics.
// [SetLogLevel] will not be enforced if a custom logger is used.
func SetLogger(newlogger *slog.Logger) {
	logger = newlogger
}

// SetLogLevel sets the level for lapse messages unless [SetLogger] has been called.
// The default log level is the zero value of [slog.LevelVar].
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// SetDefaultPrefix sets the prefix prepended to the description of timers
// built by a new [TimerBuilder]. The default value is "...".
func SetDefaultPrefix(prefix string) {
	defaultPrefix = prefix
}
