package lapse

import (
	"bytes"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// # TimerBuilder
//
// TimerBuilder implements a builder pattern to generate new timers sharing the
// same configuration.
// Its zero value has no particular meaning and should not be used.
// A TimerBuilder should always be instantiated using [NewTimerBuilder].
type TimerBuilder struct {
	sink         Sink
	prefix       string
	verbose      bool
	verboseStart bool
	verboseEnd   bool
	endInNewLine bool
	clock        func() time.Time
}

// NewTimerBuilder returns a [TimerBuilder] which will generate timers that:
//   - print to the standard output
//   - log when starting and when splitting
//   - end their split messages on a new line
//   - prepend the default prefix to their description (see [SetDefaultPrefix])
func NewTimerBuilder() *TimerBuilder {
	return &TimerBuilder{
		sink:         StdoutSink(),
		prefix:       defaultPrefix,
		verbose:      true,
		verboseStart: true,
		verboseEnd:   true,
		endInNewLine: true,
		clock:        time.Now,
	}
}

func (tb TimerBuilder) String() string {
	b := bytes.NewBufferString("")

	b.WriteString(fmt.Sprintf("prefix: %q\n", tb.prefix))
	b.WriteString(fmt.Sprintf("verbose: %t\n", tb.verbose))
	b.WriteString(fmt.Sprintf("verbose start: %t\n", tb.verboseStart))
	b.WriteString(fmt.Sprintf("verbose end: %t\n", tb.verboseEnd))
	b.WriteString(fmt.Sprintf("end in new line: %t\n", tb.endInNewLine))

	return b.String()
}

// NewTimer generates a new idle timer whose characteristics are based on tb's
// state.
func (tb *TimerBuilder) NewTimer(description string) *Timer {
	return &Timer{
		description:  tb.prefix + description,
		sink:         tb.sink,
		verboseStart: tb.verbose && tb.verboseStart,
		verboseEnd:   tb.verbose && tb.verboseEnd,
		endInNewLine: tb.endInNewLine,
		now:          tb.clock,
	}
}

// NewGroup generates a [Group] of n timers, all built by tb with the same
// description.
func (tb *TimerBuilder) NewGroup(n int, description string) Group {
	if n < 0 {
		logger.Error("number of timers must be >= 0, setting value to 0",
			slog.Int("n", n))
		n = 0
	}

	g := make(Group, n)
	for i := range g {
		g[i] = tb.NewTimer(description)
	}
	return g
}

// Copy generates and returns a copy of tb.
func (tb TimerBuilder) Copy() *TimerBuilder {
	return &tb
}

// WithSink modifies and returns tb, making new timers write their messages
// to s. A nil s restores the standard output.
func (tb *TimerBuilder) WithSink(s Sink) *TimerBuilder {
	if s == nil {
		s = StdoutSink()
	}
	tb.sink = s
	return tb
}

// WithLogger modifies and returns tb, making new timers log their messages on
// l at the given level (see [LoggerSink]).
func (tb *TimerBuilder) WithLogger(l *slog.Logger, level slog.Level) *TimerBuilder {
	tb.sink = LoggerSink(l, level)
	return tb
}

// WithPrefix modifies and returns tb, setting the prefix prepended to the
// description of new timers.
func (tb *TimerBuilder) WithPrefix(prefix string) *TimerBuilder {
	tb.prefix = prefix
	return tb
}

// WithVerboseStart modifies and returns tb, setting whether new timers log
// when they start.
func (tb *TimerBuilder) WithVerboseStart(v bool) *TimerBuilder {
	tb.verboseStart = v
	return tb
}

// WithVerboseEnd modifies and returns tb, setting whether new timers log when
// a split is closed.
func (tb *TimerBuilder) WithVerboseEnd(v bool) *TimerBuilder {
	tb.verboseEnd = v
	return tb
}

// WithEndInNewLine modifies and returns tb. When v is false the start message
// of new timers is not terminated, so the split message completes the same line.
func (tb *TimerBuilder) WithEndInNewLine(v bool) *TimerBuilder {
	tb.endInNewLine = v
	return tb
}

// WithVerbose modifies and returns tb. When v is false new timers never log on
// start or split, whatever [TimerBuilder.WithVerboseStart] and
// [TimerBuilder.WithVerboseEnd] were given.
func (tb *TimerBuilder) WithVerbose(v bool) *TimerBuilder {
	tb.verbose = v
	return tb
}

// Quiet is equivalent to calling tb.WithVerbose(false).
func (tb *TimerBuilder) Quiet() *TimerBuilder {
	return tb.WithVerbose(false)
}

// WithClock modifies and returns tb, making new timers read the current time
// from now instead of [time.Now].
func (tb *TimerBuilder) WithClock(now func() time.Time) *TimerBuilder {
	if now == nil {
		now = time.Now
	}
	tb.clock = now
	return tb
}

// Bool returns a pointer to v, handy for the overrides of [Timer.StartWith]
// and [Timer.SplitWith].
func Bool(v bool) *bool {
	return &v
}
