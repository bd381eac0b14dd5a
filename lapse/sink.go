package lapse

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/slog"
)

// # Sink
//
// Sink consumes the messages emitted by a [Timer] when it starts, splits or
// is asked to log its elapsed time.
// When newline is false the message must be written without a trailing line
// break so that the next message can complete the same line.
type Sink interface {
	Write(msg string, newline bool)
}

// SinkFunc adapts an ordinary function to the [Sink] interface.
type SinkFunc func(msg string, newline bool)

// Write calls f(msg, newline).
func (f SinkFunc) Write(msg string, newline bool) {
	f(msg, newline)
}

type writerSink struct {
	w io.Writer
}

// WriterSink returns a [Sink] printing messages to w.
func WriterSink(w io.Writer) Sink {
	return writerSink{w: w}
}

// StdoutSink returns the default [Sink], printing to the standard output.
func StdoutSink() Sink {
	return writerSink{w: os.Stdout}
}

func (s writerSink) Write(msg string, newline bool) {
	if newline {
		fmt.Fprintln(s.w, msg)
		return
	}
	fmt.Fprint(s.w, msg)
}

type loggerSink struct {
	l     *slog.Logger
	level slog.Level
}

// LoggerSink returns a [Sink] emitting every message as a record of the given
// level on l. Records are always complete lines, so newline is ignored.
func LoggerSink(l *slog.Logger, level slog.Level) Sink {
	return loggerSink{l: l, level: level}
}

func (s loggerSink) Write(msg string, _ bool) {
	s.l.Log(context.Background(), s.level, msg)
}
