package lapse

import (
	"time"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type logLine struct {
	msg     string
	newline bool
}

type recordSink struct {
	lines []logLine
}

func (s *recordSink) Write(msg string, newline bool) {
	s.lines = append(s.lines, logLine{msg: msg, newline: newline})
}

func (s *recordSink) messages() []string {
	res := make([]string, len(s.lines))
	for i, l := range s.lines {
		res[i] = l.msg
	}
	return res
}

func newTestTimer(description string) (*Timer, *fakeClock, *recordSink) {
	clk := newFakeClock()
	sink := &recordSink{}
	t := NewTimerBuilder().WithClock(clk.Now).WithSink(sink).NewTimer(description)
	return t, clk, sink
}

func sum(ds []time.Duration) time.Duration {
	var s time.Duration
	for _, d := range ds {
		s += d
	}
	return s
}
