package lapse

import "time"

// # Timer
//
// Represents a stopwatch measuring the elapsed time of a code section.
// A Timer is idle when built, running after [Timer.Start] and paused after
// [Timer.Pause]. Each call to [Timer.Split] closes the current segment,
// records its duration and starts a new one.
//
// Its zero value has no meaning. A Timer should always be instantiated by
// calling either [NewTimer] or [TimerBuilder.NewTimer].
// A Timer is not safe for concurrent use.
type Timer struct {
	description  string
	sink         Sink
	verboseStart bool
	verboseEnd   bool
	endInNewLine bool
	now          func() time.Time

	start      time.Time
	end        time.Time
	elapsed    time.Duration
	cumulative time.Duration
	splits     []time.Duration
}

// NewTimer is equivalent to calling:
//
//	NewTimerBuilder().NewTimer(description)
func NewTimer(description string) *Timer {
	return NewTimerBuilder().NewTimer(description)
}

// Description returns the prefixed description used in t's messages.
func (t *Timer) Description() string {
	return t.description
}

// Running reports whether t is currently measuring time.
func (t *Timer) Running() bool {
	return !t.start.IsZero() && t.end.IsZero()
}

// Start is equivalent to calling t.StartWith(nil, nil).
func (t *Timer) Start() *Timer {
	return t.StartWith(nil, nil)
}

// StartWith starts t if it is idle or paused and returns it. Nothing happens
// if t is already running.
// A nil verbose or endInNewLine falls back to the value t was built with.
// When the start message is not terminated by a new line, the message of the
// next split is appended to the same line.
func (t *Timer) StartWith(verbose, endInNewLine *bool) *Timer {
	if t.Running() {
		return t
	}

	if pick(verbose, t.verboseStart) {
		t.sink.Write(t.description, pick(endInNewLine, t.endInNewLine))
	}

	t.end = time.Time{}
	t.start = t.now()
	return t
}

// Pause stops t, keeping the time measured so far in the current split.
// Nothing happens if t is not running.
func (t *Timer) Pause() {
	if !t.Running() {
		return
	}
	t.end = t.now()
	t.elapsed += t.end.Sub(t.start)
}

// Elapsed returns the time measured in the current split, including the
// running interval if t is running.
func (t *Timer) Elapsed() time.Duration {
	if !t.Running() {
		return t.elapsed
	}
	return t.elapsed + t.now().Sub(t.start)
}

// CumulativeElapsed returns the time measured over all completed splits
// plus the current one.
func (t *Timer) CumulativeElapsed() time.Duration {
	return t.cumulative + t.Elapsed()
}

// LogElapsed is equivalent to calling:
//
//	t.LogElapsedWithPrefix("Elapsed time: ")
func (t *Timer) LogElapsed() {
	t.LogElapsedWithPrefix("Elapsed time: ")
}

// LogElapsedWithPrefix writes prefix followed by the formatted elapsed time of
// the current split to t's sink (see [FormatDuration]).
func (t *Timer) LogElapsedWithPrefix(prefix string) {
	t.sink.Write(prefix+FormatDuration(t.Elapsed()), true)
}

// Split is equivalent to calling t.SplitWith(nil, nil).
func (t *Timer) Split() time.Duration {
	return t.SplitWith(nil, nil)
}

// SplitWith records the elapsed time of the current split, reports it and
// starts a new split. t is always left running, even if it was paused.
// The recorded duration is returned.
// A nil verbose or endInNewLine falls back to the value t was built with.
func (t *Timer) SplitWith(verbose, endInNewLine *bool) time.Duration {
	d := t.closeSplit(verbose, endInNewLine)
	t.end = time.Time{}
	t.start = t.now()
	return d
}

func (t *Timer) closeSplit(verbose, endInNewLine *bool) time.Duration {
	d := t.Elapsed()
	t.splits = append(t.splits, d)
	t.cumulative += d
	t.elapsed = 0

	if pick(verbose, t.verboseEnd) {
		if pick(endInNewLine, t.endInNewLine) {
			t.sink.Write(t.description+" done in "+FormatDuration(d), true)
		} else {
			t.sink.Write(" done in "+FormatDuration(d), true)
		}
	}
	return d
}

// Reset brings t back to the state it was built in, discarding all the
// recorded splits. Its configuration is untouched.
func (t *Timer) Reset() {
	t.start = time.Time{}
	t.end = time.Time{}
	t.elapsed = 0
	t.cumulative = 0
	t.splits = nil
}

// Splits returns a copy of the durations of the completed splits, oldest first.
func (t *Timer) Splits() []time.Duration {
	cp := make([]time.Duration, len(t.splits))
	copy(cp, t.splits)
	return cp
}

// NSplits returns the number of completed splits.
func (t *Timer) NSplits() int {
	return len(t.splits)
}

// Enter starts t and returns it. Combined with [Timer.Exit] it measures a
// block:
//
//	defer t.Enter().Exit()
func (t *Timer) Enter() *Timer {
	return t.Start()
}

// Exit pauses t and closes the current split, reporting it as [Timer.Split]
// does. Unlike [Timer.Split], t stays paused afterwards so the time spent
// outside the block is not measured.
func (t *Timer) Exit() {
	t.Pause()
	t.closeSplit(nil, nil)
	t.start = time.Time{}
	t.end = time.Time{}
}

// Measure runs fn between [Timer.Enter] and [Timer.Exit]. The split is closed
// even if fn returns an error or panics. fn's error is returned unchanged.
func (t *Timer) Measure(fn func() error) error {
	defer t.Enter().Exit()
	return fn()
}

func pick(override *bool, fallback bool) bool {
	if override != nil {
		return *override
	}
	return fallback
}
