package lapse

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// UnknownTotal is the total of an [IterTimer] whose number of iterations is
// not known in advance.
const UnknownTotal = -1

// Verbosity of an [IterTimer].
type Verbosity int

const (
	// DefaultVerbosity selects VerboseProgress.
	DefaultVerbosity Verbosity = iota
	// Silent produces no output at all.
	Silent
	// VerboseStart only prints the name when the timer is built.
	VerboseStart
	// VerboseEnd renders the progress when entering and exiting.
	VerboseEnd
	// VerboseProgress also renders the progress on every update.
	VerboseProgress
)

// ProgressRenderer draws the progress of an [IterTimer]. Implementations are
// provided by separate packages, see [RegisterProgress].
type ProgressRenderer interface {
	// Begin draws the initial state of the progress.
	Begin(name string, total int)
	// Update draws the progress after i iterations out of total.
	Update(i, total int, elapsed time.Duration)
	// Finish draws the final state of the progress.
	Finish(total int, elapsed time.Duration)
}

// ProgressFactory returns a [ProgressRenderer] writing to w.
type ProgressFactory func(w io.Writer) ProgressRenderer

var (
	progressMu      sync.RWMutex
	progressFactory ProgressFactory
)

// RegisterProgress makes a progress renderer available to [NewIterTimer].
// It is meant to be called from the init function of a renderer package,
// which is then enabled with a blank import:
//
//	import _ "github.com/onegii/go-lapse/lapse/progress"
func RegisterProgress(f ProgressFactory) {
	progressMu.Lock()
	defer progressMu.Unlock()
	progressFactory = f
}

// ProgressAvailable reports whether a progress renderer has been registered.
func ProgressAvailable() bool {
	progressMu.RLock()
	defer progressMu.RUnlock()
	return progressFactory != nil
}

// IterOptions configures an [IterTimer].
type IterOptions struct {
	// Period is the number of iterations between two renders. Default 1.
	Period int
	// Verbosity defaults to VerboseProgress.
	Verbosity Verbosity
	// Writer receives the output. Default os.Stdout.
	Writer io.Writer
	// Clock replaces time.Now when set.
	Clock func() time.Time
}

// # IterTimer
//
// IterTimer measures a loop and renders its progress, along with an estimate
// of the remaining time, through the registered [ProgressRenderer].
type IterTimer struct {
	timer     *Timer
	renderer  ProgressRenderer
	w         io.Writer
	name      string
	total     int
	period    int
	verbosity Verbosity
}

// NewIterTimer returns an idle [IterTimer] for a loop of total iterations
// (or [UnknownTotal]). nil opts selects the defaults described in [IterOptions].
// [ErrFeatureUnavailable] is returned if opts requires a renderer and none has
// been registered with [RegisterProgress].
func NewIterTimer(name string, total int, opts *IterOptions) (*IterTimer, error) {
	if opts == nil {
		opts = &IterOptions{}
	}

	it := &IterTimer{
		timer:     NewTimerBuilder().Quiet().WithClock(opts.Clock).NewTimer(name),
		w:         opts.Writer,
		name:      name,
		total:     total,
		period:    opts.Period,
		verbosity: opts.Verbosity,
	}
	if it.w == nil {
		it.w = os.Stdout
	}
	if it.period <= 0 {
		it.period = 1
	}
	if it.verbosity == DefaultVerbosity {
		it.verbosity = VerboseProgress
	}

	switch {
	case it.verbosity >= VerboseEnd:
		progressMu.RLock()
		f := progressFactory
		progressMu.RUnlock()
		if f == nil {
			return nil, fmt.Errorf("progress rendering for %q: %w", name, ErrFeatureUnavailable)
		}
		it.renderer = f(it.w)
	case it.verbosity == VerboseStart:
		fmt.Fprintln(it.w, defaultPrefix+name)
	}

	return it, nil
}

// Timer returns the [Timer] measuring it.
func (it *IterTimer) Timer() *Timer {
	return it.timer
}

// Total returns the number of iterations, [UnknownTotal] if not known.
func (it *IterTimer) Total() int {
	return it.total
}

// SetTotal sets the number of iterations once it becomes known.
func (it *IterTimer) SetTotal(total int) {
	it.total = total
}

// Enter starts measuring and draws the initial progress. Combined with
// [IterTimer.Exit]:
//
//	defer it.Enter().Exit()
func (it *IterTimer) Enter() *IterTimer {
	it.timer.Start()
	if it.renderer != nil {
		it.renderer.Begin(it.name, it.total)
		if it.verbosity == VerboseEnd {
			fmt.Fprintln(it.w)
		}
	}
	return it
}

// Update reports that iteration i is being processed. The progress is only
// drawn every period iterations.
func (it *IterTimer) Update(i int) {
	if i%it.period != 0 || it.verbosity < VerboseProgress {
		return
	}
	it.renderer.Update(i, it.total, it.timer.Elapsed())
}

// Exit stops measuring and draws the final progress.
func (it *IterTimer) Exit() {
	it.timer.Exit()
	if it.renderer != nil {
		it.renderer.Finish(it.total, it.timer.CumulativeElapsed())
	}
}
