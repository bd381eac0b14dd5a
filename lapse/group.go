package lapse

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"golang.org/x/exp/slog"
)

// # Group
//
// Represents an ordered collection of timers whose statistics are to be
// compared. Being a slice, timers are accessed, appended and iterated with the
// usual slice operations and each of them is driven as a standalone [Timer].
// Statistics are only read from the timers, never modified.
//
// A Group should be instantiated using [NewGroup], [TimerBuilder.NewGroup] or
// a conversion of an existing []*Timer.
type Group []*Timer

// NewGroup returns a group made of the given timers. Without arguments the
// group is empty.
func NewGroup(timers ...*Timer) Group {
	return Group(timers)
}

// CumulativeElapsed returns the cumulative elapsed time of each timer,
// including its current split (see [Timer.CumulativeElapsed]).
func (g Group) CumulativeElapsed() []time.Duration {
	res := make([]time.Duration, len(g))
	for i, t := range g {
		res[i] = t.CumulativeElapsed()
	}
	return res
}

// Percentage returns the share of each timer's cumulative elapsed time over
// the sum of all of them.
// [ErrInvalidAggregation] is returned if g is empty or no time was measured.
func (g Group) Percentage() ([]float64, error) {
	cumulative := g.CumulativeElapsed()

	var total time.Duration
	for _, d := range cumulative {
		total += d
	}
	if total == 0 {
		return nil, fmt.Errorf("percentage of %d timers: %w", len(g), ErrInvalidAggregation)
	}

	res := make([]float64, len(cumulative))
	for i, d := range cumulative {
		res[i] = float64(d) / float64(total)
	}
	return res, nil
}

// NSplits returns the number of completed splits of each timer.
func (g Group) NSplits() []int {
	res := make([]int, len(g))
	for i, t := range g {
		res[i] = t.NSplits()
	}
	return res
}

// MeanPerSplit returns the mean duration of the completed splits of each
// timer. The mean of a timer without splits is zero.
func (g Group) MeanPerSplit() []time.Duration {
	res := make([]time.Duration, len(g))
	for i, t := range g {
		n := t.NSplits()
		if n == 0 {
			continue
		}
		var sum time.Duration
		for _, d := range t.Splits() {
			sum += d
		}
		res[i] = sum / time.Duration(n)
	}
	return res
}

// Statistics gathers all the statistics of g.
// It fails like [Group.Percentage].
func (g Group) Statistics() (*Statistics, error) {
	p, err := g.Percentage()
	if err != nil {
		return nil, err
	}

	return &Statistics{
		CumulativeElapsedTime: g.CumulativeElapsed(),
		Percentage:            p,
		NSplits:               g.NSplits(),
		MeanPerSplit:          g.MeanPerSplit(),
	}, nil
}

func (g Group) String() string {
	b := bytes.NewBufferString("")

	b.WriteString(fmt.Sprintf("[Group of %d timers]\n", len(g)))
	for i, t := range g {
		b.WriteString(fmt.Sprintf("\t%d %s: %s (%d splits)\n",
			i, t.Description(), FormatDuration(t.CumulativeElapsed()), t.NSplits()))
	}

	return b.String()
}

// FormatStatistics renders the statistics of g as a table.
// It fails like [Group.Percentage].
func (g Group) FormatStatistics() (string, error) {
	if _, err := g.Percentage(); err != nil {
		return "", err
	}

	var b strings.Builder
	g.writeTable(&b)
	return b.String(), nil
}

// Print prints a table containing the statistics of g to the standard output.
// When no time was measured the percentage column is left empty.
func (g Group) Print() {
	color.New(color.FgGreen).Add(color.Bold).Fprintf(os.Stdout, "\nⒼ Group (%d timers)\n", len(g))
	g.writeTable(os.Stdout)
}

func (g Group) writeTable(w io.Writer) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()

	tbl := table.New(
		"#",
		"timer",
		"cumulative",
		"percentage",
		"splits",
		"mean per split",
	)
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(w)

	cumulative := g.CumulativeElapsed()
	nsplits := g.NSplits()
	mean := g.MeanPerSplit()
	percentage, err := g.Percentage()
	if err != nil {
		logger.Warn("no elapsed time to compute percentages",
			slog.Int("timers", len(g)))
	}

	for i, t := range g {
		share := "-"
		if err == nil {
			share = fmt.Sprintf("%.1f%%", percentage[i]*100)
		}
		tbl.AddRow(
			i,
			t.Description(),
			FormatDuration(cumulative[i]),
			share,
			nsplits[i],
			FormatDuration(mean[i]),
		)
	}
	tbl.Print()
}
