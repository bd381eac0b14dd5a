package lapse

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroup(n int) (Group, *fakeClock) {
	clk := newFakeClock()
	return NewTimerBuilder().Quiet().WithClock(clk.Now).NewGroup(n, ""), clk
}

func measure(timer *Timer, clk *fakeClock, d time.Duration) {
	defer timer.Enter().Exit()
	clk.Advance(d)
}

func TestGroupStatistics(t *testing.T) {
	g, clk := newTestGroup(2)

	for i := 0; i < 5; i++ {
		measure(g[0], clk, tick)
		measure(g[0], clk, tick)
		measure(g[1], clk, tick)
	}

	assert.Equal(t, []time.Duration{10 * tick, 5 * tick}, g.CumulativeElapsed())
	assert.Equal(t, []int{10, 5}, g.NSplits())
	assert.Equal(t, []time.Duration{tick, tick}, g.MeanPerSplit())

	p, err := g.Percentage()
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.InDelta(t, 2.0/3, p[0], 1e-9)
	assert.InDelta(t, 1.0/3, p[1], 1e-9)

	stats, err := g.Statistics()
	require.NoError(t, err)
	assert.Equal(t, g.CumulativeElapsed(), stats.CumulativeElapsedTime)
	assert.Equal(t, p, stats.Percentage)
	assert.Equal(t, []int{10, 5}, stats.NSplits)
	assert.Equal(t, []time.Duration{tick, tick}, stats.MeanPerSplit)

	keys := make([]string, 0, 4)
	for k := range stats.Map() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"cumulative_elapsed_time", "mean_per_split", "n_splits", "percentage"}, keys)

	raw, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"n_splits":[10,5]`)
}

func TestGroupRealClock(t *testing.T) {
	g := NewTimerBuilder().Quiet().NewGroup(2, "")

	for i := 0; i < 2; i++ {
		func() {
			defer g[0].Enter().Exit()
			busyWait(tick)
		}()
	}
	require.NoError(t, g[1].Measure(func() error {
		busyWait(tick)
		return nil
	}))

	assert.Equal(t, []int{2, 1}, g.NSplits())
	for _, m := range g.MeanPerSplit() {
		assert.InEpsilon(t, tick.Seconds(), m.Seconds(), 0.05)
	}
	p, err := g.Percentage()
	require.NoError(t, err)
	assert.InEpsilon(t, 2.0/3, p[0], 0.05)
	assert.InEpsilon(t, 1.0/3, p[1], 0.05)
}

func TestGroupIncludesCurrentSplit(t *testing.T) {
	g, clk := newTestGroup(2)

	g[0].Start()
	clk.Advance(3 * tick)
	g[1].Start()
	clk.Advance(tick)

	assert.Equal(t, []time.Duration{4 * tick, tick}, g.CumulativeElapsed())
	assert.Equal(t, []int{0, 0}, g.NSplits())
	assert.Equal(t, []time.Duration{0, 0}, g.MeanPerSplit(), "no splits means zero mean")

	p, err := g.Percentage()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, p[0], 1e-9)
	assert.InDelta(t, 0.2, p[1], 1e-9)
}

func TestGroupInvalidAggregation(t *testing.T) {
	tests := []struct {
		name string
		g    Group
	}{
		{"empty", NewGroup()},
		{"nil", nil},
		{"no elapsed time", NewTimerBuilder().Quiet().NewGroup(3, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.g.Percentage()
			assert.ErrorIs(t, err, ErrInvalidAggregation)

			stats, err := tt.g.Statistics()
			assert.ErrorIs(t, err, ErrInvalidAggregation)
			assert.Nil(t, stats)

			_, err = tt.g.FormatStatistics()
			assert.ErrorIs(t, err, ErrInvalidAggregation)

			assert.Len(t, tt.g.CumulativeElapsed(), len(tt.g))
			for _, d := range tt.g.CumulativeElapsed() {
				assert.Zero(t, d)
			}
			assert.Len(t, tt.g.NSplits(), len(tt.g))
			for _, n := range tt.g.NSplits() {
				assert.Zero(t, n)
			}
		})
	}
}

func TestGroupIsASlice(t *testing.T) {
	clk := newFakeClock()
	tb := NewTimerBuilder().Quiet().WithClock(clk.Now)
	a, b := tb.NewTimer("a"), tb.NewTimer("b")

	g := NewGroup(a)
	g = append(g, b)
	require.Len(t, g, 2)
	assert.Same(t, a, g[0])
	assert.Same(t, b, g[1])

	measure(g[1], clk, tick)
	assert.Equal(t, []int{0, 1}, g.NSplits())

	names := []string{}
	for _, timer := range g {
		names = append(names, timer.Description())
	}
	assert.Equal(t, []string{"...a", "...b"}, names)

	wrapped := Group([]*Timer{a, b})
	assert.Equal(t, g.NSplits(), wrapped.NSplits())
}

func TestGroupDoesNotMutateTimers(t *testing.T) {
	g, clk := newTestGroup(1)
	g[0].Start()
	clk.Advance(tick)

	_, _ = g.Statistics()
	_, _ = g.FormatStatistics()
	_ = g.String()

	assert.True(t, g[0].Running())
	assert.Equal(t, tick, g[0].Elapsed())
	assert.Zero(t, g[0].NSplits())
}

func TestBuilderNewGroup(t *testing.T) {
	sink := &recordSink{}
	g := NewTimerBuilder().WithSink(sink).WithPrefix("# ").NewGroup(3, "step")

	require.Len(t, g, 3)
	for _, timer := range g {
		assert.Equal(t, "# step", timer.Description())
	}
	assert.NotSame(t, g[0], g[1])

	assert.Empty(t, NewTimerBuilder().NewGroup(-1, ""))
}

func TestGroupFormatStatistics(t *testing.T) {
	clk := newFakeClock()
	tb := NewTimerBuilder().Quiet().WithClock(clk.Now)
	g := NewGroup(tb.NewTimer("load"), tb.NewTimer("parse"))

	measure(g[0], clk, 2*time.Second)
	measure(g[0], clk, time.Second)
	measure(g[1], clk, time.Second)

	out, err := g.FormatStatistics()
	require.NoError(t, err)

	for _, s := range []string{
		"timer", "cumulative", "percentage", "splits", "mean per split",
		"...load", "0:00:03", "75.0%", "0:00:01.500000",
		"...parse", "25.0%",
	} {
		assert.Contains(t, out, s)
	}
}

func TestGroupPrintWithoutElapsedTime(t *testing.T) {
	g := NewTimerBuilder().Quiet().NewGroup(2, "")
	assert.NotPanics(t, g.Print)
}
