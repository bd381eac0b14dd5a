package lapse

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidAggregation is returned when a ratio is requested from a group
	// that has no elapsed time to compute it from.
	ErrInvalidAggregation = errors.New("no elapsed time to compute a ratio from")

	// ErrFeatureUnavailable is returned when an optional feature is requested
	// but its implementation has not been registered.
	ErrFeatureUnavailable = errors.New("feature unavailable")
)

// Keys of the map returned by [Statistics.Map].
const (
	KeyCumulativeElapsedTime = "cumulative_elapsed_time"
	KeyPercentage            = "percentage"
	KeyNSplits               = "n_splits"
	KeyMeanPerSplit          = "mean_per_split"
)

// Statistics holds the statistics of a [Group], one value per timer in group
// order.
type Statistics struct {
	CumulativeElapsedTime []time.Duration `json:"cumulative_elapsed_time"`
	Percentage            []float64       `json:"percentage"`
	NSplits               []int           `json:"n_splits"`
	MeanPerSplit          []time.Duration `json:"mean_per_split"`
}

// Map returns the statistics keyed by name.
func (s *Statistics) Map() map[string]any {
	return map[string]any{
		KeyCumulativeElapsedTime: s.CumulativeElapsedTime,
		KeyPercentage:            s.Percentage,
		KeyNSplits:               s.NSplits,
		KeyMeanPerSplit:          s.MeanPerSplit,
	}
}

func (s *Statistics) String() string {
	var b bytes.Buffer

	b.WriteString("[statistics]\n")
	b.WriteString(fmt.Sprintf("%s: %s\n", KeyCumulativeElapsedTime, formatDurations(s.CumulativeElapsedTime)))
	b.WriteString(fmt.Sprintf("%s: %v\n", KeyPercentage, s.Percentage))
	b.WriteString(fmt.Sprintf("%s: %v\n", KeyNSplits, s.NSplits))
	b.WriteString(fmt.Sprintf("%s: %s\n", KeyMeanPerSplit, formatDurations(s.MeanPerSplit)))

	return b.String()
}

func formatDurations(ds []time.Duration) string {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, d := range ds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatDuration(d))
	}
	b.WriteByte(']')
	return b.String()
}
