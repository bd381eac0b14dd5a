package lapse

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	group Group

	cumulative *prometheus.Desc
	splits     *prometheus.Desc
	mean       *prometheus.Desc
	share      *prometheus.Desc
}

// NewCollector returns a [prometheus.Collector] exporting the statistics of g
// every time it is scraped. The metrics are labeled with the index and the
// description of each timer:
//   - <namespace>_timer_cumulative_seconds
//   - <namespace>_timer_splits_total
//   - <namespace>_timer_mean_split_seconds
//   - <namespace>_timer_share_ratio, omitted while g has no elapsed time
func NewCollector(namespace string, g Group) prometheus.Collector {
	labels := []string{"index", "timer"}
	return &collector{
		group: g,
		cumulative: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "timer", "cumulative_seconds"),
			"Cumulative elapsed time of the timer, current split included.",
			labels, nil),
		splits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "timer", "splits_total"),
			"Number of completed splits of the timer.",
			labels, nil),
		mean: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "timer", "mean_split_seconds"),
			"Mean duration of the completed splits of the timer.",
			labels, nil),
		share: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "timer", "share_ratio"),
			"Share of the group cumulative elapsed time taken by the timer.",
			labels, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cumulative
	ch <- c.splits
	ch <- c.mean
	ch <- c.share
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	cumulative := c.group.CumulativeElapsed()
	nsplits := c.group.NSplits()
	mean := c.group.MeanPerSplit()
	share, err := c.group.Percentage()

	for i, t := range c.group {
		idx := strconv.Itoa(i)
		ch <- prometheus.MustNewConstMetric(c.cumulative, prometheus.GaugeValue,
			cumulative[i].Seconds(), idx, t.Description())
		ch <- prometheus.MustNewConstMetric(c.splits, prometheus.CounterValue,
			float64(nsplits[i]), idx, t.Description())
		ch <- prometheus.MustNewConstMetric(c.mean, prometheus.GaugeValue,
			mean[i].Seconds(), idx, t.Description())
		if err == nil {
			ch <- prometheus.MustNewConstMetric(c.share, prometheus.GaugeValue,
				share[i], idx, t.Description())
		}
	}
}
