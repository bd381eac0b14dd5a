package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/onegii/go-lapse/internal/config"
	"github.com/onegii/go-lapse/lapse"
	"github.com/spf13/cobra"
)

func newDemoCommand(cfg *config.Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "demo",
		Short: "Walk a timer through start, pause, split and reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			step, _ := cmd.Flags().GetDuration("step")
			return runDemo(cmd, cfg, step)
		},
	}
	c.Flags().Duration("step", 100*time.Millisecond, "time waited between two operations")

	return c
}

func runDemo(cmd *cobra.Command, cfg *config.Config, step time.Duration) error {
	out := cmd.OutOrStdout()
	timer := timerBuilder(cmd, cfg).NewTimer("Waiting")

	time.Sleep(step)
	timer.LogElapsed()
	timer.Start()
	time.Sleep(step)
	timer.LogElapsed()
	time.Sleep(step)
	timer.Pause()
	timer.LogElapsed()
	time.Sleep(step)
	timer.LogElapsed()
	timer.Split()
	timer.LogElapsed()
	time.Sleep(step)
	timer.Start()
	time.Sleep(step)
	timer.Split()
	time.Sleep(step)
	timer.Pause()
	timer.Split()

	_, _ = fmt.Fprintf(out, "cumulative elapsed time: %s\n", formatSplits(timer.CumulativeElapsed()))
	_, _ = fmt.Fprintf(out, "splits: %s\n", formatSplits(timer.Splits()...))

	timer.Reset()
	timer.LogElapsed()
	_, _ = fmt.Fprintf(out, "splits after reset: %d\n", timer.NSplits())

	return nil
}

func formatSplits(ds ...time.Duration) string {
	s := make([]string, len(ds))
	for i, d := range ds {
		s[i] = lapse.FormatDuration(d)
	}
	return "[" + strings.Join(s, ", ") + "]"
}
