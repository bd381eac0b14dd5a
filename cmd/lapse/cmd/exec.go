package cmd

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/onegii/go-lapse/internal/config"
	"github.com/onegii/go-lapse/lapse"
	_ "github.com/onegii/go-lapse/lapse/progress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
)

func newExecCommand(v *viper.Viper, cfg *config.Config) *cobra.Command {
	c := &cobra.Command{
		Use:   "exec [flags] -- command [command...]",
		Short: "Run shell commands and report their timing statistics",
		Long: `Run every command the requested number of times, one after the other, each
run being a split of the timer of its command. The statistics of all the timers
are printed at the end.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, cfg, args)
		},
	}

	c.Flags().IntP("repeat", "n", 1, "number of runs of each command")
	c.Flags().String("shell", "sh", "shell used to run the commands")
	c.Flags().Bool("progress", false, "render the progress of the runs on stderr")
	c.Flags().Bool("metrics", false, "print the statistics in the Prometheus text format")
	c.Flags().Bool("output", false, "forward the output of the commands to stderr")
	_ = v.BindPFlag("repeat", c.Flags().Lookup("repeat"))

	return c
}

func runExec(cmd *cobra.Command, cfg *config.Config, args []string) error {
	shell, _ := cmd.Flags().GetString("shell")
	showProgress, _ := cmd.Flags().GetBool("progress")
	showMetrics, _ := cmd.Flags().GetBool("metrics")
	forward, _ := cmd.Flags().GetBool("output")

	var output io.Writer = io.Discard
	if forward {
		output = cmd.ErrOrStderr()
	}

	tb := timerBuilder(cmd, cfg)
	g := make(lapse.Group, 0, len(args))
	for _, a := range args {
		g = append(g, tb.NewTimer(a))
	}

	var it *lapse.IterTimer
	if showProgress {
		var err error
		it, err = lapse.NewIterTimer("exec", cfg.Repeat*len(args), &lapse.IterOptions{Writer: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		defer it.Enter().Exit()
	}

	for r := 0; r < cfg.Repeat; r++ {
		for i, a := range args {
			err := g[i].Measure(func() error {
				return run(cmd.Context(), shell, a, output)
			})
			if err != nil {
				return fmt.Errorf("running %q: %w", a, err)
			}
			if it != nil {
				it.Update(r*len(args) + i + 1)
			}
		}
	}

	table, err := g.FormatStatistics()
	if err != nil {
		commandLogger(cmd, cfg).Warn("no statistics to report", slog.Any("error", err))
	} else {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), table)
	}

	if showMetrics {
		return writeMetrics(cmd.OutOrStdout(), cfg.MetricsNamespace, g)
	}
	return nil
}

func run(ctx context.Context, shell, command string, output io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c := exec.CommandContext(ctx, shell, "-c", command)
	c.Stdout = output
	c.Stderr = output
	return c.Run()
}

func writeMetrics(w io.Writer, namespace string, g lapse.Group) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(lapse.NewCollector(namespace, g)); err != nil {
		return fmt.Errorf("registering collector: %w", err)
	}

	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
