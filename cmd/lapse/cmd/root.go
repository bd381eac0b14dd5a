// Package cmd implements the lapse command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/onegii/go-lapse/internal/config"
	"github.com/onegii/go-lapse/lapse"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
)

// Execute runs the root command and exits on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the lapse command tree. Every call returns an
// independent tree with its own configuration.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	cfg := config.DefaultConfig()
	var cfgFile string

	root := &cobra.Command{
		Use:   "lapse",
		Short: "Time commands and code sections",
		Long: `lapse measures the elapsed time of commands, splitting every run into its own
segment and reporting cumulative time, share of the total, number of splits and
mean time per split.

Examples:
  lapse exec -n 5 -- "make build" "make test"
  lapse exec --metrics -- "sleep 0.2"
  lapse demo`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.NewLoader(v).LoadWithFile(cfgFile)
			if err != nil {
				return err
			}
			*cfg = *loaded

			level, _ := config.ParseLevel(cfg.LogLevel)
			lapse.SetLogLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, _ := cmd.Flags().GetBool("version"); ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lapse version %s\n", lapse.Version)
				return nil
			}
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is search for lapse.yaml in . and $HOME/.config/lapse)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolP("quiet", "q", false, "do not print start and end messages")
	flags.String("prefix", "...", "prefix of the timer descriptions")
	flags.Bool("same-line", false, "print the end message on the same line as the start message")
	root.Flags().Bool("version", false, "print version information and exit")

	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = v.BindPFlag("prefix", flags.Lookup("prefix"))

	root.AddCommand(newExecCommand(v, cfg))
	root.AddCommand(newDemoCommand(cfg))

	return root
}

// timerBuilder returns a builder configured from cfg and the flags of cmd,
// writing its messages to the command output.
func timerBuilder(cmd *cobra.Command, cfg *config.Config) *lapse.TimerBuilder {
	endInNewLine := cfg.EndInNewLine
	if sameLine, _ := cmd.Flags().GetBool("same-line"); sameLine {
		endInNewLine = false
	}

	return lapse.NewTimerBuilder().
		WithSink(lapse.WriterSink(cmd.OutOrStdout())).
		WithPrefix(cfg.Prefix).
		WithVerbose(!cfg.Quiet).
		WithEndInNewLine(endInNewLine)
}

// commandLogger returns a logger writing to the error output of cmd at the
// level set in cfg.
func commandLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
