package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "gridplan",
		Short:         "Plan paths on grid worlds with the wastar planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	logLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled)")
	rootCmd.AddCommand(newPlanCmd(), newServeCmd())
}

// newLogger builds the console logger shared by the subcommands.
func newLogger(app string) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(logLevel)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level %q: %w", logLevel, err)
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gridplan:", err)
		os.Exit(1)
	}
}
