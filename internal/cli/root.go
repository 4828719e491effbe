// Package cli implements the promptcoach command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/moseskolleh/promptcoach/internal/refdata"
)

var (
	cfgPath  string
	dataDir  string
	logLevel string
)

// NewRootCommand builds the promptcoach command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptcoach",
		Short: "Estimate the environmental cost of AI prompts",
		Long: `promptcoach estimates the energy, water, and carbon footprint of AI
prompts from benchmarked model operating points, and recommends
optimizations: trimming filler, switching models, shortening output.`,
		Version:       "0.2.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (serve only)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory with external reference tables (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace|debug|info|warn|error)")

	rootCmd.AddCommand(
		newEstimateCommand(),
		newAverageCommand(),
		newCompareCommand(),
		newAnalyzeCommand(),
		newModelsCommand(),
		newProjectionCommand(),
		newServeCommand(),
	)

	return rootCmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a console logger at the configured level.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadCatalog loads the external data directory when set, otherwise
// the embedded defaults.
func loadCatalog(logger zerolog.Logger) (*refdata.Catalog, error) {
	if dataDir != "" {
		return refdata.LoadDir(dataDir, logger)
	}
	return refdata.Load(logger)
}
