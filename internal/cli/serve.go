package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/moseskolleh/promptcoach/internal/config"
	"github.com/moseskolleh/promptcoach/internal/history"
	"github.com/moseskolleh/promptcoach/internal/refdata"
	"github.com/moseskolleh/promptcoach/internal/server"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the estimator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			// Flags override the config file.
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
				cfg.LogLevel = logLevel
			}

			logger := serverLogger(cfg)

			var catalog *refdata.Catalog
			if cfg.DataDir != "" {
				catalog, err = refdata.LoadDir(cfg.DataDir, logger)
			} else {
				catalog, err = refdata.Load(logger)
			}
			if err != nil {
				// Initial load failure is fatal: no calculation can be
				// served without reference data.
				return err
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg.History.Path, logger)
				if err != nil {
					return err
				}
			}

			srv := server.New(server.Options{
				Logger:       logger,
				Catalog:      catalog,
				History:      store,
				DefaultModel: cfg.DefaultModel,
			})

			if cfg.Watch && cfg.DataDir != "" {
				watcher, errWatch := refdata.NewWatcher(cfg.DataDir, logger, srv.SwapCatalog)
				if errWatch != nil {
					return errWatch
				}
				watcher.Start()
				defer watcher.Stop()
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				logger.Info().Msg("shutdown signal received")
				cancel()
			}()

			return srv.Run(ctx, cfg.ListenAddr)
		},
	}
}

func serverLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr)
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
