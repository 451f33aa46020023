package main

import (
	"context"
	"fmt"

	"fitsync/training-service/internal/config"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	databaseURL string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "trainingctl",
		Short:        "Operator tools for the training service database",
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", ".", "Directory containing config.yaml")
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL URL (overrides config)")

	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	return cmd
}

// connect loads config, builds the logger and opens the pool.
func (o *rootOptions) connect(ctx context.Context) (*pgxpool.Pool, *logger.Logger, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if o.databaseURL != "" {
		cfg.Database.URL = o.databaseURL
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	pool, err := postgres.ConnectDB(cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect failed: %w", err)
	}
	return pool, log, nil
}
