package main

import (
	"time"

	"fitsync/training-service/internal/repository/postgres"

	"github.com/spf13/cobra"
)

type migrateOutput struct {
	Command    string   `json:"command"`
	DurationMS int64    `json:"duration_ms"`
	Applied    []string `json:"applied"`
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, log, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer postgres.CloseDB(pool)
			defer log.Sync()

			start := time.Now()
			applied, err := postgres.Migrate(cmd.Context(), pool, log)
			if err != nil {
				return err
			}
			return writeJSON(migrateOutput{
				Command:    "migrate",
				DurationMS: time.Since(start).Milliseconds(),
				Applied:    applied,
			})
		},
	}
}
