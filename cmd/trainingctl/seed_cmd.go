package main

import (
	"time"

	"fitsync/training-service/internal/repository/postgres"

	"github.com/spf13/cobra"
)

type seedOutput struct {
	Command    string              `json:"command"`
	DurationMS int64               `json:"duration_ms"`
	Result     postgres.SeedResult `json:"result"`
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample exercises, plans and a program",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, log, err := opts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer postgres.CloseDB(pool)
			defer log.Sync()

			start := time.Now()
			if migrate {
				if _, err := postgres.Migrate(cmd.Context(), pool, log); err != nil {
					return err
				}
			}
			res, err := postgres.Seed(cmd.Context(), pool, log)
			if err != nil {
				return err
			}
			return writeJSON(seedOutput{
				Command:    "seed",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     res,
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations first")
	return cmd
}
