package main

import (
	"github.com/spf13/cobra"

	"jobboard/infrastructure"
)

var seed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := infrastructure.NewPostgresPool(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		db, err := infrastructure.NewGormDB(pool)
		if err != nil {
			return err
		}

		if err := infrastructure.Migrate(ctx, log, db); err != nil {
			return err
		}
		if seed {
			return infrastructure.Seed(ctx, log, db)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seed, "seed", false, "insert demo companies and jobs into an empty database")
}
