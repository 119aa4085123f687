package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tailscan/internal/platform/postgres"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func newMigrateCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := setup(*verbose)
			if cfg.Database.URL == "" {
				return errNoDatabase
			}
			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return postgres.Migrate(cmd.Context(), db, log)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log := setup(*verbose)
			if cfg.Database.URL == "" {
				return errNoDatabase
			}
			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			v, err := postgres.Version(cmd.Context(), db, log)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	})
	return cmd
}
