package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the bundled sample sites",
		Long: `Create the database schema if it does not exist and load the bundled
sample dataset of twelve renewable sites and six infrastructure facilities.

Seeding is skipped when the renewable_potential table already has rows, so
the command is safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if err := a.store.EnsureSchema(ctx); err != nil {
				return err
			}

			sites, facilities, err := a.store.SeedSampleData(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("seed complete", "sites", sites, "facilities", facilities)
			return nil
		},
	}
}
