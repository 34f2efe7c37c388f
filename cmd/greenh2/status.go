package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenh2/site-optimizer/internal/observability"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print engine status and database connectivity as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			eng, err := a.newEngine(observability.NewMetrics())
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.DBPingTimeout)
			defer cancel()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(eng.Status(ctx))
		},
	}
}
