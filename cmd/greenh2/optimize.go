package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/observability"
)

func newOptimizeCommand() *cobra.Command {
	var (
		region          string
		maxCost         float64
		minProduction   float64
		proximityToGrid bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run one optimization and print the feature collection as JSON",
		Long: `Run a single optimization against the configured database and print the
resulting GeoJSON feature collection to stdout.

The same engine as the HTTP API serves the request, including the fallback
to simulated results when the database is unreachable.`,
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

			criteria := domain.Criteria{
				Region:          region,
				MaxCost:         maxCost,
				MinProduction:   minProduction,
				ProximityToGrid: proximityToGrid,
			}

			fc, err := eng.Optimize(cmd.Context(), criteria)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fc)
		},
	}

	cmd.Flags().StringVar(&region, "region", "", `state to optimize, or "india" for all states`)
	cmd.Flags().Float64Var(&maxCost, "max-cost", domain.DefaultMaxCost, "LCOH ceiling in $/kg")
	cmd.Flags().Float64Var(&minProduction, "min-production", domain.DefaultMinProduction, "annual production floor in kg")
	cmd.Flags().BoolVar(&proximityToGrid, "proximity-to-grid", true, "prefer grid-adjacent sites")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}
