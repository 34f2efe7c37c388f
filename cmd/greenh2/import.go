package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/ingest"
)

func newImportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the India geospatial CSV exports into the database",
		Long: `Import the renewable potential, infrastructure, and transportation
network CSV exports into the database, creating the schema first if needed.

The directory is expected to contain renewable_potential_india.csv,
infrastructure_india.csv, and transportation_india.csv.`,
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

			sites, err := openAndParse(filepath.Join(dataDir, "renewable_potential_india.csv"), ingest.ReadSitesCSV)
			if err != nil {
				return err
			}
			if err := domain.ValidateSites(sites); err != nil {
				return err
			}
			siteCount, err := a.store.InsertSites(ctx, sites)
			if err != nil {
				return err
			}
			a.logger.Info("imported renewable sites", "count", siteCount)

			facilities, err := openAndParse(filepath.Join(dataDir, "infrastructure_india.csv"), ingest.ReadFacilitiesCSV)
			if err != nil {
				return err
			}
			facilityCount, err := a.store.InsertFacilities(ctx, facilities)
			if err != nil {
				return err
			}
			a.logger.Info("imported infrastructure facilities", "count", facilityCount)

			segments, err := openAndParse(filepath.Join(dataDir, "transportation_india.csv"), ingest.ReadSegmentsCSV)
			if err != nil {
				return err
			}
			segmentCount, err := a.store.InsertSegments(ctx, segments)
			if err != nil {
				return err
			}
			a.logger.Info("imported transport segments", "count", segmentCount)

			a.logger.Info("import complete",
				"sites", siteCount,
				"facilities", facilityCount,
				"segments", segmentCount,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "data/india", "directory holding the India CSV exports")

	return cmd
}

func openAndParse[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}
