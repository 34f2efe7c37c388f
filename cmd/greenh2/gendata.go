package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/ingest"
)

// Curated development dataset covering the six supported states. Resource
// values are representative of each region (western India solar, coastal
// Tamil Nadu wind), not measurements.
type genSite struct {
	name            string
	state           string
	lat, lon        float64
	irradiance      float64
	windSpeed       float64
	landSuitability float64
	gridDistanceKm  float64
}

var genSites = []genSite{
	{"Bhuj Solar Park", "Gujarat", 23.2410, 69.6669, 5.8, 6.2, 0.9, 15.0},
	{"Kutch Wind Farm", "Gujarat", 23.7337, 68.8647, 5.6, 7.1, 0.8, 20.0},
	{"Jaisalmer Solar Park", "Rajasthan", 26.9157, 70.9083, 6.2, 5.8, 0.9, 25.0},
	{"Bikaner Wind Park", "Rajasthan", 28.0229, 73.3119, 5.9, 6.5, 0.8, 30.0},
	{"Dhule Solar Park", "Maharashtra", 20.9042, 74.7749, 5.4, 4.9, 0.8, 18.0},
	{"Solapur Wind Farm", "Maharashtra", 17.6599, 75.9064, 5.2, 5.2, 0.7, 22.0},
	{"Tumkur Solar Park", "Karnataka", 13.3409, 77.1000, 5.3, 5.1, 0.8, 20.0},
	{"Pavagada Solar Park", "Karnataka", 14.1000, 77.2833, 5.5, 4.8, 0.9, 15.0},
	{"Kamuthi Solar Power Project", "Tamil Nadu", 9.4043, 78.3734, 5.6, 4.7, 0.8, 12.0},
	{"Muppandal Wind Farm", "Tamil Nadu", 8.2667, 77.5167, 5.1, 6.8, 0.7, 8.0},
	{"Anantapur Solar Park", "Andhra Pradesh", 14.6819, 77.6006, 5.7, 4.3, 0.9, 18.0},
	{"Kurnool Ultra Mega Solar Park", "Andhra Pradesh", 15.8281, 78.0373, 5.8, 4.1, 0.9, 20.0},
}

type genFacility struct {
	name       string
	kind       string
	state      string
	lat, lon   float64
	capacityMW float64
	status     string
}

var genFacilities = []genFacility{
	{"Jamnagar Port", "port", "Gujarat", 22.4707, 70.0577, 600, "operational"},
	{"Mumbai Port", "port", "Maharashtra", 18.9207, 72.8347, 300, "operational"},
	{"Chennai Port", "port", "Tamil Nadu", 13.0827, 80.2707, 400, "operational"},
	{"Visakhapatnam Port", "port", "Andhra Pradesh", 17.6868, 83.2185, 450, "operational"},
	{"Mangalore Port", "port", "Karnataka", 12.9141, 74.8143, 200, "operational"},
	{"Vadodara Chemical Hub", "industrial_park", "Gujarat", 22.3072, 73.1812, 400, "operational"},
	{"Taloja Industrial Area", "industrial_park", "Maharashtra", 19.0833, 73.1000, 200, "operational"},
	{"Bengaluru Tech Park", "industrial_park", "Karnataka", 12.9716, 77.5946, 300, "operational"},
	{"Chennai Tidel Park", "industrial_park", "Tamil Nadu", 12.9814, 80.2180, 250, "operational"},
	{"Vijayawada Industrial Park", "industrial_park", "Andhra Pradesh", 16.5062, 80.6480, 220, "operational"},
	{"Bhuj Substation", "substation", "Gujarat", 23.2410, 69.6669, 500, "operational"},
	{"Jaisalmer Substation", "substation", "Rajasthan", 26.9157, 70.9083, 400, "operational"},
	{"Dhule Substation", "substation", "Maharashtra", 20.9042, 74.7749, 300, "operational"},
}

type genNetwork struct {
	name       string
	kind       string
	state      string
	lat, lon   float64
	capacityTY float64
	status     string
}

var genNetworks = []genNetwork{
	{"NH-48 (Golden Quadrilateral)", "road", "Maharashtra", 19.0760, 72.8777, 5_000_000, "operational"},
	{"NH-8 (Delhi-Mumbai)", "road", "Rajasthan", 26.9124, 75.7873, 3_000_000, "operational"},
	{"NH-44 (North-South Corridor)", "road", "Karnataka", 12.9716, 77.5946, 4_000_000, "operational"},
	{"Western Railway", "rail", "Gujarat", 23.0225, 72.5714, 10_000_000, "operational"},
	{"Southern Railway", "rail", "Tamil Nadu", 13.0827, 80.2707, 8_000_000, "operational"},
	{"South Central Railway", "rail", "Andhra Pradesh", 17.6868, 83.2185, 9_000_000, "operational"},
}

func newGendataCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "gendata",
		Short: "Write the development CSV dataset for the import command",
		Long: `Write the curated development dataset as the three CSV files the import
command consumes: renewable_potential_india.csv, infrastructure_india.csv,
and transportation_india.csv.

After writing, the files are read back through the import parsers and the
site records are validated, so a generated dataset is guaranteed to import
cleanly. A summary of the generated sites is printed for updating test
fixtures.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGendata(cmd, dataDir)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "data/india", "directory to write the CSV files into")

	return cmd
}

func runGendata(cmd *cobra.Command, dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	out := cmd.OutOrStdout()

	sitesPath := filepath.Join(dataDir, "renewable_potential_india.csv")
	if err := writeCSV(sitesPath, siteRecords()); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s: %d sites\n", sitesPath, len(genSites))

	facilitiesPath := filepath.Join(dataDir, "infrastructure_india.csv")
	if err := writeCSV(facilitiesPath, facilityRecords()); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s: %d facilities\n", facilitiesPath, len(genFacilities))

	networksPath := filepath.Join(dataDir, "transportation_india.csv")
	if err := writeCSV(networksPath, networkRecords()); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s: %d networks\n", networksPath, len(genNetworks))

	sites, err := verifyGenerated(dataDir)
	if err != nil {
		return fmt.Errorf("generated data failed verification: %w", err)
	}

	printSiteStats(out, sites)
	return nil
}

func siteRecords() [][]string {
	records := [][]string{{
		"site_name", "state", "latitude", "longitude",
		"solar_irradiance", "wind_speed", "land_suitability", "grid_distance_km",
	}}
	for _, s := range genSites {
		records = append(records, []string{
			s.name, s.state, formatFloat(s.lat), formatFloat(s.lon),
			formatFloat(s.irradiance), formatFloat(s.windSpeed),
			formatFloat(s.landSuitability), formatFloat(s.gridDistanceKm),
		})
	}
	return records
}

func facilityRecords() [][]string {
	records := [][]string{{
		"facility_name", "facility_type", "state", "latitude", "longitude", "capacity_mw", "status",
	}}
	for _, f := range genFacilities {
		records = append(records, []string{
			f.name, f.kind, f.state, formatFloat(f.lat), formatFloat(f.lon),
			formatFloat(f.capacityMW), f.status,
		})
	}
	return records
}

func networkRecords() [][]string {
	records := [][]string{{
		"network_name", "network_type", "state", "latitude", "longitude", "capacity_tonnes_year", "status",
	}}
	for _, n := range genNetworks {
		records = append(records, []string{
			n.name, n.kind, n.state, formatFloat(n.lat), formatFloat(n.lon),
			formatFloat(n.capacityTY), n.status,
		})
	}
	return records
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// verifyGenerated reads the files back through the same parsers the import
// command uses, so any drift between generator and importer fails here
// instead of at import time.
func verifyGenerated(dataDir string) ([]domain.Site, error) {
	sites, err := openAndParse(filepath.Join(dataDir, "renewable_potential_india.csv"), ingest.ReadSitesCSV)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateSites(sites); err != nil {
		return nil, err
	}
	if _, err := openAndParse(filepath.Join(dataDir, "infrastructure_india.csv"), ingest.ReadFacilitiesCSV); err != nil {
		return nil, err
	}
	if _, err := openAndParse(filepath.Join(dataDir, "transportation_india.csv"), ingest.ReadSegmentsCSV); err != nil {
		return nil, err
	}
	return sites, nil
}

// printSiteStats prints the scored dataset summary used to keep test
// fixture expectations in sync with the generated data.
func printSiteStats(out io.Writer, sites []domain.Site) {
	stateCounts := map[string]int{}
	var best domain.Site
	for _, s := range sites {
		scored := domain.ScoreRenewables(s)
		stateCounts[s.State]++
		if scored.RenewablePotential > best.RenewablePotential {
			best = scored
		}
	}

	states := make([]string, 0, len(stateCounts))
	for s := range stateCounts {
		states = append(states, s)
	}
	sort.Strings(states)

	fmt.Fprintf(out, "\n=== Generated dataset summary ===\n")
	fmt.Fprintf(out, "Total sites: %d\n", len(sites))
	for _, s := range states {
		fmt.Fprintf(out, "  %s: %d\n", s, stateCounts[s])
	}
	fmt.Fprintf(out, "Top site by renewable potential: %s (%.3f)\n", best.Name, best.RenewablePotential)
}
