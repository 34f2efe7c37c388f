package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/greenh2/site-optimizer/internal/domain"
	"github.com/greenh2/site-optimizer/internal/ingest"
)

// India bounding box, generous enough to cover the island territories. A
// coordinate outside it almost always means swapped lat/lon columns.
const (
	indiaMinLat = 6.0
	indiaMaxLat = 37.0
	indiaMinLon = 68.0
	indiaMaxLon = 98.0
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the CSV exports for integrity problems before import",
		Long: `Check the three India CSV exports for integrity problems without touching
the database: per-record field validation, duplicate sites, unrecognized
facility and network types, states outside the supported regions, and
coordinates outside India (usually swapped lat/lon columns).

Exits non-zero if any check fails, so it can gate an import in CI.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, dataDir)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "data/india", "directory holding the India CSV exports")

	return cmd
}

func runValidate(cmd *cobra.Command, dataDir string) error {
	out := cmd.OutOrStdout()

	sites, err := openAndParse(filepath.Join(dataDir, "renewable_potential_india.csv"), ingest.ReadSitesCSV)
	if err != nil {
		return err
	}
	facilities, err := openAndParse(filepath.Join(dataDir, "infrastructure_india.csv"), ingest.ReadFacilitiesCSV)
	if err != nil {
		return err
	}
	networks, err := openAndParse(filepath.Join(dataDir, "transportation_india.csv"), ingest.ReadSegmentsCSV)
	if err != nil {
		return err
	}

	phases := []*phase{
		validateSiteRecords(sites),
		validateFacilityRecords(facilities),
		validateNetworkRecords(networks),
		validateRegionalConsistency(sites, facilities, networks),
	}

	fmt.Fprintln(out, "=== India dataset validation ===")
	fmt.Fprintln(out)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-36s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d sites, %d facilities, %d networks\n", len(sites), len(facilities), len(networks))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if !allPassed {
		return errors.New("validation failed")
	}
	fmt.Fprintln(out, "\nAll validations passed.")
	return nil
}

// validateSiteRecords applies the same per-record rules the import path
// enforces, but collects every violation instead of stopping at the first.
func validateSiteRecords(sites []domain.Site) *phase {
	p := &phase{name: "Phase 1: Site records"}

	seen := map[string]int{}
	for i, s := range sites {
		line := i + 2 // 1-based, after the header
		if err := domain.ValidateSites([]domain.Site{s}); err != nil {
			p.errorf("line %d: %v", line, err)
		}

		key := s.Name + "|" + s.State
		if first, ok := seen[key]; ok {
			p.errorf("line %d: duplicate of site %q in %s (first at line %d)", line, s.Name, s.State, first)
			continue
		}
		seen[key] = line
	}
	return p
}

func validateFacilityRecords(facilities []domain.Facility) *phase {
	p := &phase{name: "Phase 2: Infrastructure records"}

	for i, f := range facilities {
		line := i + 2
		if f.Name == "" {
			p.errorf("line %d: missing facility name", line)
		}
		if f.Type == domain.FacilityOther {
			p.errorf("line %d: facility %q: facility_type not one of port/industrial_park/substation", line, f.Name)
		}
		if f.Status == "" {
			p.errorf("line %d: facility %q: missing status", line, f.Name)
		}
		if f.Lat < -90 || f.Lat > 90 || f.Lon < -180 || f.Lon > 180 {
			p.errorf("line %d: facility %q: coordinates (%g, %g) out of range", line, f.Name, f.Lat, f.Lon)
		}
	}
	return p
}

var knownNetworkTypes = map[string]bool{"road": true, "rail": true, "pipeline": true}

func validateNetworkRecords(networks []domain.Segment) *phase {
	p := &phase{name: "Phase 3: Transport network records"}

	for i, n := range networks {
		line := i + 2
		if n.Name == "" {
			p.errorf("line %d: missing network name", line)
		}
		if !knownNetworkTypes[n.NetworkType] {
			p.errorf("line %d: network %q: network_type %q not one of road/rail/pipeline", line, n.Name, n.NetworkType)
		}
		if n.CapacityTonnesYear <= 0 {
			p.errorf("line %d: network %q: capacity_tonnes_year %g must be positive", line, n.Name, n.CapacityTonnesYear)
		}
		if n.Status == "" {
			p.errorf("line %d: network %q: missing status", line, n.Name)
		}
	}
	return p
}

// validateRegionalConsistency flags rows that parse cleanly but can never be
// reached through a state region filter, plus coordinates outside India.
func validateRegionalConsistency(sites []domain.Site, facilities []domain.Facility, networks []domain.Segment) *phase {
	p := &phase{name: "Phase 4: Regional consistency"}

	for _, s := range sites {
		if !isSupportedState(s.State) {
			p.errorf("site %q: state %q is not a supported region", s.Name, s.State)
		}
		if !insideIndia(s.Lat, s.Lon) {
			p.errorf("site %q: coordinates (%.4f, %.4f) outside India", s.Name, s.Lat, s.Lon)
		}
	}
	for _, f := range facilities {
		if !isSupportedState(f.State) {
			p.errorf("facility %q: state %q is not a supported region", f.Name, f.State)
		}
		if !insideIndia(f.Lat, f.Lon) {
			p.errorf("facility %q: coordinates (%.4f, %.4f) outside India", f.Name, f.Lat, f.Lon)
		}
	}
	for _, n := range networks {
		if !isSupportedState(n.State) {
			p.errorf("network %q: state %q is not a supported region", n.Name, n.State)
		}
		if !insideIndia(n.StartLat, n.StartLon) || !insideIndia(n.EndLat, n.EndLon) {
			p.errorf("network %q: segment endpoints outside India", n.Name)
		}
	}
	return p
}

func isSupportedState(state string) bool {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(state)), " ", "_")
	return domain.IsStateRegion(key)
}

func insideIndia(lat, lon float64) bool {
	return lat >= indiaMinLat && lat <= indiaMaxLat && lon >= indiaMinLon && lon <= indiaMaxLon
}
