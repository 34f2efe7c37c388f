package domain

import "strings"

// Site is a renewable-potential candidate for a green hydrogen plant.
// Raw inputs come from the data source; derived fields are populated by the
// pipeline stages (score → proximity → cost) on a copy of the record and are
// not mutated afterwards.
type Site struct {
	Name  string
	State string
	Lat   float64
	Lon   float64

	// Raw inputs.
	SolarIrradiance float64 // kWh/m²/day
	WindSpeed       float64 // m/s
	LandSuitability float64 // 0–1, higher is better
	GridDistanceKm  float64

	// Derived by ScoreRenewables.
	SolarScore          float64 // 0–1
	WindScore           float64 // 0–1
	RenewablePotential  float64 // 0–1, solar-weighted blend
	TheoreticalCapacity float64 // kg H₂/year at full potential

	// Derived by AnalyzeProximity. NearestDistanceKm is +Inf and
	// NearestFacility nil when no facility exists for the region.
	NearestFacility   *Facility
	NearestDistanceKm float64

	// Derived by ApplyCostModel.
	AnnualProductionKg float64
	CAPEX              float64 // $
	AnnualOPEX         float64 // $/year
	LCOH               float64 // $/kg
	ProductionCost     float64 // $/kg, 75% of LCOH
	TransportCost      float64 // $/kg, 25% of LCOH
}

// FacilityType enumerates the kinds of infrastructure a site can anchor to.
type FacilityType string

const (
	FacilityPort           FacilityType = "port"
	FacilityIndustrialPark FacilityType = "industrial_park"
	FacilitySubstation     FacilityType = "substation"
	FacilityOther          FacilityType = "other"
)

// Facility is a fixed infrastructure reference point. Read-only during a run.
type Facility struct {
	Type       FacilityType
	Name       string
	State      string
	Lat        float64
	Lon        float64
	CapacityMW float64
	Status     string
}

// Criteria is the user input for one optimization run, immutable for its
// duration. Extra carries free-form fields that the core logic ignores but
// echoes into the output metadata.
type Criteria struct {
	Region          string
	MaxCost         float64 // $/kg
	MinProduction   float64 // kg/year
	ProximityToGrid bool
	Extra           map[string]any
}

// Criteria defaults.
const (
	DefaultMaxCost       = 6.0
	DefaultMinProduction = 1000.0
)

// DefaultCriteria returns criteria for a region with the documented defaults.
func DefaultCriteria(region string) Criteria {
	return Criteria{
		Region:          region,
		MaxCost:         DefaultMaxCost,
		MinProduction:   DefaultMinProduction,
		ProximityToGrid: true,
	}
}

// stateRegions are the lowercase keys with curated data coverage.
var stateRegions = []string{
	"gujarat", "rajasthan", "maharashtra", "karnataka", "tamil_nadu", "andhra_pradesh",
}

// RegionAll aggregates every covered state.
const RegionAll = "india"

// RegionKey normalizes a user-supplied region to its lookup form.
func RegionKey(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}

// IsStateRegion reports whether the region is one of the covered states.
func IsStateRegion(region string) bool {
	key := RegionKey(region)
	for _, r := range stateRegions {
		if r == key {
			return true
		}
	}
	return false
}

// IsKnownRegion reports whether the region is a covered state or the
// aggregate "india" key. Anything else is served synthetic fallback data.
func IsKnownRegion(region string) bool {
	return IsStateRegion(region) || RegionKey(region) == RegionAll
}

// StateRegions returns the covered state keys in canonical order.
func StateRegions() []string {
	out := make([]string, len(stateRegions))
	copy(out, stateRegions)
	return out
}

// RegionDisplayNames returns the human-readable region list for status reports.
func RegionDisplayNames() []string {
	return []string{
		"Gujarat", "Rajasthan", "Maharashtra", "Karnataka",
		"Tamil Nadu", "Andhra Pradesh", "India (All States)",
	}
}
