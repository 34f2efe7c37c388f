package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

// Engine identification strings carried in output metadata and status reports.
const (
	AlgorithmPrimary  = "GEOH2_Real_Optimizer_v1.0"
	AlgorithmFallback = "GEOH2_Simulation_Optimizer"
	EngineVersion     = "1.0.0"
)

// primaryDataSources documents where the primary pipeline's inputs originate.
// Documentary only; no behavioral effect.
var primaryDataSources = []string{
	"Solar irradiance data (NASA POWER)",
	"Wind speed data (MERRA-2)",
	"Grid infrastructure data",
	"Transportation networks",
	"Industrial demand centers",
	"Port facilities",
}

// FeatureCollection is the wire contract for one optimization run: a GeoJSON
// feature collection with an extra metadata block. Consumers (map UI, CLI,
// test scripts) depend on the property names and on [lon, lat] coordinate
// order.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	Metadata Metadata  `json:"metadata"`
}

// Feature is one recommended site.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is a GeoJSON point. Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Properties carries the per-site results. The first block is the contract
// every consumer depends on; the diagnostic block is only populated by the
// primary pipeline (the simulator has no real scores or infrastructure to
// report, so those fields are omitted there).
type Properties struct {
	SiteName       string  `json:"site_name"`
	LCOH           float64 `json:"lcoh"`
	ProductionCost float64 `json:"production_cost"`
	TransportCost  float64 `json:"transport_cost"`
	Region         string  `json:"region"`
	MaxCost        float64 `json:"max_cost"`
	Rank           int     `json:"rank"`
	Coordinates    string  `json:"coordinates"` // display form, "23.241°N, 69.669°E"

	// Diagnostics (primary pipeline only).
	RenewablePotential        float64  `json:"renewable_potential,omitempty"`
	InfrastructureProximityKm *float64 `json:"infrastructure_proximity_km,omitempty"`
	AnnualProductionTonnes    float64  `json:"annual_production_tonnes,omitempty"`
	NearestInfrastructure     string   `json:"nearest_infrastructure,omitempty"`
}

// Metadata describes the run that produced the features.
type Metadata struct {
	OptimizationCriteria  map[string]any `json:"optimization_criteria"`
	TotalSitesFound       int            `json:"total_sites_found"`
	ProcessingTimeSeconds float64        `json:"processing_time_seconds"`
	Algorithm             string         `json:"algorithm"`
	RegionFocus           string         `json:"region_focus"`
	Methodology           string         `json:"methodology,omitempty"`
	CostParametersUsed    *Parameters    `json:"cost_parameters_used,omitempty"`
	DataSources           []string       `json:"data_sources"`
	CostFactorsConsidered []string       `json:"cost_factors_considered,omitempty"`
	RunID                 string         `json:"run_id,omitempty"`
	GeneratedAt           time.Time      `json:"generated_at"`
}

// BuildFeatureCollection assembles ranked sites into the output document for
// the primary pipeline. Sites must already be filtered, sorted, and truncated;
// ranks are assigned 1..N in the given order. Deterministic given
// deterministic inputs.
func BuildFeatureCollection(sites []Site, criteria Criteria, params Parameters, elapsed time.Duration) FeatureCollection {
	features := make([]Feature, 0, len(sites))
	for i, site := range sites {
		features = append(features, siteFeature(site, criteria, i+1))
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
		Metadata: Metadata{
			OptimizationCriteria:  EchoCriteria(criteria),
			TotalSitesFound:       len(features),
			ProcessingTimeSeconds: Round2(elapsed.Seconds()),
			Algorithm:             AlgorithmPrimary,
			RegionFocus:           TitleCase(criteria.Region),
			Methodology:           "Real geospatial optimization with LCOH calculation",
			CostParametersUsed:    &params,
			DataSources:           primaryDataSources,
			GeneratedAt:           clock.Now().UTC(),
		},
	}
}

func siteFeature(site Site, criteria Criteria, rank int) Feature {
	props := Properties{
		SiteName:               site.Name,
		LCOH:                   Round2(site.LCOH),
		ProductionCost:         Round2(site.ProductionCost),
		TransportCost:          Round2(site.TransportCost),
		Region:                 TitleCase(site.State),
		MaxCost:                criteria.MaxCost,
		Rank:                   rank,
		Coordinates:            DisplayCoordinates(site.Lat, site.Lon),
		RenewablePotential:     Round2(site.RenewablePotential),
		AnnualProductionTonnes: Round1(site.AnnualProductionKg / 1000),
		NearestInfrastructure:  "None",
	}

	if site.NearestFacility != nil {
		distance := Round1(site.NearestDistanceKm)
		props.InfrastructureProximityKm = &distance
		props.NearestInfrastructure = site.NearestFacility.Name
	}

	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: [2]float64{site.Lon, site.Lat},
		},
		Properties: props,
	}
}

// EchoCriteria flattens criteria into the metadata echo map, merging the
// free-form extra fields alongside the named ones.
func EchoCriteria(criteria Criteria) map[string]any {
	echo := map[string]any{
		"region":            criteria.Region,
		"max_cost":          criteria.MaxCost,
		"min_production":    criteria.MinProduction,
		"proximity_to_grid": criteria.ProximityToGrid,
	}
	for k, v := range criteria.Extra {
		if _, reserved := echo[k]; !reserved {
			echo[k] = v
		}
	}
	return echo
}

// DisplayCoordinates renders the human-readable coordinate string used in
// feature properties.
func DisplayCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.3f°N, %.3f°E", lat, lon)
}

// TitleCase uppercases the first letter of each run of letters and lowers
// the rest, preserving separators: "tamil_nadu" → "Tamil_Nadu". Digits end a
// run, so "site_2x" becomes "Site_2X". Region and state labels in output use
// this form.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
			continue
		}
		b.WriteRune(r)
		inWord = false
	}
	return b.String()
}

// Round2 rounds to two decimals, the precision of all cost fields.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal, used for distances and tonnages.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
