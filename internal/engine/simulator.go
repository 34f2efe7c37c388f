package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/greenh2/site-optimizer/internal/domain"
)

// simSite is one entry in the curated simulation tables: a plausible location
// with a hand-tuned baseline cost.
type simSite struct {
	name     string
	lat, lon float64
	baseLCOH float64
}

// curatedSites holds the per-state simulation tables. Keys match the region
// registry's state keys.
var curatedSites = map[string][]simSite{
	"gujarat": {
		{"Bhuj_Solar_Park", 23.241, 69.669, 3.5},
		{"Kutch_Wind_Farm", 23.733, 68.867, 4.2},
		{"Surat_Port_Complex", 21.170, 72.831, 4.8},
		{"Ahmedabad_Industrial", 23.022, 72.571, 4.1},
		{"Jamnagar_Refinery", 22.470, 70.057, 3.8},
		{"Bhavnagar_Coast", 21.761, 72.151, 4.3},
		{"Rajkot_Industrial", 22.303, 70.802, 4.5},
		{"Vadodara_Chemical", 22.307, 73.181, 4.0},
	},
	"rajasthan": {
		{"Jaisalmer_Wind", 26.915, 70.908, 3.2},
		{"Bikaner_Solar", 28.022, 73.311, 3.8},
		{"Jodhpur_Industrial", 26.238, 73.024, 4.1},
		{"Jaipur_Smart_City", 26.912, 75.787, 4.5},
		{"Barmer_Renewable", 25.753, 71.393, 3.6},
	},
	"maharashtra": {
		{"Dhule_Solar", 20.902, 74.774, 4.0},
		{"Pune_Technology", 18.520, 73.856, 4.3},
		{"Mumbai_Port", 18.922, 72.834, 4.8},
		{"Nagpur_Industrial", 21.145, 79.088, 4.2},
		{"Aurangabad_Solar", 19.876, 75.343, 3.9},
	},
	"karnataka": {
		{"Bengaluru_Tech", 12.971, 77.594, 4.4},
		{"Mangalore_Port", 12.914, 74.856, 4.1},
		{"Hubli_Industrial", 15.364, 75.124, 4.0},
		{"Mysore_Heritage", 12.295, 76.639, 4.2},
		{"Tumkur_Solar", 13.340, 77.101, 3.8},
	},
	"tamil_nadu": {
		{"Chennai_Port", 13.082, 80.270, 4.5},
		{"Coimbatore_Industrial", 11.016, 76.955, 4.2},
		{"Tiruchirappalli_Solar", 10.790, 78.704, 4.0},
		{"Madurai_Heritage", 9.925, 78.119, 4.3},
		{"Tuticorin_Port", 8.764, 78.134, 4.1},
	},
	"andhra_pradesh": {
		{"Visakhapatnam_Port", 17.686, 83.218, 4.3},
		{"Vijayawada_Industrial", 16.506, 80.648, 4.1},
		{"Tirupati_Solar", 13.628, 79.419, 3.9},
		{"Kakinada_Port", 16.989, 82.247, 4.2},
		{"Anantapur_Wind", 14.681, 77.600, 3.7},
	},
}

// fallbackDataSources and fallbackCostFactors are the documentary lists for
// simulated runs. The simulator reads no real data, so the entries are
// generic.
var (
	fallbackDataSources = []string{
		"Solar irradiance data",
		"Wind speed data",
		"Grid infrastructure",
		"Transportation networks",
		"Industrial demand centers",
	}
	fallbackCostFactors = []string{
		"Renewable energy potential",
		"Grid connection costs",
		"Transportation infrastructure",
		"Land availability",
		"Water resources",
		"Labor costs",
		"Regulatory environment",
	}
)

// Simulation tuning.
const (
	gridBonusMin   = 0.1
	gridBonusMax   = 0.5
	gridBonusFloor = 2.0 // simulated LCOH never drops below this
	simClampMargin = 0.1 // distance kept below the user's cost ceiling

	syntheticLCOHMin = 2.0
	syntheticLCOHMax = 6.0
)

// Simulator generates plausible optimization results without a data source.
// It serves unknown regions and any run the primary pipeline cannot complete.
// Output is deterministic for a given (seed, region) pair.
type Simulator struct {
	seed uint64
}

// NewSimulator creates a Simulator. The seed pins all sampling; identical
// requests against the same seed produce identical results.
func NewSimulator(seed uint64) *Simulator {
	return &Simulator{seed: seed}
}

// Run produces a simulated feature collection for the criteria. It cannot
// fail: every region yields sites, synthesizing them when the region is not
// covered by the curated tables.
func (s *Simulator) Run(criteria domain.Criteria) domain.FeatureCollection {
	start := time.Now()
	region := domain.RegionKey(criteria.Region)
	rng := s.rngFor(region)

	selected := selectSites(rng, region)
	regionLabel := domain.TitleCase(region)

	features := make([]domain.Feature, 0, len(selected))
	for _, site := range selected {
		base := site.baseLCOH
		if criteria.ProximityToGrid {
			base = math.Max(gridBonusFloor, base-uniform(rng, gridBonusMin, gridBonusMax))
		}
		lcoh := math.Min(base, criteria.MaxCost-simClampMargin)
		features = append(features, simFeature(site, regionLabel, lcoh, criteria.MaxCost))
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Properties.LCOH < features[j].Properties.LCOH
	})
	for i := range features {
		features[i].Properties.Rank = i + 1
	}

	return domain.FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
		Metadata: domain.Metadata{
			OptimizationCriteria:  domain.EchoCriteria(criteria),
			TotalSitesFound:       len(features),
			ProcessingTimeSeconds: domain.Round2(time.Since(start).Seconds()),
			Algorithm:             domain.AlgorithmFallback,
			RegionFocus:           fallbackRegionFocus(region),
			DataSources:           fallbackDataSources,
			CostFactorsConsidered: fallbackCostFactors,
			GeneratedAt:           domain.Now().UTC(),
		},
	}
}

// rngFor derives the per-region RNG. Hashing the region into the second PCG
// word keeps different regions on independent streams while the configured
// seed pins them all.
func (s *Simulator) rngFor(region string) *rand.Rand {
	sum := sha256.Sum256([]byte(region))
	return rand.New(rand.NewPCG(s.seed, binary.BigEndian.Uint64(sum[:8])))
}

// selectSites picks the simulated candidates: a sample of the state table, a
// pooled sample across all states for "india", or synthetic global sites for
// anything else.
func selectSites(rng *rand.Rand, region string) []simSite {
	if pool, ok := curatedSites[region]; ok {
		n := min(len(pool), 3+rng.IntN(3))
		return sampleSites(rng, pool, n)
	}

	if region == domain.RegionAll {
		var pool []simSite
		for _, state := range domain.StateRegions() {
			pool = append(pool, curatedSites[state]...)
		}
		return sampleSites(rng, pool, 4+rng.IntN(3))
	}

	return syntheticSites(rng, region)
}

// sampleSites draws n sites without replacement, in random order.
func sampleSites(rng *rand.Rand, pool []simSite, n int) []simSite {
	picked := make([]simSite, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}

// syntheticSites invents 3-5 global sites for a region with no curated data.
func syntheticSites(rng *rand.Rand, region string) []simSite {
	label := domain.TitleCase(region)
	n := 3 + rng.IntN(3)
	sites := make([]simSite, 0, n)
	for i := 0; i < n; i++ {
		sites = append(sites, simSite{
			name:     fmt.Sprintf("Site_%d_%s", i+1, label),
			lat:      uniform(rng, -90, 90),
			lon:      uniform(rng, -180, 180),
			baseLCOH: uniform(rng, syntheticLCOHMin, syntheticLCOHMax),
		})
	}
	return sites
}

func simFeature(site simSite, regionLabel string, lcoh, maxCost float64) domain.Feature {
	return domain.Feature{
		Type: "Feature",
		Geometry: domain.Geometry{
			Type:        "Point",
			Coordinates: [2]float64{site.lon, site.lat},
		},
		Properties: domain.Properties{
			SiteName:       site.name,
			LCOH:           domain.Round2(lcoh),
			ProductionCost: domain.Round2(lcoh * domain.ProductionShare),
			TransportCost:  domain.Round2(lcoh * domain.TransportShare),
			Region:         regionLabel,
			MaxCost:        maxCost,
			Coordinates:    domain.DisplayCoordinates(site.lat, site.lon),
		},
	}
}

// fallbackRegionFocus labels the run's region: curated states get the
// ", India" suffix, the aggregate and unknown regions just the title form.
func fallbackRegionFocus(region string) string {
	if _, ok := curatedSites[region]; ok {
		return domain.TitleCase(region) + ", India"
	}
	return domain.TitleCase(region)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
