package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{"close proximity bonus", 5.0, 0.90},
		{"just under ten km", 9.999, 0.90},
		{"exactly ten km", 10.0, 0.95},
		{"under fifty km", 49.999, 0.95},
		{"exactly fifty km", 50.0, 1.00},
		{"under a hundred km", 99.999, 1.00},
		{"exactly a hundred km", 100.0, 1.10},
		{"hundred fifty km", 150.0, 1.15},
		{"penalty capped at thirty percent", 500.0, 1.30},
		{"no infrastructure at all", math.Inf(1), 1.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, distanceMultiplier(tt.distance), 1e-9)
		})
	}
}

func TestSolarFraction(t *testing.T) {
	tests := []struct {
		name       string
		solarScore float64
		windScore  float64
		expected   float64
	}{
		{"solar only", 0.8, 0, 1.0},
		{"wind only", 0, 0.6, 0.0},
		{"equal scores", 0.5, 0.5, 0.5},
		{"two to one", 0.8, 0.4, 2.0 / 3.0},
		{"both zero falls back to even split", 0, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := Site{SolarScore: tt.solarScore, WindScore: tt.windScore}
			assert.InDelta(t, tt.expected, SolarFraction(site), 1e-9)
		})
	}
}

func TestLevelizedCost(t *testing.T) {
	t.Run("one year horizon", func(t *testing.T) {
		params := DefaultParameters()
		params.ProjectLifetime = 1

		// (capex + opex/1.08) / (kg/1.08) = (capex·1.08 + opex) / kg
		lcoh := levelizedCost(108, 0, 108, params)
		assert.InDelta(t, 1.08, lcoh, 1e-9)
	})

	t.Run("opex contributes at full discounted weight", func(t *testing.T) {
		params := DefaultParameters()
		params.ProjectLifetime = 1

		lcoh := levelizedCost(0, 54, 108, params)
		// PV factors cancel: opex/production
		assert.InDelta(t, 0.5, lcoh, 1e-9)
	})
}

func TestApplyCostModel(t *testing.T) {
	params := DefaultParameters()

	// A scored, proximity-annotated site; 2:1 solar:wind split.
	base := Site{
		Name:              "Bhuj Solar Park",
		State:             "Gujarat",
		SolarScore:        0.8,
		WindScore:         0.4,
		LandSuitability:   1.0,
		NearestDistanceKm: 20.0,
	}

	t.Run("annual production from the blended capacity factor", func(t *testing.T) {
		result := ApplyCostModel(base, params, DefaultMaxCost)

		// sf=2/3 → cf=0.25 → 50 MW × 8760 h × 0.25 × 200 kg/MWh × 0.70
		assert.InDelta(t, 15_330_000, result.AnnualProductionKg, 1.0)
	})

	t.Run("capex includes the MW to kW conversion and overhead", func(t *testing.T) {
		result := ApplyCostModel(base, params, DefaultMaxCost)

		// (40M solar + 23.33M wind + 40M electrolyzer + 20M storage + 5M grid) × 1.2
		assert.InDelta(t, 154_000_000, result.CAPEX, 1000.0)
	})

	t.Run("opex sums o&m labor insurance and water", func(t *testing.T) {
		result := ApplyCostModel(base, params, DefaultMaxCost)

		// 3.85M O&M + 0.5M labor + 1.54M insurance + ~0.31M water
		assert.InDelta(t, 6_196_600, result.AnnualOPEX, 1000.0)
	})

	t.Run("lcoh lands in a plausible band for good sites", func(t *testing.T) {
		result := ApplyCostModel(base, params, DefaultMaxCost)

		assert.Greater(t, result.LCOH, 1.0)
		assert.Less(t, result.LCOH, 3.0)
	})

	t.Run("cost split is seventy five twenty five", func(t *testing.T) {
		result := ApplyCostModel(base, params, DefaultMaxCost)

		assert.InDelta(t, result.LCOH*0.75, result.ProductionCost, 1e-9)
		assert.InDelta(t, result.LCOH*0.25, result.TransportCost, 1e-9)
		assert.InDelta(t, Round2(result.LCOH), Round2(result.ProductionCost)+Round2(result.TransportCost), 0.01)
	})

	t.Run("clamped strictly below the ceiling", func(t *testing.T) {
		result := ApplyCostModel(base, params, 1.0)

		assert.InDelta(t, 0.99, result.LCOH, 1e-9)
	})

	t.Run("closer infrastructure is cheaper", func(t *testing.T) {
		near := base
		near.NearestDistanceKm = 5.0
		far := base
		far.NearestDistanceKm = 250.0

		nearResult := ApplyCostModel(near, params, DefaultMaxCost)
		farResult := ApplyCostModel(far, params, DefaultMaxCost)

		assert.Less(t, nearResult.LCOH, farResult.LCOH)
	})

	t.Run("better land is cheaper", func(t *testing.T) {
		good := base
		good.LandSuitability = 0.95
		poor := base
		poor.LandSuitability = 0.40

		goodResult := ApplyCostModel(good, params, DefaultMaxCost)
		poorResult := ApplyCostModel(poor, params, DefaultMaxCost)

		assert.Less(t, goodResult.LCOH, poorResult.LCOH)
	})

	t.Run("no infrastructure takes the capped penalty", func(t *testing.T) {
		isolated := base
		isolated.NearestDistanceKm = math.Inf(1)
		capped := base
		capped.NearestDistanceKm = 500.0

		isolatedResult := ApplyCostModel(isolated, params, DefaultMaxCost)
		cappedResult := ApplyCostModel(capped, params, DefaultMaxCost)

		assert.InDelta(t, cappedResult.LCOH, isolatedResult.LCOH, 1e-9)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first := ApplyCostModel(base, params, DefaultMaxCost)
		second := ApplyCostModel(base, params, DefaultMaxCost)

		assert.Equal(t, first.LCOH, second.LCOH)
		assert.Equal(t, first.CAPEX, second.CAPEX)
		assert.Equal(t, first.AnnualOPEX, second.AnnualOPEX)
	})

	t.Run("zero scores still produce finite costs", func(t *testing.T) {
		degenerate := base
		degenerate.SolarScore = 0
		degenerate.WindScore = 0

		result := ApplyCostModel(degenerate, params, DefaultMaxCost)

		assert.False(t, math.IsNaN(result.LCOH))
		assert.Greater(t, result.AnnualProductionKg, 0.0)
	})
}

func TestFullPipelineOnSeedRow(t *testing.T) {
	// One representative row as the data source delivers it.
	site := Site{
		Name:            "Bhuj Solar Park",
		State:           "Gujarat",
		Lat:             23.241,
		Lon:             69.669,
		SolarIrradiance: 6.2,
		WindSpeed:       7.8,
		LandSuitability: 0.85,
		GridDistanceKm:  15.2,
	}
	facilities := []Facility{
		{Type: FacilityPort, Name: "Jamnagar Port", State: "Gujarat", Lat: 22.470, Lon: 70.057, CapacityMW: 50000, Status: "existing"},
	}

	scored := ScoreRenewables(site)
	located := AnalyzeProximity(scored, facilities)
	costed := ApplyCostModel(located, DefaultParameters(), DefaultMaxCost)

	assert.InDelta(t, 6.2/7.0, costed.SolarScore, 1e-9)
	assert.InDelta(t, 7.8/9.0, costed.WindScore, 1e-9)
	assert.Equal(t, "Jamnagar Port", costed.NearestFacility.Name)

	// 50 MW at a blended capacity factor between 20% and 35%.
	assert.Greater(t, costed.AnnualProductionKg, 10_000_000.0)
	assert.Less(t, costed.AnnualProductionKg, 22_000_000.0)

	assert.Greater(t, costed.LCOH, 0.5)
	assert.LessOrEqual(t, costed.LCOH, DefaultMaxCost-0.01)
}
