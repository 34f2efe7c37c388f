package domain

import (
	"fmt"
	"math"
)

// Parameters is the techno-economic assumption set behind the LCOH model.
// The JSON names are the wire contract for the metadata cost_parameters_used
// block; the YAML names allow operators to override individual assumptions
// from a config file.
type Parameters struct {
	SolarCapex          float64 `json:"solar_capex" yaml:"solar_capex"`                     // $/kW
	WindCapex           float64 `json:"wind_capex" yaml:"wind_capex"`                       // $/kW
	ElectrolyzerCapex   float64 `json:"electrolyzer_capex" yaml:"electrolyzer_capex"`       // $/kW
	StorageCapex        float64 `json:"storage_capex" yaml:"storage_capex"`                 // $/kWh
	GridConnection      float64 `json:"grid_connection" yaml:"grid_connection"`             // $/kW
	PipelineCapex       float64 `json:"pipeline_capex" yaml:"pipeline_capex"`               // $/km
	OMFactor            float64 `json:"om_factor" yaml:"om_factor"`                         // annual O&M as fraction of CAPEX
	DiscountRate        float64 `json:"discount_rate" yaml:"discount_rate"`                 // fraction
	ProjectLifetime     int     `json:"project_lifetime" yaml:"project_lifetime"`           // years
	CapacityFactorSolar float64 `json:"capacity_factor_solar" yaml:"capacity_factor_solar"` // fraction
	CapacityFactorWind  float64 `json:"capacity_factor_wind" yaml:"capacity_factor_wind"`   // fraction
	ElectrolyzerEff     float64 `json:"electrolyzer_efficiency" yaml:"electrolyzer_efficiency"`
	WaterCost           float64 `json:"water_cost" yaml:"water_cost"`                       // $/L
	LaborCost           float64 `json:"labor_cost" yaml:"labor_cost"`                       // $/year per employee
	InsuranceRate       float64 `json:"insurance_rate" yaml:"insurance_rate"`               // fraction of CAPEX
	GridElectricityCost float64 `json:"grid_electricity_cost" yaml:"grid_electricity_cost"` // $/kWh
}

// Fixed sizing assumptions. Every site is modeled as a 50 MW system; this is
// a deliberate simplification, not a per-site capacity optimization.
const (
	systemSizeMW  = 50.0
	hoursPerYear  = 8760.0
	storageHours  = 2.0
	overheadShare = 0.20 // infrastructure and other costs on top of equipment CAPEX
	employees     = 10.0
	waterLPerKg   = 20.0
	kgPerMWh      = 200.0 // hydrogen yield per MWh before electrolyzer losses

	// kW per MW, applied to the $/kW and $/kWh unit costs.
	kwPerMW = 1000.0

	// Final LCOH is clamped strictly below the user's ceiling.
	clampMargin = 0.01
)

// Fixed cost-component split of the final LCOH. Both optimization engines
// report production and transport costs with this split.
const (
	ProductionShare = 0.75
	TransportShare  = 0.25
)

// DefaultParameters returns the standard assumption set for Indian sites.
func DefaultParameters() Parameters {
	return Parameters{
		SolarCapex:          1200,
		WindCapex:           1400,
		ElectrolyzerCapex:   800,
		StorageCapex:        200,
		GridConnection:      100,
		PipelineCapex:       500000,
		OMFactor:            0.025,
		DiscountRate:        0.08,
		ProjectLifetime:     20,
		CapacityFactorSolar: 0.20,
		CapacityFactorWind:  0.35,
		ElectrolyzerEff:     0.70,
		WaterCost:           0.001,
		LaborCost:           50000,
		InsuranceRate:       0.01,
		GridElectricityCost: 0.08,
	}
}

// Validate rejects parameter sets the cost model cannot price: non-positive
// lifetimes, capacity factors or efficiencies outside (0, 1], negative rates
// or unit costs. Guards operator-supplied override files.
func (p Parameters) Validate() error {
	switch {
	case p.ProjectLifetime < 1:
		return fmt.Errorf("project_lifetime %d must be at least 1 year", p.ProjectLifetime)
	case p.DiscountRate < 0:
		return fmt.Errorf("discount_rate %v must not be negative", p.DiscountRate)
	case p.CapacityFactorSolar <= 0 || p.CapacityFactorSolar > 1:
		return fmt.Errorf("capacity_factor_solar %v outside (0, 1]", p.CapacityFactorSolar)
	case p.CapacityFactorWind <= 0 || p.CapacityFactorWind > 1:
		return fmt.Errorf("capacity_factor_wind %v outside (0, 1]", p.CapacityFactorWind)
	case p.ElectrolyzerEff <= 0 || p.ElectrolyzerEff > 1:
		return fmt.Errorf("electrolyzer_efficiency %v outside (0, 1]", p.ElectrolyzerEff)
	case p.SolarCapex < 0, p.WindCapex < 0, p.ElectrolyzerCapex < 0,
		p.StorageCapex < 0, p.GridConnection < 0, p.PipelineCapex < 0:
		return fmt.Errorf("capex values must not be negative")
	case p.OMFactor < 0, p.InsuranceRate < 0, p.WaterCost < 0,
		p.LaborCost < 0, p.GridElectricityCost < 0:
		return fmt.Errorf("operating cost values must not be negative")
	}
	return nil
}

// ApplyCostModel computes annual production, CAPEX, OPEX, and the levelized
// cost of hydrogen for a scored, proximity-annotated site. maxCost is the
// user ceiling; the final LCOH is clamped to maxCost - 0.01.
//
// The stages run in a fixed order because OPEX depends on both CAPEX and
// production, and the levelized cost depends on all three.
func ApplyCostModel(site Site, params Parameters, maxCost float64) Site {
	solarFraction := SolarFraction(site)

	site.AnnualProductionKg = annualProduction(solarFraction, params)
	site.CAPEX = totalCapex(solarFraction, params)
	site.AnnualOPEX = annualOpex(site.CAPEX, site.AnnualProductionKg, params)

	lcoh := levelizedCost(site.CAPEX, site.AnnualOPEX, site.AnnualProductionKg, params)
	lcoh *= distanceMultiplier(site.NearestDistanceKm)
	lcoh *= 2 - site.LandSuitability // better land lowers cost
	lcoh = math.Min(lcoh, maxCost-clampMargin)

	site.LCOH = lcoh
	site.ProductionCost = lcoh * ProductionShare
	site.TransportCost = lcoh * TransportShare
	return site
}

// SolarFraction splits the 50 MW system between solar and wind in
// proportion to the two scores. Both scores zero means an unscorable record
// slipped past validation; the split defaults to 50/50 rather than dividing
// by zero.
func SolarFraction(site Site) float64 {
	total := site.SolarScore + site.WindScore
	if total <= 0 {
		return 0.5
	}
	return site.SolarScore / total
}

// annualProduction returns the hydrogen output in kg/year for the blended
// capacity factor implied by the solar/wind split.
func annualProduction(solarFraction float64, params Parameters) float64 {
	capacityFactor := solarFraction*params.CapacityFactorSolar +
		(1-solarFraction)*params.CapacityFactorWind
	annualElectricityMWh := systemSizeMW * hoursPerYear * capacityFactor
	return annualElectricityMWh * kgPerMWh * params.ElectrolyzerEff
}

// totalCapex sums the equipment CAPEX (renewables, electrolyzer, 2 h storage,
// grid connection) and adds the 20% infrastructure overhead.
func totalCapex(solarFraction float64, params Parameters) float64 {
	solar := systemSizeMW * solarFraction * params.SolarCapex * kwPerMW
	wind := systemSizeMW * (1 - solarFraction) * params.WindCapex * kwPerMW
	electrolyzer := systemSizeMW * params.ElectrolyzerCapex * kwPerMW
	storage := systemSizeMW * storageHours * params.StorageCapex * kwPerMW
	grid := systemSizeMW * params.GridConnection * kwPerMW

	equipment := solar + wind + electrolyzer + storage + grid
	return equipment * (1 + overheadShare)
}

// annualOpex sums O&M, labor, insurance, and water costs for one year.
func annualOpex(capex, annualProductionKg float64, params Parameters) float64 {
	om := capex * params.OMFactor
	labor := params.LaborCost * employees
	insurance := capex * params.InsuranceRate
	water := annualProductionKg * waterLPerKg * params.WaterCost
	return om + labor + insurance + water
}

// levelizedCost discounts lifetime OPEX and production back to present value
// and returns (CAPEX + PV(OPEX)) / PV(production) in $/kg.
func levelizedCost(capex, annualOpex, annualProductionKg float64, params Parameters) float64 {
	var pvOpex, pvProduction float64
	for year := 1; year <= params.ProjectLifetime; year++ {
		discount := math.Pow(1+params.DiscountRate, float64(year))
		pvOpex += annualOpex / discount
		pvProduction += annualProductionKg / discount
	}
	return (capex + pvOpex) / pvProduction
}

// distanceMultiplier scales LCOH by proximity to infrastructure. Bands are
// half-open: 9.999 km earns the 0.90 bonus, 10.0 km falls into 0.95. Beyond
// 100 km the penalty grows with distance, capped at +30%; an infinite
// distance (no infrastructure at all) therefore lands on the 1.30 cap.
func distanceMultiplier(distanceKm float64) float64 {
	switch {
	case distanceKm < 10:
		return 0.90
	case distanceKm < 50:
		return 0.95
	case distanceKm < 100:
		return 1.00
	default:
		return 1 + math.Min(distanceKm/100*0.1, 0.3)
	}
}
