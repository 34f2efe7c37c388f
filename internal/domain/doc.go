// Package domain models green hydrogen site optimization for Indian states
// using the GEOH2 methodology: score renewable potential, anchor each
// candidate to its nearest infrastructure, and levelize lifetime costs into
// a single $/kg figure (LCOH).
//
// # Data Source
//
// Candidate sites are renewable-potential rows (solar irradiance, wind speed,
// land suitability, grid distance) for the covered states, sourced from NASA
// POWER and MERRA-2 derived datasets loaded into Postgres. Infrastructure
// facilities (ports, industrial parks, substations) come from the same store.
// The covered region keys are the lowercase state names
//
//	gujarat, rajasthan, maharashtra, karnataka, tamil_nadu, andhra_pradesh
//
// plus the aggregate key "india" for all states at once. Region matching is
// case-insensitive. Unrecognized regions are not an error; they are served
// synthetic fallback data instead.
//
// # Scoring
//
// Raw resource inputs normalize against fixed "excellent" ceilings:
//
//	solar_score = min(irradiance / 7.0, 1)   7.0 kWh/m²/day ceiling
//	wind_score  = min(wind_speed / 9.0, 1)   9.0 m/s ceiling
//	potential   = 0.7·solar_score + 0.3·wind_score
//
// The solar-heavy blend reflects where Indian hydrogen corridors are actually
// sited. Scores are always in [0,1]; inputs above the ceilings clamp rather
// than overflow.
//
// # Cost Model
//
// Every site is modeled as a fixed 50 MW solar+wind system split in
// proportion to its two scores. The stages run in order because each depends
// on the previous:
//
//	1. solar_fraction from the score ratio (50/50 when both are zero)
//	2. annual production from the blended capacity factor (solar 20%, wind
//	   35%), 8760 h, 200 kg H₂/MWh, and 70% electrolyzer efficiency
//	3. CAPEX: per-kW unit costs × 50 MW × 1000, plus 20% overhead
//	4. OPEX: O&M (2.5% of CAPEX), 10 × $50k labor, 1% insurance, water at
//	   20 L/kg and $0.001/L
//	5. LCOH = (CAPEX + PV(OPEX)) / PV(production), discounted at 8% over
//	   20 years
//	6. adjustments: distance multiplier (see below) and the (2 − land)
//	   suitability factor
//	7. clamp to max_cost − 0.01
//
// Distance multiplier bands (half-open boundaries):
//
//	< 10 km   0.90 | < 50 km  0.95 | < 100 km  1.00
//	≥ 100 km  1 + min(distance/100 × 0.1, 0.3)
//
// A region with no infrastructure at all reports an infinite distance, which
// lands on the capped 1.30 penalty.
//
// # Selection
//
// Sites survive when LCOH ≤ max_cost and production ≥ min_production, sort
// ascending by LCOH (stable), and the top 5 are returned with dense ranks
// 1..N. The emitted LCOH never exceeds max_cost − 0.01, so production_cost
// (75%) and transport_cost (25%) always re-sum to LCOH at two decimals.
//
// # Output
//
// Results serialize as a GeoJSON feature collection with [lon, lat] point
// geometry and a metadata block (criteria echo, counts, timing, parameter
// set). This exact shape is the wire contract; see [FeatureCollection].
package domain
