package domain

import "math"

// Normalization ceilings for the renewable scores. 7.0 kWh/m²/day is the
// "excellent" solar irradiance reference for western India; 9.0 m/s is the
// equivalent wind-speed reference.
const (
	solarCeiling = 7.0
	windCeiling  = 9.0

	// Blend weights. Solar dominates because Indian hydrogen corridors are
	// sited primarily on solar resources; the weights are fixed, not tunable.
	solarWeight = 0.7
	windWeight  = 0.3

	// 1 MW of renewable capacity yields roughly 200 kg of hydrogen per day.
	dailyKgPerMW = 200.0
)

// ScoreRenewables populates the solar, wind, and blended potential scores on a
// copy of the site. Scores are ceiling-clamped to [0,1] no matter how large
// the raw inputs are. TheoreticalCapacity is the unconstrained kg/year yield
// implied by the blended score.
func ScoreRenewables(site Site) Site {
	site.SolarScore = math.Min(site.SolarIrradiance/solarCeiling, 1.0)
	site.WindScore = math.Min(site.WindSpeed/windCeiling, 1.0)
	site.RenewablePotential = solarWeight*site.SolarScore + windWeight*site.WindScore
	site.TheoreticalCapacity = site.RenewablePotential * dailyKgPerMW * 365
	return site
}
