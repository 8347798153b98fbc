// Package pricing carries the deterministic crop price guidance shown while
// authoring a listing: a per-crop base rate scaled by land, water and soil
// multipliers with a fixed ±15% band. No network, no randomness.
package pricing

import "math"

// Estimate is a suggested price band in rupees per quintal.
type Estimate struct {
	Min float64
	Max float64
	Avg float64
}

var basePrices = map[string]float64{
	"rice":      25,
	"wheat":     22,
	"corn":      18,
	"coffee":    90,
	"sugarcane": 15,
	"cotton":    70,
	"potatoes":  20,
	"tomatoes":  28,
}

var soilMultipliers = map[string]float64{
	"loamy": 1.2,
	"clay":  1.05,
	"sandy": 0.9,
	"silt":  1.1,
}

// Suggest computes the price band for the given crop and land profile.
// Unknown crops fall back to a base rate of 20, unknown soils to a neutral
// multiplier.
func Suggest(crop string, landAcres, waterPct float64, soil string) Estimate {
	base, ok := basePrices[crop]
	if !ok {
		base = 20
	}

	landMult := 1.0
	if landAcres > 10 {
		landMult = 1.1
	}

	waterMult := 0.9
	if waterPct > 70 {
		waterMult = 1.15
	}

	soilMult, ok := soilMultipliers[soil]
	if !ok {
		soilMult = 1.0
	}

	avg := base * landMult * waterMult * soilMult
	variance := avg * 0.15

	return Estimate{
		Min: round2(avg - variance),
		Max: round2(avg + variance),
		Avg: round2(avg),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
