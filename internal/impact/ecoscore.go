package impact

import "math"

// minScoreAnchorWh keeps the log scale defined when the catalog's
// smallest benchmarked energy is zero.
const minScoreAnchorWh = 1e-6

// EcoScore normalizes an energy value to a 0-100 efficiency score
// relative to the benchmarked model population: 100 at the smallest
// observed energy, 0 at the largest. The scale is logarithmic because
// the observed range spans roughly two orders of magnitude; a linear
// scale would compress nearly all models into the bottom few points.
func (e *Estimator) EcoScore(energyWh float64) int {
	minWh, maxWh := e.catalog.EnergyRange()

	if energyWh <= 0 {
		return 100
	}
	if minWh < minScoreAnchorWh {
		minWh = minScoreAnchorWh
	}
	if maxWh <= minWh {
		if energyWh <= minWh {
			return 100
		}
		return 0
	}

	clamped := math.Min(math.Max(energyWh, minWh), maxWh)
	position := (math.Log(clamped) - math.Log(minWh)) / (math.Log(maxWh) - math.Log(minWh))
	score := 100.0 * (1.0 - position)

	return int(math.Round(math.Min(100, math.Max(0, score))))
}
