package impact

import (
	"math"

	"github.com/moseskolleh/promptcoach/internal/refdata"
)

// EnergyEstimate is an energy figure with its uncertainty band. The
// confidence interval is [max(0, mean-std), mean+std]; the lower bound
// is clamped because energy cannot be negative.
type EnergyEstimate struct {
	MeanWh float64 `json:"mean_wh"`
	StdWh  float64 `json:"std_wh"`
	MinWh  float64 `json:"min_wh"`
	MaxWh  float64 `json:"max_wh"`
}

// Scale multiplies the whole estimate by a factor, keeping the reported
// uncertainty proportionally consistent with the mean.
func (est EnergyEstimate) Scale(factor float64) EnergyEstimate {
	return EnergyEstimate{
		MeanWh: est.MeanWh * factor,
		StdWh:  est.StdWh * factor,
		MinWh:  est.MinWh * factor,
		MaxWh:  est.MaxWh * factor,
	}
}

// InterpolateEnergy estimates energy for a total token count from the
// model's three benchmarked operating points.
//
// The anchors split the token axis into four regions:
//  1. Below the short anchor: linear through the origin, so zero tokens
//     is exactly zero energy.
//  2. Short to medium anchor: linear interpolation.
//  3. Medium to long anchor: linear interpolation.
//  4. Above the long anchor: extrapolation by tokens/longAnchor.
//
// Mean and standard deviation follow the same rule, which keeps the
// function continuous at every anchor and monotonic whenever the
// benchmarked means are non-decreasing (enforced at catalog load).
func InterpolateEnergy(m *refdata.ModelProfile, totalTokens int) EnergyEstimate {
	if totalTokens <= 0 {
		return EnergyEstimate{}
	}

	t := float64(totalTokens)
	short, medium, long := m.Short, m.Medium, m.Long

	var meanWh, stdWh float64
	switch {
	case totalTokens <= short.AnchorTokens:
		frac := t / float64(short.AnchorTokens)
		meanWh = short.MeanWh * frac
		stdWh = short.StdWh * frac
	case totalTokens <= medium.AnchorTokens:
		frac := (t - float64(short.AnchorTokens)) / float64(medium.AnchorTokens-short.AnchorTokens)
		meanWh = short.MeanWh + frac*(medium.MeanWh-short.MeanWh)
		stdWh = short.StdWh + frac*(medium.StdWh-short.StdWh)
	case totalTokens <= long.AnchorTokens:
		frac := (t - float64(medium.AnchorTokens)) / float64(long.AnchorTokens-medium.AnchorTokens)
		meanWh = medium.MeanWh + frac*(long.MeanWh-medium.MeanWh)
		stdWh = medium.StdWh + frac*(long.StdWh-medium.StdWh)
	default:
		frac := t / float64(long.AnchorTokens)
		meanWh = long.MeanWh * frac
		stdWh = long.StdWh * frac
	}

	return EnergyEstimate{
		MeanWh: meanWh,
		StdWh:  stdWh,
		MinWh:  math.Max(0, meanWh-stdWh),
		MaxWh:  meanWh + stdWh,
	}
}
