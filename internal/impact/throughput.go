package impact

import (
	"fmt"
	"math"

	"github.com/moseskolleh/promptcoach/internal/refdata"
)

// throughputUncertainty is the flat relative band applied to the
// formula method, which carries no benchmarked standard deviation.
const throughputUncertainty = 0.25

// ThroughputDetails records the inputs of a formula-based estimate.
type ThroughputDetails struct {
	LatencySeconds    float64 `json:"latency_seconds"`
	OutputTimeSeconds float64 `json:"output_time_seconds"`
	TotalTimeSeconds  float64 `json:"total_time_seconds"`
	TokensPerSecond   float64 `json:"tps"`
	NodePowerKw       float64 `json:"node_power_kw"`
	PUE               float64 `json:"pue"`
}

// ThroughputEstimate is an energy figure derived from generation time
// and node power rather than the benchmarked operating points.
type ThroughputEstimate struct {
	Energy   EnergyEstimate    `json:"energy"`
	Category refdata.Category  `json:"category"`
	Details  ThroughputDetails `json:"details"`
}

// EstimateEnergyByThroughput estimates energy from first principles:
//
//	E (kWh) = [(outputTokens/TPS + latency) / 3600] x nodePowerKw x PUE
//
// using the latency and throughput of the operating point matching the
// token counts. Only usable for models with published node power;
// otherwise ErrThroughputUnavailable is returned. The band is a flat
// +/-25% since the formula has no measured spread.
func (e *Estimator) EstimateEnergyByThroughput(modelID string, inputTokens, outputTokens int) (*ThroughputEstimate, error) {
	model, ok := e.catalog.Model(modelID)
	if !ok {
		return nil, fmt.Errorf("%q: %w", modelID, ErrModelNotFound)
	}
	infra, ok := e.catalog.Infrastructure(model.HostingKey)
	if !ok {
		return nil, fmt.Errorf("hosting key %q: %w", model.HostingKey, ErrInfrastructureNotFound)
	}

	if inputTokens < 0 {
		inputTokens = 0
	}
	if outputTokens < 0 {
		outputTokens = 0
	}

	category := refdata.CategoryForTokens(inputTokens + outputTokens)
	point := model.Point(category)

	if model.NodePowerKw <= 0 || point.TokensPerSecond <= 0 {
		return nil, fmt.Errorf("%q: %w", modelID, ErrThroughputUnavailable)
	}

	outputTime := float64(outputTokens) / point.TokensPerSecond
	totalTime := point.LatencySeconds + outputTime
	energyKwh := (totalTime / 3600.0) * model.NodePowerKw * infra.PUE
	energyWh := energyKwh * 1000.0
	stdWh := energyWh * throughputUncertainty

	return &ThroughputEstimate{
		Energy: EnergyEstimate{
			MeanWh: energyWh,
			StdWh:  stdWh,
			MinWh:  math.Max(0, energyWh-stdWh),
			MaxWh:  energyWh + stdWh,
		},
		Category: category,
		Details: ThroughputDetails{
			LatencySeconds:    point.LatencySeconds,
			OutputTimeSeconds: outputTime,
			TotalTimeSeconds:  totalTime,
			TokensPerSecond:   point.TokensPerSecond,
			NodePowerKw:       model.NodePowerKw,
			PUE:               infra.PUE,
		},
	}, nil
}
