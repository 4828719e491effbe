package impact

import (
	"fmt"

	"github.com/moseskolleh/promptcoach/internal/refdata"
)

// QuantityRange is an averaged quantity with the min/max spread across
// the model population.
type QuantityRange struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// AverageImpactEstimate is the arithmetic mean of energy, water, and
// carbon across every model in the catalog for one token count. Used
// when no specific model is selected.
type AverageImpactEstimate struct {
	Tokens     TokenBreakdown   `json:"tokens"`
	Category   refdata.Category `json:"category"`
	EnergyWh   QuantityRange    `json:"energy_wh"`
	WaterML    QuantityRange    `json:"water_ml"`
	CarbonG    QuantityRange    `json:"carbon_gco2e"`
	ModelCount int              `json:"model_count"`
}

// CalculateAverageImpact averages the per-model impact across the whole
// catalog. Returns ErrEmptyCatalog when there are no models; any
// per-model failure is a data-integrity error and is propagated.
func (e *Estimator) CalculateAverageImpact(inputTokens, outputTokens int, energyMultiplier float64) (*AverageImpactEstimate, error) {
	models := e.catalog.Models()
	if len(models) == 0 {
		return nil, ErrEmptyCatalog
	}

	var out *AverageImpactEstimate
	var sumEnergy, sumWater, sumCarbon float64

	for _, m := range models {
		est, err := e.CalculateImpact(m.ID, inputTokens, outputTokens, energyMultiplier)
		if err != nil {
			return nil, fmt.Errorf("average impact for %s: %w", m.ID, err)
		}

		if out == nil {
			out = &AverageImpactEstimate{
				Tokens:   est.Tokens,
				Category: est.Category,
				EnergyWh: QuantityRange{Min: est.Energy.MeanWh, Max: est.Energy.MeanWh},
				WaterML:  QuantityRange{Min: est.Water.TotalML, Max: est.Water.TotalML},
				CarbonG:  QuantityRange{Min: est.CarbonG, Max: est.CarbonG},
			}
		}

		sumEnergy += est.Energy.MeanWh
		sumWater += est.Water.TotalML
		sumCarbon += est.CarbonG

		updateRange(&out.EnergyWh, est.Energy.MeanWh)
		updateRange(&out.WaterML, est.Water.TotalML)
		updateRange(&out.CarbonG, est.CarbonG)
	}

	n := float64(len(models))
	out.EnergyWh.Mean = sumEnergy / n
	out.WaterML.Mean = sumWater / n
	out.CarbonG.Mean = sumCarbon / n
	out.ModelCount = len(models)

	return out, nil
}

func updateRange(r *QuantityRange, v float64) {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}
