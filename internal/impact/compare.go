package impact

import (
	"sort"
)

// ComparisonEntry is one model's result within a ranked comparison.
type ComparisonEntry struct {
	ModelID     string          `json:"model_id"`
	DisplayName string          `json:"display_name"`
	Provider    string          `json:"provider"`
	SizeClass   string          `json:"size_class"`
	Estimate    *ImpactEstimate `json:"estimate"`
	EcoScore    int             `json:"eco_score"`
}

// PotentialSavings quantifies best-vs-worst energy within a comparison.
type PotentialSavings struct {
	EnergyWh   float64 `json:"energy_wh"`
	Percentage float64 `json:"percentage"`
}

// RankedComparison is the result of comparing models at one token
// count, sorted ascending by energy. Models that could not be estimated
// are reported in Errors rather than silently dropped.
type RankedComparison struct {
	Entries []ComparisonEntry `json:"entries"`
	Best    string            `json:"best"`
	Worst   string            `json:"worst"`
	Savings PotentialSavings  `json:"potential_savings"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// CompareModels estimates every requested model at the given token
// counts and ranks them by energy. At least one model must be
// estimable; otherwise ErrNoComparableModels is returned.
func (e *Estimator) CompareModels(modelIDs []string, inputTokens, outputTokens int) (*RankedComparison, error) {
	cmp := &RankedComparison{}

	for _, id := range modelIDs {
		est, err := e.CalculateImpact(id, inputTokens, outputTokens, 1.0)
		if err != nil {
			if cmp.Errors == nil {
				cmp.Errors = make(map[string]string)
			}
			cmp.Errors[id] = err.Error()
			continue
		}
		entry := ComparisonEntry{
			ModelID:  id,
			Estimate: est,
			EcoScore: e.EcoScore(est.Energy.MeanWh),
		}
		if m, ok := e.catalog.Model(id); ok {
			entry.DisplayName = m.DisplayName
			entry.Provider = m.Provider
			entry.SizeClass = m.SizeClass
		}
		cmp.Entries = append(cmp.Entries, entry)
	}

	if len(cmp.Entries) == 0 {
		return nil, ErrNoComparableModels
	}

	sort.SliceStable(cmp.Entries, func(i, j int) bool {
		return cmp.Entries[i].Estimate.Energy.MeanWh < cmp.Entries[j].Estimate.Energy.MeanWh
	})

	best := cmp.Entries[0]
	worst := cmp.Entries[len(cmp.Entries)-1]
	cmp.Best = best.ModelID
	cmp.Worst = worst.ModelID

	cmp.Savings.EnergyWh = worst.Estimate.Energy.MeanWh - best.Estimate.Energy.MeanWh
	if worst.Estimate.Energy.MeanWh > 0 {
		cmp.Savings.Percentage = (cmp.Savings.EnergyWh / worst.Estimate.Energy.MeanWh) * 100.0
	}

	return cmp, nil
}
