// Package advisor turns a prompt analysis and an impact estimate into
// actionable optimization recommendations.
package advisor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moseskolleh/promptcoach/internal/impact"
	"github.com/moseskolleh/promptcoach/internal/prompt"
)

const (
	// confidenceHigh is used for filler trimming, which has directly
	// measurable savings.
	confidenceHigh = 0.9
	// confidenceMedium is used for model switches, which assume the
	// alternative model handles the task comparably.
	confidenceMedium = 0.7
	// confidenceLow is used for output capping, since the real output
	// length depends on the model's response.
	confidenceLow = 0.5

	// kindTrimFiller removes filler phrases from the prompt.
	kindTrimFiller = "trim_filler"
	// kindSwitchModel proposes a more efficient model.
	kindSwitchModel = "switch_model"
	// kindCapOutput asks for a bounded response length.
	kindCapOutput = "cap_output"

	// defaultOutputTokens assumes a short response when the caller does
	// not know the expected output length.
	defaultOutputTokens = 300

	// outputCapThreshold is the expected output size above which a cap
	// is suggested; cappedOutputTokens is the suggested bound.
	outputCapThreshold = 400
	cappedOutputTokens = 300

	// minSwitchSavingsPercent filters out model switches that barely
	// move the needle.
	minSwitchSavingsPercent = 5.0
)

// SavingsImpact quantifies what a recommendation would save.
type SavingsImpact struct {
	EnergyWh   float64 `json:"energy_wh"`
	WaterML    float64 `json:"water_ml"`
	CarbonG    float64 `json:"carbon_gco2e"`
	Percentage float64 `json:"percentage"`
}

// Recommendation is one actionable optimization.
type Recommendation struct {
	ID          string        `json:"id"`
	Kind        string        `json:"kind"`
	Description string        `json:"description"`
	Reasoning   []string      `json:"reasoning"`
	Impact      SavingsImpact `json:"impact"`
	Confidence  float64       `json:"confidence"`
}

// Request describes the prompt being advised on.
type Request struct {
	Prompt       string
	ModelID      string
	OutputTokens int // 0 means assume a short response
}

// Advice is the full advisor output: the analysis, the estimate for
// the prompt as written, and the recommendations.
type Advice struct {
	Analysis        prompt.Analysis        `json:"analysis"`
	Estimate        *impact.ImpactEstimate `json:"estimate"`
	EcoScore        int                    `json:"eco_score"`
	Recommendations []Recommendation       `json:"recommendations"`
}

// Advisor generates recommendations against one estimator.
type Advisor struct {
	estimator *impact.Estimator
	logger    zerolog.Logger
}

// New creates an advisor over the given estimator.
func New(estimator *impact.Estimator, logger zerolog.Logger) *Advisor {
	return &Advisor{estimator: estimator, logger: logger}
}

// Advise analyzes the prompt, estimates its impact on the chosen
// model, and produces recommendations sorted by confidence.
func (a *Advisor) Advise(req Request) (*Advice, error) {
	analysis := prompt.Analyze(req.Prompt)

	outputTokens := req.OutputTokens
	if outputTokens <= 0 {
		outputTokens = defaultOutputTokens
	}
	inputTokens := analysis.EstimatedTokens
	multiplier := analysis.Task.Multiplier

	current, err := a.estimator.CalculateImpact(req.ModelID, inputTokens, outputTokens, multiplier)
	if err != nil {
		return nil, err
	}

	advice := &Advice{
		Analysis: analysis,
		Estimate: current,
		EcoScore: a.estimator.EcoScore(current.Energy.MeanWh),
	}

	if rec := a.trimFillerRecommendation(analysis, current, outputTokens, multiplier); rec != nil {
		advice.Recommendations = append(advice.Recommendations, *rec)
	}
	if rec := a.switchModelRecommendation(req.ModelID, current, inputTokens, outputTokens, multiplier); rec != nil {
		advice.Recommendations = append(advice.Recommendations, *rec)
	}
	if rec := a.capOutputRecommendation(current, inputTokens, outputTokens, multiplier); rec != nil {
		advice.Recommendations = append(advice.Recommendations, *rec)
	}

	a.logger.Debug().
		Str("model_id", req.ModelID).
		Str("task_type", analysis.Task.Type).
		Int("recommendations", len(advice.Recommendations)).
		Msg("advice generated")

	return advice, nil
}

func savingsBetween(current, optimized *impact.ImpactEstimate) SavingsImpact {
	s := SavingsImpact{
		EnergyWh: current.Energy.MeanWh - optimized.Energy.MeanWh,
		WaterML:  current.Water.TotalML - optimized.Water.TotalML,
		CarbonG:  current.CarbonG - optimized.CarbonG,
	}
	if current.Energy.MeanWh > 0 {
		s.Percentage = (s.EnergyWh / current.Energy.MeanWh) * 100.0
	}
	return s
}

func (a *Advisor) trimFillerRecommendation(analysis prompt.Analysis, current *impact.ImpactEstimate, outputTokens int, multiplier float64) *Recommendation {
	if analysis.Filler.TokensSaved <= 0 {
		return nil
	}

	trimmedInput := analysis.EstimatedTokens - analysis.Filler.TokensSaved
	optimized, err := a.estimator.CalculateImpact(current.ModelID, trimmedInput, outputTokens, multiplier)
	if err != nil {
		a.logger.Warn().Err(err).Msg("trimmed-prompt estimate failed")
		return nil
	}

	savings := savingsBetween(current, optimized)
	if savings.EnergyWh <= 0 {
		return nil
	}

	reasoning := []string{
		fmt.Sprintf("Filler phrases add %d tokens without changing the request", analysis.Filler.TokensSaved),
	}
	for _, f := range analysis.Filler.Findings {
		reasoning = append(reasoning, fmt.Sprintf("Remove %q (x%d)", f.Phrase, f.Count))
	}

	return &Recommendation{
		ID:          uuid.New().String(),
		Kind:        kindTrimFiller,
		Description: fmt.Sprintf("Trim filler phrases to save ~%d tokens", analysis.Filler.TokensSaved),
		Reasoning:   reasoning,
		Impact:      savings,
		Confidence:  confidenceHigh,
	}
}

func (a *Advisor) switchModelRecommendation(modelID string, current *impact.ImpactEstimate, inputTokens, outputTokens int, multiplier float64) *Recommendation {
	cmp, err := a.estimator.CompareModels(a.estimator.Catalog().ModelIDs(), inputTokens, outputTokens)
	if err != nil {
		if !errors.Is(err, impact.ErrNoComparableModels) {
			a.logger.Warn().Err(err).Msg("model comparison failed")
		}
		return nil
	}
	if cmp.Best == modelID {
		return nil
	}

	// The ranking fixes the multiplier at 1.0; re-estimate the winner
	// with the task's multiplier so the savings compare like with like.
	alternative, err := a.estimator.CalculateImpact(cmp.Best, inputTokens, outputTokens, multiplier)
	if err != nil {
		a.logger.Warn().Err(err).Msg("alternative-model estimate failed")
		return nil
	}

	savings := savingsBetween(current, alternative)
	if savings.Percentage < minSwitchSavingsPercent {
		return nil
	}

	return &Recommendation{
		ID:   uuid.New().String(),
		Kind: kindSwitchModel,
		Description: fmt.Sprintf("Switch from %s to %s for ~%.0f%% energy savings",
			modelID, alternative.ModelID, savings.Percentage),
		Reasoning: []string{
			fmt.Sprintf("%s uses %.3f Wh for this prompt vs %.3f Wh", alternative.ModelID, alternative.Energy.MeanWh, current.Energy.MeanWh),
			"Smaller or more efficient models handle most everyday tasks comparably",
		},
		Impact:     savings,
		Confidence: confidenceMedium,
	}
}

func (a *Advisor) capOutputRecommendation(current *impact.ImpactEstimate, inputTokens, outputTokens int, multiplier float64) *Recommendation {
	if outputTokens <= outputCapThreshold {
		return nil
	}

	capped, err := a.estimator.CalculateImpact(current.ModelID, inputTokens, cappedOutputTokens, multiplier)
	if err != nil {
		a.logger.Warn().Err(err).Msg("capped-output estimate failed")
		return nil
	}

	savings := savingsBetween(current, capped)
	if savings.EnergyWh <= 0 {
		return nil
	}

	return &Recommendation{
		ID:          uuid.New().String(),
		Kind:        kindCapOutput,
		Description: "Ask for a shorter answer (e.g. \"answer in 300 words or less\")",
		Reasoning: []string{
			fmt.Sprintf("Expected output of %d tokens dominates the energy cost", outputTokens),
			fmt.Sprintf("Capping at %d tokens cuts the estimate by %.3f Wh", cappedOutputTokens, savings.EnergyWh),
		},
		Impact:     savings,
		Confidence: confidenceLow,
	}
}
