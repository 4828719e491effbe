// Package impact implements the environmental impact estimation engine:
// a deterministic mapping from (model, token counts, task multiplier) to
// energy, water, and carbon figures, computed against a read-only
// reference catalog.
package impact

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/moseskolleh/promptcoach/internal/refdata"
)

var (
	// ErrModelNotFound is returned for unknown model identifiers.
	// Callers may fall back to the average-across-models estimate.
	ErrModelNotFound = errors.New("model not found")

	// ErrInfrastructureNotFound indicates a model references a hosting
	// key absent from the infrastructure table. This is a reference-data
	// consistency bug, not a user error.
	ErrInfrastructureNotFound = errors.New("infrastructure profile not found")

	// ErrEmptyCatalog is returned when an aggregate operation has no
	// models to work with.
	ErrEmptyCatalog = errors.New("no models in catalog")

	// ErrNoComparableModels is returned when none of the requested
	// models could be estimated.
	ErrNoComparableModels = errors.New("no comparable models")

	// ErrThroughputUnavailable is returned by the throughput-based
	// energy method for models without published node power.
	ErrThroughputUnavailable = errors.New("node power not published for model")
)

// Estimator performs impact calculations against one loaded catalog.
// Every method is a pure function of its inputs and the catalog; the
// estimator holds no mutable state and is safe for concurrent use.
type Estimator struct {
	catalog *refdata.Catalog
	logger  zerolog.Logger
}

// NewEstimator creates an estimator over the given catalog. The logger
// is used for degraded-path diagnostics (unknown models, bad
// multipliers, data-integrity failures).
func NewEstimator(catalog *refdata.Catalog, logger zerolog.Logger) *Estimator {
	return &Estimator{catalog: catalog, logger: logger}
}

// Catalog returns the reference catalog this estimator reads from.
func (e *Estimator) Catalog() *refdata.Catalog {
	return e.catalog
}

// TokenBreakdown echoes the token counts a calculation used.
type TokenBreakdown struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// WaterEstimate is water usage in milliliters, with the on-site
// (cooling) and off-site (power generation) contributions kept separate.
type WaterEstimate struct {
	TotalML   float64 `json:"total_ml"`
	OnsiteML  float64 `json:"onsite_ml"`
	OffsiteML float64 `json:"offsite_ml"`
}

// Multipliers records the factors applied to a calculation so results
// are auditable.
type Multipliers struct {
	PUE        float64 `json:"pue"`
	WUEOnsite  float64 `json:"wue_onsite_l_per_kwh"`
	WUEOffsite float64 `json:"wue_offsite_l_per_kwh"`
	CIF        float64 `json:"cif_kgco2e_per_kwh"`
	Energy     float64 `json:"energy_multiplier"`
}

// ImpactEstimate is the result of one calculation. It is ephemeral:
// recomputed per request and never persisted by the estimator.
type ImpactEstimate struct {
	ModelID     string           `json:"model_id"`
	Tokens      TokenBreakdown   `json:"tokens"`
	Category    refdata.Category `json:"category"`
	Energy      EnergyEstimate   `json:"energy"`
	Water       WaterEstimate    `json:"water"`
	CarbonG     float64          `json:"carbon_gco2e"`
	Multipliers Multipliers      `json:"multipliers"`
}

// CalculateImpact estimates energy, water, and carbon for a query
// against the named model.
//
// Negative token counts are clamped to zero. A non-positive or
// non-finite energy multiplier falls back to 1.0. Lookup failures are
// reported as typed errors; a zero or guessed result is never
// substituted.
func (e *Estimator) CalculateImpact(modelID string, inputTokens, outputTokens int, energyMultiplier float64) (*ImpactEstimate, error) {
	model, ok := e.catalog.Model(modelID)
	if !ok {
		e.logger.Warn().Str("model_id", modelID).Msg("unknown model requested")
		return nil, fmt.Errorf("%q: %w", modelID, ErrModelNotFound)
	}

	infra, ok := e.catalog.Infrastructure(model.HostingKey)
	if !ok {
		// Should not happen with a validated catalog, but the tables are
		// external data and are re-checked here.
		e.logger.Error().
			Str("model_id", modelID).
			Str("hosting_key", model.HostingKey).
			Msg("model references missing infrastructure profile")
		return nil, fmt.Errorf("hosting key %q: %w", model.HostingKey, ErrInfrastructureNotFound)
	}

	if inputTokens < 0 {
		inputTokens = 0
	}
	if outputTokens < 0 {
		outputTokens = 0
	}
	if energyMultiplier <= 0 || math.IsNaN(energyMultiplier) || math.IsInf(energyMultiplier, 0) {
		e.logger.Warn().Float64("multiplier", energyMultiplier).Msg("invalid energy multiplier, using 1.0")
		energyMultiplier = 1.0
	}

	total := inputTokens + outputTokens
	energy := InterpolateEnergy(model, total).Scale(energyMultiplier)

	energyKwh := energy.MeanWh / 1000.0

	// On-site cooling water scales with compute energy (facility draw
	// divided back out via PUE); off-site generation water scales with
	// total grid draw, which already includes the PUE overhead.
	onsiteL := (energyKwh / infra.PUE) * infra.WUEOnsiteLPerKwh
	offsiteL := energyKwh * infra.WUEOffsiteLPerKwh

	carbonKg := energyKwh * infra.CIFKgCO2ePerKwh

	return &ImpactEstimate{
		ModelID: model.ID,
		Tokens: TokenBreakdown{
			Input:  inputTokens,
			Output: outputTokens,
			Total:  total,
		},
		Category: refdata.CategoryForTokens(total),
		Energy:   energy,
		Water: WaterEstimate{
			TotalML:   (onsiteL + offsiteL) * 1000.0,
			OnsiteML:  onsiteL * 1000.0,
			OffsiteML: offsiteL * 1000.0,
		},
		CarbonG: carbonKg * 1000.0,
		Multipliers: Multipliers{
			PUE:        infra.PUE,
			WUEOnsite:  infra.WUEOnsiteLPerKwh,
			WUEOffsite: infra.WUEOffsiteLPerKwh,
			CIF:        infra.CIFKgCO2ePerKwh,
			Energy:     energyMultiplier,
		},
	}, nil
}
