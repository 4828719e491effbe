package refdata

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// File names expected in an external data directory.
const (
	ModelBenchmarksFile = "model_benchmarks.json"
	InfrastructureFile  = "infrastructure.json"
)

// modelTable is the on-disk shape of the model benchmark table.
type modelTable struct {
	Models []ModelProfile `json:"models"`
}

// infraTable is the on-disk shape of the infrastructure table.
type infraTable struct {
	Providers []InfrastructureProfile `json:"providers"`
}

// Load builds a catalog from the embedded default tables.
func Load(logger zerolog.Logger) (*Catalog, error) {
	return parseTables(embeddedModelsJSON, embeddedInfraJSON, "embedded", logger)
}

// LoadDir builds a catalog from model_benchmarks.json and
// infrastructure.json in the given directory.
func LoadDir(dir string, logger zerolog.Logger) (*Catalog, error) {
	modelsRaw, err := os.ReadFile(filepath.Join(dir, ModelBenchmarksFile))
	if err != nil {
		return nil, &DataError{Source: ModelBenchmarksFile, Err: err}
	}
	infraRaw, err := os.ReadFile(filepath.Join(dir, InfrastructureFile))
	if err != nil {
		return nil, &DataError{Source: InfrastructureFile, Err: err}
	}
	return parseTables(modelsRaw, infraRaw, dir, logger)
}

func parseTables(modelsRaw, infraRaw []byte, source string, logger zerolog.Logger) (*Catalog, error) {
	start := time.Now()

	var models modelTable
	if err := json.Unmarshal(modelsRaw, &models); err != nil {
		return nil, dataErr(source, "parse %s: %w", ModelBenchmarksFile, err)
	}
	var infra infraTable
	if err := json.Unmarshal(infraRaw, &infra); err != nil {
		return nil, dataErr(source, "parse %s: %w", InfrastructureFile, err)
	}

	catalog, err := NewCatalog(models.Models, infra.Providers)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", source).
		Int("models", catalog.ModelCount()).
		Int("providers", len(infra.Providers)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("reference data loaded")

	return catalog, nil
}
