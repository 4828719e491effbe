package refdata

import _ "embed"

// Default reference tables shipped with the binary. Benchmarks follow
// the "How Hungry is AI?" measurement methodology: three operating
// points per model at 400 / 2000 / 11500 total tokens.

//go:embed data/model_benchmarks.json
var embeddedModelsJSON []byte

//go:embed data/infrastructure.json
var embeddedInfraJSON []byte
