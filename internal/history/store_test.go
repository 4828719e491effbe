package history

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestStore_SaveAndRecent(t *testing.T) {
	store := testStore(t)

	store.Save(&EstimateRecord{
		ModelID: "gpt-4o", TaskType: "general",
		InputTokens: 100, OutputTokens: 300,
		EnergyWh: 0.421, WaterML: 1.44, CarbonG: 0.149,
		EcoScore: 42, Multiplier: 1.0,
		Detail: datatypes.JSON(`{"model_id":"gpt-4o"}`),
	})
	store.Save(&EstimateRecord{
		ModelID: "gpt-4o-mini", TaskType: "code",
		InputTokens: 50, OutputTokens: 200,
		EnergyWh: 0.1, WaterML: 0.3, CarbonG: 0.04,
		EcoScore: 90, Multiplier: 1.2,
	})

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "gpt-4o-mini", records[0].ModelID)
	assert.Equal(t, "gpt-4o", records[1].ModelID)
	assert.NotZero(t, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestStore_RecentLimit(t *testing.T) {
	store := testStore(t)

	for i := 0; i < 5; i++ {
		store.Save(&EstimateRecord{ModelID: "m", EnergyWh: 1})
	}

	records, err := store.Recent(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	// Non-positive limit falls back to the default.
	records, err = store.Recent(0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestStore_Summarize(t *testing.T) {
	store := testStore(t)

	store.Save(&EstimateRecord{ModelID: "a", EnergyWh: 1.0, WaterML: 3.0, CarbonG: 0.4, EcoScore: 80})
	store.Save(&EstimateRecord{ModelID: "b", EnergyWh: 2.0, WaterML: 5.0, CarbonG: 0.6, EcoScore: 40})

	sum, err := store.Summarize()
	require.NoError(t, err)

	assert.Equal(t, int64(2), sum.Count)
	assert.InDelta(t, 3.0, sum.TotalEnergy, 1e-9)
	assert.InDelta(t, 8.0, sum.TotalWater, 1e-9)
	assert.InDelta(t, 1.0, sum.TotalCarbon, 1e-9)
	assert.InDelta(t, 60.0, sum.MeanEcoScore, 1e-9)
}

func TestStore_SummarizeEmpty(t *testing.T) {
	store := testStore(t)

	sum, err := store.Summarize()
	require.NoError(t, err)

	assert.Zero(t, sum.Count)
	assert.Zero(t, sum.TotalEnergy)
	assert.Zero(t, sum.MeanEcoScore)
}
