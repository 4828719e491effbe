package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectAnnual_NoGrowth(t *testing.T) {
	p := ProjectAnnual(1000, 0.15, 0)

	assert.Equal(t, int64(360000), p.AnnualQueries)
	assert.InDelta(t, 54000, p.CarbonG, 1e-6)
	assert.InDelta(t, 54, p.CarbonKg, 1e-9)
	assert.InDelta(t, 0.054, p.CarbonTonnes, 1e-9)
	assert.Equal(t, int64(1000), p.DailyQueriesStart)
	assert.Equal(t, int64(1000), p.DailyQueriesEnd)
}

func TestProjectAnnual_Growth(t *testing.T) {
	p := ProjectAnnual(1000, 0.5, 0.10)

	// Sum of 1000 * 1.1^m for m = 0..11, times 30 days.
	var wantQueries float64
	daily := 1000.0
	for month := 0; month < 12; month++ {
		wantQueries += daily * 30
		daily *= 1.1
	}
	assert.Equal(t, int64(wantQueries), p.AnnualQueries)
	assert.InDelta(t, wantQueries*0.5, p.CarbonG, 1e-6)

	// Growth compounds after each of the first 11 months only.
	assert.Equal(t, int64(1000*pow(1.1, 11)), p.DailyQueriesEnd)
	assert.Greater(t, p.DailyQueriesEnd, p.DailyQueriesStart)
}

func TestProjectAnnual_ClampsNegativeInputs(t *testing.T) {
	p := ProjectAnnual(-100, -0.5, 0)

	assert.Zero(t, p.AnnualQueries)
	assert.Zero(t, p.CarbonG)
}

func pow(base float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= base
	}
	return out
}
