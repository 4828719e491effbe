package impact

// Projection model: 12 months of 30 days each, with the daily query
// rate compounding by the growth rate after each of the first 11
// months.
const (
	projectionMonths = 12
	daysPerMonth     = 30
)

// AnnualProjection is a fleet-scale carbon projection for a query
// population growing month over month.
type AnnualProjection struct {
	AnnualQueries     int64   `json:"annual_queries"`
	CarbonG           float64 `json:"annual_carbon_gco2e"`
	CarbonKg          float64 `json:"annual_carbon_kgco2e"`
	CarbonTonnes      float64 `json:"annual_carbon_tonnes"`
	DailyQueriesStart int64   `json:"daily_queries_start"`
	DailyQueriesEnd   int64   `json:"daily_queries_end"`
	MonthlyGrowthRate float64 `json:"monthly_growth_rate"`
}

// ProjectAnnual projects twelve months of carbon output from a starting
// daily query rate, per-query carbon, and monthly growth rate (0.2 for
// 20% month-over-month growth).
func ProjectAnnual(dailyQueries int64, carbonPerQueryG, monthlyGrowth float64) AnnualProjection {
	if dailyQueries < 0 {
		dailyQueries = 0
	}
	if carbonPerQueryG < 0 {
		carbonPerQueryG = 0
	}

	var annualQueries float64
	var annualCarbonG float64
	currentDaily := float64(dailyQueries)

	for month := 0; month < projectionMonths; month++ {
		monthlyQueries := currentDaily * daysPerMonth
		annualQueries += monthlyQueries
		annualCarbonG += monthlyQueries * carbonPerQueryG

		if month < projectionMonths-1 {
			currentDaily *= 1 + monthlyGrowth
		}
	}

	return AnnualProjection{
		AnnualQueries:     int64(annualQueries),
		CarbonG:           annualCarbonG,
		CarbonKg:          annualCarbonG / 1000.0,
		CarbonTonnes:      annualCarbonG / 1_000_000.0,
		DailyQueriesStart: dailyQueries,
		DailyQueriesEnd:   int64(currentDaily),
		MonthlyGrowthRate: monthlyGrowth,
	}
}
