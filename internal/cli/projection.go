package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moseskolleh/promptcoach/internal/impact"
)

func newProjectionCommand() *cobra.Command {
	var (
		dailyQueries    int64
		carbonPerQueryG float64
		monthlyGrowth   float64
	)

	cmd := &cobra.Command{
		Use:   "projection",
		Short: "Project annual carbon for a growing query fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj := impact.ProjectAnnual(dailyQueries, carbonPerQueryG, monthlyGrowth)

			fmt.Printf("Annual queries: %d\n", proj.AnnualQueries)
			fmt.Printf("Annual carbon:  %.0f gCO2e (%.2f kg, %.4f tonnes)\n",
				proj.CarbonG, proj.CarbonKg, proj.CarbonTonnes)
			fmt.Printf("Daily queries:  %d at start, %d after 12 months (%.0f%% monthly growth)\n",
				proj.DailyQueriesStart, proj.DailyQueriesEnd, proj.MonthlyGrowthRate*100)
			return nil
		},
	}

	cmd.Flags().Int64Var(&dailyQueries, "daily-queries", 1000, "queries per day at the start")
	cmd.Flags().Float64Var(&carbonPerQueryG, "carbon-per-query", 0.15, "carbon per query in gCO2e")
	cmd.Flags().Float64Var(&monthlyGrowth, "growth", 0.0, "monthly growth rate (0.2 = 20%)")

	return cmd
}
