package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moseskolleh/promptcoach/internal/equivalency"
	"github.com/moseskolleh/promptcoach/internal/impact"
)

func newAverageCommand() *cobra.Command {
	var (
		inputTokens  int
		outputTokens int
		multiplier   float64
	)

	cmd := &cobra.Command{
		Use:   "average",
		Short: "Estimate impact averaged across every known model",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			catalog, err := loadCatalog(logger)
			if err != nil {
				return err
			}
			est := impact.NewEstimator(catalog, logger)

			avg, err := est.CalculateAverageImpact(inputTokens, outputTokens, multiplier)
			if err != nil {
				return err
			}

			fmt.Printf("Across %d models (category %s):\n", avg.ModelCount, avg.Category)
			fmt.Printf("Energy: %.3f Wh (range %.3f - %.3f)\n", avg.EnergyWh.Mean, avg.EnergyWh.Min, avg.EnergyWh.Max)
			fmt.Printf("        = %s\n", equivalency.FormatEnergy(avg.EnergyWh.Mean))
			fmt.Printf("Water:  %.2f mL (range %.2f - %.2f)\n", avg.WaterML.Mean, avg.WaterML.Min, avg.WaterML.Max)
			fmt.Printf("Carbon: %.3f gCO2e (range %.3f - %.3f)\n", avg.CarbonG.Mean, avg.CarbonG.Min, avg.CarbonG.Max)
			return nil
		},
	}

	cmd.Flags().IntVar(&inputTokens, "input-tokens", 100, "input token count")
	cmd.Flags().IntVar(&outputTokens, "output-tokens", 300, "output token count")
	cmd.Flags().Float64Var(&multiplier, "multiplier", 1.0, "energy multiplier")

	return cmd
}
