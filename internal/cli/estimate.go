package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moseskolleh/promptcoach/internal/equivalency"
	"github.com/moseskolleh/promptcoach/internal/impact"
	"github.com/moseskolleh/promptcoach/internal/prompt"
)

func newEstimateCommand() *cobra.Command {
	var (
		modelID      string
		inputTokens  int
		outputTokens int
		taskType     string
		multiplier   float64
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate energy, water, and carbon for one query",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			catalog, err := loadCatalog(logger)
			if err != nil {
				return err
			}
			est := impact.NewEstimator(catalog, logger)

			mult := multiplier
			if mult <= 0 && taskType != "" {
				known, ok := prompt.MultiplierForTask(taskType)
				if !ok {
					return fmt.Errorf("unknown task type %q", taskType)
				}
				mult = known
			}
			if mult <= 0 {
				mult = 1.0
			}

			result, err := est.CalculateImpact(modelID, inputTokens, outputTokens, mult)
			if err != nil {
				return err
			}

			fmt.Printf("Model:     %s (category %s, x%.1f energy)\n", result.ModelID, result.Category, result.Multipliers.Energy)
			fmt.Printf("Tokens:    %d in + %d out = %d\n", result.Tokens.Input, result.Tokens.Output, result.Tokens.Total)
			fmt.Printf("Energy:    %.3f Wh (%.3f - %.3f Wh)\n", result.Energy.MeanWh, result.Energy.MinWh, result.Energy.MaxWh)
			fmt.Printf("           = %s\n", equivalency.FormatEnergy(result.Energy.MeanWh))
			fmt.Printf("Water:     %.2f mL (%.2f on-site, %.2f off-site)\n", result.Water.TotalML, result.Water.OnsiteML, result.Water.OffsiteML)
			fmt.Printf("           = %s\n", equivalency.FormatWater(result.Water.TotalML))
			fmt.Printf("Carbon:    %.3f gCO2e\n", result.CarbonG)
			fmt.Printf("           = %s\n", equivalency.FormatCarbon(result.CarbonG))
			fmt.Printf("Eco-score: %d/100\n", est.EcoScore(result.Energy.MeanWh))
			return nil
		},
	}

	cmd.Flags().StringVar(&modelID, "model", "gpt-4o-mini", "model identifier")
	cmd.Flags().IntVar(&inputTokens, "input-tokens", 100, "input token count")
	cmd.Flags().IntVar(&outputTokens, "output-tokens", 300, "output token count")
	cmd.Flags().StringVar(&taskType, "task", "", "task type (sets the energy multiplier)")
	cmd.Flags().Float64Var(&multiplier, "multiplier", 0, "explicit energy multiplier (overrides --task)")

	return cmd
}
