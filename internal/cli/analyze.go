package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moseskolleh/promptcoach/internal/advisor"
	"github.com/moseskolleh/promptcoach/internal/equivalency"
	"github.com/moseskolleh/promptcoach/internal/impact"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		modelID      string
		outputTokens int
	)

	cmd := &cobra.Command{
		Use:   "analyze [prompt]",
		Short: "Analyze a prompt and recommend optimizations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			promptText := strings.Join(args, " ")

			logger := newLogger()
			catalog, err := loadCatalog(logger)
			if err != nil {
				return err
			}
			est := impact.NewEstimator(catalog, logger)

			advice, err := advisor.New(est, logger).Advise(advisor.Request{
				Prompt:       promptText,
				ModelID:      modelID,
				OutputTokens: outputTokens,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Task:      %s (x%.1f energy)\n", advice.Analysis.Task.Type, advice.Analysis.Task.Multiplier)
			fmt.Printf("Tokens:    ~%d input\n", advice.Analysis.EstimatedTokens)
			fmt.Printf("Energy:    %.3f Wh = %s\n", advice.Estimate.Energy.MeanWh, equivalency.FormatEnergy(advice.Estimate.Energy.MeanWh))
			fmt.Printf("Water:     %.2f mL = %s\n", advice.Estimate.Water.TotalML, equivalency.FormatWater(advice.Estimate.Water.TotalML))
			fmt.Printf("Carbon:    %.3f gCO2e = %s\n", advice.Estimate.CarbonG, equivalency.FormatCarbon(advice.Estimate.CarbonG))
			fmt.Printf("Eco-score: %d/100\n", advice.EcoScore)

			if len(advice.Recommendations) == 0 {
				fmt.Println("\nNo optimizations found; prompt looks efficient.")
				return nil
			}

			fmt.Println("\nRecommendations:")
			for i, rec := range advice.Recommendations {
				fmt.Printf("%d. %s (confidence %.0f%%)\n", i+1, rec.Description, rec.Confidence*100)
				fmt.Printf("   saves %.3f Wh (%.1f%%)\n", rec.Impact.EnergyWh, rec.Impact.Percentage)
			}

			if advice.Analysis.Filler.TokensSaved > 0 {
				fmt.Printf("\nOptimized prompt:\n%s\n", advice.Analysis.Filler.Optimized)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelID, "model", "gpt-4o-mini", "model identifier")
	cmd.Flags().IntVar(&outputTokens, "output-tokens", 0, "expected output tokens (default: short response)")

	return cmd
}
