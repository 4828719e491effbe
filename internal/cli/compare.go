package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moseskolleh/promptcoach/internal/impact"
)

func newCompareCommand() *cobra.Command {
	var (
		modelIDs     []string
		inputTokens  int
		outputTokens int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank models by energy for one query size",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			catalog, err := loadCatalog(logger)
			if err != nil {
				return err
			}
			est := impact.NewEstimator(catalog, logger)

			ids := modelIDs
			if len(ids) == 0 {
				ids = catalog.ModelIDs()
			}

			cmp, err := est.CompareModels(ids, inputTokens, outputTokens)
			if err != nil {
				return err
			}

			fmt.Printf("%-22s %-10s %-12s %s\n", "MODEL", "ENERGY", "ECO-SCORE", "PROVIDER")
			for _, entry := range cmp.Entries {
				fmt.Printf("%-22s %-10s %-12d %s\n",
					entry.ModelID,
					fmt.Sprintf("%.3f Wh", entry.Estimate.Energy.MeanWh),
					entry.EcoScore,
					entry.Provider)
			}
			for id, msg := range cmp.Errors {
				fmt.Printf("%-22s error: %s\n", id, msg)
			}
			fmt.Printf("\nBest: %s  Worst: %s  Potential savings: %.3f Wh (%.1f%%)\n",
				cmp.Best, cmp.Worst, cmp.Savings.EnergyWh, cmp.Savings.Percentage)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&modelIDs, "models", nil, "model IDs to compare (default: all)")
	cmd.Flags().IntVar(&inputTokens, "input-tokens", 100, "input token count")
	cmd.Flags().IntVar(&outputTokens, "output-tokens", 300, "output token count")

	return cmd
}
