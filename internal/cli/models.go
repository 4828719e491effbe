package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List benchmarked models",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			catalog, err := loadCatalog(logger)
			if err != nil {
				return err
			}

			fmt.Printf("%-22s %-20s %-12s %-10s %s\n", "ID", "NAME", "PROVIDER", "SIZE", "HOSTED ON")
			for _, m := range catalog.Models() {
				fmt.Printf("%-22s %-20s %-12s %-10s %s\n",
					m.ID, m.DisplayName, m.Provider, m.SizeClass, m.HostingKey)
			}
			return nil
		},
	}
}
