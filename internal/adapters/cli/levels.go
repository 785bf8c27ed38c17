package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrekvist/burgersim/internal/domain/level"
)

func newLevelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List available levels",
		Run: func(cmd *cobra.Command, args []string) {
			for _, cfg := range level.NewCatalog().List() {
				fmt.Printf("%-22s %s\n", cfg.ID, cfg.Name)
				fmt.Printf("  starting cash: %.0f  days: %d  max score: %d\n",
					cfg.StartingCash, cfg.DaysToComplete, cfg.MaxScore)
				fmt.Printf("  suppliers: %d  customers: %d\n",
					len(cfg.Suppliers), len(cfg.Customers))
			}
		},
	}
}
