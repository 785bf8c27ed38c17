package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrekvist/burgersim/internal/domain/game"
	"github.com/andrekvist/burgersim/internal/domain/level"
)

func newPlayCommand() *cobra.Command {
	var (
		levelID     string
		days        int
		actionsPath string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a scripted simulation offline",
		Long: `play runs a level without a server or database, applying a scripted
sequence of daily actions and printing the resulting ledger. If no actions
file is given, every day passes with no orders placed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := level.NewCatalog()
			cfg, ok := catalog.Get(levelID)
			if !ok {
				return fmt.Errorf("unknown level: %s", levelID)
			}

			var actions []game.Action
			if actionsPath != "" {
				data, err := os.ReadFile(actionsPath)
				if err != nil {
					return fmt.Errorf("failed to read actions file: %w", err)
				}
				if err := json.Unmarshal(data, &actions); err != nil {
					return fmt.Errorf("failed to parse actions file: %w", err)
				}
			}

			if days <= 0 || days > cfg.DaysToComplete {
				days = cfg.DaysToComplete
			}

			processor := game.NewProcessor(cfg)
			state := game.InitializeState(cfg)

			fmt.Printf("playing %s (%s) for %d days\n\n", cfg.Name, cfg.ID, days)
			fmt.Printf("%4s %12s %10s %10s %8s %8s %6s\n",
				"day", "cash", "revenue", "costs", "profit", "cumul", "score")

			for i := 0; i < days; i++ {
				var action game.Action
				if i < len(actions) {
					action = actions[i]
				}
				state = processor.ProcessDay(state, action)

				day := state.History[len(state.History)-1]
				fmt.Printf("%4d %12.2f %10.2f %10.2f %8.2f %8.2f %6d\n",
					day.Day, day.Cash, day.Revenue, day.Costs.Total,
					day.Profit, day.CumulativeProfit, day.Score)

				if state.GameOver {
					fmt.Println("\nbankrupt: out of cash with no finished goods left")
					break
				}
			}

			result := game.CalculateResult(state, cfg, "local")
			fmt.Printf("\nfinal day %d  cash %.2f  cumulative profit %.2f  score %d/%d\n",
				result.FinalDay, result.FinalCash, result.CumulativeProfit,
				result.Score, cfg.MaxScore)
			return nil
		},
	}

	cmd.Flags().StringVar(&levelID, "level", "corner-grill", "level id to play")
	cmd.Flags().IntVar(&days, "days", 0, "number of days to simulate (default: full level)")
	cmd.Flags().StringVar(&actionsPath, "actions", "", "path to JSON file with one action per day")

	return cmd
}
