package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand creates the root burgersim command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "burgersim",
		Short: "Burger business simulation engine",
		Long: `burgersim runs a day-stepped burger business simulation.

Players buy raw materials from suppliers, produce finished goods, and sell
them directly or through customer contracts, while inventory is valued with
FIFO costing. Serve the engine over HTTP or play levels offline.`,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newPlayCommand())
	rootCmd.AddCommand(newLevelsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
