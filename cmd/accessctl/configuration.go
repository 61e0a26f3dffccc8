package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantops/accessd/pkg/config"
)

// configurationCmd represents the configuration command
var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Inspect the accessd configuration",
	Long:  `Inspect the accessd configuration and the source of each attribute.`,
}

var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
			os.Exit(1)
		}
		fmt.Print(cfg.FormatText())
	},
}

func init() {
	rootCmd.AddCommand(configurationCmd)
	configurationCmd.AddCommand(configurationShowCmd)
}
