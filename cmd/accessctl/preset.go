package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantops/accessd/pkg/catalog"
	"github.com/plantops/accessd/pkg/config"
	"github.com/plantops/accessd/pkg/db"
	"github.com/plantops/accessd/pkg/preset"
)

// presetCmd represents the preset command
var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Inspect role presets",
	Long:  `Inspect the default permission matrix derived from a role label.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known roles",
	Run: func(cmd *cobra.Command, args []string) {
		for _, role := range preset.Roles() {
			fmt.Println(role)
		}
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show ROLE",
	Short: "Show the default matrix for a role",
	Long: `Show the default matrix for a role.

With --expand, plant_operations grants are expanded against the
plant-unit catalog (requires DATABASE_URL).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		role := preset.Role(args[0])

		matrix, err := preset.Resolve(role)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		expand, _ := cmd.Flags().GetBool("expand")
		if expand {
			gormDB, err := db.Connect(db.Config{})
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
				os.Exit(1)
			}
			cat := catalog.NewCached(catalog.NewGormStore(gormDB), config.Get().CatalogTTL())
			if err := preset.ExpandPlantGrants(context.Background(), matrix, role, cat); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		out, err := json.MarshalIndent(matrix, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)

	presetShowCmd.Flags().Bool("expand", false, "expand plant grants against the catalog")
}
