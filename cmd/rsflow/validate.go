package main

import (
	"fmt"
	"os"

	"github.com/aretw0/rsflow/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the recipe for consistency",
	Long:  `Validates the configuration, builds the recipe and reports duplicate artifacts, cycles or malformed commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, verbose := persistentFlags(cmd)

		recipe, err := cli.LoadRecipe(configPath, cli.CreateLogger(verbose))
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Recipe is valid! %d artifacts, %d levels\n", recipe.Graph.Len(), len(recipe.Graph.Levels()))
		if ext := recipe.Graph.External(); len(ext) > 0 {
			fmt.Printf("Expects inputs: %v\n", ext)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
