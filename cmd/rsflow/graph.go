package main

import (
	"fmt"
	"os"

	"github.com/aretw0/rsflow/internal/cli"
	"github.com/aretw0/rsflow/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the recipe graph visualization",
	Long:  `Builds the recipe and outputs a Mermaid diagram (graph TD) of artifacts and their sources.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, verbose := persistentFlags(cmd)

		recipe, err := cli.LoadRecipe(configPath, cli.CreateLogger(verbose))
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(recipe.Graph, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
