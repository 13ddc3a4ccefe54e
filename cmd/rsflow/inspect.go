package main

import (
	"fmt"
	"os"

	"github.com/aretw0/rsflow/internal/cli"
	"github.com/aretw0/rsflow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the recipe",
	Long:  `Prints a markdown summary of the recipe: inputs, outputs and every artifact with its command. Rendered with styles on a terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, verbose := persistentFlags(cmd)
		raw, _ := cmd.Flags().GetBool("raw")

		recipe, err := cli.LoadRecipe(configPath, cli.CreateLogger(verbose))
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}

		md := tui.Summary(recipe.Graph)
		if raw || !cli.IsTerminal(os.Stdout) {
			fmt.Print(md)
			return
		}

		out, err := tui.NewRenderer()(md)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
}
