package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rsflow",
	Short: "rsflow declares and runs Madagascar seismic processing recipes",
	Long: `rsflow builds the dependency graph of a seismic processing recipe (Kirchhoff
modeling followed by PEF trace interpolation), renders it for Madagascar and
runs the out-of-date steps.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Recipe configuration file (.yaml, .json or .hcl); empty uses the reference experiment")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
}

func persistentFlags(cmd *cobra.Command) (configPath string, verbose bool) {
	configPath, _ = cmd.Flags().GetString("config")
	verbose, _ = cmd.Flags().GetBool("verbose")
	return configPath, verbose
}
