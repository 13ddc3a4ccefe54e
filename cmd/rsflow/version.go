package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/rsflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rsflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rsflow version %s\n", strings.TrimSpace(rsflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
