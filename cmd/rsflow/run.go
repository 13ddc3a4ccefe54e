package main

import (
	"fmt"
	"os"

	"github.com/aretw0/rsflow/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [targets...]",
	Short: "Build out-of-date artifacts",
	Long: `Builds the given artifacts and everything they depend on (all artifacts when
no target is given). Independent artifacts run concurrently; artifacts whose
command and sources did not change since the last run are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, verbose := persistentFlags(cmd)
		jobs, _ := cmd.Flags().GetInt("jobs")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		store, _ := cmd.Flags().GetString("store")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		workDir, _ := cmd.Flags().GetString("workdir")

		err := cli.Execute(cli.RunOptions{
			ConfigPath: configPath,
			Targets:    args,
			Jobs:       jobs,
			DryRun:     dryRun,
			Store:      store,
			RedisAddr:  redisAddr,
			WorkDir:    workDir,
			Verbose:    verbose,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent builds (default from config)")
	runCmd.Flags().BoolP("dry-run", "n", false, "Print what would be built without running anything")
	runCmd.Flags().String("store", "", "Signature store: memory, file or redis (default from config)")
	runCmd.Flags().String("redis-addr", "", "Redis address for the redis store")
	runCmd.Flags().String("workdir", "", "Directory holding inputs and outputs (default from config)")
}
