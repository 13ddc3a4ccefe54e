package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/rsflow"
	httpAdapter "github.com/aretw0/rsflow/internal/adapters/http"
	"github.com/aretw0/rsflow/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only HTTP inspection server",
	Long: `Serves the recipe graph, its renderings, stored build records and metrics over HTTP.

Build counters under /metrics only move for builds run by this process (see --build);
without it, /metrics reports the Go runtime and process collectors.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, verbose := persistentFlags(cmd)
		port, _ := cmd.Flags().GetString("port")
		build, _ := cmd.Flags().GetBool("build")
		logger := cli.CreateLogger(verbose)

		recipe, err := cli.LoadRecipe(configPath, logger)
		if err != nil {
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}

		session, err := recipe.NewSession(rsflow.WithSessionLogger(logger))
		if err != nil {
			fmt.Printf("Error opening session: %v\n", err)
			os.Exit(1)
		}
		defer session.Close()

		handler := newServeHandler(recipe, session, logger)

		buildCtx, cancelBuild := context.WithCancel(context.Background())
		defer cancelBuild()
		if build {
			go backgroundBuild(buildCtx, session, logger)
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting rsflow server on %s\n", srv.Addr)
			fmt.Printf("Serving %d artifacts\n", recipe.Graph.Len())
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			cancelBuild()

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("rsflow server stopped gracefully")
		}
	},
}

// newServeHandler exposes the session's store and metrics, so builds run
// through the session show up under /metrics.
func newServeHandler(recipe *rsflow.Recipe, session *rsflow.Session, logger *slog.Logger) http.Handler {
	return httpAdapter.NewHandler(&httpAdapter.Server{
		Graph:   recipe.Graph,
		Store:   session.Store,
		Metrics: session.Metrics.Handler(),
		Version: strings.TrimSpace(rsflow.Version),
		Logger:  logger,
	})
}

func backgroundBuild(ctx context.Context, session *rsflow.Session, logger *slog.Logger) {
	report, err := session.Executor.Run(ctx)
	if err != nil {
		logger.Error("background build failed", "error", err)
		return
	}
	logger.Info("background build finished", "built", len(report.Built), "skipped", len(report.Skipped))
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("build", false, "Build the recipe once in the background, feeding /metrics")
}
