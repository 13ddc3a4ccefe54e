package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/rsflow"
	"github.com/aretw0/rsflow/internal/config"
	"github.com/aretw0/rsflow/internal/presentation/tui"
	"github.com/aretw0/rsflow/internal/runtime"
)

// RunOptions configures a build from the command line.
type RunOptions struct {
	ConfigPath string
	Targets    []string
	Jobs       int
	DryRun     bool
	Store      string
	RedisAddr  string
	WorkDir    string
	Verbose    bool
	Quiet      bool
	Out        io.Writer
	Logger     *slog.Logger
}

// Execute loads the recipe, builds the requested targets and prints a report.
func Execute(opts RunOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = CreateLogger(opts.Verbose)
	}

	r, err := LoadRecipe(opts.ConfigPath, opts.Logger)
	if err != nil {
		return err
	}
	applyOverrides(&r.Config.Run, opts)
	if err := config.Validate(r.Config); err != nil {
		return err
	}

	if !opts.Quiet && IsTerminal(opts.Out) {
		tui.PrintBanner(opts.Out)
	}

	session, err := r.NewSession(
		rsflow.WithSessionLogger(opts.Logger),
		rsflow.WithDryRun(opts.DryRun),
	)
	if err != nil {
		return fmt.Errorf("error preparing executor: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			opts.Logger.Warn("failed to close store", "error", err)
		}
	}()

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	report, err := session.Executor.Run(sigCtx, opts.Targets...)
	if report != nil {
		printReport(opts.Out, report)
	}
	if err != nil {
		if sig := sigCtx.Signal(); sig != nil {
			return fmt.Errorf("interrupted by %v: %w", sig, err)
		}
		var buildErr *runtime.BuildError
		if errors.As(err, &buildErr) {
			fmt.Fprintf(opts.Out, "%s %s\n", tui.Status(opts.Out, false, "FAILED"), buildErr.Artifact)
		}
		return err
	}
	return nil
}

func printReport(w io.Writer, report *runtime.Report) {
	verb := "built"
	if report.DryRun {
		verb = "would build"
	}
	for _, name := range report.Built {
		fmt.Fprintf(w, "%s %s\n", tui.Status(w, true, verb), name)
	}
	fmt.Fprintf(w, "%d %s, %d up to date\n", len(report.Built), verb, len(report.Skipped))
}
