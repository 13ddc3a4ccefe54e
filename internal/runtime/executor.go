package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/graph"
	"github.com/aretw0/rsflow/pkg/ports"
	"github.com/aretw0/rsflow/pkg/rsf"
	"golang.org/x/sync/errgroup"
)

// Executor materializes the artifacts of a recipe graph by running their
// rendered commands, level by level.
type Executor struct {
	graph  *graph.Graph
	runner ports.ProcessRunner

	store   ports.SignatureStore
	locker  ports.DistributedLocker
	lockTTL time.Duration
	jobs    int
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	shell   rsf.ShellOptions
	workDir string
	dryRun  bool
}

// NewExecutor creates an executor for g. runner may be nil in dry-run mode.
func NewExecutor(g *graph.Graph, runner ports.ProcessRunner, opts ...Option) *Executor {
	e := defaults()
	e.graph = g
	e.runner = runner
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Step is one planned artifact build.
type Step struct {
	Artifact  string `json:"artifact"`
	Command   string `json:"command"`
	Signature string `json:"signature"`
	Stale     bool   `json:"stale"`
	Level     int    `json:"level"`
}

// Report summarizes a run.
type Report struct {
	Built   []string `json:"built"`
	Skipped []string `json:"skipped"`
	DryRun  bool     `json:"dry_run,omitempty"`
}

// Plan computes commands and signatures for targets and everything they
// depend on, in topological order. With no targets it plans the whole graph.
// An artifact is stale when its stored signature differs, its output is
// missing, or one of its declared sources is stale.
func (e *Executor) Plan(ctx context.Context, targets ...string) ([]Step, error) {
	closure, err := e.graph.Closure(targets...)
	if err != nil {
		return nil, err
	}
	want := make(map[string]bool, len(closure))
	for _, name := range closure {
		want[name] = true
	}

	sigs := make(map[string]string)
	stale := make(map[string]bool)
	var plan []Step

	for level, names := range e.graph.Levels() {
		for _, name := range names {
			if !want[name] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			a, _ := e.graph.Artifact(name)
			command, err := rsf.Shell(a, e.shell)
			if err != nil {
				return nil, err
			}

			depStale := false
			for _, src := range a.Sources {
				if _, seen := sigs[src]; seen {
					continue
				}
				if e.graph.Has(src) {
					continue
				}
				sig, err := e.inputSignature(src)
				if err != nil {
					return nil, err
				}
				sigs[src] = sig
			}
			for _, src := range a.Sources {
				if stale[src] {
					depStale = true
				}
			}

			sig := signature(command, a.Sources, sigs)
			sigs[name] = sig

			fresh, err := e.upToDate(ctx, name, sig)
			if err != nil {
				return nil, err
			}
			stale[name] = depStale || !fresh

			plan = append(plan, Step{
				Artifact:  name,
				Command:   command,
				Signature: sig,
				Stale:     stale[name],
				Level:     level,
			})
		}
	}
	return plan, nil
}

// Run builds the stale artifacts of the plan. Artifacts of one level run
// concurrently; the first failure cancels the rest and is returned as a *BuildError.
func (e *Executor) Run(ctx context.Context, targets ...string) (*Report, error) {
	plan, err := e.Plan(ctx, targets...)
	if err != nil {
		return nil, err
	}

	report := &Report{DryRun: e.dryRun}
	if e.dryRun {
		for _, s := range plan {
			if s.Stale {
				report.Built = append(report.Built, s.Artifact)
			} else {
				report.Skipped = append(report.Skipped, s.Artifact)
			}
		}
		return report, nil
	}
	if e.runner == nil {
		return nil, fmt.Errorf("executor has no process runner")
	}

	var mu sync.Mutex
	for _, level := range groupByLevel(plan) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.jobs)

		for _, step := range level {
			if !step.Stale {
				e.emit(gctx, e.hooks.OnBuildSkipped, &domain.BuildEvent{Type: domain.EventBuildSkipped, Artifact: step.Artifact})
				report.Skipped = append(report.Skipped, step.Artifact)
				continue
			}

			g.Go(func() error {
				if err := e.build(gctx, step); err != nil {
					return &BuildError{Artifact: step.Artifact, Err: err}
				}
				mu.Lock()
				report.Built = append(report.Built, step.Artifact)
				mu.Unlock()
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			e.sortReport(report)
			return report, err
		}
	}

	e.sortReport(report)
	return report, nil
}

func (e *Executor) build(ctx context.Context, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, step.Artifact, e.lockTTL)
		if err != nil {
			return fmt.Errorf("lock: %w", err)
		}
		defer func() {
			// The build context may already be canceled.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("failed to release lock", "artifact", step.Artifact, "error", err)
			}
		}()
	}

	a, _ := e.graph.Artifact(step.Artifact)
	event := &domain.BuildEvent{
		Type:     domain.EventBuildStart,
		Artifact: step.Artifact,
		Programs: a.Operation.Programs(),
	}
	e.emit(ctx, e.hooks.OnBuildStart, event)

	start := time.Now()
	e.logger.Debug("running", "artifact", step.Artifact, "command", step.Command)
	err := e.runner.Run(ctx, step.Command)
	if err != nil {
		e.discard(context.WithoutCancel(ctx), step.Artifact)
	}

	if err == nil && e.store != nil {
		err = e.store.Save(ctx, domain.BuildRecord{
			Artifact:  step.Artifact,
			Signature: step.Signature,
			UpdatedAt: time.Now().UTC(),
		})
		if err != nil {
			err = fmt.Errorf("save record: %w", err)
		}
	}

	finish := *event
	finish.Type = domain.EventBuildFinish
	finish.Duration = time.Since(start)
	finish.Err = err
	e.emit(ctx, e.hooks.OnBuildFinish, &finish)
	return err
}

func (e *Executor) emit(ctx context.Context, hook func(context.Context, *domain.BuildEvent), event *domain.BuildEvent) {
	if hook == nil {
		return
	}
	event.Timestamp = time.Now()
	hook(ctx, event)
}

// sortReport restores topological order, which concurrent builds scramble.
func (e *Executor) sortReport(r *Report) {
	pos := make(map[string]int, e.graph.Len())
	for i, name := range e.graph.TopologicalOrder() {
		pos[name] = i
	}
	sort.SliceStable(r.Built, func(i, j int) bool { return pos[r.Built[i]] < pos[r.Built[j]] })
	sort.SliceStable(r.Skipped, func(i, j int) bool { return pos[r.Skipped[i]] < pos[r.Skipped[j]] })
}

func groupByLevel(plan []Step) [][]Step {
	var out [][]Step
	for _, s := range plan {
		for len(out) <= s.Level {
			out = append(out, nil)
		}
		out[s.Level] = append(out[s.Level], s)
	}
	return out
}
