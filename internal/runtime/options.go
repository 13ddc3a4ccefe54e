package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/rsflow/internal/logging"
	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/ports"
	"github.com/aretw0/rsflow/pkg/rsf"
)

// Option configures the Executor.
type Option func(*Executor)

// WithStore sets the signature store. Without one every run rebuilds everything.
func WithStore(store ports.SignatureStore) Option {
	return func(e *Executor) {
		e.store = store
	}
}

// WithLocker locks each artifact while it is being built.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Executor) {
		e.locker = locker
		if ttl > 0 {
			e.lockTTL = ttl
		}
	}
}

// WithJobs bounds the number of artifacts built concurrently. Values below 1 mean 1.
func WithJobs(n int) Option {
	return func(e *Executor) {
		if n < 1 {
			n = 1
		}
		e.jobs = n
	}
}

// WithHooks registers lifecycle hooks. Repeated calls are merged.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Executor) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom logger for the executor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithShellOptions controls program and file naming.
func WithShellOptions(opts rsf.ShellOptions) Option {
	return func(e *Executor) {
		e.shell = opts
	}
}

// WithWorkDir sets the directory holding inputs and outputs.
func WithWorkDir(dir string) Option {
	return func(e *Executor) {
		e.workDir = dir
	}
}

// WithDryRun plans and reports without running anything.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

func defaults() *Executor {
	return &Executor{
		jobs:    1,
		lockTTL: 10 * time.Minute,
		logger:  logging.NewNop(),
		shell:   rsf.DefaultShellOptions(),
		workDir: ".",
	}
}
