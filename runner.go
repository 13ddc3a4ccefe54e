package rsflow

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/rsflow/internal/config"
	"github.com/aretw0/rsflow/internal/logging"
	"github.com/aretw0/rsflow/internal/runtime"
	"github.com/aretw0/rsflow/pkg/adapters/file"
	"github.com/aretw0/rsflow/pkg/adapters/memory"
	"github.com/aretw0/rsflow/pkg/adapters/process"
	"github.com/aretw0/rsflow/pkg/adapters/redis"
	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/observability"
	"github.com/aretw0/rsflow/pkg/ports"
)

// Session bundles an executor for a Recipe with the resources it holds.
type Session struct {
	Executor *runtime.Executor
	Store    ports.SignatureStore
	Metrics  *observability.Metrics
	close    func() error
}

// Close releases the store connection, if any.
func (s *Session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// SessionOption configures NewSession.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	logger *slog.Logger
	dryRun bool
	hooks  domain.LifecycleHooks
	runner ports.ProcessRunner
	store  ports.SignatureStore
}

// WithSessionLogger sets the logger for the executor and its hooks.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithDryRun plans without executing.
func WithDryRun(dryRun bool) SessionOption {
	return func(o *sessionOptions) {
		o.dryRun = dryRun
	}
}

// WithHooks adds lifecycle hooks after the logging and metrics ones.
func WithHooks(hooks domain.LifecycleHooks) SessionOption {
	return func(o *sessionOptions) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// WithProcessRunner replaces the local shell runner.
func WithProcessRunner(runner ports.ProcessRunner) SessionOption {
	return func(o *sessionOptions) {
		o.runner = runner
	}
}

// WithSignatureStore replaces the store named in the configuration.
func WithSignatureStore(store ports.SignatureStore) SessionOption {
	return func(o *sessionOptions) {
		o.store = store
	}
}

// NewSession wires an executor from the run section of the recipe config.
func (r *Recipe) NewSession(opts ...SessionOption) (*Session, error) {
	o := &sessionOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	run := r.Config.Run

	s := &Session{Metrics: observability.NewMetrics()}

	var locker ports.DistributedLocker
	if o.store != nil {
		s.Store = o.store
	} else {
		store, l, closeFn, err := OpenStore(run)
		if err != nil {
			return nil, err
		}
		s.Store, locker, s.close = store, l, closeFn
	}

	runner := o.runner
	if runner == nil {
		procOpts := []process.RunnerOption{
			process.WithBaseDir(run.WorkDir),
			process.WithOutput(func(out string) {
				o.logger.Debug("process output", "output", out)
			}),
		}
		// Explicit process settings win over the workdir default.
		procOpts = append(procOpts, run.Process.Options()...)
		runner = process.NewRunner(procOpts...)
	}

	hooks := observability.LoggingHooks(o.logger).
		Merge(s.Metrics.Hooks()).
		Merge(o.hooks)

	execOpts := []runtime.Option{
		runtime.WithStore(s.Store),
		runtime.WithJobs(run.Jobs),
		runtime.WithHooks(hooks),
		runtime.WithLogger(o.logger),
		runtime.WithShellOptions(r.Config.ShellOptions()),
		runtime.WithWorkDir(run.WorkDir),
		runtime.WithDryRun(o.dryRun),
	}
	if locker != nil {
		execOpts = append(execOpts, runtime.WithLocker(locker, run.LockTTL))
	}

	s.Executor = runtime.NewExecutor(r.Graph, runner, execOpts...)
	return s, nil
}

// OpenStore creates the signature store named by run.Store and a matching
// locker: redis shares its connection, local stores lock in process.
// closeFn may be nil.
func OpenStore(run config.Run) (store ports.SignatureStore, locker ports.DistributedLocker, closeFn func() error, err error) {
	switch run.Store {
	case config.StoreMemory:
		return memory.NewStore(), memory.NewLocker(), nil, nil
	case config.StoreFile, "":
		path := run.StorePath
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(run.WorkDir, path)
		}
		return file.New(path), memory.NewLocker(), nil, nil
	case config.StoreRedis:
		if run.RedisAddr == "" {
			return nil, nil, nil, errors.New("redis store needs an address")
		}
		rs := redis.New(run.RedisAddr, run.RedisPassword, run.RedisDB)
		return rs, redis.NewLocker(rs.Client(), "rsflow:"), rs.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store %q", run.Store)
	}
}
