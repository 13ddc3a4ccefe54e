package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/rsflow"
	"github.com/aretw0/rsflow/internal/config"
	"github.com/aretw0/rsflow/internal/logging"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger. It writes to Stderr.
func CreateLogger(verbose bool) *slog.Logger {
	return logging.New(logging.LevelFor(verbose))
}

// LoadRecipe builds the recipe for configPath (empty means the default experiment).
func LoadRecipe(configPath string, logger *slog.Logger) (*rsflow.Recipe, error) {
	r, err := rsflow.Load(configPath, rsflow.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("error loading recipe: %w", err)
	}
	return r, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// applyOverrides copies explicitly set command-line values over the file configuration.
func applyOverrides(run *config.Run, opts RunOptions) {
	if opts.Jobs > 0 {
		run.Jobs = opts.Jobs
	}
	if opts.Store != "" {
		run.Store = opts.Store
	}
	if opts.RedisAddr != "" {
		run.RedisAddr = opts.RedisAddr
	}
	if opts.WorkDir != "" {
		run.WorkDir = opts.WorkDir
	}
}
