package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner implements ports.ProcessRunner by handing shell lines to a local shell.
// Lines come from rsf.Shell, so redirections and pipes are already in place.
type Runner struct {
	shell   string
	baseDir string
	env     map[string]string
	timeout time.Duration
	stdout  func(string)
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithShell sets the shell binary. Default is "sh".
func WithShell(shell string) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithEnv adds variables on top of the inherited environment (e.g. DATAPATH for Madagascar).
func WithEnv(env map[string]string) RunnerOption {
	return func(r *Runner) {
		if r.env == nil {
			r.env = make(map[string]string, len(env))
		}
		for k, v := range env {
			r.env[k] = v
		}
	}
}

// WithTimeout bounds each command. Zero means no limit.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithOutput receives whatever a command left on stdout.
func WithOutput(fn func(string)) RunnerOption {
	return func(r *Runner) {
		r.stdout = fn
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		shell: "sh",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExitError reports a command that did not complete successfully.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command failed (exit %d): %s", e.Code, e.Command)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// Run executes command with "<shell> -c".
func (r *Runner) Run(ctx context.Context, command string) error {
	if strings.TrimSpace(command) == "" {
		return errors.New("empty command")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Dir = r.baseDir
	cmd.WaitDelay = time.Second
	cmd.Env = cmd.Environ()
	for k, v := range r.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("command interrupted: %s: %w", command, ctx.Err())
		}
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ExitError{
			Command: command,
			Code:    code,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	if r.stdout != nil {
		if out := strings.TrimSpace(stdout.String()); out != "" {
			r.stdout(out)
		}
	}
	return nil
}
