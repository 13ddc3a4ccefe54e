package ports

import "context"

// ProcessRunner executes one shell command line in a working directory.
type ProcessRunner interface {
	// Run blocks until the command exits or ctx is done.
	// A non-zero exit status is reported as an error carrying the captured stderr.
	Run(ctx context.Context, command string) error
}

// ProcessRunnerFunc adapts a function to ProcessRunner.
type ProcessRunnerFunc func(ctx context.Context, command string) error

// Run calls f(ctx, command).
func (f ProcessRunnerFunc) Run(ctx context.Context, command string) error {
	return f(ctx, command)
}
