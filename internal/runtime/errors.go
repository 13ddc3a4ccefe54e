package runtime

import "fmt"

// BuildError reports the artifact whose build stopped a run.
type BuildError struct {
	Artifact string
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %q: %v", e.Artifact, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
