package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateArtifact is returned when two declarations share an artifact name.
	ErrDuplicateArtifact = errors.New("duplicate artifact")

	// ErrArtifactNotFound is returned when a name does not match any declared artifact.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInvalidGraph is the kind of structural graph failures.
	ErrInvalidGraph = errors.New("invalid recipe graph")

	// ErrCycle is the kind of graph failures caused by a dependency cycle.
	ErrCycle = errors.New("cycle detected")

	// ErrRecordNotFound is returned by signature stores for unknown artifacts.
	ErrRecordNotFound = errors.New("build record not found")
)

// DuplicateError reports an artifact name declared more than once.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateArtifact.Error(), e.Name)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateArtifact }

// GraphError wraps deterministic graph validation failures.
type GraphError struct {
	Kind error
	Msg  string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

// InvalidGraphf builds a GraphError of kind ErrInvalidGraph.
func InvalidGraphf(format string, args ...any) error {
	return &GraphError{Kind: ErrInvalidGraph, Msg: fmt.Sprintf(format, args...)}
}

// CycleError builds a GraphError of kind ErrCycle describing path.
func CycleError(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &GraphError{Kind: ErrCycle, Msg: msg}
}
