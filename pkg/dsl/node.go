package dsl

import "github.com/aretw0/rsflow/pkg/domain"

// Node is the handle returned by Builder.Flow.
type Node struct {
	artifact domain.Artifact
}

// Name returns the artifact name, for use as a source of later declarations.
func (n *Node) Name() string {
	return n.artifact.Name
}

// Describe attaches free text shown by inspection tools.
func (n *Node) Describe(text string) *Node {
	n.artifact.Description = text
	return n
}

// Build returns a copy of the underlying domain.Artifact.
func (n *Node) Build() domain.Artifact {
	return n.artifact.Clone()
}
