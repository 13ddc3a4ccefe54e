package domain

// Artifact is a named node of the recipe graph.
// It is a handle to the file produced by running Operation over Sources.
type Artifact struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Sources lists the artifacts (or external files) this artifact reads.
	// The order is significant: Operation placeholders refer to sources by position.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty" mapstructure:"sources"`

	Operation Operation `json:"operation" yaml:"operation" mapstructure:"operation"`

	// Description is free text shown by inspection tools.
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
}

// HasSources reports whether the artifact reads any input.
func (a Artifact) HasSources() bool {
	return len(a.Sources) > 0
}

// Clone returns a deep copy of the artifact.
func (a Artifact) Clone() Artifact {
	out := a
	if a.Sources != nil {
		out.Sources = append([]string(nil), a.Sources...)
	}
	out.Operation = a.Operation.Clone()
	return out
}
