package domain

import "fmt"

// Operation is a pipeline of external processing steps.
// Steps are piped in order: the output of one step is the input of the next.
type Operation struct {
	Steps []Step `json:"steps" yaml:"steps" mapstructure:"steps"`
}

// Step is a single invocation of an external processing program.
type Step struct {
	Program string `json:"program" yaml:"program" mapstructure:"program"`
	Args    []Arg  `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"`
}

// Arg is a program argument. An empty Key marks a positional argument.
type Arg struct {
	Key   string `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key"`
	Value string `json:"value" yaml:"value" mapstructure:"value"`
}

// IsPositional reports whether the argument has no key.
func (a Arg) IsPositional() bool {
	return a.Key == ""
}

// String renders the argument as it appears on a command line.
func (a Arg) String() string {
	if a.IsPositional() {
		return a.Value
	}
	return a.Key + "=" + a.Value
}

// Lookup returns the value of the first argument named key.
func (s Step) Lookup(key string) (string, bool) {
	for _, a := range s.Args {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Programs returns the program names of all steps, in pipe order.
func (o Operation) Programs() []string {
	names := make([]string, 0, len(o.Steps))
	for _, s := range o.Steps {
		names = append(names, s.Program)
	}
	return names
}

// IsZero reports whether the operation has no steps.
func (o Operation) IsZero() bool {
	return len(o.Steps) == 0
}

// Clone returns a deep copy of the operation.
func (o Operation) Clone() Operation {
	if o.Steps == nil {
		return Operation{}
	}
	steps := make([]Step, len(o.Steps))
	for i, s := range o.Steps {
		steps[i] = Step{Program: s.Program, Args: append([]Arg(nil), s.Args...)}
	}
	return Operation{Steps: steps}
}

// SourceRef is the placeholder for the i-th source of the artifact being declared.
func SourceRef(i int) string {
	return fmt.Sprintf("${SOURCES[%d]}", i)
}

// SourceRange is the placeholder for sources [from, to) of the artifact being declared.
func SourceRange(from, to int) string {
	return fmt.Sprintf("${SOURCES[%d:%d]}", from, to)
}
