// Package op builds structured operation descriptors.
//
// A descriptor is assembled step by step and stays structured until it reaches
// a boundary renderer (see package rsf), which produces the command string the
// external toolchain expects.
package op

import (
	"strconv"
	"strings"

	"github.com/aretw0/rsflow/pkg/domain"
)

// Builder assembles a domain.Operation.
// The zero value is not usable; start with New.
type Builder struct {
	steps []domain.Step
}

// New starts an operation whose first step runs program.
func New(program string) *Builder {
	return &Builder{steps: []domain.Step{{Program: program}}}
}

// Pipe appends a new step fed by the output of the previous one.
func (b *Builder) Pipe(program string) *Builder {
	b.steps = append(b.steps, domain.Step{Program: program})
	return b
}

func (b *Builder) add(arg domain.Arg) *Builder {
	last := &b.steps[len(b.steps)-1]
	last.Args = append(last.Args, arg)
	return b
}

// Set adds key=value to the current step, value taken verbatim.
func (b *Builder) Set(key, value string) *Builder {
	return b.add(domain.Arg{Key: key, Value: value})
}

// Int adds key=<v> formatted as a decimal integer.
func (b *Builder) Int(key string, v int) *Builder {
	return b.Set(key, strconv.Itoa(v))
}

// Ints adds key=v1,v2,... (e.g. filter lags).
func (b *Builder) Ints(key string, vs ...int) *Builder {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return b.Set(key, strings.Join(parts, ","))
}

// Float adds key=<v> using FormatFloat.
func (b *Builder) Float(key string, v float64) *Builder {
	return b.Set(key, FormatFloat(v))
}

// Bool adds key=y or key=n.
func (b *Builder) Bool(key string, v bool) *Builder {
	if v {
		return b.Set(key, "y")
	}
	return b.Set(key, "n")
}

// Quoted adds key="value".
func (b *Builder) Quoted(key, value string) *Builder {
	return b.Set(key, strconv.Quote(value))
}

// Arg adds a positional argument.
func (b *Builder) Arg(value string) *Builder {
	return b.add(domain.Arg{Value: value})
}

// Source adds the i-th source placeholder as a positional argument.
func (b *Builder) Source(i int) *Builder {
	return b.Arg(domain.SourceRef(i))
}

// SourceRange adds the [from, to) sources placeholder as a positional argument.
func (b *Builder) SourceRange(from, to int) *Builder {
	return b.Arg(domain.SourceRange(from, to))
}

// SourceFlag adds key=<i-th source placeholder>.
func (b *Builder) SourceFlag(key string, i int) *Builder {
	return b.Set(key, domain.SourceRef(i))
}

// Operation returns a copy of the assembled operation.
func (b *Builder) Operation() domain.Operation {
	return domain.Operation{Steps: b.steps}.Clone()
}

// FormatFloat formats v the way printf's %g does with its default precision
// of six significant digits: 0.0125 -> "0.0125", 100 -> "100", 1e-05 -> "1e-05".
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
