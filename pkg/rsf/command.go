package rsf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/rsflow/pkg/domain"
)

// ErrMalformedCommand is returned by Parse for unbalanced quotes or empty steps.
var ErrMalformedCommand = errors.New("malformed command")

// Command renders an operation as a descriptor string.
// Steps are joined by " | " and arguments by single spaces.
func Command(o domain.Operation) string {
	steps := make([]string, 0, len(o.Steps))
	for _, s := range o.Steps {
		steps = append(steps, renderStep(s.Program, s.Args, func(a domain.Arg) string { return a.String() }))
	}
	return strings.Join(steps, " | ")
}

func renderStep(program string, args []domain.Arg, arg func(domain.Arg) string) string {
	var sb strings.Builder
	sb.WriteString(program)
	for _, a := range args {
		sb.WriteByte(' ')
		sb.WriteString(arg(a))
	}
	return sb.String()
}

// Parse reads a descriptor string back into an operation.
//
// Whitespace (including newlines) separates arguments, "|" separates steps and
// double quotes protect both. A token is key=value when it contains "=" before
// any quote or "$"; otherwise it is positional.
func Parse(command string) (domain.Operation, error) {
	var (
		op     domain.Operation
		tokens []string
		cur    strings.Builder
		quoted bool
		inTok  bool
	)

	flushToken := func() {
		if inTok {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inTok = false
		}
	}
	flushStep := func() error {
		flushToken()
		if len(tokens) == 0 {
			return fmt.Errorf("%w: empty step in %q", ErrMalformedCommand, command)
		}
		step := domain.Step{Program: tokens[0]}
		for _, t := range tokens[1:] {
			step.Args = append(step.Args, parseArg(t))
		}
		op.Steps = append(op.Steps, step)
		tokens = nil
		return nil
	}

	for _, r := range command {
		switch {
		case r == '"':
			quoted = !quoted
			cur.WriteRune(r)
			inTok = true
		case quoted:
			cur.WriteRune(r)
		case r == '|':
			if err := flushStep(); err != nil {
				return domain.Operation{}, err
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flushToken()
		default:
			cur.WriteRune(r)
			inTok = true
		}
	}
	if quoted {
		return domain.Operation{}, fmt.Errorf("%w: unbalanced quote in %q", ErrMalformedCommand, command)
	}
	if err := flushStep(); err != nil {
		return domain.Operation{}, err
	}
	return op, nil
}

func parseArg(token string) domain.Arg {
	eq := strings.IndexByte(token, '=')
	if eq <= 0 {
		return domain.Arg{Value: token}
	}
	if strings.ContainsAny(token[:eq], `"$`) {
		return domain.Arg{Value: token}
	}
	return domain.Arg{Key: token[:eq], Value: token[eq+1:]}
}
