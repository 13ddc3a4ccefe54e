package rsf

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/rsflow/pkg/domain"
)

// ErrSourceIndex is returned when a placeholder points outside the source list.
var ErrSourceIndex = errors.New("source placeholder out of range")

var placeholder = regexp.MustCompile(`\$\{SOURCES\[(\d+)(?::(\d+))?\]\}`)

// ShellOptions control how artifacts become shell commands.
type ShellOptions struct {
	// Prefix is prepended to every program name ("sf" turns "spike" into "sfspike").
	Prefix string
	// BinDir, when set, is joined in front of every prefixed program.
	BinDir string
	// Suffix is appended to artifact names lacking an extension to form file names.
	Suffix string
}

// DefaultShellOptions follow the Madagascar conventions.
func DefaultShellOptions() ShellOptions {
	return ShellOptions{Prefix: "sf", Suffix: ".rsf"}
}

// FileName maps an artifact or source name to the file holding it.
func (o ShellOptions) FileName(name string) string {
	if o.Suffix == "" || path.Ext(name) != "" {
		return name
	}
	return name + o.Suffix
}

// Program maps an operation program to the executable invoked.
func (o ShellOptions) Program(program string) string {
	if strings.ContainsRune(program, '/') {
		return program
	}
	exe := o.Prefix + program
	if o.BinDir != "" {
		exe = filepath.Join(o.BinDir, exe)
	}
	return exe
}

// Shell renders a as a single shell line: the first source feeds the first
// step's stdin and the last step writes the target file.
func Shell(a domain.Artifact, opts ShellOptions) (string, error) {
	if a.Operation.IsZero() {
		return "", fmt.Errorf("artifact %q has no operation", a.Name)
	}

	files := make([]string, len(a.Sources))
	for i, s := range a.Sources {
		files[i] = shellQuote(opts.FileName(s))
	}

	steps := make([]string, 0, len(a.Operation.Steps))
	for _, s := range a.Operation.Steps {
		var expandErr error
		line := renderStep(shellQuote(opts.Program(s.Program)), s.Args, func(arg domain.Arg) string {
			v, err := expand(arg.Value, files)
			if err != nil && expandErr == nil {
				expandErr = err
			}
			if arg.IsPositional() {
				return v
			}
			return arg.Key + "=" + v
		})
		if expandErr != nil {
			return "", fmt.Errorf("artifact %q: %w", a.Name, expandErr)
		}
		steps = append(steps, line)
	}

	var sb strings.Builder
	sb.WriteString(steps[0])
	if len(files) > 0 {
		sb.WriteString(" < ")
		sb.WriteString(files[0])
	}
	for _, s := range steps[1:] {
		sb.WriteString(" | ")
		sb.WriteString(s)
	}
	sb.WriteString(" > ")
	sb.WriteString(shellQuote(opts.FileName(a.Name)))
	return sb.String(), nil
}

func expand(value string, files []string) (string, error) {
	var firstErr error
	out := placeholder.ReplaceAllStringFunc(value, func(m string) string {
		sub := placeholder.FindStringSubmatch(m)
		from, _ := strconv.Atoi(sub[1])
		if sub[2] == "" {
			if from >= len(files) {
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: %s with %d sources", ErrSourceIndex, m, len(files))
				}
				return m
			}
			return files[from]
		}
		to, _ := strconv.Atoi(sub[2])
		if from > to || to > len(files) {
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s with %d sources", ErrSourceIndex, m, len(files))
			}
			return m
		}
		return strings.Join(files[from:to], " ")
	})
	return out, firstErr
}

func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, unsafeShellRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("._/-+:,=@%", r):
		return false
	}
	return true
}
