package dsl

import (
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/graph"
)

// DuplicatePolicy decides what happens when a name is declared twice.
type DuplicatePolicy int

const (
	// RejectDuplicates keeps the first producer and records a *domain.DuplicateError.
	RejectDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates lets the latest declaration become the producer.
	ReplaceDuplicates
)

func (p DuplicatePolicy) String() string {
	switch p {
	case RejectDuplicates:
		return "reject"
	case ReplaceDuplicates:
		return "replace"
	default:
		return "unknown"
	}
}

// Builder manages the recipe graph construction.
// It is not safe for concurrent use.
type Builder struct {
	nodes  map[string]*Node
	order  []string
	policy DuplicatePolicy
	errs   []error
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithDuplicatePolicy sets how repeated names are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(b *Builder) {
		b.policy = p
	}
}

// WithLogger sets the logger used to report declarations.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a new recipe builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		nodes: make(map[string]*Node),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// Flow declares the artifact name, produced by running operation over sources.
//
// Nothing is executed or validated beyond the name's uniqueness. When the name
// is already taken and the policy rejects duplicates, the returned Node is
// detached from the graph.
func (b *Builder) Flow(name string, sources []string, operation domain.Operation) *Node {
	n := &Node{
		artifact: domain.Artifact{
			Name:      name,
			Sources:   append([]string(nil), sources...),
			Operation: operation.Clone(),
		},
	}

	if _, exists := b.nodes[name]; exists {
		switch b.policy {
		case ReplaceDuplicates:
			b.logger.Warn("artifact redeclared, replacing producer", "artifact", name)
			b.nodes[name] = n
			return n
		default:
			b.errs = append(b.errs, &domain.DuplicateError{Name: name})
			b.logger.Debug("artifact redeclared, keeping first producer", "artifact", name)
			return n
		}
	}

	b.nodes[name] = n
	b.order = append(b.order, name)
	b.logger.Debug("artifact declared", "artifact", name, "sources", len(sources))
	return n
}

// Lookup returns the node currently producing name.
func (b *Builder) Lookup(name string) (*Node, bool) {
	n, ok := b.nodes[name]
	return n, ok
}

// Len returns the number of distinct artifacts declared so far.
func (b *Builder) Len() int {
	return len(b.order)
}

// Names returns the declared artifact names in declaration order.
func (b *Builder) Names() []string {
	return append([]string(nil), b.order...)
}

// Err returns the declaration errors collected so far, joined.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// Artifacts returns the declared artifacts in declaration order.
func (b *Builder) Artifacts() []domain.Artifact {
	out := make([]domain.Artifact, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.nodes[name].Build())
	}
	return out
}

// Build validates the declarations and compiles them into a Graph.
func (b *Builder) Build() (*graph.Graph, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	return graph.New(b.Artifacts())
}
