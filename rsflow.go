package rsflow

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/aretw0/rsflow/internal/config"
	"github.com/aretw0/rsflow/internal/logging"
	"github.com/aretw0/rsflow/pkg/dsl"
	"github.com/aretw0/rsflow/pkg/graph"
	"github.com/aretw0/rsflow/pkg/rsf"
	"github.com/aretw0/rsflow/pkg/seismic"
)

// Version is the release of this module.
//
//go:embed VERSION
var Version string

// Recipe is the built processing recipe and the configuration it came from.
type Recipe struct {
	Graph         *graph.Graph
	Model         *seismic.ModelArtifacts // nil when modeling is disabled
	Interpolation seismic.InterpolationArtifacts
	Config        config.Config
}

// Option defines a functional option for building a Recipe.
type Option func(*options)

type options struct {
	policy dsl.DuplicatePolicy
	logger *slog.Logger
}

// WithDuplicatePolicy controls what happens when flows redeclare an artifact.
func WithDuplicatePolicy(p dsl.DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load reads a configuration file and builds its recipe.
// An empty path builds the default experiment.
func Load(path string, opts ...Option) (*Recipe, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	return New(cfg, opts...)
}

// New declares the modeling stage (when enabled), the PEF interpolation and
// the custom flows of cfg, in that order, and validates the resulting graph.
func New(cfg config.Config, opts ...Option) (*Recipe, error) {
	o := &options{
		policy: dsl.RejectDuplicates,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	b := dsl.New(dsl.WithDuplicatePolicy(o.policy), dsl.WithLogger(o.logger))
	r := &Recipe{Config: cfg}

	if cfg.Model.Enabled {
		m := seismic.KirchhoffModeling(b, cfg.Model.Output)
		r.Model = &m
	}
	r.Interpolation = seismic.PEFInterpolation(b, cfg.Interpolation)

	for _, f := range cfg.Flows {
		operation, err := f.Operation()
		if err != nil {
			return nil, err
		}
		b.Flow(f.Name, f.Sources, operation).Describe(f.Description)
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build recipe: %w", err)
	}
	r.Graph = g

	o.logger.Debug("recipe built",
		"artifacts", g.Len(),
		"levels", len(g.Levels()),
		"inputs", g.External(),
	)
	return r, nil
}

// SConstruct renders the recipe as a Madagascar SConstruct script.
func (r *Recipe) SConstruct() string {
	return rsf.SConstruct(r.Graph)
}
