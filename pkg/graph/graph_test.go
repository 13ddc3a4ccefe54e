package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/graph"
)

func art(name string, sources ...string) domain.Artifact {
	return domain.Artifact{
		Name:      name,
		Sources:   sources,
		Operation: domain.Operation{Steps: []domain.Step{{Program: "math"}}},
	}
}

// diamond: raw -> (left, right) -> merged, plus an unrelated island.
func diamond(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New([]domain.Artifact{
		art("merged", "left", "right"),
		art("raw", "field.rsf"),
		art("left", "raw"),
		art("right", "raw"),
		art("island"),
	})
	require.NoError(t, err)
	return g
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		artifacts []domain.Artifact
		kind      error
	}{
		{"empty name", []domain.Artifact{art("")}, domain.ErrInvalidGraph},
		{"duplicate", []domain.Artifact{art("a"), art("a")}, domain.ErrInvalidGraph},
		{"empty source", []domain.Artifact{art("a", "")}, domain.ErrInvalidGraph},
		{"self loop", []domain.Artifact{art("a", "a")}, domain.ErrInvalidGraph},
		{"cycle", []domain.Artifact{art("a", "c"), art("b", "a"), art("c", "b")}, domain.ErrCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graph.New(tt.artifacts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var gerr *domain.GraphError
			assert.ErrorAs(t, err, &gerr)
		})
	}
}

func TestNew_CycleMessageNamesPath(t *testing.T) {
	_, err := graph.New([]domain.Artifact{art("a", "b"), art("b", "a"), art("c")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a -> b")
	assert.Contains(t, err.Error(), "b -> a")
}

func TestGraph_Queries(t *testing.T) {
	g := diamond(t)

	assert.Equal(t, 5, g.Len())
	assert.Equal(t, []string{"merged", "raw", "left", "right", "island"}, g.Names())
	assert.Equal(t, []string{"field.rsf"}, g.External())
	assert.Equal(t, []string{"merged", "island"}, g.Sinks())
	assert.True(t, g.Has("raw"))
	assert.False(t, g.Has("field.rsf"))

	deps, err := g.Dependencies("merged")
	require.NoError(t, err)
	assert.Equal(t, []string{"left", "right"}, deps)

	deps, err = g.Dependencies("raw")
	require.NoError(t, err)
	assert.Empty(t, deps)

	users, err := g.Dependents("raw")
	require.NoError(t, err)
	assert.Equal(t, []string{"left", "right"}, users)

	_, err = g.Dependents("nope")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestGraph_Levels(t *testing.T) {
	g := diamond(t)

	assert.Equal(t, [][]string{
		{"raw", "island"},
		{"left", "right"},
		{"merged"},
	}, g.Levels())
	assert.Equal(t, []string{"raw", "island", "left", "right", "merged"}, g.TopologicalOrder())
}

func TestGraph_Closure(t *testing.T) {
	g := diamond(t)

	got, err := g.Closure("left")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw", "left"}, got)

	got, err = g.Closure("merged", "island")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw", "island", "left", "right", "merged"}, got)

	got, err = g.Closure()
	require.NoError(t, err)
	assert.Equal(t, g.TopologicalOrder(), got)

	_, err = g.Closure("missing")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestGraph_RepeatedSourceIsOneEdge(t *testing.T) {
	g, err := graph.New([]domain.Artifact{art("a"), art("b", "a", "a")})
	require.NoError(t, err)

	deps, err := g.Dependencies("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, deps)

	b, ok := g.Artifact("b")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "a"}, b.Sources, "sources keep their positions")
}

func TestGraph_ArtifactsAreCopies(t *testing.T) {
	g := diamond(t)

	a, ok := g.Artifact("merged")
	require.True(t, ok)
	a.Sources[0] = "tampered"
	a.Operation.Steps[0].Program = "tampered"

	again, _ := g.Artifact("merged")
	assert.Equal(t, "left", again.Sources[0])
	assert.Equal(t, "math", again.Operation.Steps[0].Program)
}
