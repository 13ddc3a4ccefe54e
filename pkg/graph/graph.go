package graph

import (
	"fmt"
	"sort"

	"github.com/aretw0/rsflow/pkg/domain"
)

// Graph is an immutable, validated recipe graph.
//
// It is safe for concurrent read access.
type Graph struct {
	artifacts []domain.Artifact // declaration order
	index     map[string]int

	deps       [][]int // declared sources, by declaration index
	dependents [][]int // reverse edges, ascending
	external   []string

	levels [][]int
}

// New builds and validates a Graph.
//
// Validation rejects:
//   - empty or duplicate artifact names
//   - empty source names
//   - artifacts listing themselves as a source
//   - any cycle between declared artifacts
func New(artifacts []domain.Artifact) (*Graph, error) {
	g := &Graph{
		artifacts: make([]domain.Artifact, 0, len(artifacts)),
		index:     make(map[string]int, len(artifacts)),
	}

	for _, a := range artifacts {
		if a.Name == "" {
			return nil, domain.InvalidGraphf("artifact name is required")
		}
		if _, exists := g.index[a.Name]; exists {
			return nil, domain.InvalidGraphf("duplicate artifact name: %q", a.Name)
		}
		g.index[a.Name] = len(g.artifacts)
		g.artifacts = append(g.artifacts, a.Clone())
	}

	g.deps = make([][]int, len(g.artifacts))
	g.dependents = make([][]int, len(g.artifacts))
	external := make(map[string]struct{})

	for i, a := range g.artifacts {
		seen := make(map[int]struct{}, len(a.Sources))
		for _, src := range a.Sources {
			if src == "" {
				return nil, domain.InvalidGraphf("artifact %q has an empty source name", a.Name)
			}
			if src == a.Name {
				return nil, domain.InvalidGraphf("self-loop: %q", a.Name)
			}
			j, declared := g.index[src]
			if !declared {
				external[src] = struct{}{}
				continue
			}
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			g.deps[i] = append(g.deps[i], j)
			g.dependents[j] = append(g.dependents[j], i)
		}
	}
	for i := range g.dependents {
		sort.Ints(g.dependents[i])
	}

	g.external = make([]string, 0, len(external))
	for name := range external {
		g.external = append(g.external, name)
	}
	sort.Strings(g.external)

	levels, err := g.computeLevels()
	if err != nil {
		return nil, err
	}
	g.levels = levels

	return g, nil
}

// computeLevels runs Kahn's algorithm, grouping artifacts whose dependencies
// are all satisfied by earlier levels. Each level is sorted by declaration index.
func (g *Graph) computeLevels() ([][]int, error) {
	indeg := make([]int, len(g.artifacts))
	for i := range g.artifacts {
		indeg[i] = len(g.deps[i])
	}

	var queue []int
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	var levels [][]int
	visited := 0
	for len(queue) > 0 {
		sort.Ints(queue)
		levels = append(levels, queue)
		visited += len(queue)

		var next []int
		for _, u := range queue {
			for _, v := range g.dependents[u] {
				indeg[v]--
				if indeg[v] == 0 {
					next = append(next, v)
				}
			}
		}
		queue = next
	}

	if visited != len(g.artifacts) {
		return nil, domain.CycleError(g.findCycle(indeg))
	}
	return levels, nil
}

// findCycle walks dependencies among the nodes Kahn could not release and
// returns one cycle as a list of names, closed on its first element.
func (g *Graph) findCycle(indeg []int) []string {
	start := -1
	for i, d := range indeg {
		if d > 0 {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	pos := make(map[int]int)
	var path []int
	u := start
	for {
		if p, seen := pos[u]; seen {
			cycle := path[p:]
			names := make([]string, 0, len(cycle)+1)
			// path follows dependencies (consumer -> producer); report it producer first.
			for i := len(cycle) - 1; i >= 0; i-- {
				names = append(names, g.artifacts[cycle[i]].Name)
			}
			return append(names, names[0])
		}
		pos[u] = len(path)
		path = append(path, u)

		next := -1
		for _, d := range g.deps[u] {
			if indeg[d] > 0 {
				next = d
				break
			}
		}
		if next < 0 {
			return nil
		}
		u = next
	}
}

// Len returns the number of declared artifacts.
func (g *Graph) Len() int { return len(g.artifacts) }

// Artifacts returns the artifacts in declaration order.
func (g *Graph) Artifacts() []domain.Artifact {
	out := make([]domain.Artifact, len(g.artifacts))
	for i, a := range g.artifacts {
		out[i] = a.Clone()
	}
	return out
}

// Names returns artifact names in declaration order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.artifacts))
	for i, a := range g.artifacts {
		out[i] = a.Name
	}
	return out
}

// Artifact returns a declared artifact by name.
func (g *Graph) Artifact(name string) (domain.Artifact, bool) {
	i, ok := g.index[name]
	if !ok {
		return domain.Artifact{}, false
	}
	return g.artifacts[i].Clone(), true
}

// Has reports whether name is a declared artifact.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Dependencies returns the declared artifacts name reads, in source order.
// External inputs are not included.
func (g *Graph) Dependencies(name string) ([]string, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrArtifactNotFound, name)
	}
	return g.names(g.deps[i]), nil
}

// Dependents returns the artifacts that read name, in declaration order.
func (g *Graph) Dependents(name string) ([]string, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrArtifactNotFound, name)
	}
	return g.names(g.dependents[i]), nil
}

// External returns, sorted, the source names that no declaration produces.
func (g *Graph) External() []string {
	return append([]string(nil), g.external...)
}

// Sinks returns the artifacts nothing else reads, in declaration order.
func (g *Graph) Sinks() []string {
	var out []string
	for i, a := range g.artifacts {
		if len(g.dependents[i]) == 0 {
			out = append(out, a.Name)
		}
	}
	return out
}

// Levels groups artifacts by dependency depth.
// Artifacts within a level are independent of each other.
func (g *Graph) Levels() [][]string {
	out := make([][]string, len(g.levels))
	for i, lvl := range g.levels {
		out[i] = g.names(lvl)
	}
	return out
}

// TopologicalOrder returns a deterministic topological ordering of artifact names.
//
// Since the graph is validated on construction, this method must not fail.
func (g *Graph) TopologicalOrder() []string {
	out := make([]string, 0, len(g.artifacts))
	for _, lvl := range g.levels {
		out = append(out, g.names(lvl)...)
	}
	return out
}

// Closure returns targets and every declared artifact they transitively depend
// on, in topological order. With no targets, it returns the whole graph.
func (g *Graph) Closure(targets ...string) ([]string, error) {
	if len(targets) == 0 {
		return g.TopologicalOrder(), nil
	}

	keep := make([]bool, len(g.artifacts))
	stack := make([]int, 0, len(targets))
	for _, t := range targets {
		i, ok := g.index[t]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrArtifactNotFound, t)
		}
		stack = append(stack, i)
	}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if keep[u] {
			continue
		}
		keep[u] = true
		stack = append(stack, g.deps[u]...)
	}

	var out []string
	for _, lvl := range g.levels {
		for _, i := range lvl {
			if keep[i] {
				out = append(out, g.artifacts[i].Name)
			}
		}
	}
	return out, nil
}

func (g *Graph) names(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = g.artifacts[i].Name
	}
	return out
}
