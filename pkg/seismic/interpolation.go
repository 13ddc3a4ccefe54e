package seismic

import (
	"fmt"

	"github.com/aretw0/rsflow/pkg/dsl"
	"github.com/aretw0/rsflow/pkg/op"
)

// Iteration budgets of the interpolation. They do not depend on the input.
const (
	PEFIterations           = 100
	InterpolationIterations = 20
)

// Adaptive PEF shape.
const (
	pefJump  = 2
	pefRect1 = 50
	pefRect2 = 2
)

var pefLags = []int{10, 2}

// Interpolation parameterizes PEFInterpolation.
type Interpolation struct {
	// DataCube is the cube to interpolate: time x offset x CMP.
	DataCube string `json:"data_cube" yaml:"data_cube" mapstructure:"data_cube" validate:"required"`
	// Interpolated is the output cube name.
	Interpolated string `json:"interpolated" yaml:"interpolated" mapstructure:"interpolated" validate:"required"`

	NM int     `json:"nm" yaml:"nm" mapstructure:"nm" validate:"gt=0"` // number of CMPs
	DM float64 `json:"dm" yaml:"dm" mapstructure:"dm" validate:"gt=0"` // CMP sampling
	NT int     `json:"nt" yaml:"nt" mapstructure:"nt" validate:"gt=0"` // number of time samples
	DT float64 `json:"dt" yaml:"dt" mapstructure:"dt" validate:"gt=0"` // time sampling

	// NHI is the number of constant-offset gathers to interpolate. Zero or less means 1.
	NHI int `json:"nhi" yaml:"nhi" mapstructure:"nhi" validate:"gte=0"`
}

// HalfCMPSampling is the CMP sampling of the interpolated output.
func (p Interpolation) HalfCMPSampling() float64 {
	return p.DM / 2
}

// Gathers returns the effective number of offset gathers.
func (p Interpolation) Gathers() int {
	if p.NHI <= 0 {
		return 1
	}
	return p.NHI
}

// GatherNames names the artifacts declared for one offset gather.
type GatherNames struct {
	Index        int
	Offset       string
	Resampled    string
	PEF          string
	Interpolated string
}

// All returns the names in declaration order.
func (n GatherNames) All() []string {
	return []string{n.Offset, n.Resampled, n.PEF, n.Interpolated}
}

// OffsetGatherNames derives the per-gather artifact names from the data cube
// name and the offset index. It is pure: equal inputs give equal names.
func OffsetGatherNames(dataCube string, index int) GatherNames {
	return GatherNames{
		Index:        index,
		Offset:       fmt.Sprintf("%s-offsetGather-%d", dataCube, index),
		Resampled:    fmt.Sprintf("%s-resampledGather-%d", dataCube, index),
		PEF:          fmt.Sprintf("%s-pefCoeficients-%d", dataCube, index),
		Interpolated: fmt.Sprintf("%s-interpolatedGather-%d", dataCube, index),
	}
}

// InterpolationArtifacts names the artifacts declared by PEFInterpolation.
type InterpolationArtifacts struct {
	DataSpikes    string
	PaddingSpikes string
	Mask1         string
	Mask          string
	ZeroTraces    string
	Mask0         string
	Gathers       []GatherNames
	Interpolated  string
}

// Precursors returns the names declared before the per-gather loop.
func (a InterpolationArtifacts) Precursors() []string {
	return []string{a.DataSpikes, a.PaddingSpikes, a.Mask1, a.Mask, a.ZeroTraces, a.Mask0}
}

// InterpolatedGathers returns the interpolated gather names in offset order.
func (a InterpolationArtifacts) InterpolatedGathers() []string {
	out := make([]string, len(a.Gathers))
	for i, g := range a.Gathers {
		out[i] = g.Interpolated
	}
	return out
}

// All returns every declared name in declaration order.
func (a InterpolationArtifacts) All() []string {
	out := a.Precursors()
	for _, g := range a.Gathers {
		out = append(out, g.All()...)
	}
	return append(out, a.Interpolated)
}

// PEFInterpolation declares the interpolation of p.DataCube into p.Interpolated,
// doubling the number of CMPs (the CMP sampling is halved).
func PEFInterpolation(b *dsl.Builder, p Interpolation) InterpolationArtifacts {
	dm := p.HalfCMPSampling()
	nhi := p.Gathers()
	base := p.DataCube

	out := InterpolationArtifacts{
		DataSpikes:    base + "-a",
		PaddingSpikes: base + "-b",
		Mask1:         base + "-mask1",
		Mask:          base + "-mask",
		ZeroTraces:    base + "-zeroedGather",
		Mask0:         base + "-mask0",
		Interpolated:  p.Interpolated,
	}

	// Spike trains interleaved into 0/1 masks: data traces vs traces to estimate.
	b.Flow(out.DataSpikes, nil,
		op.New("spike").Int("n1", p.NM).Float("d1", dm).Int("o1", 0).Operation())
	b.Flow(out.PaddingSpikes, nil,
		op.New("spike").Int("n1", p.NM).Float("d1", dm).Int("o1", 0).Int("mag", 0).Operation())

	interleaveMask := op.New("interleave").Int("axis", 1).Source(1).
		Pipe("dd").Set("type", "int").
		Operation()
	b.Flow(out.Mask1, []string{out.PaddingSpikes, out.DataSpikes}, interleaveMask).
		Describe("mask of traces to interpolate")
	b.Flow(out.Mask, []string{out.DataSpikes, out.PaddingSpikes}, interleaveMask).
		Describe("mask of known traces")

	b.Flow(out.ZeroTraces, []string{out.PaddingSpikes},
		op.New("spray").Int("axis", 2).Int("n", p.NT).Float("d", dm).
			Pipe("transp").
			Pipe("put").
			Set("label2", "Offset").
			Set("unit2", "Km").
			Set("label1", "Time").
			Set("unit1", "s").
			Operation()).
		Describe("zero traces interleaved with the data")

	// Same time sampling as the data, twice the CMPs.
	b.Flow(out.Mask0, []string{out.Mask},
		op.New("spray").Int("axis", 1).Int("n", p.NT).Float("d", p.DT).Operation()).
		Describe("known-trace mask for the whole gather")

	for i := 0; i < nhi; i++ {
		names := OffsetGatherNames(base, i)

		b.Flow(names.Offset, []string{base},
			op.New("window").Int("n2", 1).Int("f2", i).Operation())

		b.Flow(names.Resampled, []string{names.Offset, out.ZeroTraces},
			op.New("interleave").Int("axis", 2).Source(1).Operation())

		b.Flow(names.PEF, []string{names.Resampled, out.Mask0},
			op.New("apef").
				Int("jump", pefJump).
				Ints("a", pefLags...).
				Int("rect1", pefRect1).
				Int("rect2", pefRect2).
				Int("niter", PEFIterations).
				Bool("verb", true).
				SourceFlag("maskin", 1).
				Operation()).
			Describe(fmt.Sprintf("adaptive PEF of offset gather %d", i))

		b.Flow(names.Interpolated, []string{names.Resampled, names.PEF, out.Mask0, out.Mask1},
			op.New("miss4").
				Bool("exact", true).
				SourceFlag("filt", 1).
				SourceFlag("mask", 2).
				Int("niter", InterpolationIterations).
				Bool("verb", true).
				Pipe("put").
				Float("d2", dm).
				Operation()).
			Describe(fmt.Sprintf("interpolated offset gather %d", i))

		out.Gathers = append(out.Gathers, names)
	}

	b.Flow(out.Interpolated, out.InterpolatedGathers(),
		op.New("rcat").Int("axis", 3).SourceRange(1, nhi).
			Pipe("transp").Set("plane", "23").
			Operation()).
		Describe("interpolated data cube")

	return out
}
