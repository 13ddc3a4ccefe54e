package seismic

import (
	"github.com/aretw0/rsflow/pkg/dsl"
	"github.com/aretw0/rsflow/pkg/op"
)

// Fixed artifact names declared by KirchhoffModeling.
const (
	GaussianReflector = "gaussianReflector"
	VelocityModel     = "velocityModel"
	ReflectorDip      = "reflectorDip"

	// DefaultDataCube is the modeled cube name when none is given.
	DefaultDataCube = "dataCube"
)

// ModelArtifacts names the artifacts declared by KirchhoffModeling.
type ModelArtifacts struct {
	Reflector string
	Velocity  string
	Dip       string
	DataCube  string
}

// All returns the names in declaration order.
func (m ModelArtifacts) All() []string {
	return []string{m.Reflector, m.Velocity, m.Dip, m.DataCube}
}

// KirchhoffModeling declares the modeling of a Gaussian reflector in a linear
// velocity model (gradient 0.5 with depth) and returns the declared names.
// An empty filename falls back to DefaultDataCube.
func KirchhoffModeling(b *dsl.Builder, filename string) ModelArtifacts {
	if filename == "" {
		filename = DefaultDataCube
	}

	// depth(x) = 4 - 3*exp(-(x-5)^2/9) over 2001 samples from -5 km.
	reflector := b.Flow(GaussianReflector, nil,
		op.New("math").
			Set("d1", "0.01").
			Set("n1", "2001").
			Set("o1", "-5").
			Set("unit1", "km").
			Set("label1", "Offset").
			Quoted("output", "4-3*exp(-(x1-5)^2/9)").
			Operation()).
		Describe("Gaussian reflector depth profile")

	velocity := b.Flow(VelocityModel, []string{reflector.Name()},
		op.New("window").
			Set("min1", "0").
			Set("max1", "10").
			Pipe("spray").
			Set("axis", "1").
			Set("n", "451").
			Set("d", "0.01").
			Set("o", "0").
			Set("label", "Depth").
			Set("unit", "km").
			Pipe("math").
			Quoted("output", "1.5+0.5*x1+0.0*x2").
			Operation()).
		Describe("linear velocity model")

	dip := b.Flow(ReflectorDip, []string{reflector.Name()},
		op.New("math").
			Quoted("output", "2/3*(x1-5)*input").
			Operation()).
		Describe("reflector dip")

	cube := b.Flow(filename, []string{reflector.Name(), dip.Name()},
		op.New("kirmod").
			Bool("cmp", true).
			SourceFlag("dip", 1).
			Set("nh", "161").
			Set("dh", "0.025").
			Set("h0", "0").
			Set("ns", "401").
			Set("ds", "0.025").
			Set("s0", "0").
			Set("freq", "10").
			Set("dt", "0.004").
			Set("nt", "1001").
			Set("vel", "1.5").
			Set("gradz", "0.5").
			Set("gradx", "0.0").
			Bool("verb", true).
			Pipe("put").
			Set("d2", "0.0125").
			Quoted("label3", "CMP").
			Quoted("unit3", "Km").
			Quoted("label2", "Offset").
			Quoted("unit2", "Km").
			Set("label1", "Time").
			Set("unit1", "s").
			Operation()).
		Describe("Kirchhoff modeled data cube")

	return ModelArtifacts{
		Reflector: reflector.Name(),
		Velocity:  velocity.Name(),
		Dip:       dip.Name(),
		DataCube:  cube.Name(),
	}
}
