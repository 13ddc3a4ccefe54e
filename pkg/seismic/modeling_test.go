package seismic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rsflow/pkg/dsl"
	"github.com/aretw0/rsflow/pkg/graph"
	"github.com/aretw0/rsflow/pkg/rsf"
	"github.com/aretw0/rsflow/pkg/seismic"
)

func commands(t *testing.T, g *graph.Graph) map[string]string {
	t.Helper()
	out := make(map[string]string, g.Len())
	for _, a := range g.Artifacts() {
		out[a.Name] = rsf.Command(a.Operation)
	}
	return out
}

func TestKirchhoffModeling_DeclaresFourArtifacts(t *testing.T) {
	b := dsl.New()
	names := seismic.KirchhoffModeling(b, "modeled")

	require.NoError(t, b.Err())
	assert.Equal(t, []string{"gaussianReflector", "velocityModel", "reflectorDip", "modeled"}, b.Names())
	assert.Equal(t, b.Names(), names.All())

	g, err := b.Build()
	require.NoError(t, err)
	assert.Empty(t, g.External())

	cmds := commands(t, g)
	assert.Equal(t,
		`math d1=0.01 n1=2001 o1=-5 unit1=km label1=Offset output="4-3*exp(-(x1-5)^2/9)"`,
		cmds["gaussianReflector"])
	assert.Equal(t,
		`window min1=0 max1=10 | spray axis=1 n=451 d=0.01 o=0 label=Depth unit=km | math output="1.5+0.5*x1+0.0*x2"`,
		cmds["velocityModel"])
	assert.Equal(t, `math output="2/3*(x1-5)*input"`, cmds["reflectorDip"])
	assert.Equal(t,
		`kirmod cmp=y dip=${SOURCES[1]} nh=161 dh=0.025 h0=0 ns=401 ds=0.025 s0=0 freq=10 dt=0.004 nt=1001 vel=1.5 gradz=0.5 gradx=0.0 verb=y`+
			` | put d2=0.0125 label3="CMP" unit3="Km" label2="Offset" unit2="Km" label1=Time unit1=s`,
		cmds["modeled"])

	cube, _ := g.Artifact("modeled")
	assert.Equal(t, []string{"gaussianReflector", "reflectorDip"}, cube.Sources)
	velocity, _ := g.Artifact("velocityModel")
	assert.Equal(t, []string{"gaussianReflector"}, velocity.Sources)
}

func TestKirchhoffModeling_ParametersIgnoreFilename(t *testing.T) {
	build := func(name string) map[string]string {
		b := dsl.New()
		seismic.KirchhoffModeling(b, name)
		g, err := b.Build()
		require.NoError(t, err)
		return commands(t, g)
	}

	a := build("first")
	z := build("another-cube")

	for _, name := range []string{"gaussianReflector", "velocityModel", "reflectorDip"} {
		assert.Equal(t, a[name], z[name])
	}
	assert.Equal(t, a["first"], z["another-cube"])
}

func TestKirchhoffModeling_DefaultFilename(t *testing.T) {
	b := dsl.New()
	names := seismic.KirchhoffModeling(b, "")

	assert.Equal(t, seismic.DefaultDataCube, names.DataCube)
	_, ok := b.Lookup("dataCube")
	assert.True(t, ok)
}

func TestKirchhoffModeling_TwiceIsADuplicate(t *testing.T) {
	b := dsl.New()
	seismic.KirchhoffModeling(b, "one")
	seismic.KirchhoffModeling(b, "two")

	assert.Error(t, b.Err(), "shared intermediate names collide")
}
