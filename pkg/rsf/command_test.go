package rsf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/op"
	"github.com/aretw0/rsflow/pkg/rsf"
)

func TestCommand(t *testing.T) {
	o := op.New("interleave").Int("axis", 1).Source(1).
		Pipe("dd").Set("type", "int").
		Operation()

	assert.Equal(t, "interleave axis=1 ${SOURCES[1]} | dd type=int", rsf.Command(o))
	assert.Equal(t, "", rsf.Command(domain.Operation{}))
}

func TestParse_RoundTrip(t *testing.T) {
	commands := []string{
		`math d1=0.01 n1=2001 o1=-5 unit1=km label1=Offset output="4-3*exp(-(x1-5)^2/9)"`,
		`window min1=0 max1=10 | spray axis=1 n=451 d=0.01 o=0 label=Depth unit=km | math output="1.5+0.5*x1+0.0*x2"`,
		`rcat axis=3 ${SOURCES[1:4]} | transp plane=23`,
		`transp`,
	}
	for _, c := range commands {
		o, err := rsf.Parse(c)
		require.NoError(t, err, c)
		assert.Equal(t, c, rsf.Command(o))
	}
}

func TestParse_Multiline(t *testing.T) {
	o, err := rsf.Parse(`
		apef jump=2 a=10,2 rect1=50 rect2=2 niter=100 verb=y
		maskin=${SOURCES[1]}
	`)
	require.NoError(t, err)
	require.Len(t, o.Steps, 1)
	assert.Equal(t, "apef", o.Steps[0].Program)

	v, ok := o.Steps[0].Lookup("maskin")
	assert.True(t, ok)
	assert.Equal(t, "${SOURCES[1]}", v)
}

func TestParse_QuotedPipeStaysInArgument(t *testing.T) {
	o, err := rsf.Parse(`math output="a|b" | put n2=3`)
	require.NoError(t, err)
	require.Len(t, o.Steps, 2)
	assert.Equal(t, domain.Arg{Key: "output", Value: `"a|b"`}, o.Steps[0].Args[0])
}

func TestParse_PositionalTokens(t *testing.T) {
	o, err := rsf.Parse(`cat ${SOURCES[1]} "x=1"`)
	require.NoError(t, err)
	assert.True(t, o.Steps[0].Args[0].IsPositional())
	assert.True(t, o.Steps[0].Args[1].IsPositional())
}

func TestParse_Errors(t *testing.T) {
	for _, c := range []string{"", "   ", "math | ", `math output="x`} {
		_, err := rsf.Parse(c)
		assert.ErrorIs(t, err, rsf.ErrMalformedCommand, "%q", c)
	}
}
