package rsf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/dsl"
	"github.com/aretw0/rsflow/pkg/op"
	"github.com/aretw0/rsflow/pkg/rsf"
)

func TestSConstruct(t *testing.T) {
	b := dsl.New()
	b.Flow("spikes", nil, op.New("spike").Int("n1", 4).Operation()).Describe("data spikes")
	b.Flow("mask", []string{"spikes", "pad"}, op.New("interleave").Int("axis", 1).Source(1).Operation())
	g, err := b.Build()
	require.NoError(t, err)

	out := rsf.SConstruct(g)

	assert.True(t, strings.HasPrefix(out, "# Generated by rsflow. Do not edit.\nfrom rsf.proj import *\n"))
	assert.Contains(t, out, "# data spikes\nFlow('spikes', None, 'spike n1=4')\n")
	assert.Contains(t, out, "Flow('mask', ['spikes', 'pad'], 'interleave axis=1 ${SOURCES[1]}')\n")
	assert.True(t, strings.HasSuffix(out, "\nEnd()\n"))
	assert.Less(t, strings.Index(out, "'spikes'"), strings.Index(out, "'mask'"))
}

func TestSConstruct_EscapesQuotes(t *testing.T) {
	b := dsl.New()
	b.Flow("it's", nil, op.New("math").Set("output", `'x'`).Operation())
	g, err := b.Build()
	require.NoError(t, err)

	assert.Contains(t, rsf.SConstruct(g), `Flow('it\'s', None, 'math output=\'x\'')`)
}

func TestShell(t *testing.T) {
	a := domain.Artifact{
		Name:    "cube-interpolatedGather-0",
		Sources: []string{"cube-resampledGather-0", "cube-pefCoeficients-0", "cube-mask0", "cube-mask1"},
		Operation: op.New("miss4").Bool("exact", true).
			SourceFlag("filt", 1).SourceFlag("mask", 2).
			Pipe("put").Float("d2", 0.0125).
			Operation(),
	}

	line, err := rsf.Shell(a, rsf.DefaultShellOptions())
	require.NoError(t, err)
	assert.Equal(t,
		"sfmiss4 exact=y filt=cube-pefCoeficients-0.rsf mask=cube-mask0.rsf < cube-resampledGather-0.rsf"+
			" | sfput d2=0.0125 > cube-interpolatedGather-0.rsf",
		line)
}

func TestShell_NoSourcesAndBinDir(t *testing.T) {
	a := domain.Artifact{Name: "spikes", Operation: op.New("spike").Int("n1", 4).Operation()}

	line, err := rsf.Shell(a, rsf.ShellOptions{Prefix: "sf", BinDir: "/opt/rsf/bin", Suffix: ".rsf"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/rsf/bin/sfspike n1=4 > spikes.rsf", line)
}

func TestShell_SourceRange(t *testing.T) {
	a := domain.Artifact{
		Name:      "out",
		Sources:   []string{"g0", "g1", "g2"},
		Operation: op.New("rcat").Int("axis", 3).SourceRange(1, 3).Pipe("transp").Set("plane", "23").Operation(),
	}

	line, err := rsf.Shell(a, rsf.DefaultShellOptions())
	require.NoError(t, err)
	assert.Equal(t, "sfrcat axis=3 g1.rsf g2.rsf < g0.rsf | sftransp plane=23 > out.rsf", line)
}

func TestShell_KeepsExtensionsAndQuotes(t *testing.T) {
	a := domain.Artifact{
		Name:      "my cube",
		Sources:   []string{"field.hh"},
		Operation: op.New("./bin/custom").Quoted("label", "x").Operation(),
	}

	line, err := rsf.Shell(a, rsf.DefaultShellOptions())
	require.NoError(t, err)
	assert.Equal(t, `./bin/custom label="x" < field.hh > 'my cube.rsf'`, line)
}

func TestShell_Errors(t *testing.T) {
	_, err := rsf.Shell(domain.Artifact{Name: "empty"}, rsf.DefaultShellOptions())
	assert.Error(t, err)

	a := domain.Artifact{
		Name:      "x",
		Sources:   []string{"a"},
		Operation: op.New("interleave").Source(1).Operation(),
	}
	_, err = rsf.Shell(a, rsf.DefaultShellOptions())
	assert.ErrorIs(t, err, rsf.ErrSourceIndex)
}
