package rsflow_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rsflow"
	"github.com/aretw0/rsflow/internal/config"
	"github.com/aretw0/rsflow/pkg/adapters/file"
	"github.com/aretw0/rsflow/pkg/adapters/memory"
	"github.com/aretw0/rsflow/pkg/adapters/redis"
	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/dsl"
	"github.com/aretw0/rsflow/pkg/ports"
)

func TestLoad_DefaultExperiment(t *testing.T) {
	r, err := rsflow.Load("")
	require.NoError(t, err)

	// 4 modeling artifacts, 6 precursors, 4 per gather and the final cube.
	assert.Equal(t, 15, r.Graph.Len())
	require.NotNil(t, r.Model)
	assert.Equal(t, "dataCube", r.Model.DataCube)
	assert.Empty(t, r.Graph.External(), "the modeled cube feeds the interpolation")
	assert.Contains(t, r.Graph.Sinks(), "interpolatedDataCube")

	script := r.SConstruct()
	assert.Contains(t, script, "Flow('gaussianReflector', None,")
	assert.True(t, strings.HasSuffix(script, "End()\n"))
}

func TestNew_WithoutModeling(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Enabled = false
	cfg.Interpolation.NHI = 2

	r, err := rsflow.New(cfg)
	require.NoError(t, err)

	assert.Nil(t, r.Model)
	assert.Equal(t, 6+4*2+1, r.Graph.Len())
	assert.Equal(t, []string{"dataCube"}, r.Graph.External())
}

func TestNew_CustomFlows(t *testing.T) {
	cfg := config.Default()
	cfg.Flows = []config.Flow{{
		Name:        "stack",
		Sources:     []string{"interpolatedDataCube"},
		Command:     "stack axis=2",
		Description: "zero-offset section",
	}}

	r, err := rsflow.New(cfg)
	require.NoError(t, err)

	a, ok := r.Graph.Artifact("stack")
	require.True(t, ok)
	assert.Equal(t, "zero-offset section", a.Description)
	assert.Contains(t, r.Graph.Sinks(), "stack")
	assert.NotContains(t, r.Graph.Sinks(), "interpolatedDataCube")
}

func TestNew_DuplicateFlow(t *testing.T) {
	cfg := config.Default()
	cfg.Flows = []config.Flow{{Name: "velocityModel", Command: "math output=2"}}

	_, err := rsflow.New(cfg)
	assert.ErrorIs(t, err, domain.ErrDuplicateArtifact)

	r, err := rsflow.New(cfg, rsflow.WithDuplicatePolicy(dsl.ReplaceDuplicates))
	require.NoError(t, err)
	a, _ := r.Graph.Artifact("velocityModel")
	assert.Equal(t, []string{"math"}, a.Operation.Programs())
	assert.Empty(t, a.Sources)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Interpolation.NHI = -1

	_, err := rsflow.New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSession_Run(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Run.WorkDir = dir
	cfg.Run.Store = config.StoreMemory

	r, err := rsflow.New(cfg)
	require.NoError(t, err)

	var mu sync.Mutex
	var commands []string
	runner := ports.ProcessRunnerFunc(func(_ context.Context, command string) error {
		mu.Lock()
		commands = append(commands, command)
		mu.Unlock()
		target := command[strings.LastIndex(command, " > ")+3:]
		return os.WriteFile(filepath.Join(dir, target), nil, 0644)
	})

	s, err := r.NewSession(rsflow.WithProcessRunner(runner))
	require.NoError(t, err)
	defer s.Close()

	report, err := s.Executor.Run(context.Background(), "dataCube-mask0")
	require.NoError(t, err)
	assert.Equal(t, []string{"dataCube-a", "dataCube-b", "dataCube-mask", "dataCube-mask0"}, report.Built)
	assert.Contains(t, commands, "sfspike n1=401 d1=0.0125 o1=0 > dataCube-a.rsf")

	again, err := s.Executor.Run(context.Background(), "dataCube-mask0")
	require.NoError(t, err)
	assert.Empty(t, again.Built)
	assert.Len(t, again.Skipped, 4)
}

func TestSession_DryRun(t *testing.T) {
	cfg := config.Default()
	cfg.Run.WorkDir = t.TempDir()
	cfg.Run.Store = config.StoreMemory

	r, err := rsflow.New(cfg)
	require.NoError(t, err)

	s, err := r.NewSession(rsflow.WithDryRun(true))
	require.NoError(t, err)

	report, err := s.Executor.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Built, 15)
}

func TestOpenStore(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		store, locker, closeFn, err := rsflow.OpenStore(config.Run{Store: config.StoreMemory})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, store)
		assert.IsType(t, &memory.Locker{}, locker)
		assert.Nil(t, closeFn)
	})

	t.Run("File", func(t *testing.T) {
		store, _, _, err := rsflow.OpenStore(config.Run{Store: config.StoreFile, WorkDir: t.TempDir(), StorePath: "sigs"})
		require.NoError(t, err)
		assert.IsType(t, &file.Store{}, store)
	})

	t.Run("Redis", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		store, locker, closeFn, err := rsflow.OpenStore(config.Run{Store: config.StoreRedis, RedisAddr: mr.Addr()})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &redis.Store{}, store)
		assert.NotNil(t, locker)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, _, _, err := rsflow.OpenStore(config.Run{Store: "s3"})
		assert.Error(t, err)
	})
}
