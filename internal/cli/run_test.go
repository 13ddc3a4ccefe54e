package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rsflow/internal/config"
	"github.com/aretw0/rsflow/internal/logging"
)

func TestExecute_DryRun(t *testing.T) {
	var out bytes.Buffer
	err := Execute(RunOptions{
		Targets: []string{"dataCube-mask0"},
		DryRun:  true,
		Store:   config.StoreMemory,
		WorkDir: t.TempDir(),
		Out:     &out,
		Logger:  logging.NewNop(),
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "would build dataCube-a\n")
	assert.Contains(t, out.String(), "would build dataCube-mask0\n")
	assert.Contains(t, out.String(), "4 would build, 0 up to date")
}

func TestExecute_InvalidOverrides(t *testing.T) {
	err := Execute(RunOptions{
		DryRun: true,
		Store:  "s3",
		Out:    &bytes.Buffer{},
		Logger: logging.NewNop(),
	})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestExecute_UnknownTarget(t *testing.T) {
	err := Execute(RunOptions{
		Targets: []string{"nope"},
		DryRun:  true,
		Store:   config.StoreMemory,
		Out:     &bytes.Buffer{},
		Logger:  logging.NewNop(),
	})
	assert.ErrorContains(t, err, "artifact not found")
}

func TestLoadRecipe_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interpolation: [\n"), 0644))

	_, err := LoadRecipe(path, logging.NewNop())
	assert.ErrorContains(t, err, "error loading recipe")
}

func TestApplyOverrides(t *testing.T) {
	run := config.Default().Run
	applyOverrides(&run, RunOptions{Jobs: 16, Store: config.StoreRedis, RedisAddr: "cache:6379"})

	assert.Equal(t, 16, run.Jobs)
	assert.Equal(t, config.StoreRedis, run.Store)
	assert.Equal(t, "cache:6379", run.RedisAddr)
	assert.Equal(t, ".", run.WorkDir)
}
