package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/rsflow/pkg/adapters/file"
	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/aretw0/rsflow/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSignatureStoreContract(t, store)
}

func TestFileStore_EscapesArtifactNames(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.BuildRecord{Artifact: "gathers/cube-0", Signature: "s"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsDir())

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"gathers/cube-0"}, names)
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".123.tmp"), []byte("{}"), 0644))
	require.NoError(t, store.Save(ctx, domain.BuildRecord{Artifact: "cube", Signature: "s"}))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cube"}, names)
}

func TestFileStore_ListsTmpPrefixedArtifacts(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.BuildRecord{Artifact: "tmp-stack", Signature: "s"}))

	rec, err := store.Load(ctx, "tmp-stack")
	require.NoError(t, err)
	assert.Equal(t, "s", rec.Signature)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tmp-stack"}, names)
}

func TestFileStore_ListEmptyDirectory(t *testing.T) {
	store := file.New(t.TempDir())

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".rsflow", "signatures"), file.New("").BasePath)
}
