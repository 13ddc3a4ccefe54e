package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/rsflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSignatureStoreContract runs a suite of tests to verify that a SignatureStore implementation
// adheres to the defined interface contract.
func RunSignatureStoreContract(t *testing.T, store SignatureStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		record := domain.BuildRecord{
			Artifact:  prefix + "-cube",
			Signature: "3f1a",
			UpdatedAt: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		}

		err := store.Save(ctx, record)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, record.Artifact)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record.Artifact, loaded.Artifact)
		assert.Equal(t, record.Signature, loaded.Signature)
		assert.True(t, record.UpdatedAt.Equal(loaded.UpdatedAt), "UpdatedAt should survive a round trip")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		name := prefix + "-mask"
		require.NoError(t, store.Save(ctx, domain.BuildRecord{Artifact: name, Signature: "old"}))
		require.NoError(t, store.Save(ctx, domain.BuildRecord{Artifact: name, Signature: "new"}))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "new", loaded.Signature)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		name := prefix + "-gather"
		require.NoError(t, store.Save(ctx, domain.BuildRecord{Artifact: name, Signature: "x"}))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound, "Load after Delete should return ErrRecordNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-1"
		id2 := prefix + "-2"
		_ = store.Save(ctx, domain.BuildRecord{Artifact: id1, Signature: "a"})
		_ = store.Save(ctx, domain.BuildRecord{Artifact: id2, Signature: "b"})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
