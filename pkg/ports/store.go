package ports

import (
	"context"

	"github.com/aretw0/rsflow/pkg/domain"
)

// SignatureStore defines the interface for persisting build records.
// This allows incremental execution: an artifact whose signature did not
// change since its last build is not rebuilt.
type SignatureStore interface {
	// Save persists the record, replacing any previous one for the same artifact.
	Save(ctx context.Context, record domain.BuildRecord) error

	// Load retrieves the record of an artifact.
	// Returns domain.ErrRecordNotFound if the artifact was never recorded.
	Load(ctx context.Context, artifact string) (domain.BuildRecord, error)

	// Delete removes the record of an artifact. Deleting an unknown artifact is not an error.
	Delete(ctx context.Context, artifact string) error

	// List returns the names of all recorded artifacts.
	List(ctx context.Context) ([]string, error)
}
