package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/rsflow/pkg/domain"
)

// Store implements ports.SignatureStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.BuildRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.BuildRecord),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, record domain.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.Artifact] = record
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, artifact string) (domain.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[artifact]
	if !ok {
		return domain.BuildRecord{}, domain.ErrRecordNotFound
	}
	return record, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, artifact string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, artifact)
	return nil
}

// List returns the recorded artifacts, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
