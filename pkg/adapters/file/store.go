package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/rsflow/pkg/domain"
)

const (
	recordExt = ".json"
	tempExt   = ".tmp"
)

// Store implements ports.SignatureStore using the local filesystem.
// It stores one JSON file per artifact in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".rsflow/signatures".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".rsflow", "signatures")
	}
	return &Store{BasePath: basePath}
}

// Artifact names may contain path separators; they are escaped into a single file name.
func (s *Store) path(artifact string) string {
	return filepath.Join(s.BasePath, url.PathEscape(artifact)+recordExt)
}

// Save persists the record to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, record domain.BuildRecord) error {
	if record.Artifact == "" {
		return fmt.Errorf("artifact name cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure signature directory: %w", err)
	}

	destPath := s.path(record.Artifact)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	// Same directory as the destination: rename is only atomic within one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, ".*"+tempExt)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing record for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to record: %w", err)
	}
	return nil
}

// Load retrieves the record from its JSON file.
func (s *Store) Load(ctx context.Context, artifact string) (domain.BuildRecord, error) {
	if artifact == "" {
		return domain.BuildRecord{}, fmt.Errorf("artifact name cannot be empty")
	}

	data, err := os.ReadFile(s.path(artifact))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.BuildRecord{}, domain.ErrRecordNotFound
		}
		return domain.BuildRecord{}, fmt.Errorf("failed to read record file: %w", err)
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.BuildRecord{}, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return record, nil
}

// Delete removes the record file.
func (s *Store) Delete(ctx context.Context, artifact string) error {
	err := os.Remove(s.path(artifact))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record file: %w", err)
	}
	return nil
}

// List returns the recorded artifacts, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read signature directory: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		artifact, err := url.PathUnescape(strings.TrimSuffix(name, recordExt))
		if err != nil {
			continue
		}
		names = append(names, artifact)
	}
	sort.Strings(names)
	return names, nil
}
