package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/rsflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SignatureStore using Redis.
// Records are JSON strings; a sorted set indexes them by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for records.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "rsflow:signature:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(artifact string) string {
	return s.prefix + artifact
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the record to Redis.
func (s *Store) Save(ctx context.Context, record domain.BuildRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.Pipeline()

	pipe.Set(ctx, s.key(record.Artifact), data, s.ttl)

	// Score = expiry time; without TTL records never expire from the index.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: record.Artifact,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the record from Redis.
func (s *Store) Load(ctx context.Context, artifact string) (domain.BuildRecord, error) {
	val, err := s.client.Get(ctx, s.key(artifact)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.BuildRecord{}, domain.ErrRecordNotFound
		}
		return domain.BuildRecord{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var record domain.BuildRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return domain.BuildRecord{}, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return record, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, artifact string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(artifact))
	pipe.ZRem(ctx, s.indexKey(), artifact)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the recorded artifacts, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired records: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
