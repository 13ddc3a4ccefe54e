package domain

import "time"

// BuildRecord is the persisted outcome of materializing an artifact.
// The executor compares signatures to decide whether an artifact is up to date.
type BuildRecord struct {
	Artifact  string    `json:"artifact"`
	Signature string    `json:"signature"`
	UpdatedAt time.Time `json:"updated_at"`
}
