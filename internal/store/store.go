// Package store persists JSON-serializable component snapshots under
// distinct namespace keys. Each component owns one key and saves its whole
// state at once.
package store

import "context"

// Snapshot namespace keys.
const (
	KeyPath        = "path"
	KeyExploration = "exploration"
	KeyProgression = "progression"
)

// SnapshotStore is the key-value persistence boundary of the core services.
type SnapshotStore interface {
	// Save serializes v and stores it under key.
	Save(ctx context.Context, key string, v any) error
	// Load deserializes the value under key into dest. Returns false when no
	// snapshot exists. A decode failure is an error; callers fall back to
	// defaults and never propagate it.
	Load(ctx context.Context, key string, dest any) (bool, error)
	// Delete removes the snapshot under key.
	Delete(ctx context.Context, key string) error
}
