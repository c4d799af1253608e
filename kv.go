package linklist

import "context"

// DefaultKey is the key under which a collection is persisted.
const DefaultKey = "linklist_data"

// KeyValue persists opaque values under string keys.
type KeyValue interface {
	// Get returns the value stored under key.
	// Returns ENOTFOUND if the key has never been set.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key. Implementations never leave
	// a partially written value behind.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the underlying storage.
	Close() error
}
