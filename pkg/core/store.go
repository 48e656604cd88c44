package core

import "context"

// Store defines the contract for persisting raw values by key.
// Adhering to this interface keeps the board and the override map
// independent of the underlying storage (filesystem, SQLite, memory).
type Store interface {
	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error

	// Read returns the raw bytes stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write persists data under key synchronously before returning.
	Write(ctx context.Context, key string, data []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Keys returns every stored key.
	Keys(ctx context.Context) ([]string, error)
}

// Watchable is implemented by stores that can report changes made
// by other writers (another process sharing the same data directory).
// Writes made through the watching store itself are not reported.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
