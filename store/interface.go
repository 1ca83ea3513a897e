package store

import (
	"errors"

	"github.com/wrqqqr/todoList/models"
)

// ErrCorrupt is returned when a stored value fails its integrity check.
var ErrCorrupt = errors.New("stored data is corrupt")

// Adapter is the persistence contract consumed by the engine.
// It loads the collection pair once at startup and receives the complete pair
// after every committed mutation.
type Adapter interface {
	// Load returns the persisted pair. found is false when nothing has been
	// stored yet. A non-nil error means the stored data could not be read or decoded.
	Load() (pair models.Pair, found bool, err error)

	// Save durably stores both collections, keyed separately.
	Save(active, completed []models.Task) error
}

// KV is a durable key-value backend. Values are opaque bytes; the adapter
// layer owns encoding.
type KV interface {
	// Get returns the value for key. found is false if the key was never set.
	Get(key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Close releases locks, handles or connections held by the backend.
	Close() error
}

// BatchKV is implemented by backends that can write several keys atomically.
// KVAdapter prefers it so both collections land in one commit.
type BatchKV interface {
	KV
	SetMany(values map[string][]byte) error
}
