package store

import (
	"fmt"

	"github.com/wrqqqr/todoList/models"
)

// Default storage keys, one per collection.
const (
	DefaultActiveKey    = "todo-active"
	DefaultCompletedKey = "todo-completed"
)

// KVAdapter implements Adapter on top of any KV backend, storing each
// collection as an encoded task list under its own key.
type KVAdapter struct {
	kv           KV
	format       Format
	activeKey    string
	completedKey string
}

// NewKVAdapter builds an adapter. Empty keys fall back to the defaults.
func NewKVAdapter(kv KV, format Format, activeKey, completedKey string) *KVAdapter {
	if activeKey == "" {
		activeKey = DefaultActiveKey
	}
	if completedKey == "" {
		completedKey = DefaultCompletedKey
	}
	if format == "" {
		format = FormatJSON
	}
	return &KVAdapter{
		kv:           kv,
		format:       format,
		activeKey:    activeKey,
		completedKey: completedKey,
	}
}

// Load reads both collections. found is false only when neither key exists;
// a missing key next to a present one decodes as an empty list.
func (a *KVAdapter) Load() (models.Pair, bool, error) {
	activeRaw, activeFound, err := a.kv.Get(a.activeKey)
	if err != nil {
		return models.Pair{}, false, fmt.Errorf("load %s: %w", a.activeKey, err)
	}
	completedRaw, completedFound, err := a.kv.Get(a.completedKey)
	if err != nil {
		return models.Pair{}, false, fmt.Errorf("load %s: %w", a.completedKey, err)
	}
	if !activeFound && !completedFound {
		return models.Pair{Active: []models.Task{}, Completed: []models.Task{}}, false, nil
	}

	active, err := DecodeTasks(a.format, activeRaw)
	if err != nil {
		return models.Pair{}, true, fmt.Errorf("decode %s: %w", a.activeKey, err)
	}
	completed, err := DecodeTasks(a.format, completedRaw)
	if err != nil {
		return models.Pair{}, true, fmt.Errorf("decode %s: %w", a.completedKey, err)
	}

	return models.Pair{Active: active, Completed: completed}, true, nil
}

// Save encodes both collections and writes them, in one batch when the
// backend supports it.
func (a *KVAdapter) Save(active, completed []models.Task) error {
	activeRaw, err := EncodeTasks(a.format, active)
	if err != nil {
		return fmt.Errorf("encode %s: %w", a.activeKey, err)
	}
	completedRaw, err := EncodeTasks(a.format, completed)
	if err != nil {
		return fmt.Errorf("encode %s: %w", a.completedKey, err)
	}

	if batch, ok := a.kv.(BatchKV); ok {
		return batch.SetMany(map[string][]byte{
			a.activeKey:    activeRaw,
			a.completedKey: completedRaw,
		})
	}

	if err := a.kv.Set(a.activeKey, activeRaw); err != nil {
		return fmt.Errorf("save %s: %w", a.activeKey, err)
	}
	if err := a.kv.Set(a.completedKey, completedRaw); err != nil {
		return fmt.Errorf("save %s: %w", a.completedKey, err)
	}
	return nil
}

// Close closes the underlying backend.
func (a *KVAdapter) Close() error {
	return a.kv.Close()
}
