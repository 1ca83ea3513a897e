package store

import "sync"

// MemoryStore is a process-local BatchKV. It backs tests and the "memory" backend.
type MemoryStore struct {
	mu         sync.RWMutex
	values     map[string][]byte
	failWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	return s.SetMany(map[string][]byte{key: value})
}

func (s *MemoryStore) SetMany(values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites != nil {
		return s.failWrites
	}
	for k, v := range values {
		cp := make([]byte, len(v))
		copy(cp, v)
		s.values[k] = cp
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// FailWrites makes every subsequent write return err. Pass nil to recover.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = err
}
