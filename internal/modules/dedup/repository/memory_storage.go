package repository

import "sync"

// MemoryStorage implements Repository with an in-process set.
// Contents live for the lifetime of the process; there is no eviction.
type MemoryStorage struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewMemoryStorage creates an empty in-memory dedup store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{seen: make(map[string]struct{})}
}

func (s *MemoryStorage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.seen[key]
	return ok
}

func (s *MemoryStorage) Add(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen[key] = struct{}{}
}

// MarkIfNew checks and inserts under one lock so two callers can never both
// accept the same key.
func (s *MemoryStorage) MarkIfNew(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.seen)
}

// Keys returns a copy of the stored keys in no particular order.
func (s *MemoryStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.seen))
	for k := range s.seen {
		keys = append(keys, k)
	}
	return keys
}
