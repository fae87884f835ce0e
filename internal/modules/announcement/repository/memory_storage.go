package repository

import (
	"sync"

	"github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
	"github.com/samber/oops"
)

// MemoryStorage implements Repository as a fixed-size ring buffer.
// Once full, saving overwrites the oldest announcement.
type MemoryStorage struct {
	mu    sync.RWMutex
	items []*domain.Announcement
	next  int
	size  int
	total int
}

// NewMemoryStorage creates a history that holds at most capacity announcements
func NewMemoryStorage(capacity int) (*MemoryStorage, error) {
	if capacity <= 0 {
		return nil, oops.With("capacity", capacity).Errorf("history capacity must be positive")
	}
	return &MemoryStorage{items: make([]*domain.Announcement, capacity)}, nil
}

func (s *MemoryStorage) SaveAnnouncement(a *domain.Announcement) error {
	if a == nil {
		return oops.Errorf("announcement is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *a
	s.items[s.next] = &cp
	s.next = (s.next + 1) % len(s.items)
	if s.size < len(s.items) {
		s.size++
	}
	s.total++
	return nil
}

func (s *MemoryStorage) GetRecent(limit int) ([]*domain.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > s.size {
		limit = s.size
	}

	out := make([]*domain.Announcement, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + len(s.items)) % len(s.items)
		cp := *s.items[idx]
		out = append(out, &cp)
	}
	return out, nil
}

// Count returns how many announcements were saved over the process lifetime.
func (s *MemoryStorage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.total
}
