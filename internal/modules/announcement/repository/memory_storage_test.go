package repository

import (
	"fmt"
	"testing"

	"github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryStorage_InvalidCapacity(t *testing.T) {
	_, err := NewMemoryStorage(0)
	assert.Error(t, err)
}

func TestMemoryStorage_GetRecent_Empty(t *testing.T) {
	s, err := NewMemoryStorage(3)
	require.NoError(t, err)

	got, err := s.GetRecent(10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, s.Count())
}

func TestMemoryStorage_RingOverwritesOldest(t *testing.T) {
	s, err := NewMemoryStorage(3)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.SaveAnnouncement(&domain.Announcement{EntryKey: fmt.Sprintf("e%d", i)}))
	}

	got, err := s.GetRecent(0)
	require.NoError(t, err)
	keys := make([]string, 0, len(got))
	for _, a := range got {
		keys = append(keys, a.EntryKey)
	}
	assert.Equal(t, []string{"e5", "e4", "e3"}, keys)
	assert.Equal(t, 5, s.Count())
}

func TestMemoryStorage_GetRecent_Limit(t *testing.T) {
	s, err := NewMemoryStorage(10)
	require.NoError(t, err)
	for i := 1; i <= 4; i++ {
		require.NoError(t, s.SaveAnnouncement(&domain.Announcement{EntryKey: fmt.Sprintf("e%d", i)}))
	}

	got, err := s.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e4", got[0].EntryKey)
	assert.Equal(t, "e3", got[1].EntryKey)
}

func TestMemoryStorage_SaveCopies(t *testing.T) {
	s, err := NewMemoryStorage(2)
	require.NoError(t, err)

	a := &domain.Announcement{EntryKey: "original"}
	require.NoError(t, s.SaveAnnouncement(a))
	a.EntryKey = "mutated"

	got, err := s.GetRecent(1)
	require.NoError(t, err)
	assert.Equal(t, "original", got[0].EntryKey)
}

func TestMemoryStorage_SaveNil(t *testing.T) {
	s, err := NewMemoryStorage(2)
	require.NoError(t, err)
	assert.Error(t, s.SaveAnnouncement(nil))
}

var _ Repository = (*MemoryStorage)(nil)
