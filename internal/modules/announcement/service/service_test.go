package service

import (
	"testing"
	"time"

	"github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
	"github.com/reshetovitsme/feed-announcer/internal/modules/announcement/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := repository.NewMemoryStorage(10)
	require.NoError(t, err)
	s := New(repo, "https://example.com/feed")
	s.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Record_SetsSentAt(t *testing.T) {
	s := newTestService(t)

	require.NoError(t, s.Record(&domain.Announcement{EntryKey: "a", Link: "https://example.com/a"}))

	recent, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), recent[0].SentAt)
	assert.Equal(t, 1, s.Total())
}

func TestService_GenerateFeed(t *testing.T) {
	s := newTestService(t)
	sent := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.Record(&domain.Announcement{EntryKey: "a", Link: "https://example.com/a", Title: "First", ChannelID: 42, SentAt: sent}))
	require.NoError(t, s.Record(&domain.Announcement{EntryKey: "b", Link: "https://example.com/b", ChannelID: 42, SentAt: sent.Add(time.Minute)}))

	feed, err := s.GenerateFeed("http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/rss", feed.Link.Href)
	assert.Equal(t, sent.Add(time.Minute), feed.Updated)
	require.Len(t, feed.Items, 2)

	// Newest first; untitled items use the link as title
	assert.Equal(t, "b", feed.Items[0].Id)
	assert.Equal(t, "https://example.com/b", feed.Items[0].Title)
	assert.Equal(t, "First", feed.Items[1].Title)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "https://example.com/a")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
