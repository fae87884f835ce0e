package service

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
	"github.com/reshetovitsme/feed-announcer/internal/modules/announcement/repository"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const feedItemLimit = 50

// Service records delivered announcements and republishes them as RSS
type Service struct {
	repo      repository.Repository
	sourceURL string
	now       func() time.Time
}

// New creates a new announcement service
func New(repo repository.Repository, sourceURL string) *Service {
	return &Service{
		repo:      repo,
		sourceURL: sourceURL,
		now:       time.Now,
	}
}

// Record stores a delivered announcement
func (s *Service) Record(a *domain.Announcement) error {
	if a.SentAt.IsZero() {
		a.SentAt = s.now()
	}
	if err := s.repo.SaveAnnouncement(a); err != nil {
		return oops.With("entry_key", a.EntryKey, "context", "failed to save announcement").Wrap(err)
	}
	return nil
}

// Recent returns the latest announcements, newest first
func (s *Service) Recent(limit int) ([]*domain.Announcement, error) {
	return s.repo.GetRecent(limit)
}

// Total returns the number of announcements recorded since start
func (s *Service) Total() int {
	return s.repo.Count()
}

// GenerateFeed builds an RSS feed of the most recent announcements
func (s *Service) GenerateFeed(baseURL string) (*feeds.Feed, error) {
	recent, err := s.repo.GetRecent(feedItemLimit)
	if err != nil {
		return nil, oops.With("context", "failed to get announcements").Wrap(err)
	}

	updated := s.now()
	if len(recent) > 0 {
		updated = recent[0].SentAt
	}

	feed := &feeds.Feed{
		Title:       "Announced entries",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/rss", baseURL)},
		Description: fmt.Sprintf("Entries from %s relayed to Telegram", s.sourceURL),
		Created:     updated,
		Updated:     updated,
	}

	feed.Items = lo.Map(recent, func(a *domain.Announcement, _ int) *feeds.Item {
		return announcementToFeedItem(a)
	})
	return feed, nil
}

func announcementToFeedItem(a *domain.Announcement) *feeds.Item {
	title := a.Title
	if title == "" {
		title = a.Link
	}
	return &feeds.Item{
		Title:       truncate(title, 100),
		Link:        &feeds.Link{Href: a.Link},
		Description: fmt.Sprintf("Sent to chat %d", a.ChannelID),
		Created:     a.SentAt,
		Id:          a.EntryKey,
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
