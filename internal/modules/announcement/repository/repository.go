package repository

import (
	"github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
)

// Repository keeps recently delivered announcements
type Repository interface {
	SaveAnnouncement(a *domain.Announcement) error
	// GetRecent returns up to limit announcements, newest first.
	GetRecent(limit int) ([]*domain.Announcement, error)
	Count() int
}
