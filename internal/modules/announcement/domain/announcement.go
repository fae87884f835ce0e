package domain

import "time"

// Announcement records one entry that was delivered to the channel
type Announcement struct {
	EntryKey  string    `json:"entry_key"`
	Link      string    `json:"link"`
	Title     string    `json:"title"`
	ChannelID int64     `json:"channel_id"`
	SentAt    time.Time `json:"sent_at"`
}
