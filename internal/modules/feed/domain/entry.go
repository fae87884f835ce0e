package domain

import "time"

// Entry is one item read from the polled feed
type Entry struct {
	ID        string     `json:"id"`
	Link      string     `json:"link"`
	Title     string     `json:"title"`
	Published *time.Time `json:"published,omitempty"`
}

// Key identifies the entry for deduplication. Feeds without a native
// identifier fall back to the link.
func (e Entry) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Link
}
