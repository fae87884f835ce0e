package domain

// Channel is the resolved Telegram chat that announcements are sent to
type Channel struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	Type     string `json:"type"`
}

// Name returns a human readable label for logs.
func (c *Channel) Name() string {
	switch {
	case c.Title != "":
		return c.Title
	case c.Username != "":
		return "@" + c.Username
	default:
		return ""
	}
}
