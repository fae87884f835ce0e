package errors

import "errors"

// Configuration errors. These are fatal at startup.
var (
	ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrMissingChatID   = errors.New("CHAT_ID environment variable is required")
	ErrInvalidChatID   = errors.New("CHAT_ID must be a non-zero integer chat identifier")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrMissingFeedURL  = errors.New("FEED_URL must not be empty")
)

// Runtime errors. None of these stop the process.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrFetch           = errors.New("feed fetch failed")
	ErrDelivery        = errors.New("message delivery failed")
	ErrUnauthorized    = errors.New("unauthorized user")
)
