package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/feed-announcer/internal/modules/channel/domain"
	"github.com/reshetovitsme/feed-announcer/internal/shared/errors"
	"github.com/samber/oops"
)

const defaultReadyRetry = 5 * time.Second

// Session wraps the bot connection used for announcements. It signals
// readiness once the token has been accepted by Telegram.
type Session struct {
	bot        *bot.Bot
	ready      chan struct{}
	readyOnce  sync.Once
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewSession creates a session around an already constructed bot
func NewSession(b *bot.Bot) *Session {
	return &Session{
		bot:        b,
		ready:      make(chan struct{}),
		retryDelay: defaultReadyRetry,
		logger:     slog.Default(),
	}
}

// Ready is closed after the first successful login.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Run starts long polling for updates and the login check. It returns
// once the session is ready or ctx is done; polling keeps running until
// ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	go s.bot.Start(ctx)
	s.awaitReady(ctx)
}

func (s *Session) awaitReady(ctx context.Context) {
	for {
		me, err := s.bot.GetMe(ctx)
		if err == nil {
			s.logger.Info("Logged in", "username", me.Username, "id", me.ID)
			s.readyOnce.Do(func() { close(s.ready) })
			return
		}

		s.logger.Warn("Telegram login check failed, retrying", "retry_in", s.retryDelay, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.retryDelay):
		}
	}
}

// ResolveChannel looks up the destination chat. Any failure is reported
// as errors.ErrChannelNotFound.
func (s *Session) ResolveChannel(ctx context.Context, chatID int64) (*domain.Channel, error) {
	chat, err := s.bot.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
	if err != nil {
		return nil, oops.
			Code("channel_not_found").
			With("chat_id", chatID).
			Wrap(fmt.Errorf("%w: %w", errors.ErrChannelNotFound, err))
	}

	return &domain.Channel{
		ID:       chat.ID,
		Title:    chat.Title,
		Username: chat.Username,
		Type:     string(chat.Type),
	}, nil
}

// Send posts text to the channel as a plain message.
func (s *Session) Send(ctx context.Context, channel *domain.Channel, text string) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: channel.ID,
		Text:   text,
	})
	if err != nil {
		return oops.
			Code("delivery_failed").
			With("chat_id", channel.ID).
			Wrap(fmt.Errorf("%w: %w", errors.ErrDelivery, err))
	}
	return nil
}
