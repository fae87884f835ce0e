package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	announcementDomain "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/domain"
	announcementService "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/service"
	relayDomain "github.com/reshetovitsme/feed-announcer/internal/modules/relay/domain"
	"github.com/reshetovitsme/feed-announcer/internal/shared/config"
	"github.com/samber/lo"
)

const recentInStatus = 5

// Handler answers operator commands sent to the bot
type Handler struct {
	cfg           *config.Config
	status        *relayDomain.Status
	announcements *announcementService.Service
}

// New creates a new Telegram handler
func New(cfg *config.Config, status *relayDomain.Status, announcements *announcementService.Service) *Handler {
	return &Handler{
		cfg:           cfg,
		status:        status,
		announcements: announcements,
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, h.handleStatus)
}

// HandleUpdate receives every update no command matched. The relay only
// talks, so these are ignored.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message != nil {
		slog.Debug("Ignoring update", "chat_id", update.Message.Chat.ID, "message_id", update.Message.ID)
	}
}

func (h *Handler) checkAuthorization(userID int64) bool {
	return isAuthorized(userID, h.cfg.AllowedUsers)
}

// isAuthorized allows everyone when no users are configured
func isAuthorized(userID int64, allowedUsers []int64) bool {
	if len(allowedUsers) == 0 {
		return true
	}
	return lo.Contains(allowedUsers, userID)
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := fmt.Sprintf(`👋 Feed announcer

I post every new entry of %s to chat %d.

Available commands:
/help - Show this help message
/status - Show relay status`, h.cfg.FeedURL, h.cfg.ChatID)

	h.reply(ctx, b, update, text)
}

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.From == nil || !h.checkAuthorization(update.Message.From.ID) {
		h.reply(ctx, b, update, "❌ Unauthorized")
		return
	}

	recent, err := h.announcements.Recent(recentInStatus)
	if err != nil {
		h.reply(ctx, b, update, fmt.Sprintf("❌ Failed to get status: %v", err))
		return
	}

	h.reply(ctx, b, update, formatStatus(h.cfg, h.status.Snapshot(), recent))
}

func (h *Handler) reply(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	}); err != nil {
		slog.Error("Failed to reply to command", "chat_id", update.Message.Chat.ID, "error", err)
	}
}

func formatStatus(cfg *config.Config, snap relayDomain.Snapshot, recent []*announcementDomain.Announcement) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 Relay Status:\n\n")
	fmt.Fprintf(&sb, "Feed: %s\n", cfg.FeedURL)
	fmt.Fprintf(&sb, "Chat: %d\n", cfg.ChatID)
	fmt.Fprintf(&sb, "Poll Interval: %s\n", cfg.PollInterval)
	fmt.Fprintf(&sb, "Send Delay: %s\n", cfg.SendDelay)
	fmt.Fprintf(&sb, "Delivery Mode: %s\n", cfg.DeliveryMode)
	fmt.Fprintf(&sb, "State: %s\n", snap.State)
	fmt.Fprintf(&sb, "Cycles: %d (Skipped: %d)\n", snap.CyclesRun, snap.CyclesSkipped)
	fmt.Fprintf(&sb, "Announced: %d (Failed: %d)\n", snap.Announced, snap.DeliveryFailures)
	fmt.Fprintf(&sb, "Seen: %d\n", snap.Seen)

	if last := snap.LastCycle; last != nil {
		outcome := fmt.Sprintf("%d new, %d delivered, %d failed", last.New, last.Delivered, last.Failed)
		if last.Skipped() {
			outcome = "skipped (" + last.SkipReason + ")"
		}
		fmt.Fprintf(&sb, "Last Cycle: %s, %s\n", last.FinishedAt.Format(time.RFC3339), outcome)
	}

	if len(recent) > 0 {
		sb.WriteString("\nRecent:\n")
		for _, a := range recent {
			fmt.Fprintf(&sb, "- %s\n", a.Link)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
