package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	announcementRepo "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/repository"
	announcementService "github.com/reshetovitsme/feed-announcer/internal/modules/announcement/service"
	dedupRepo "github.com/reshetovitsme/feed-announcer/internal/modules/dedup/repository"
	feedService "github.com/reshetovitsme/feed-announcer/internal/modules/feed/service"
	relayDomain "github.com/reshetovitsme/feed-announcer/internal/modules/relay/domain"
	relayService "github.com/reshetovitsme/feed-announcer/internal/modules/relay/service"
	"github.com/reshetovitsme/feed-announcer/internal/shared/config"
	httpServer "github.com/reshetovitsme/feed-announcer/internal/transport/http"
	telegramTransport "github.com/reshetovitsme/feed-announcer/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

const shutdownTimeout = 10 * time.Second

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Dedup Store
	do.Provide(injector, func(i do.Injector) (dedupRepo.Repository, error) {
		return dedupRepo.NewMemoryStorage(), nil
	})

	// Register Announcement Repository
	do.Provide(injector, func(i do.Injector) (announcementRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := announcementRepo.NewMemoryStorage(cfg.HistorySize)
		if err != nil {
			return nil, oops.With("history_size", cfg.HistorySize, "context", "failed to initialize announcement repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Announcement Service
	do.Provide(injector, func(i do.Injector) (*announcementService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[announcementRepo.Repository](i)
		return announcementService.New(repo, cfg.FeedURL), nil
	})

	// Register Relay Status
	do.Provide(injector, func(i do.Injector) (*relayDomain.Status, error) {
		return relayDomain.NewStatus(), nil
	})

	// Register Feed Fetcher
	do.Provide(injector, func(i do.Injector) (*feedService.Fetcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return feedService.New(cfg.FetchTimeout), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramTransport.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		status := do.MustInvoke[*relayDomain.Status](i)
		announcements := do.MustInvoke[*announcementService.Service](i)
		return telegramTransport.New(cfg, status, announcements), nil
	})

	// Register Bot. Login is checked by the session, not here, so a
	// Telegram outage at startup does not stop the process.
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramTransport.Handler](i)

		opts := []bot.Option{
			bot.WithSkipGetMe(),
			bot.WithDefaultHandler(handler.HandleUpdate),
		}
		if cfg.TelegramAPIURL != "" {
			opts = append(opts, bot.WithServerURL(cfg.TelegramAPIURL))
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		handler.RegisterCommands(b)
		return b, nil
	})

	// Register Telegram Session
	do.Provide(injector, func(i do.Injector) (*telegramTransport.Session, error) {
		b := do.MustInvoke[*bot.Bot](i)
		return telegramTransport.NewSession(b), nil
	})

	// Register Relay Service
	do.Provide(injector, func(i do.Injector) (*relayService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		session := do.MustInvoke[*telegramTransport.Session](i)
		fetcher := do.MustInvoke[*feedService.Fetcher](i)
		store := do.MustInvoke[dedupRepo.Repository](i)
		announcements := do.MustInvoke[*announcementService.Service](i)
		status := do.MustInvoke[*relayDomain.Status](i)
		return relayService.New(cfg, session, fetcher, store, announcements, status), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		status := do.MustInvoke[*relayDomain.Status](i)
		announcements := do.MustInvoke[*announcementService.Service](i)
		server := httpServer.New(cfg, status, announcements)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Fail fast on configuration errors
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return nil, err
	}

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if relay, err := do.Invoke[*relayService.Service](injector); err == nil && relay != nil {
		relay.Stop()
	}

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			return oops.With("context", "failed to shut down http server").Wrap(err)
		}
	}

	return nil
}
