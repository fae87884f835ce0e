package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/reshetovitsme/feed-announcer/internal/di"
	relayService "github.com/reshetovitsme/feed-announcer/internal/modules/relay/service"
	"github.com/reshetovitsme/feed-announcer/internal/shared/config"
	httpServer "github.com/reshetovitsme/feed-announcer/internal/transport/http"
	telegramTransport "github.com/reshetovitsme/feed-announcer/internal/transport/telegram"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	// Human readable logs on stdout, errors also as JSON on stderr
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	multiHandler := slogmulti.Fanout(textHandler, jsonHandler)
	logger := slog.New(multiHandler)
	slog.SetDefault(logger)

	injector, err := di.Setup()
	if err != nil {
		slog.Error("Invalid configuration. Set TELEGRAM_BOT_TOKEN and CHAT_ID in your environment or config file", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := do.MustInvoke[*config.Config](injector)
	session := do.MustInvoke[*telegramTransport.Session](injector)
	relay := do.MustInvoke[*relayService.Service](injector)
	server := do.MustInvoke[*httpServer.Server](injector)

	// Long polling and the login check
	go session.Run(ctx)

	// The relay waits for the session to be ready before its first cycle
	go relay.Start(ctx)

	if server.Enabled() {
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("Failed to start HTTP server", "error", err)
				cancel()
			}
		}()
	}

	slog.Info("Application started", "feed_url", cfg.FeedURL, "chat_id", cfg.ChatID, "port", cfg.HTTPPort, "env", cfg.AppEnv)
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")
}
