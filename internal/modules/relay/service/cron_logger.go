package service

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes scheduler messages through slog. Info messages are
// demoted to debug since cron logs every wake-up.
type cronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
