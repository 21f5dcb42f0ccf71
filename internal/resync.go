package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/starford/foliocal/internal/index"
)

// resyncer reconciles the index with the disk.
type resyncer interface {
	Resync(cb index.EventCallback) error
}

// cronLogger routes cron's own logging through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}

// runResync resyncs the vault on the given schedule until ctx is done. An
// empty schedule disables it.
func runResync(ctx context.Context, schedule string, v resyncer, logger *slog.Logger, cb index.EventCallback) error {
	if schedule == "" {
		return nil
	}
	c := cron.New(cron.WithLogger(cronLogger{logger}))
	if _, err := c.AddFunc(schedule, func() {
		if err := v.Resync(cb); err != nil {
			logger.Warn("resync failed", slog.String("error", err.Error()))
			return
		}
		logger.Debug("resync done")
	}); err != nil {
		return fmt.Errorf("resync schedule %q: %w", schedule, err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
