package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/events"
)

// publisher emits domain events without letting a failing subscriber fail the
// use case that triggered them.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("aggregate_id", event.AggregateID),
			zap.Error(err))
	}
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
