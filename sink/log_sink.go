package sink

import (
	"context"
	"log/slog"

	"group-chat/domain/event"
)

// LogSink writes an audit line per domain event.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (l LogSink) Consume(ctx context.Context, e event.DomainEvent) error {
	l.log.LogAttrs(ctx, slog.LevelDebug, "Domain event",
		slog.String("kind", e.Kind()),
		slog.String("group", e.GroupID()),
	)
	return nil
}
