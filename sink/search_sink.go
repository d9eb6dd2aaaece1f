package sink

import (
	"context"
	"log/slog"

	"group-chat/domain/event"
	"group-chat/repositories"
)

// SearchSink keeps the full-text index in step with the message store.
type SearchSink struct {
	index repositories.IMessageIndex
	log   *slog.Logger
}

func NewSearchSink(index repositories.IMessageIndex, log *slog.Logger) SearchSink {
	return SearchSink{index: index, log: log}
}

func (s SearchSink) Consume(ctx context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageSent:
		return s.index.Index(ctx, evt.Message)
	case event.MessageDeleted:
		return s.index.Remove(ctx, evt.MessageID)
	default:
		return nil
	}
}
