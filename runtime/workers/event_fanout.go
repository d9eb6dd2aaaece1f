package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"group-chat/contract"
	"group-chat/domain/event"
	"group-chat/observability"
)

// EventFanout delivers committed domain events to the sinks registered for
// their group (broadcast, search index, logs).
//
// Delivery is best effort: no retries, no durability. A failing or slow sink
// is logged and skipped; it never affects the action that produced the event
// nor the other sinks. Each Consume call is bounded by sinkTimeout.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.DomainEvent
	registry    contract.IRegistry
	metrics     *observability.Metrics
	sinkTimeout time.Duration
}

func NewEventFanout(
	log *slog.Logger,
	events <-chan event.DomainEvent,
	registry contract.IRegistry,
	metrics *observability.Metrics,
	sinkTimeout time.Duration,
) *EventFanout {
	return &EventFanout{log: log, events: events, registry: registry, metrics: metrics, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout hands one event to every sink subscribed to its group, in order.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.registry.SinksFor(evt.GroupID()) {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		err := sink.Consume(sinkCtx, evt)
		cancel()
		if err != nil {
			name := fmt.Sprintf("%T", sink)
			w.metrics.SinkFailed(name)
			w.log.Warn("Sink failed to consume event", "sink", name, "kind", evt.Kind(), "group", evt.GroupID(), "error", err)
		}
	}
}
