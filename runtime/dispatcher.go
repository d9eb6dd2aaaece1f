package runtime

import (
	"log/slog"

	"group-chat/domain/event"
	"group-chat/observability"
)

// Dispatcher is the in-process hand-off between committed actions and the
// event fanout. Publish never blocks: when the buffer is full the event is
// dropped and counted, since delivery is best effort and must not slow or
// fail the action that produced it.
type Dispatcher struct {
	events  chan event.DomainEvent
	metrics *observability.Metrics
	log     *slog.Logger
}

func NewDispatcher(bufferSize int, metrics *observability.Metrics, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		events:  make(chan event.DomainEvent, bufferSize),
		metrics: metrics,
		log:     log,
	}
}

func (d *Dispatcher) Publish(e event.DomainEvent) {
	select {
	case d.events <- e:
		d.metrics.EventPublished(e.Kind())
	default:
		d.metrics.EventDropped(e.Kind())
		d.log.Warn("Event buffer full, event dropped", "kind", e.Kind(), "group", e.GroupID())
	}
}

func (d *Dispatcher) Events() <-chan event.DomainEvent {
	return d.events
}

// Len and Cap let the queue sampler report how close the buffer is to dropping.
func (d *Dispatcher) Len() int { return len(d.events) }

func (d *Dispatcher) Cap() int { return cap(d.events) }
