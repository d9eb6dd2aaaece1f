//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"group-chat/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during supervision, so workers don't carry a name field.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink consumes committed domain events (broadcast, search index, logs).
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IPublisher hands events to the asynchronous delivery pipeline.
// Publish never blocks the caller and never fails the action that emitted the event.
type IPublisher interface {
	Publish(e event.DomainEvent)
}

type IRegistry interface {
	SinksFor(groupID string) []EventSink
	Subscribe(name string, sink EventSink, groupIDs ...string)
	Unsubscribe(name string)
}

// Clock returns the current instant. Injected so tests can control time.
type Clock func() time.Time
