package workers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"group-chat/contract"
	"group-chat/domain/event"
	"group-chat/mocks"
	"group-chat/observability"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Fanout_DeliversToEverySink(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)
	evt := event.MemberRemoved{Group: "g1", UserID: "u1"}

	// Given two sinks registered for g1
	registry.EXPECT().SinksFor("g1").Return([]contract.EventSink{first, second})
	// Then each consumes the event once, even when the first fails
	first.EXPECT().Consume(gomock.Any(), evt).Return(errors.New("redis down"))
	second.EXPECT().Consume(gomock.Any(), evt).Return(nil)

	fanout := NewEventFanout(log, nil, registry, observability.NewMetrics(), time.Second)
	fanout.Fanout(context.Background(), evt)
}

func TestEventFanout_Fanout_BoundsSlowSinks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	slow := mocks.NewMockEventSink(ctrl)

	registry.EXPECT().SinksFor("g1").Return([]contract.EventSink{slow})
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ event.DomainEvent) error {
		<-ctx.Done()
		return ctx.Err()
	})

	fanout := NewEventFanout(log, nil, registry, observability.NewMetrics(), 50*time.Millisecond)
	started := time.Now()
	fanout.Fanout(context.Background(), event.MemberRemoved{Group: "g1"})

	req.Less(time.Since(started), time.Second)
}

func TestEventFanout_Run_ConsumesUntilCanceled(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)
	sink := mocks.NewMockEventSink(ctrl)
	events := make(chan event.DomainEvent, 1)
	consumed := make(chan struct{})

	registry.EXPECT().SinksFor("g1").Return([]contract.EventSink{sink})
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, event.DomainEvent) error {
		close(consumed)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- NewEventFanout(log, events, registry, nil, time.Second).Run(ctx) }()

	events <- event.MessageDeleted{Group: "g1", MessageID: "m1"}
	<-consumed
	cancel()

	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("fanout should stop on cancel")
	}
}
