package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"group-chat/contract"
	"group-chat/domain/event"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher is the part of *redis.Client the broadcaster needs.
type RedisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Envelope is what real-time subscribers receive on "group:{id}".
type Envelope struct {
	Type    string            `json:"type"`
	GroupID string            `json:"groupId"`
	At      time.Time         `json:"at"`
	Payload event.DomainEvent `json:"payload"`
}

// RedisSink publishes every event to the pub/sub channel of its group.
// Push delivery to connected clients happens outside this service.
type RedisSink struct {
	client RedisPublisher
	clock  contract.Clock
	log    *slog.Logger
}

func NewRedisSink(client RedisPublisher, clock contract.Clock, log *slog.Logger) RedisSink {
	return RedisSink{client: client, clock: clock, log: log}
}

func ChannelFor(groupID string) string {
	return "group:" + groupID
}

func (r RedisSink) Consume(ctx context.Context, e event.DomainEvent) error {
	payload, err := json.Marshal(Envelope{Type: e.Kind(), GroupID: e.GroupID(), At: r.clock(), Payload: e})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", e.Kind(), err)
	}
	receivers, err := r.client.Publish(ctx, ChannelFor(e.GroupID()), payload).Result()
	if err != nil {
		return fmt.Errorf("publishing %s: %w", e.Kind(), err)
	}
	r.log.Debug("Event broadcast", "kind", e.Kind(), "group", e.GroupID(), "receivers", receivers)
	return nil
}
