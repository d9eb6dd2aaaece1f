package workers

import (
	"context"
	"log/slog"
	"time"

	"group-chat/observability"
)

// Queue is any bounded buffer that can report its fill level.
type Queue interface {
	Len() int
	Cap() int
}

type NamedQueue struct {
	Name  string
	Queue Queue
}

// ChannelCapacityWorker periodically samples the length and capacity of the
// internal queues. Reading them never blocks the producers or consumers.
// Above warnRatio a warning is logged, as drops are about to start.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	queues         []NamedQueue
	metrics        *observability.Metrics
	metricInterval time.Duration
	warnRatio      float64
}

func NewChannelCapacityWorker(log *slog.Logger, queues []NamedQueue, metrics *observability.Metrics, metricInterval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:            log,
		queues:         queues,
		metrics:        metrics,
		metricInterval: metricInterval,
		warnRatio:      0.8,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping queue sampling")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

func (w *ChannelCapacityWorker) Sample() {
	for _, nq := range w.queues {
		length, capacity := nq.Queue.Len(), nq.Queue.Cap()
		w.metrics.QueueSampled(nq.Name, length, capacity)
		if capacity > 0 && float64(length) >= w.warnRatio*float64(capacity) {
			w.log.Warn("Queue almost full", "name", nq.Name, "length", length, "capacity", capacity)
		}
	}
}
