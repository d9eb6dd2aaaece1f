package observability

import (
	"net/http"
	"time"

	"group-chat/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of one running server. Each instance owns
// its registry so tests can build as many as they need.
// All methods are safe on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	// decisions counts every gated action by outcome code (OK, NOT_ADMIN, ...)
	decisions *prometheus.CounterVec
	// decisionDuration tracks the latency of gated actions including storage
	decisionDuration *prometheus.HistogramVec
	eventsPublished  *prometheus.CounterVec
	eventsDropped    *prometheus.CounterVec
	sinkFailures     *prometheus.CounterVec
	queueLength      *prometheus.GaugeVec
	queueCapacity    *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupchat_decisions_total",
			Help: "Gated actions by action and outcome code",
		}, []string{"action", "outcome"}),
		decisionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "groupchat_decision_duration_seconds",
			Help:    "Gated action duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"action"}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupchat_events_published_total",
			Help: "Domain events handed to the delivery pipeline",
		}, []string{"kind"}),
		eventsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupchat_events_dropped_total",
			Help: "Domain events dropped because the delivery buffer was full",
		}, []string{"kind"}),
		sinkFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "groupchat_sink_failures_total",
			Help: "Event sink deliveries that returned an error",
		}, []string{"sink"}),
		queueLength: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "groupchat_queue_length",
			Help: "Buffered items waiting in an internal queue",
		}, []string{"queue"}),
		queueCapacity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "groupchat_queue_capacity",
			Help: "Capacity of an internal queue",
		}, []string{"queue"}),
	}
}

// ObserveDecision records the outcome of action. Call it with the final error.
func (m *Metrics) ObserveDecision(action string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(action, errors.Code(err)).Inc()
	m.decisionDuration.WithLabelValues(action).Observe(time.Since(started).Seconds())
}

func (m *Metrics) EventPublished(kind string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(kind).Inc()
}

func (m *Metrics) EventDropped(kind string) {
	if m == nil {
		return
	}
	m.eventsDropped.WithLabelValues(kind).Inc()
}

func (m *Metrics) SinkFailed(sink string) {
	if m == nil {
		return
	}
	m.sinkFailures.WithLabelValues(sink).Inc()
}

func (m *Metrics) QueueSampled(queue string, length, capacity int) {
	if m == nil {
		return
	}
	m.queueLength.WithLabelValues(queue).Set(float64(length))
	m.queueCapacity.WithLabelValues(queue).Set(float64(capacity))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
