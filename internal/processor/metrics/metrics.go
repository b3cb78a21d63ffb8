package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for credit line event processing.
type Metrics struct {
	// Events fully processed, by message type and notification operation
	EventsProcessed *prometheus.CounterVec

	// End-to-end processing latency by message type
	ProcessLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all processor metrics registered.
func New() *Metrics {
	return &Metrics{
		EventsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "creditlines_events_processed_total",
			Help: "Total credit line events fully processed, by message type and operation",
		}, []string{"message_type", "operation"}),

		ProcessLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creditlines_event_process_duration_seconds",
			Help:    "Duration of full event reconciliation including collaborator calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"message_type"}),
	}
}

// IncrementProcessed records one fully processed event.
func (m *Metrics) IncrementProcessed(messageType, operation string) {
	if m != nil {
		m.EventsProcessed.WithLabelValues(messageType, operation).Inc()
	}
}

// ObserveProcessLatency records one event's reconciliation duration.
func (m *Metrics) ObserveProcessLatency(messageType string, d time.Duration) {
	if m != nil {
		m.ProcessLatency.WithLabelValues(messageType).Observe(d.Seconds())
	}
}
