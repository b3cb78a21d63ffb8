package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the disclosure read side.
type Metrics struct {
	// Query latency by endpoint
	QueryLatency *prometheus.HistogramVec

	// Query outcomes by endpoint and result
	QueryOutcome *prometheus.CounterVec
}

// New creates a Metrics instance with all read-side metrics registered.
func New() *Metrics {
	return &Metrics{
		QueryLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creditlines_disclosure_query_duration_seconds",
			Help:    "Duration of disclosure read-side queries by endpoint",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"endpoint"}),

		QueryOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "creditlines_disclosure_query_outcomes_total",
			Help: "Total disclosure query outcomes by endpoint and result",
		}, []string{"endpoint", "result"}), // result: "ok", "not_found", "error"
	}
}

// ObserveQuery records one query's latency and outcome.
func (m *Metrics) ObserveQuery(endpoint, result string, d time.Duration) {
	if m != nil {
		m.QueryLatency.WithLabelValues(endpoint).Observe(d.Seconds())
		m.QueryOutcome.WithLabelValues(endpoint, result).Inc()
	}
}
