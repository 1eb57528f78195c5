package newsapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder records provider call outcomes. Tests inject a no-op or fake.
type MetricsRecorder interface {
	RecordRequest(endpoint, status string, duration time.Duration)
	RecordRejected(endpoint string)
}

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsapi_requests_total",
			Help: "Total number of requests sent to the news provider",
		},
		[]string{"endpoint", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsapi_request_duration_seconds",
			Help:    "News provider request duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
)

// PrometheusMetrics implements MetricsRecorder with package-level collectors.
type PrometheusMetrics struct{}

// NewPrometheusMetrics returns the production recorder.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{}
}

// RecordRequest increments the request counter and observes the duration.
// status is the HTTP status code as text, or "error" for transport failures.
func (PrometheusMetrics) RecordRequest(endpoint, status string, duration time.Duration) {
	requestsTotal.WithLabelValues(endpoint, status).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordRejected counts a call the circuit breaker short-circuited. No request
// was sent, so no duration is observed.
func (PrometheusMetrics) RecordRejected(endpoint string) {
	requestsTotal.WithLabelValues(endpoint, "rejected").Inc()
}

type noopMetrics struct{}

func (noopMetrics) RecordRequest(string, string, time.Duration) {}
func (noopMetrics) RecordRejected(string) {}
