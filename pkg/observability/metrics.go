// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the streamline service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StreamBuckets defines histogram buckets suited for paced streaming
// responses, ranging from 5ms to 5m.
var StreamBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60, 300}

var (
	// RequestsTotal counts all HTTP requests by method, status class, and route.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamline_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "route"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamline_request_duration_seconds",
			Help:    "Request duration",
			Buckets: StreamBuckets,
		},
		[]string{"method", "route"},
	)

	// StreamingConnections tracks the number of streams currently emitting.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "streamline_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// StreamChunksTotal counts lines flushed to streaming clients.
	StreamChunksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streamline_stream_chunks_total",
			Help: "Stream chunks flushed",
		},
	)

	// StreamsInterruptedTotal counts streams stopped by disconnect or cancellation.
	StreamsInterruptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streamline_streams_interrupted_total",
			Help: "Interrupted streams",
		},
	)

	// ExceptionsTotal counts failures seen by the exception handler by
	// status, failure kind, and outcome ("handled" or "declined").
	ExceptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamline_exceptions_total",
			Help: "Unhandled failures by outcome",
		},
		[]string{"status", "kind", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		StreamChunksTotal,
		StreamsInterruptedTotal,
		ExceptionsTotal,
	)
}

// Handler returns the Prometheus exposition handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
