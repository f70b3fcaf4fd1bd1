// Package metrics exposes Prometheus instrumentation for the SDK's HTTP
// transport. All metrics are registered in the default Prometheus registry,
// so consumers that already serve /metrics pick them up automatically.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts API requests issued by the transport, by HTTP
	// method and response status. Transport failures (no response) are
	// recorded with status "error".
	//
	// Labels: method (GET, POST, ...), status (200, 401, error)
	// Type: Counter
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devigo_client_requests_total",
			Help: "Total number of API requests issued by the Devigo client",
		},
		[]string{"method", "status"},
	)

	// requestDuration measures end-to-end request time including the
	// transparent refresh-and-retry path.
	//
	// Labels: method
	// Type: Histogram
	// Buckets: Default Prometheus buckets (0.005s to 10s)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devigo_client_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// tokenRefreshesTotal counts silent access-token refresh attempts by
	// outcome. A rising "failure" rate means sessions are being forced out.
	//
	// Labels: outcome (success, failure)
	// Type: Counter
	tokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devigo_client_token_refreshes_total",
			Help: "Total number of silent token refresh attempts",
		},
		[]string{"outcome"},
	)
)

// ObserveRequest records one completed request round-trip.
func ObserveRequest(method string, status int, duration time.Duration) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveTransportFailure records a request that never produced a response.
func ObserveTransportFailure(method string, duration time.Duration) {
	requestsTotal.WithLabelValues(method, "error").Inc()
	requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveTokenRefresh records the outcome of one silent refresh attempt.
func ObserveTokenRefresh(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	tokenRefreshesTotal.WithLabelValues(outcome).Inc()
}
