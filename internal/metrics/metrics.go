// Package metrics holds the prometheus instrumentation: HTTP middleware and
// upstream fetch counters.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bvaapi",
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Upstream fetch duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"status"},
	)

	upstreamFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bvaapi",
			Name:      "upstream_fetches_total",
			Help:      "Total upstream fetches by status",
		},
		[]string{"status"},
	)

	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bvaapi",
			Name:      "searches_total",
			Help:      "Total search requests by result disposition",
		},
		[]string{"disposition"}, // ok, partial, error
	)
)

func init() {
	prometheus.MustRegister(upstreamFetchDuration)
	prometheus.MustRegister(upstreamFetchesTotal)
	prometheus.MustRegister(searchesTotal)
}

// ObserveFetch records one upstream fetch with its status label
// (an HTTP status code or "transport_error").
func ObserveFetch(status string, duration time.Duration) {
	upstreamFetchDuration.WithLabelValues(status).Observe(duration.Seconds())
	upstreamFetchesTotal.WithLabelValues(status).Inc()
}

// CountSearch records one completed search request.
func CountSearch(disposition string) {
	searchesTotal.WithLabelValues(disposition).Inc()
}
