// Package metrics holds the Prometheus collectors shared by the summary
// service and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SummaryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayzen_summary_requests_total",
			Help: "Summary computations by pipeline and outcome",
		},
		[]string{"pipeline", "outcome"}, // ok, fallback, source_error, unauthenticated, invalid_selector, abandoned
	)

	SummaryFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayzen_summary_fallback_total",
			Help: "Summaries served from synthetic records after a source failure",
		},
		[]string{"pipeline"},
	)

	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dayzen_source_fetch_seconds",
			Help:    "Duration of record fetches",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"pipeline"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayzen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dayzen_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dayzen_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)
)

// TrackFetch starts a timer for a record fetch of the given pipeline.
func TrackFetch(pipeline string) *prometheus.Timer {
	return prometheus.NewTimer(SourceFetchDuration.WithLabelValues(pipeline))
}
