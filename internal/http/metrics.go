package http

import (
	"fabric-ledger/internal/shared/metrics"
)

var httpLabels = []string{"method", "route", "status", metrics.FieldErrorCode}

var (
	metricHTTPRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
			Help:      "HTTP requests served, by route pattern and outcome.",
		},
		httpLabels,
	)

	metricHTTPRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			// POST /batches waits for a whole observation window
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		httpLabels,
	)

	metricHTTPRequestsInFlight = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_in_flight",
		},
		[]string{"method"},
	)
)
