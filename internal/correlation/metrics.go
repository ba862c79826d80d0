package correlation

import (
	"fabric-ledger/internal/shared/metrics"
)

const (
	recordMatched   = "matched"
	recordUnmatched = "unmatched"
	recordDuplicate = "duplicate"
	recordAnomaly   = "anomaly"
	recordStale     = "stale"
)

var (
	// metricRecordsTotal counts handled log records by what the engine did with them.
	metricRecordsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCorrelation,
			Name:      "records_total",
		},
		[]string{metrics.FieldOutcome},
	)

	metricWindowsClosedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCorrelation,
			Name:      "windows_closed_total",
		},
		[]string{metrics.FieldOutcome},
	)

	metricWindowDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCorrelation,
			Name:      "window_duration_seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{metrics.FieldOutcome},
	)
)
