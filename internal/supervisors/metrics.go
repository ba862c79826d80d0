package supervisors

import (
	"fabric-ledger/internal/shared/metrics"
)

var (
	metricBatchesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSupervisor,
			Name:      "batches_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricBatchDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSupervisor,
			Name:      "batch_duration_seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{},
	)

	metricInvocationFailuresTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSupervisor,
			Name:      "invocation_failures_total",
		},
		[]string{"function"},
	)
)
