package fabric

import (
	"fabric-ledger/internal/shared/metrics"
)

var (
	metricInvocationsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFabric,
			Name:      "invocations_total",
		},
		[]string{"function", metrics.FieldErrorCode},
	)

	metricInvocationDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFabric,
			Name:      "invocation_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"function"},
	)

	// metricLogRecordsEmittedTotal counts records handed to the attached sink,
	// redelivered copies included.
	metricLogRecordsEmittedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFabric,
			Name:      "log_records_emitted_total",
		},
		[]string{"delivery"},
	)
)
