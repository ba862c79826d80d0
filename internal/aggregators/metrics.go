package aggregators

import (
	"fabric-ledger/internal/shared/metrics"
)

var (
	// metricSamplesFoldedTotal counts samples folded into an aggregate, by metric.
	// Merged batches count every sample they carry.
	metricSamplesFoldedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "samples_folded_total",
		},
		[]string{metrics.FieldMetric},
	)

	metricFoldRejectedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "fold_rejected_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricCollectedSnapshotsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "collected_snapshots_total",
		},
		[]string{metrics.FieldOutcome},
	)
)
