package ingestors

import (
	"fabric-ledger/internal/shared/metrics"
)

var (
	metricLogBatchIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "log_batch_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricLogRecordsIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "log_records_ingested_total",
		},
		[]string{},
	)

	metricUsageSamplesIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "usage_samples_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
