package streams

import (
	"fabric-ledger/internal/shared/metrics"
)

var (
	streamLogRecord = "log_record"

	metricLogRecordPublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "log_record_published_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricLogRecordDeliveredTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "log_record_delivered_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)

	metricSubscribers = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "subscribers",
		},
		[]string{"stream_id"},
	)
)
