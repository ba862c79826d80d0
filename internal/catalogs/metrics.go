package catalogs

import (
	"fabric-ledger/internal/shared/metrics"
)

var (
	metricRegisteredTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCatalog,
			Name:      "metric_registered_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
