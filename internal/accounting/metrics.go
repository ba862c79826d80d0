package accounting

import (
	"fabric-ledger/internal/shared/metrics"
)

var (
	metricReportsGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAccounting,
			Name:      "reports_generated_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricLineItemCost is the cost of each metric in the most recently generated report.
	metricLineItemCost = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAccounting,
			Name:      "line_item_cost",
		},
		[]string{metrics.FieldMetric},
	)

	metricReportTotalCost = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAccounting,
			Name:      "report_total_cost",
		},
		[]string{},
	)
)
