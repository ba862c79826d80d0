package accounting

import (
	"fmt"

	"fabric-ledger/internal/models"
)

// VerifyReport recomputes every line item's cost and the report total and fails on
// the first mismatch. Both comparisons are exact.
func VerifyReport(report *models.CostReport) error {
	var total float64
	for i, item := range report.LineItems {
		if want := item.PricePerUnit * item.Measured; item.Cost != want {
			return errReportInvariantViolated(fmt.Sprintf(
				"line %d (%s): cost %v != pricePerUnit %v * measured %v",
				i, item.Name, item.Cost, item.PricePerUnit, item.Measured))
		}
		total += item.Cost
	}
	if report.Total != total {
		return errReportInvariantViolated(fmt.Sprintf("total %v != sum of line item costs %v", report.Total, total))
	}
	return nil
}
