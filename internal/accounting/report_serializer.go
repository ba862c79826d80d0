package accounting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fabric-ledger/internal/models"
)

var reportHeader = []string{"name", "unit", "pricePerUnit", "measured", "cost"}

const totalRowName = "total"

// SerializeReport writes report as CSV: the header row, one row per line item and a
// trailing "total" row. Floats are written in their shortest exact form, so a parsed
// report is bit-identical to the serialized one.
//
// Example:
//
//	name,unit,pricePerUnit,measured,cost
//	requests,count,1e-06,1,1e-06
//	total,,,,1e-06
func SerializeReport(w io.Writer, report *models.CostReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return errReportSerializeFailed(err)
	}
	for _, item := range report.LineItems {
		row := []string{
			item.Name,
			item.Unit,
			formatFloat(item.PricePerUnit),
			formatFloat(item.Measured),
			formatFloat(item.Cost),
		}
		if err := cw.Write(row); err != nil {
			return errReportSerializeFailed(err)
		}
	}
	if err := cw.Write([]string{totalRowName, "", "", "", formatFloat(report.Total)}); err != nil {
		return errReportSerializeFailed(err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errReportSerializeFailed(err)
	}
	return nil
}

// ParseReport reads a report written by SerializeReport.
func ParseReport(r io.Reader) (*models.CostReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(reportHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errMalformedReport(err.Error())
	}
	if len(rows) < 2 {
		return nil, errMalformedReport("missing header or total row")
	}
	for i, col := range reportHeader {
		if rows[0][i] != col {
			return nil, errMalformedReport(fmt.Sprintf("unexpected header column %q", rows[0][i]))
		}
	}

	report := &models.CostReport{LineItems: []models.CostLineItem{}}
	for lineNo, row := range rows[1 : len(rows)-1] {
		var item models.CostLineItem
		item.Name, item.Unit = row[0], row[1]
		values := []*float64{&item.PricePerUnit, &item.Measured, &item.Cost}
		for i, dst := range values {
			v, err := strconv.ParseFloat(row[2+i], 64)
			if err != nil {
				return nil, errMalformedReport(fmt.Sprintf("line %d: %s: %v", lineNo+2, reportHeader[2+i], err))
			}
			*dst = v
		}
		report.LineItems = append(report.LineItems, item)
	}

	last := rows[len(rows)-1]
	if last[0] != totalRowName {
		return nil, errMalformedReport("missing total row")
	}
	total, err := strconv.ParseFloat(last[4], 64)
	if err != nil {
		return nil, errMalformedReport(fmt.Sprintf("total: %v", err))
	}
	report.Total = total
	return report, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
