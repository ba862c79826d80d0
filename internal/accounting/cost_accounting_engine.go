package accounting

import (
	"context"
	"io"
	"sync"

	"fabric-ledger/internal/aggregators"
	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/shared/svcerrors"
)

// CostAccountingEngine prices aggregated usage into cost reports.
//
//go:generate mockgen -source=cost_accounting_engine.go -destination=./mocks/cost_accounting_engine_mock.go -package=mocks
type CostAccountingEngine interface {
	// GenerateReport builds a report from the current aggregates. Two calls with no
	// folds in between return identical reports.
	GenerateReport(ctx context.Context) (*models.CostReport, error)
	// Find returns a line item of the latest generated report, generating one first
	// when none exists yet.
	Find(ctx context.Context, name string) (models.CostLineItem, error)
	// Serialize writes a freshly generated report as a CSV table.
	Serialize(ctx context.Context, w io.Writer) error
}

type costAccountingEngine struct {
	catalog    catalogs.MetricCatalog
	aggregator aggregators.UsageAggregator

	mu     sync.Mutex
	latest *models.CostReport
}

func NewCostAccountingEngine(catalog catalogs.MetricCatalog, aggregator aggregators.UsageAggregator) CostAccountingEngine {
	return &costAccountingEngine{catalog: catalog, aggregator: aggregator}
}

func (e *costAccountingEngine) GenerateReport(ctx context.Context) (*models.CostReport, error) {
	report := &models.CostReport{LineItems: []models.CostLineItem{}}

	for _, def := range e.catalog.List() {
		agg, err := e.aggregator.Snapshot(def.Name)
		if err != nil {
			e.countReport(err)
			return nil, err
		}
		if agg.SampleCount == 0 {
			continue
		}
		// measured is total consumption, not the mean
		report.Append(models.NewCostLineItem(def, agg.Sum))
	}

	for _, item := range report.LineItems {
		metricLineItemCost.WithLabelValues(item.Name).Set(item.Cost)
	}
	metricReportTotalCost.WithLabelValues().Set(report.Total)
	e.countReport(nil)

	e.mu.Lock()
	e.latest = cloneReport(report)
	e.mu.Unlock()

	loggers.Ctx(ctx).Debug().
		Int("line_items", len(report.LineItems)).
		Float64("total", report.Total).
		Msg("generated cost report")
	return report, nil
}

func (e *costAccountingEngine) Find(ctx context.Context, name string) (models.CostLineItem, error) {
	e.mu.Lock()
	latest := e.latest
	e.mu.Unlock()

	if latest == nil {
		report, err := e.GenerateReport(ctx)
		if err != nil {
			return models.CostLineItem{}, err
		}
		latest = report
	}

	item, err := latest.Find(name)
	if err != nil {
		return models.CostLineItem{}, errLineItemNotFound(name)
	}
	return item, nil
}

func (e *costAccountingEngine) Serialize(ctx context.Context, w io.Writer) error {
	report, err := e.GenerateReport(ctx)
	if err != nil {
		return err
	}
	return SerializeReport(w, report)
}

func (e *costAccountingEngine) countReport(err error) {
	code := metrics.ValueNoError
	if err != nil {
		code = svcerrors.NewInternalErrorUndefined(err).Code
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
	}
	metricReportsGeneratedTotal.WithLabelValues(code).Inc()
}

func cloneReport(r *models.CostReport) *models.CostReport {
	out := &models.CostReport{Total: r.Total, LineItems: make([]models.CostLineItem, len(r.LineItems))}
	copy(out.LineItems, r.LineItems)
	return out
}
