package aggregators

import (
	"context"
	"math"
	"sync"

	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/svcerrors"
)

// UsageAggregator folds usage samples into per-metric running statistics.
// Folds for different metrics never contend; folds for the same metric are applied
// one at a time, so each aggregate is linearizable.
//
//go:generate mockgen -source=usage_aggregator.go -destination=./mocks/usage_aggregator_mock.go -package=mocks
type UsageAggregator interface {
	Fold(ctx context.Context, sample models.UsageSample) error
	// Merge folds a pre-aggregated batch of samples in a single step.
	Merge(ctx context.Context, metricName string, stats models.UsageStats) error
	// Snapshot returns a copy of the current aggregate. A registered metric that has
	// never been folded yields a zero aggregate.
	Snapshot(metricName string) (models.MetricAggregate, error)
}

type aggregateCell struct {
	mu  sync.Mutex
	agg models.MetricAggregate
}

type usageAggregator struct {
	catalog catalogs.MetricCatalog
	cells   sync.Map // metric name -> *aggregateCell
}

func NewUsageAggregator(catalog catalogs.MetricCatalog) UsageAggregator {
	return &usageAggregator{catalog: catalog}
}

func (a *usageAggregator) Fold(ctx context.Context, sample models.UsageSample) error {
	if _, err := a.catalog.Lookup(sample.MetricName); err != nil {
		return a.reject(ctx, err)
	}
	if !validQuantity(sample.Quantity) {
		return a.reject(ctx, errInvalidQuantity(sample.MetricName, "quantity must be a finite value >= 0"))
	}

	cell := a.cellFor(sample.MetricName)
	cell.mu.Lock()
	cell.fold(sample.Quantity, 1)
	cell.mu.Unlock()

	metricSamplesFoldedTotal.WithLabelValues(sample.MetricName).Inc()
	return nil
}

func (a *usageAggregator) Merge(ctx context.Context, metricName string, stats models.UsageStats) error {
	if _, err := a.catalog.Lookup(metricName); err != nil {
		return a.reject(ctx, err)
	}
	if stats.SampleCount < 0 {
		return a.reject(ctx, errInvalidQuantity(metricName, "sample count must be >= 0"))
	}
	if !validQuantity(stats.Mean) {
		return a.reject(ctx, errInvalidQuantity(metricName, "mean must be a finite value >= 0"))
	}
	if stats.SampleCount == 0 {
		return nil
	}

	cell := a.cellFor(metricName)
	cell.mu.Lock()
	cell.fold(stats.Mean, stats.SampleCount)
	cell.mu.Unlock()

	metricSamplesFoldedTotal.WithLabelValues(metricName).Add(float64(stats.SampleCount))
	return nil
}

func (a *usageAggregator) Snapshot(metricName string) (models.MetricAggregate, error) {
	if _, err := a.catalog.Lookup(metricName); err != nil {
		return models.MetricAggregate{}, err
	}

	v, ok := a.cells.Load(metricName)
	if !ok {
		return models.MetricAggregate{MetricName: metricName}, nil
	}
	cell := v.(*aggregateCell)
	cell.mu.Lock()
	defer cell.mu.Unlock()
	return cell.agg, nil
}

func (a *usageAggregator) cellFor(metricName string) *aggregateCell {
	if v, ok := a.cells.Load(metricName); ok {
		return v.(*aggregateCell)
	}
	v, _ := a.cells.LoadOrStore(metricName, &aggregateCell{agg: models.MetricAggregate{MetricName: metricName}})
	return v.(*aggregateCell)
}

func (a *usageAggregator) reject(ctx context.Context, err error) error {
	code := svcerrors.NewInternalErrorUndefined(err).Code
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricFoldRejectedTotal.WithLabelValues(code).Inc()
	loggers.Ctx(ctx).Debug().Err(err).Msg("usage sample rejected")
	return err
}

// fold applies n samples whose mean is value. Callers hold c.mu.
func (c *aggregateCell) fold(value float64, n int64) {
	if c.agg.SampleCount == 0 {
		c.agg.Min = value
		c.agg.Max = value
	} else {
		c.agg.Min = math.Min(c.agg.Min, value)
		c.agg.Max = math.Max(c.agg.Max, value)
	}
	c.agg.Sum += value * float64(n)
	c.agg.SampleCount += n
	c.agg.Mean = c.agg.Sum / float64(c.agg.SampleCount)
}

func validQuantity(q float64) bool {
	return q >= 0 && !math.IsInf(q, 0) && !math.IsNaN(q)
}
