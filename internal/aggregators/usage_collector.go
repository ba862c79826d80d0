package aggregators

import (
	"context"
	"fmt"
	"sync"

	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/configs"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
)

// UsageBinding maps a fabric statistic onto a catalog metric. Scale converts the
// statistic's unit into the metric's unit (e.g. 0.001 for milliseconds to seconds).
type UsageBinding struct {
	Stat   string
	Metric string
	Scale  float64
}

// UsageCollector reconciles cumulative fabric usage snapshots into the aggregator.
// Only the growth since the previous snapshot is merged, so collecting the same
// snapshot twice folds nothing the second time.
//
//go:generate mockgen -source=usage_collector.go -destination=./mocks/usage_collector_mock.go -package=mocks
type UsageCollector interface {
	Collect(ctx context.Context, snapshot map[string]models.UsageStats) error
}

type statBaseline struct {
	count int64
	sum   float64
}

type usageCollector struct {
	aggregator UsageAggregator
	bindings   []UsageBinding

	mu        sync.Mutex
	baselines map[string]statBaseline
}

// NewUsageCollector checks every binding against the catalog. A zero scale means 1.
func NewUsageCollector(catalog catalogs.MetricCatalog, aggregator UsageAggregator, bindings []UsageBinding) (UsageCollector, error) {
	resolved := make([]UsageBinding, 0, len(bindings))
	for _, b := range bindings {
		if _, err := catalog.Lookup(b.Metric); err != nil {
			return nil, errInvalidBinding(b.Stat, err)
		}
		if b.Scale < 0 {
			return nil, errInvalidBinding(b.Stat, fmt.Errorf("scale must be > 0, got %v", b.Scale))
		}
		if b.Scale == 0 {
			b.Scale = 1
		}
		resolved = append(resolved, b)
	}
	return &usageCollector{
		aggregator: aggregator,
		bindings:   resolved,
		baselines:  make(map[string]statBaseline),
	}, nil
}

// BindingsFromConfig converts configured bindings.
func BindingsFromConfig(cfgs []configs.UsageBindingConfig) []UsageBinding {
	out := make([]UsageBinding, 0, len(cfgs))
	for _, c := range cfgs {
		out = append(out, UsageBinding{Stat: c.Stat, Metric: c.Metric, Scale: c.Scale})
	}
	return out
}

func (c *usageCollector) Collect(ctx context.Context, snapshot map[string]models.UsageStats) error {
	logger := loggers.Ctx(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.bindings {
		current, ok := snapshot[b.Stat]
		if !ok {
			continue
		}

		prev := c.baselines[b.Stat]
		deltaCount := current.SampleCount - prev.count
		deltaSum := current.Sum() - prev.sum
		if deltaCount < 0 {
			// the fabric's counters went backwards: it restarted, take the snapshot whole
			logger.Warn().
				Str(loggers.FieldMetric, b.Metric).
				Int64("previous_count", prev.count).
				Int64("current_count", current.SampleCount).
				Msg("usage snapshot shrank, resetting baseline")
			deltaCount = current.SampleCount
			deltaSum = current.Sum()
		}
		if deltaCount == 0 {
			continue
		}
		if deltaSum < 0 {
			// mean*count rounding when only zero-valued samples arrived
			deltaSum = 0
		}

		delta := models.UsageStats{
			Mean:        deltaSum * b.Scale / float64(deltaCount),
			SampleCount: deltaCount,
		}
		if err := c.aggregator.Merge(ctx, b.Metric, delta); err != nil {
			metricCollectedSnapshotsTotal.WithLabelValues("rejected").Inc()
			return err
		}
		c.baselines[b.Stat] = statBaseline{count: current.SampleCount, sum: current.Sum()}

		logger.Debug().
			Str(loggers.FieldMetric, b.Metric).
			Int64("samples", deltaCount).
			Float64("mean", delta.Mean).
			Msg("merged fabric usage")
	}

	metricCollectedSnapshotsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}
