package aggregators

import (
	"context"
	"math"
	"sync"
	"testing"

	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, names ...string) catalogs.MetricCatalog {
	t.Helper()
	catalog := catalogs.NewMetricCatalog()
	for _, name := range names {
		require.NoError(t, catalog.Register(models.MetricDefinition{Name: name, Unit: "unit", PricePerUnit: 1}))
	}
	return catalog
}

func assertAggregateIdentity(t *testing.T, agg models.MetricAggregate) {
	t.Helper()
	want := agg.Mean * float64(agg.SampleCount)
	if agg.Sum == 0 {
		assert.Zero(t, want)
		return
	}
	assert.InEpsilon(t, agg.Sum, want, 1e-9, "sum must equal mean * sampleCount")
}

func TestUsageAggregator_Fold_DurationSamples(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	aggregator := NewUsageAggregator(newTestCatalog(t, "duration"))

	require.NoError(t, aggregator.Fold(ctx, models.UsageSample{MetricName: "duration", Quantity: 30}))
	require.NoError(t, aggregator.Fold(ctx, models.UsageSample{MetricName: "duration", Quantity: 50}))

	agg, err := aggregator.Snapshot("duration")
	require.NoError(t, err)
	assert.Equal(t, "duration", agg.MetricName)
	assert.Equal(t, int64(2), agg.SampleCount)
	assert.Equal(t, 40.0, agg.Mean)
	assert.Equal(t, 80.0, agg.Sum)
	assert.Equal(t, 30.0, agg.Min)
	assert.Equal(t, 50.0, agg.Max)
}

func TestUsageAggregator_Fold_UnknownMetric(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalog := newTestCatalog(t, "duration")
	aggregator := NewUsageAggregator(catalog)
	require.NoError(t, aggregator.Fold(ctx, models.UsageSample{MetricName: "duration", Quantity: 10}))

	err := aggregator.Fold(ctx, models.UsageSample{MetricName: "egress", Quantity: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogs.ErrUnknownMetric)
	assert.True(t, svcerrors.HasCode(err, "CAT_1002"))

	// catalog and aggregates unchanged
	assert.Len(t, catalog.List(), 1)
	_, err = catalog.Lookup("egress")
	assert.ErrorIs(t, err, catalogs.ErrUnknownMetric)

	agg, err := aggregator.Snapshot("duration")
	require.NoError(t, err)
	assert.Equal(t, int64(1), agg.SampleCount)
	assert.Equal(t, 10.0, agg.Sum)
}

func TestUsageAggregator_Fold_InvalidQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quantity float64
	}{
		{"negative", -1},
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggregator := NewUsageAggregator(newTestCatalog(t, "duration"))
			err := aggregator.Fold(context.Background(), models.UsageSample{MetricName: "duration", Quantity: tt.quantity})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuantity)
			assert.True(t, svcerrors.HasCode(err, "AGG_1000"))

			agg, err := aggregator.Snapshot("duration")
			require.NoError(t, err)
			assert.Zero(t, agg.SampleCount)
		})
	}
}

func TestUsageAggregator_Snapshot(t *testing.T) {
	t.Parallel()

	aggregator := NewUsageAggregator(newTestCatalog(t, "requests"))

	agg, err := aggregator.Snapshot("requests")
	require.NoError(t, err)
	assert.Equal(t, models.MetricAggregate{MetricName: "requests"}, agg)

	_, err = aggregator.Snapshot("unknown")
	assert.ErrorIs(t, err, catalogs.ErrUnknownMetric)

	// snapshots are copies
	require.NoError(t, aggregator.Fold(context.Background(), models.UsageSample{MetricName: "requests", Quantity: 1}))
	first, err := aggregator.Snapshot("requests")
	require.NoError(t, err)
	require.NoError(t, aggregator.Fold(context.Background(), models.UsageSample{MetricName: "requests", Quantity: 1}))
	assert.Equal(t, int64(1), first.SampleCount)
}

func TestUsageAggregator_Merge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	aggregator := NewUsageAggregator(newTestCatalog(t, "billed"))

	require.NoError(t, aggregator.Fold(ctx, models.UsageSample{MetricName: "billed", Quantity: 100}))
	require.NoError(t, aggregator.Merge(ctx, "billed", models.UsageStats{Mean: 200, SampleCount: 3}))
	require.NoError(t, aggregator.Merge(ctx, "billed", models.UsageStats{Mean: 500, SampleCount: 0}))

	agg, err := aggregator.Snapshot("billed")
	require.NoError(t, err)
	assert.Equal(t, int64(4), agg.SampleCount)
	assert.Equal(t, 700.0, agg.Sum)
	assert.Equal(t, 175.0, agg.Mean)
	assert.Equal(t, 100.0, agg.Min)
	assert.Equal(t, 200.0, agg.Max)

	err = aggregator.Merge(ctx, "billed", models.UsageStats{Mean: 1, SampleCount: -2})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	err = aggregator.Merge(ctx, "other", models.UsageStats{Mean: 1, SampleCount: 1})
	assert.ErrorIs(t, err, catalogs.ErrUnknownMetric)
}

func TestUsageAggregator_AggregateIdentity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	aggregator := NewUsageAggregator(newTestCatalog(t, "bytes"))

	quantities := []float64{0.1, 0.2, 0.3, 1e-7, 12345.678, 3, 99.999}
	for i, q := range quantities {
		require.NoError(t, aggregator.Fold(ctx, models.UsageSample{MetricName: "bytes", Quantity: q, Ordinal: uint64(i)}))
		agg, err := aggregator.Snapshot("bytes")
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), agg.SampleCount)
		assertAggregateIdentity(t, agg)
	}
}

func TestUsageAggregator_ConcurrentFolds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	names := []string{"duration", "requests", "egress"}
	aggregator := NewUsageAggregator(newTestCatalog(t, names...))

	const workers = 24
	const perWorker = 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				name := names[(w+i)%len(names)]
				assert.NoError(t, aggregator.Fold(ctx, models.UsageSample{MetricName: name, Quantity: 2}))
				if i%50 == 0 {
					snap, err := aggregator.Snapshot(name)
					assert.NoError(t, err)
					assertAggregateIdentity(t, snap)
				}
			}
		}(w)
	}
	wg.Wait()

	var total int64
	for _, name := range names {
		agg, err := aggregator.Snapshot(name)
		require.NoError(t, err)
		total += agg.SampleCount
		assert.Equal(t, float64(agg.SampleCount)*2, agg.Sum)
		assert.Equal(t, 2.0, agg.Mean)
	}
	assert.Equal(t, int64(workers*perWorker), total)
}
