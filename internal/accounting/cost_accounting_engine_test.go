package accounting

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"

	"fabric-ledger/internal/aggregators"
	aggmocks "fabric-ledger/internal/aggregators/mocks"
	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	catalog    catalogs.MetricCatalog
	aggregator aggregators.UsageAggregator
	engine     CostAccountingEngine
}

func newFixture(t *testing.T, defs ...models.MetricDefinition) *fixture {
	t.Helper()
	catalog := catalogs.NewMetricCatalog()
	for _, def := range defs {
		require.NoError(t, catalog.Register(def))
	}
	aggregator := aggregators.NewUsageAggregator(catalog)
	return &fixture{
		catalog:    catalog,
		aggregator: aggregator,
		engine:     NewCostAccountingEngine(catalog, aggregator),
	}
}

func (f *fixture) fold(t *testing.T, name string, quantities ...float64) {
	t.Helper()
	for _, q := range quantities {
		require.NoError(t, f.aggregator.Fold(context.Background(), models.UsageSample{MetricName: name, Quantity: q}))
	}
}

func TestCostAccountingEngine_GenerateReport_SingleSample(t *testing.T) {
	t.Parallel()

	f := newFixture(t, models.MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 0.000001})
	f.fold(t, "requests", 1)

	report, err := f.engine.GenerateReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.LineItems, 1)
	assert.Equal(t, models.CostLineItem{
		Name:         "requests",
		Unit:         "count",
		PricePerUnit: 0.000001,
		Measured:     1,
		Cost:         0.000001,
	}, report.LineItems[0])
	assert.Equal(t, 0.000001, report.Total)
}

func TestCostAccountingEngine_GenerateReport_RegistrationOrderAndSkipsEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		models.MetricDefinition{Name: "functionCallDuration", Unit: "second", PricePerUnit: 0.0000166667},
		models.MetricDefinition{Name: "functionCallRequests", Unit: "request", PricePerUnit: 0.0000002},
		models.MetricDefinition{Name: "outboundDataTransfer", Unit: "byte", PricePerUnit: 0.00000000009},
	)
	f.fold(t, "outboundDataTransfer", 1024, 2048)
	f.fold(t, "functionCallDuration", 0.2, 0.3)

	report, err := f.engine.GenerateReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.LineItems, 2)
	assert.Equal(t, "functionCallDuration", report.LineItems[0].Name)
	assert.Equal(t, "outboundDataTransfer", report.LineItems[1].Name)
	assert.Equal(t, 3072.0, report.LineItems[1].Measured)
	assert.NoError(t, VerifyReport(report))
}

func TestCostAccountingEngine_GenerateReport_EmptyCatalogUsage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, models.MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 1})

	report, err := f.engine.GenerateReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.LineItems)
	assert.Zero(t, report.Total)
}

func TestCostAccountingEngine_CostAndTotalIdentity(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	defs := []models.MetricDefinition{
		{Name: "a", Unit: "ms", PricePerUnit: 0.0000000021},
		{Name: "b", Unit: "byte", PricePerUnit: 0.09},
		{Name: "c", Unit: "request", PricePerUnit: 0.2},
		{Name: "d", Unit: "gb-second", PricePerUnit: 0.0000166667},
	}
	f := newFixture(t, defs...)
	for i := 0; i < 500; i++ {
		f.fold(t, defs[rng.Intn(len(defs))].Name, rng.Float64()*1000)
	}

	report, err := f.engine.GenerateReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report.LineItems, len(defs))

	var total float64
	for _, item := range report.LineItems {
		assert.Equal(t, item.PricePerUnit*item.Measured, item.Cost, item.Name)
		total += item.Cost
	}
	assert.Equal(t, total, report.Total)
}

func TestCostAccountingEngine_GenerateReport_Idempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t,
		models.MetricDefinition{Name: "duration", Unit: "ms", PricePerUnit: 0.0000021},
		models.MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 0.0000002},
	)
	f.fold(t, "duration", 30, 50, 12.5)
	f.fold(t, "requests", 1, 1, 1)

	first, err := f.engine.GenerateReport(ctx)
	require.NoError(t, err)
	second, err := f.engine.GenerateReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var a, b bytes.Buffer
	require.NoError(t, f.engine.Serialize(ctx, &a))
	require.NoError(t, f.engine.Serialize(ctx, &b))
	assert.Equal(t, a.Bytes(), b.Bytes())

	// returned reports are independent copies
	first.LineItems[0].Cost = -1
	third, err := f.engine.GenerateReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestCostAccountingEngine_Find(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t,
		models.MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 0.5},
		models.MetricDefinition{Name: "egress", Unit: "byte", PricePerUnit: 0.25},
	)
	f.fold(t, "requests", 4)

	// no report generated yet: Find generates one
	item, err := f.engine.Find(ctx, "requests")
	require.NoError(t, err)
	assert.Equal(t, 2.0, item.Cost)

	_, err = f.engine.Find(ctx, "egress")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrLineItemNotFound)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ACC_1000", svcErr.Code)
	assert.Equal(t, 404, svcErr.HttpStatusCode)

	// Find reads the latest generated report
	f.fold(t, "egress", 8)
	_, err = f.engine.Find(ctx, "egress")
	assert.ErrorIs(t, err, models.ErrLineItemNotFound)

	_, err = f.engine.GenerateReport(ctx)
	require.NoError(t, err)
	item, err = f.engine.Find(ctx, "egress")
	require.NoError(t, err)
	assert.Equal(t, 2.0, item.Cost)
}

func TestCostAccountingEngine_GenerateReport_SnapshotError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	aggregator := aggmocks.NewMockUsageAggregator(ctrl)
	catalog := catalogs.NewMetricCatalog()
	require.NoError(t, catalog.Register(models.MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 1}))

	boom := errors.New("snapshot failed")
	aggregator.EXPECT().Snapshot("requests").Return(models.MetricAggregate{}, boom)

	engine := NewCostAccountingEngine(catalog, aggregator)
	report, err := engine.GenerateReport(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, boom)
}

func TestCostAccountingEngine_Serialize(t *testing.T) {
	t.Parallel()

	f := newFixture(t,
		models.MetricDefinition{Name: "requests", Unit: "count", PricePerUnit: 0.000001},
		models.MetricDefinition{Name: "egress", Unit: "byte", PricePerUnit: 0.5},
	)
	f.fold(t, "requests", 1)
	f.fold(t, "egress", 3)

	var buf bytes.Buffer
	require.NoError(t, f.engine.Serialize(context.Background(), &buf))

	want := "name,unit,pricePerUnit,measured,cost\n" +
		"requests,count,1e-06,1,1e-06\n" +
		"egress,byte,0.5,3,1.5\n" +
		"total,,,,1.500001\n"
	assert.Equal(t, want, buf.String())
}
