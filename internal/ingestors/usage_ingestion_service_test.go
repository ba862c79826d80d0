package ingestors_test

import (
	"context"
	"strings"
	"testing"

	"fabric-ledger/internal/aggregators"
	aggmocks "fabric-ledger/internal/aggregators/mocks"
	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/ingestors"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCatalog(t *testing.T) catalogs.MetricCatalog {
	t.Helper()
	catalog := catalogs.NewMetricCatalog()
	require.NoError(t, catalog.Register(models.MetricDefinition{Name: "requests", Unit: "request", PricePerUnit: 0.000001}))
	require.NoError(t, catalog.Register(models.MetricDefinition{Name: "egress", Unit: "GB", PricePerUnit: 0.09}))
	return catalog
}

func TestIngestSamples_FoldsIntoAggregator(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)
	aggregator := aggregators.NewUsageAggregator(catalog)
	service := ingestors.NewUsageIngestionService(catalog, aggregator)

	body := `[{"metric":"egress","quantity":30},{"metric":"egress","quantity":50},{"metric":"requests","quantity":1}]`
	result, err := service.IngestSamples(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 3, result.FoldedCount)

	egress, err := aggregator.Snapshot("egress")
	require.NoError(t, err)
	assert.Equal(t, int64(2), egress.SampleCount)
	assert.InDelta(t, 40, egress.Mean, 1e-9)
	assert.InDelta(t, 80, egress.Sum, 1e-9)
}

func TestIngestSamples_RejectsWholeBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		expectedCode string
	}{
		{name: "invalid json", body: `[{`, expectedCode: "ING_1000"},
		{name: "empty", body: `[]`, expectedCode: "ING_1000"},
		{name: "missing metric", body: `[{"quantity":1}]`, expectedCode: "ING_1000"},
		{name: "negative quantity", body: `[{"metric":"requests","quantity":1},{"metric":"requests","quantity":-2}]`, expectedCode: "ING_1000"},
		{name: "unknown metric", body: `[{"metric":"requests","quantity":1},{"metric":"gpuSeconds","quantity":2}]`, expectedCode: "CAT_1002"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			// nothing is folded when any sample is rejected
			aggregator := aggmocks.NewMockUsageAggregator(ctrl)
			service := ingestors.NewUsageIngestionService(newTestCatalog(t), aggregator)

			result, err := service.IngestSamples(context.Background(), strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, svcerrors.HasCode(err, tt.expectedCode), "got %v", err)
		})
	}
}

func TestIngestSamples_UnknownMetricIsNotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := ingestors.NewUsageIngestionService(newTestCatalog(t), aggmocks.NewMockUsageAggregator(ctrl))

	_, err := service.IngestSamples(context.Background(), strings.NewReader(`[{"metric":"gpuSeconds","quantity":2}]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogs.ErrUnknownMetric)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", svcErr.Category)
}

func TestIngestSamples_FoldFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	aggregator := aggmocks.NewMockUsageAggregator(ctrl)
	gomock.InOrder(
		aggregator.EXPECT().Fold(gomock.Any(), models.UsageSample{MetricName: "requests", Quantity: 1}).Return(nil),
		aggregator.EXPECT().Fold(gomock.Any(), models.UsageSample{MetricName: "egress", Quantity: 2}).Return(assert.AnError),
	)
	service := ingestors.NewUsageIngestionService(newTestCatalog(t), aggregator)

	_, err := service.IngestSamples(context.Background(), strings.NewReader(
		`[{"metric":"requests","quantity":1},{"metric":"egress","quantity":2},{"metric":"egress","quantity":3}]`))
	require.Error(t, err)
	assert.True(t, svcerrors.HasCode(err, "ING_9002"))
	assert.ErrorIs(t, err, assert.AnError)
}
