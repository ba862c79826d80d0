package ingestors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"fabric-ledger/internal/aggregators"
	"fabric-ledger/internal/catalogs"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/shared/validators"
)

const maxSamplesPerBatch = 10000

// UsageIngestResult reports how many samples were folded.
type UsageIngestResult struct {
	FoldedCount int
}

// UsageIngestionService folds externally measured usage samples into the aggregator.
// A batch is checked against the catalog as a whole before any sample is folded.
//
//go:generate mockgen -source=usage_ingestion_service.go -destination=./mocks/usage_ingestion_service_mock.go -package=mocks
type UsageIngestionService interface {
	IngestSamples(ctx context.Context, r io.Reader) (*UsageIngestResult, error)
}

type usageIngestionService struct {
	catalog    catalogs.MetricCatalog
	aggregator aggregators.UsageAggregator
}

func NewUsageIngestionService(catalog catalogs.MetricCatalog, aggregator aggregators.UsageAggregator) UsageIngestionService {
	return &usageIngestionService{catalog: catalog, aggregator: aggregator}
}

func (s *usageIngestionService) IngestSamples(ctx context.Context, r io.Reader) (*UsageIngestResult, error) {
	samples, err := s.validateSamples(r)
	if err != nil {
		metricUsageSamplesIngestedTotal.WithLabelValues(errorCode(err)).Inc()
		return nil, err
	}

	for i, sample := range samples {
		if err := s.aggregator.Fold(ctx, sample); err != nil {
			// samples before i are already folded; the aggregator has no rollback
			loggers.Ctx(ctx).Error().Err(err).Int("index", i).Msg("usage batch partially folded")
			svcErr := errInternalUsageAggregateFailed(err)
			metricUsageSamplesIngestedTotal.WithLabelValues(svcErr.Code).Add(float64(len(samples) - i))
			return nil, svcErr
		}
	}

	metricUsageSamplesIngestedTotal.WithLabelValues(metrics.ValueNoError).Add(float64(len(samples)))
	return &UsageIngestResult{FoldedCount: len(samples)}, nil
}

func (s *usageIngestionService) validateSamples(r io.Reader) ([]models.UsageSample, error) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}
	buf, svcErr := readWithLimit(r, maxBatchBytes)
	if svcErr != nil {
		return nil, svcErr
	}

	var samples []models.UsageSample
	if err := json.Unmarshal(buf, &samples); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}
	if len(samples) == 0 {
		return nil, errValidationFailed("usage samples cannot be empty", nil)
	}
	if len(samples) > maxSamplesPerBatch {
		return nil, errValidationFailed(fmt.Sprintf("too many usage samples: max %d", maxSamplesPerBatch), nil)
	}

	for i, sample := range samples {
		if err := validators.Shared().Struct(sample); err != nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d: %s", i, validators.Describe(err, 1)), err)
		}
		if _, err := s.catalog.Lookup(sample.MetricName); err != nil {
			return nil, err
		}
	}
	return samples, nil
}

func errorCode(err error) string {
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr.Code
	}
	return "unknown"
}
