package ingestors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"fabric-ledger/internal/events"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/shared/ulid"
	"fabric-ledger/internal/stores"
	"fabric-ledger/internal/streams"
)

const (
	maxBatchBytes       = 2 * 1024 * 1024
	maxInvocationIDLen  = 128
	maxMessageLen       = 8192
	maxRecordsPerBatch  = 10000
	maxBatchTooLargeMsg = "batch too large: must be <= 2MB"

	defaultPublishTimeout = 30 * time.Second
)

const (
	FormatJSON = "json"
)

// IngestResult represents the result of a batch ingestion operation.
type IngestResult struct {
	BatchID       string
	AcceptedCount int
}

// IngestionService accepts log batches pushed by a remote execution fabric.
//
//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestBatch archives a JSON array of log records once per idempotency key and
	// publishes its records to the log channel.
	IngestBatch(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	batchStore     stores.LogBatchStore
	logChannel     streams.LogChannel
	now            func() time.Time
	publishTimeout time.Duration

	// archived batches whose records were not all published, by batch id -> next record index
	mu          sync.Mutex
	unpublished map[string]int
}

func NewIngestionService(batchStore stores.LogBatchStore, logChannel streams.LogChannel) IngestionService {
	return &ingestionService{
		batchStore:     batchStore,
		logChannel:     logChannel,
		now:            func() time.Time { return time.Now().UTC() },
		publishTimeout: defaultPublishTimeout,
		unpublished:    make(map[string]int),
	}
}

func (s *ingestionService) IngestBatch(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting log batch with idempotency key: %s, format: %s", idempotencyKey, format)

	records, err := s.validateLogBatch(format, r)
	if err != nil {
		metricLogBatchIngestedTotal.WithLabelValues(err.Code).Inc()
		return nil, err
	}

	batchID := strings.TrimSpace(idempotencyKey)
	if batchID == "" {
		batchID = ulid.NewULID()
	}

	logBatch := &events.LogBatch{
		BatchID:    batchID,
		ReceivedAt: s.now(),
		Records:    records,
	}

	// Archive first; a redelivered batch stops here and is never published twice
	start := 0
	if err := s.batchStore.Put(ctx, logBatch); err != nil {
		if !errors.Is(err, stores.ErrLogBatchAlreadyExist) {
			svcError := errInternalLogBatchStoreFailed(err)
			metricLogBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		next, ok := s.claimUnpublished(batchID)
		if !ok {
			svcError := errLogBatchAlreadyProcessed(err)
			metricLogBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		// resume from the archived copy, the retried body may differ
		archived, getErr := s.batchStore.Get(ctx, batchID)
		if getErr != nil {
			s.markUnpublished(batchID, next)
			svcError := errInternalLogBatchStoreFailed(getErr)
			metricLogBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		logger.Info().Str(loggers.FieldBatchID, batchID).Int("next_record", next).Msg("resuming partially published log batch")
		logBatch, start = archived, next
	}

	if err := s.publishFrom(ctx, logBatch, start); err != nil {
		svcError := errInternalLogChannelFailed(err)
		metricLogBatchIngestedTotal.WithLabelValues(svcError.Code).Inc()
		return nil, svcError
	}
	records = logBatch.Records

	metricLogBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricLogRecordsIngestedTotal.WithLabelValues().Add(float64(len(records)))
	logger.Debug().Str(loggers.FieldBatchID, batchID).Int("records", len(records)).Msg("log batch ingested")

	return &IngestResult{BatchID: batchID, AcceptedCount: len(records)}, nil
}

// publishFrom publishes the batch records from index start on. Publishing outlives the
// request so a disconnecting client does not cut an archived batch short; on failure
// the remaining records stay claimable by a retry with the same idempotency key.
func (s *ingestionService) publishFrom(ctx context.Context, batch *events.LogBatch, start int) error {
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	for i := start; i < len(batch.Records); i++ {
		if err := s.logChannel.Publish(publishCtx, batch.Records[i]); err != nil {
			s.markUnpublished(batch.BatchID, i)
			return fmt.Errorf("record %d of batch %s: %w", i, batch.BatchID, err)
		}
	}
	return nil
}

func (s *ingestionService) claimUnpublished(batchID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.unpublished[batchID]
	delete(s.unpublished, batchID)
	return next, ok
}

func (s *ingestionService) markUnpublished(batchID string, next int) {
	s.mu.Lock()
	s.unpublished[batchID] = next
	s.mu.Unlock()
}

func (s *ingestionService) validateLogBatch(format string, r io.Reader) ([]events.LogRecord, *svcerrors.ServiceError) {
	// Handle nil reader
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := readWithLimit(r, maxBatchBytes)
	if err != nil {
		return nil, err
	}

	// Parse based on format (using contains for flexible matching)
	formatLower := strings.ToLower(format)
	if !strings.Contains(formatLower, FormatJSON) {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	records, err := s.parseJSON(buf)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, errValidationFailed("log records cannot be empty", nil)
	}
	if len(records) > maxRecordsPerBatch {
		return nil, errValidationFailed(fmt.Sprintf("too many log records: max %d", maxRecordsPerBatch), nil)
	}
	return records, nil
}

// parseJSON parses buf as a JSON array of objects into LogRecords.
func (s *ingestionService) parseJSON(buf []byte) ([]events.LogRecord, *svcerrors.ServiceError) {
	var arr []map[string]any
	if err := json.Unmarshal(buf, &arr); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}

	records := make([]events.LogRecord, 0, len(arr))
	for i, item := range arr {
		record, err := s.jsonObjectToLogRecord(item, i)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// jsonObjectToLogRecord converts a JSON object map to a LogRecord.
func (s *ingestionService) jsonObjectToLogRecord(obj map[string]any, index int) (events.LogRecord, *svcerrors.ServiceError) {
	var record events.LogRecord

	invocationID, err := requiredString(obj, "invocationId", index)
	if err != nil {
		return record, err
	}
	record.InvocationID = strings.TrimSpace(invocationID)

	message, err := requiredString(obj, "message", index)
	if err != nil {
		return record, err
	}
	record.Text = message

	emittedAt, err := requiredString(obj, "emittedAt", index)
	if err != nil {
		return record, err
	}
	if record.EmittedAt, err = parseTime(emittedAt, index); err != nil {
		return record, err
	}

	// Records from a fabric that cannot tag epochs leave it out
	if record.Epoch, err = optionalUint(obj, "epoch", index); err != nil {
		return record, err
	}
	if record.Sequence, err = optionalUint(obj, "sequence", index); err != nil {
		return record, err
	}

	if err := validateLogRecord(record, index); err != nil {
		return record, err
	}
	return record, nil
}

func validateLogRecord(r events.LogRecord, index int) *svcerrors.ServiceError {
	if r.InvocationID == "" {
		return errValidationFailed(fmt.Sprintf("item at index %d: invocationId cannot be empty", index), nil)
	}
	if len(r.InvocationID) > maxInvocationIDLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: invocationId too long: max %d characters", index, maxInvocationIDLen), nil)
	}
	if len(r.Text) > maxMessageLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: message too long: max %d characters", index, maxMessageLen), nil)
	}
	return nil
}

func requiredString(obj map[string]any, field string, index int) (string, *svcerrors.ServiceError) {
	val, ok := obj[field]
	if !ok {
		return "", errValidationFailed(fmt.Sprintf("item at index %d: missing %s", index, field), nil)
	}
	str, ok := val.(string)
	if !ok {
		return "", errValidationFailed(fmt.Sprintf("item at index %d: %s must be a string", index, field), nil)
	}
	return str, nil
}

func optionalUint(obj map[string]any, field string, index int) (uint64, *svcerrors.ServiceError) {
	val, ok := obj[field]
	if !ok || val == nil {
		return 0, nil
	}
	num, ok := val.(float64)
	if !ok || num < 0 || num != math.Trunc(num) || num > 1<<53 {
		return 0, errValidationFailed(fmt.Sprintf("item at index %d: %s must be a non-negative integer", index, field), nil)
	}
	return uint64(num), nil
}

// parseTime parses a time string in RFC3339 or ISO-8601 format.
func parseTime(timeStr string, index int) (time.Time, *svcerrors.ServiceError) {
	// Try ISO-8601 with milliseconds
	t, err := time.Parse("2006-01-02T15:04:05.000Z", timeStr)
	if err == nil {
		return t, nil
	}

	// Try RFC3339 with optional fractional seconds
	t, err = time.Parse(time.RFC3339Nano, timeStr)
	if err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, errValidationFailed(fmt.Sprintf("item at index %d: invalid time format: %s", index, timeStr), nil)
}

// readWithLimit reads r completely and rejects bodies larger than max bytes.
func readWithLimit(r io.Reader, max int) ([]byte, *svcerrors.ServiceError) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed(maxBatchTooLargeMsg, nil)
	}
	return buf, nil
}
