package stores

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"fabric-ledger/internal/events"
	"fabric-ledger/internal/shared/filestorages"
)

var (
	ErrLogBatchAlreadyExist = errors.New("log batch already exists")
	ErrLogBatchNotFound     = errors.New("log batch not found")
)

// maxArchivedLine bounds one NDJSON line; a record message is at most 8KiB.
const maxArchivedLine = 64 * 1024

// LogBatchStore archives pushed log batches exactly once per batch id. Put is a
// create-if-not-exists write, the same contract as a conditional object-store PUT:
//   - a fabric retries the push of batch "batch-123" after a timeout
//   - the first Put archives the batch and its records are published
//   - the retried Put fails with ErrLogBatchAlreadyExist and nothing is republished
//
// A batch is stored as NDJSON: a header line, then one line per record in push order.
//
//go:generate mockgen -source=log_batch_store.go -destination=./mocks/log_batch_store_mock.go -package=mocks
type LogBatchStore interface {
	Put(ctx context.Context, logBatch *events.LogBatch) error
	Get(ctx context.Context, batchID string) (*events.LogBatch, error)
}

type logBatchHeader struct {
	BatchID     string    `json:"batchId"`
	ReceivedAt  time.Time `json:"receivedAt"`
	RecordCount int       `json:"recordCount"`
}

type logBatchStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewLogBatchStore(fileStorage filestorages.FileStorage) LogBatchStore {
	return &logBatchStore{fileStorage: fileStorage, dir: "raw-log-batches"}
}

func (s *logBatchStore) Put(ctx context.Context, logBatch *events.LogBatch) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	header := logBatchHeader{BatchID: logBatch.BatchID, ReceivedAt: logBatch.ReceivedAt, RecordCount: len(logBatch.Records)}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("failed to marshal log batch: %w", err)
	}
	for _, record := range logBatch.Records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to marshal log batch: %w", err)
		}
	}

	_, err := s.fileStorage.Put(ctx, s.getKey(logBatch.BatchID), &buf, filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrLogBatchAlreadyExist
		}
		return fmt.Errorf("failed to put log batch: %w", err)
	}
	return nil
}

func (s *logBatchStore) Get(ctx context.Context, batchID string) (*events.LogBatch, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.getKey(batchID))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLogBatchNotFound, batchID)
		}
		return nil, fmt.Errorf("failed to get log batch: %w", err)
	}
	defer readCloser.Close()

	batch, err := decodeLogBatch(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log batch %s: %w", batchID, err)
	}
	return batch, nil
}

func decodeLogBatch(r io.Reader) (*events.LogBatch, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxArchivedLine)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("missing header line")
	}
	var header logBatchHeader
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	batch := &events.LogBatch{
		BatchID:    header.BatchID,
		ReceivedAt: header.ReceivedAt,
		Records:    make([]events.LogRecord, 0, header.RecordCount),
	}
	for scanner.Scan() {
		var record events.LogRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(batch.Records), err)
		}
		batch.Records = append(batch.Records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(batch.Records) != header.RecordCount {
		return nil, fmt.Errorf("truncated: want %d records, got %d", header.RecordCount, len(batch.Records))
	}
	return batch, nil
}

func (s *logBatchStore) getKey(batchID string) string {
	return fmt.Sprintf("%s/%s.ndjson", s.dir, batchID)
}
