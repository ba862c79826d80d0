package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fabric-ledger/internal/accounting"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/filestorages"
)

var (
	ErrCostReportNotFound = errors.New("cost report not found")
)

// CostReportStore archives serialized cost reports, one CSV file per report id.
// Report ids are ULIDs, so lexical key order is creation order.
//
//go:generate mockgen -source=cost_report_store.go -destination=./mocks/cost_report_store_mock.go -package=mocks
type CostReportStore interface {
	// Put writes the report, replacing any earlier report with the same id.
	Put(ctx context.Context, reportID string, report *models.CostReport) (string, error)
	Get(ctx context.Context, reportID string) (*models.CostReport, error)
	// Latest returns the most recently created report and its id.
	Latest(ctx context.Context) (string, *models.CostReport, error)
}

type costReportStore struct {
	fileStorage filestorages.FileStorage
	dir         string
}

func NewCostReportStore(fileStorage filestorages.FileStorage) CostReportStore {
	return &costReportStore{fileStorage: fileStorage, dir: "cost-reports"}
}

func (s *costReportStore) Put(ctx context.Context, reportID string, report *models.CostReport) (string, error) {
	var buf bytes.Buffer
	if err := accounting.SerializeReport(&buf, report); err != nil {
		return "", fmt.Errorf("failed to serialize cost report: %w", err)
	}

	key := s.getKey(reportID)
	result, err := s.fileStorage.Put(ctx, key, &buf, filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return "", fmt.Errorf("failed to put cost report: %w", err)
	}
	return result.FileKey, nil
}

func (s *costReportStore) Get(ctx context.Context, reportID string) (*models.CostReport, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.getKey(reportID))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCostReportNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to get cost report: %w", err)
	}
	defer readCloser.Close()

	report, err := accounting.ParseReport(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cost report %s: %w", reportID, err)
	}
	return report, nil
}

func (s *costReportStore) Latest(ctx context.Context) (string, *models.CostReport, error) {
	keys, err := s.fileStorage.List(ctx, s.dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list cost reports: %w", err)
	}

	for i := len(keys) - 1; i >= 0; i-- {
		name := path.Base(keys[i])
		if !strings.HasSuffix(name, ".csv") {
			continue
		}
		reportID := strings.TrimSuffix(name, ".csv")
		report, err := s.Get(ctx, reportID)
		if err != nil {
			return "", nil, err
		}
		return reportID, report, nil
	}
	return "", nil, ErrCostReportNotFound
}

func (s *costReportStore) getKey(reportID string) string {
	return fmt.Sprintf("%s/%s.csv", s.dir, reportID)
}
