package http

import (
	"bytes"
	"errors"
	"net/http"

	"fabric-ledger/internal/accounting"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/shared/ulid"
	"fabric-ledger/internal/stores"

	"github.com/go-chi/chi/v5"
)

const (
	codeInvalidReportID     = "HTTP_1001"
	codeArchivedReportMiss  = "HTTP_1002"
	codeArchivedReportStore = "HTTP_9000"
)

type archivedReportHandler struct {
	reportStore stores.CostReportStore
}

// NewArchivedReportHandler serves reports persisted by the supervisor:
// GET /reports/latest and GET /reports/{id}.
func NewArchivedReportHandler(reportStore stores.CostReportStore) AppHttpHandler {
	return &archivedReportHandler{reportStore: reportStore}
}

func (h *archivedReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	reportID := chi.URLParam(r, "id")

	var (
		report *models.CostReport
		err    error
	)
	if reportID == "" {
		reportID, report, err = h.reportStore.Latest(r.Context())
	} else {
		if _, parseErr := ulid.Timestamp(reportID); parseErr != nil {
			return svcerrors.NewInvalidArgumentError(codeInvalidReportID, "report id must be a ULID", parseErr)
		}
		report, err = h.reportStore.Get(r.Context(), reportID)
	}
	if err != nil {
		if errors.Is(err, stores.ErrCostReportNotFound) {
			return svcerrors.NewNotFoundError(codeArchivedReportMiss, "cost report not found", err)
		}
		return svcerrors.NewInternalError(codeArchivedReportStore, err)
	}
	annotate(w, loggers.FieldReportID, reportID)

	w.Header().Set("x-report-id", reportID)
	if createdAt, err := ulid.Timestamp(reportID); err == nil {
		w.Header().Set("Last-Modified", createdAt.Format(http.TimeFormat))
	}

	if acceptsJSON(r) {
		writeJSON(w, http.StatusOK, report)
		return nil
	}

	var buf bytes.Buffer
	if err := accounting.SerializeReport(&buf, report); err != nil {
		return svcerrors.NewInternalError(codeArchivedReportStore, err)
	}
	w.Header().Set("Content-Type", contentTypeCSV)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	return nil
}
