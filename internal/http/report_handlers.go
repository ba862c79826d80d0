package http

import (
	"bytes"
	"net/http"

	"fabric-ledger/internal/accounting"
	"fabric-ledger/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
)

type reportHandler struct {
	accountant accounting.CostAccountingEngine
}

func NewReportHandler(accountant accounting.CostAccountingEngine) AppHttpHandler {
	return &reportHandler{accountant: accountant}
}

// Handle processes GET /report requests. The report is CSV unless the client accepts
// JSON.
func (h *reportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if acceptsJSON(r) {
		report, err := h.accountant.GenerateReport(r.Context())
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, report)
		return nil
	}

	// buffered so a failure can still be rendered as an error response
	var buf bytes.Buffer
	if err := h.accountant.Serialize(r.Context(), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", contentTypeCSV)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	return nil
}

type lineItemHandler struct {
	accountant accounting.CostAccountingEngine
}

func NewLineItemHandler(accountant accounting.CostAccountingEngine) AppHttpHandler {
	return &lineItemHandler{accountant: accountant}
}

// Handle processes GET /report/{name} requests against a freshly generated report.
func (h *lineItemHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if _, err := h.accountant.GenerateReport(r.Context()); err != nil {
		return err
	}
	name := chi.URLParam(r, "name")
	annotate(w, loggers.FieldMetric, name)
	item, err := h.accountant.Find(r.Context(), name)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, item)
	return nil
}
