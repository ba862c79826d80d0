package http

import (
	"net/http"

	"fabric-ledger/internal/ingestors"
	"fabric-ledger/internal/shared/loggers"
)

type IngestLogResponse struct {
	BatchID       string `json:"batchId"`
	AcceptedCount int    `json:"acceptedCount"`
}

type IngestUsageResponse struct {
	FoldedCount int `json:"foldedCount"`
}

type ingestLogHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestLogHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestLogHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /logs requests.
func (h *ingestLogHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.IngestBatch(r.Context(), idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}
	annotate(w, loggers.FieldBatchID, result.BatchID)

	writeJSON(w, http.StatusAccepted, IngestLogResponse{BatchID: result.BatchID, AcceptedCount: result.AcceptedCount})
	return nil
}

type ingestUsageHandler struct {
	usageIngestionService ingestors.UsageIngestionService
}

func NewIngestUsageHandler(usageIngestionService ingestors.UsageIngestionService) AppHttpHandler {
	return &ingestUsageHandler{
		usageIngestionService: usageIngestionService,
	}
}

// Handle processes POST /usage requests.
func (h *ingestUsageHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.usageIngestionService.IngestSamples(r.Context(), r.Body)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusAccepted, IngestUsageResponse{FoldedCount: result.FoldedCount})
	return nil
}
