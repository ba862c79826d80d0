package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/shared/validators"
	"fabric-ledger/internal/supervisors"
)

const (
	codeInvalidBatchBody = "HTTP_1000"
	maxBatchBodyBytes    = 64 * 1024
)

// RunBatchRequest is the body of POST /batches. Count falls back to the configured
// default when omitted.
type RunBatchRequest struct {
	Function string `json:"function" validate:"required,max=128"`
	Count    int    `json:"count" validate:"gte=0,lte=100000"`
}

type RunBatchResponse struct {
	WindowID string               `json:"windowId"`
	Epoch    uint64               `json:"epoch"`
	Outcome  models.WindowOutcome `json:"outcome"`
	Observed int                  `json:"observed"`
	// Failures maps each failed invocation's token to its error message.
	Failures map[models.CorrelationToken]string `json:"failures"`
	ReportID string                             `json:"reportId,omitempty"`
	Report   *models.CostReport                 `json:"report"`
}

type batchHandler struct {
	supervisor   supervisors.InvocationSupervisor
	defaultCount int
}

func NewBatchHandler(supervisor supervisors.InvocationSupervisor, defaultCount int) AppHttpHandler {
	return &batchHandler{supervisor: supervisor, defaultCount: defaultCount}
}

// Handle processes POST /batches requests: one supervised batch, synchronously.
func (h *batchHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	req, err := h.decode(r)
	if err != nil {
		return err
	}

	result, err := h.supervisor.RunBatch(r.Context(), supervisors.BatchRequest{
		Function: req.Function,
		Count:    req.Count,
	})
	if err != nil {
		return err
	}
	annotate(w, loggers.FieldWindowID, result.WindowID)
	annotate(w, loggers.FieldEpoch, strconv.FormatUint(result.Epoch, 10))
	annotate(w, loggers.FieldOutcome, string(result.Ledger.Outcome))

	resp := RunBatchResponse{
		WindowID: result.WindowID,
		Epoch:    result.Epoch,
		Outcome:  result.Ledger.Outcome,
		Observed: len(result.Ledger.ObservedCounts),
		Failures: make(map[models.CorrelationToken]string, len(result.Failures)),
		ReportID: result.ReportID,
		Report:   result.Report,
	}
	for token, invErr := range result.Failures {
		resp.Failures[token] = invErr.Message
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *batchHandler) decode(r *http.Request) (RunBatchRequest, error) {
	var req RunBatchRequest
	if r.Body == nil {
		return req, svcerrors.NewInvalidArgumentError(codeInvalidBatchBody, "empty request body", nil)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBatchBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, svcerrors.NewInvalidArgumentError(codeInvalidBatchBody, "invalid json", err)
	}
	if err := validators.Shared().Struct(req); err != nil {
		return req, svcerrors.NewInvalidArgumentError(codeInvalidBatchBody,
			fmt.Sprintf("invalid batch request: %s", validators.Describe(err, 1)), err)
	}
	if req.Count == 0 {
		req.Count = h.defaultCount
	}
	return req, nil
}
