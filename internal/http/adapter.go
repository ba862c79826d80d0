package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fabric-ledger/internal/correlation"
	"fabric-ledger/internal/fabric"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/supervisors"
)

// AppHttpHandler is a handler that reports failures as errors instead of writing them.
type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	RequestID        string         `json:"requestId"`
	ErrorCategory    string         `json:"errorCategory"`
	ErrorCode        string         `json:"errorCode"`
	ErrorDescription string         `json:"errorDescription"`
	Details          map[string]any `json:"details,omitempty"`
}

func errorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := httpHandler.Handle(w, r)
		if err == nil {
			return
		}

		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}

		// Log internal errors at error level
		if svcErr.IsInternalError() {
			logger := loggers.Ctx(r.Context())

			logger.Error().
				Err(svcErr.Cause).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("internal error in handler")
		}

		writeErrorResponse(w, r, svcErr)
	}
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	// set serviceError for middlewares
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetServiceError(svcErr)
	}

	errorResponse := ErrorResponse{
		RequestID:        requestID(r),
		ErrorCategory:    svcErr.Category,
		ErrorCode:        svcErr.Code,
		ErrorDescription: svcErr.Message,
	}
	if !svcErr.IsInternalError() {
		errorResponse.Details = errorDetails(svcErr)
	}

	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldErrorCode, svcErr.Code).
		Str("errorCategory", svcErr.Category).
		Str("errorMessage", svcErr.Message).
		Int("httpStatusCode", svcErr.HttpStatusCode).
		Msg("error response")

	writeJSON(w, svcErr.HttpStatusCode, errorResponse)
}

// errorDetails exposes the data carried by typed domain errors.
func errorDetails(err error) map[string]any {
	var (
		incomplete *correlation.IncompleteCorrelationError
		anomalous  *correlation.AnomalousTokenError
		duplicate  *supervisors.DuplicateObservationError
		invocation *fabric.InvocationError
	)
	switch {
	case errors.As(err, &incomplete):
		return map[string]any{"windowId": incomplete.WindowID, "missing": incomplete.Missing}
	case errors.As(err, &anomalous):
		return map[string]any{"windowId": anomalous.WindowID, "token": anomalous.Token}
	case errors.As(err, &duplicate):
		return map[string]any{"windowId": duplicate.WindowID, "duplicates": duplicate.Counts}
	case errors.As(err, &invocation):
		return map[string]any{"function": invocation.Function, "invocationId": invocation.InvocationID}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
