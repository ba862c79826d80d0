package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID      = "x-request-id"
	headerContentType    = "content-type"
	headerAccept         = "accept"
	headerIdempotencyKey = "idempotency-key"

	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

func contentType(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerContentType))
}

func idempotencyKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerIdempotencyKey))
}

// acceptsJSON reports whether the client asked for JSON instead of the default CSV.
func acceptsJSON(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get(headerAccept)), contentTypeJSON)
}
