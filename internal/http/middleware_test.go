package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logLines parses the JSON lines written by a zerolog logger.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func completionLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range logLines(t, buf) {
		if line["message"] == "request completed" {
			return line
		}
	}
	require.Fail(t, "no request completed line", buf.String())
	return nil
}

func TestMwRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		providedID string
		keep       bool
	}{
		{name: "generated when missing", providedID: "", keep: false},
		{name: "provided id kept", providedID: "custom-request-id-12345", keep: true},
		{name: "oversized id replaced", providedID: strings.Repeat("x", maxRequestIDLen+1), keep: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := mwRequestID(loggers.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.Header.Get(headerRequestID)
				assert.NotNil(t, loggers.Ctx(r.Context()), "logger should be in context")
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/report", nil)
			if tt.providedID != "" {
				req.Header.Set(headerRequestID, tt.providedID)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusNoContent, rr.Code)
			if tt.keep {
				assert.Equal(t, tt.providedID, seen)
			} else {
				assert.Len(t, seen, 26, "request ID should be a ULID")
			}
			assert.Equal(t, seen, rr.Header().Get(headerRequestID), "response should echo the request ID")
		})
	}
}

func TestMwRecoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		panic any
	}{
		{name: "string panic", panic: "critical error occurred"},
		{name: "error panic", panic: assert.AnError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			logger, err := loggers.NewWithWriter("debug", &logs)
			require.NoError(t, err)

			handler := mwRequestID(logger)(mwRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panic)
			})))

			req := httptest.NewRequest(http.MethodPost, "/batches", nil)
			rr := httptest.NewRecorder()
			assert.NotPanics(t, func() { handler.ServeHTTP(rr, req) })

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, contentTypeJSON, rr.Header().Get("Content-Type"))

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.NotEmpty(t, errorResponse.RequestID)
			assert.Equal(t, "internal", errorResponse.ErrorCategory)
			assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
			assert.Equal(t, "internal server error", errorResponse.ErrorDescription)

			assert.Contains(t, logs.String(), "http panic recovered")
			assert.Contains(t, logs.String(), loggers.FieldErrorStack)
		})
	}
}

func TestMwRecoverer_PassesThroughWhenNoPanic(t *testing.T) {
	t.Parallel()

	handler := mwRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("accepted"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logs", nil))

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "accepted", rr.Body.String())
}

func TestMwRequestCompletionLog_IncludesAnnotations(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger, err := loggers.NewWithWriter("info", &logs)
	require.NoError(t, err)

	router := chi.NewRouter()
	setupMiddleware(router, logger)
	router.Post("/batches", func(w http.ResponseWriter, r *http.Request) {
		annotate(w, loggers.FieldWindowID, "01JABCDEFGHJKMNPQRSTVWXYZ0")
		annotate(w, loggers.FieldOutcome, "complete")
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/batches", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	line := completionLine(t, &logs)
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "01JABCDEFGHJKMNPQRSTVWXYZ0", line[loggers.FieldWindowID])
	assert.Equal(t, "complete", line[loggers.FieldOutcome])
	assert.Equal(t, "/batches", line[loggers.FieldHttpPath])
	assert.Equal(t, float64(http.StatusOK), line[loggers.FieldHttpStatus])
	assert.Equal(t, rr.Header().Get(headerRequestID), line[loggers.FieldRequestID])
}

func TestMwRequestCompletionLog_ServerErrorsAreWarnings(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger, err := loggers.NewWithWriter("info", &logs)
	require.NoError(t, err)

	router := chi.NewRouter()
	setupMiddleware(router, logger)
	router.Get("/report", errorHandlingAdapter(&testHandler{
		handleFunc: func(w http.ResponseWriter, r *http.Request) error {
			return svcerrors.NewInternalError("ACC_9001", assert.AnError)
		},
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/report", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	line := completionLine(t, &logs)
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "ACC_9001", line[loggers.FieldErrorCode])
}

func TestSetupMiddleware_Integration(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	setupMiddleware(router, loggers.Nop())

	router.Get("/report/{name}", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(headerRequestID), "request ID should be set")
		assert.IsType(t, &appResponseWriter{}, w)
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("integration test panic")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/report/functionCallRequests", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	assert.Equal(t, rr.Header().Get(headerRequestID), errorResponse.RequestID)
	assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
}
