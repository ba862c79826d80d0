package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("CAT_1000", "invalid metric definition", nil),
			wantErr: NewInvalidArgumentError("CAT_1000", "invalid metric definition", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("AGG_9000", nil)),
			wantErr: NewInternalError("AGG_9000", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestServiceError_StatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        *ServiceError
		wantStatus int
		wantCat    string
	}{
		{"not found", NewNotFoundError("CAT_1002", "unknown metric", nil), http.StatusNotFound, "not_found"},
		{"conflict", NewResourceConflictError("COR_1001", "window already open", nil), http.StatusConflict, "resource_conflict"},
		{"deadline", NewDeadlineExceededError("COR_4000", "incomplete correlation", nil), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"upstream", NewUpstreamError("FAB_5000", "invocation failed", nil), http.StatusBadGateway, "upstream"},
		{"panic", NewInternalErrorPanic(nil), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.HttpStatusCode)
			assert.Equal(t, tt.wantCat, tt.err.Category)
		})
	}
}

func TestServiceError_ErrorIncludesCauseForClientErrors(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("unknown metric")
	err := NewNotFoundError("CAT_1002", "metric not registered", fmt.Errorf("%w: %q", sentinel, "egress"))

	assert.Contains(t, err.Error(), "CAT_1002")
	assert.Contains(t, err.Error(), `"egress"`)
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, HasCode(fmt.Errorf("ctx: %w", err), "CAT_1002"))

	internal := NewInternalError("AGG_9000", errors.New("secret detail"))
	assert.NotContains(t, internal.Error(), "secret detail")
}
