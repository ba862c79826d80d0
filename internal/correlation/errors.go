package correlation

import (
	"errors"
	"fmt"
	"strings"

	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/svcerrors"
)

var (
	ErrEmptyExpectation    = errors.New("expected token set is empty")
	ErrWindowAlreadyOpen   = errors.New("observation window already open")
	ErrNoWindowOpen        = errors.New("no observation window open")
	ErrInvalidTokenPattern = errors.New("invalid token pattern")
)

const (
	codeEmptyExpectation    = "COR_1000"
	codeWindowAlreadyOpen   = "COR_1001"
	codeNoWindowOpen        = "COR_1002"
	codeInvalidTokenPattern = "COR_1003"
	codeIncomplete          = "COR_4000"
	codeAnomalousToken      = "COR_4001"
)

// IncompleteCorrelationError reports the expected tokens still unobserved when a wait
// gave up. Missing is sorted.
type IncompleteCorrelationError struct {
	WindowID string
	Missing  []models.CorrelationToken
	Cause    error
}

func (e *IncompleteCorrelationError) Error() string {
	return fmt.Sprintf("window %s incomplete: %d token(s) missing [%s]", e.WindowID, len(e.Missing), joinTokens(e.Missing, 20))
}

func (e *IncompleteCorrelationError) Unwrap() error {
	return e.Cause
}

// AnomalousTokenError is raised in fail-fast mode for the first token observed that
// the open window did not expect.
type AnomalousTokenError struct {
	WindowID string
	Token    models.CorrelationToken
}

func (e *AnomalousTokenError) Error() string {
	return fmt.Sprintf("window %s observed unexpected token %q", e.WindowID, e.Token)
}

func errEmptyExpectation() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeEmptyExpectation, "expected token set must not be empty", ErrEmptyExpectation)
}

func errWindowAlreadyOpen(windowID string) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeWindowAlreadyOpen, "an observation window is already open",
		fmt.Errorf("%w: %s", ErrWindowAlreadyOpen, windowID))
}

func errNoWindowOpen() *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeNoWindowOpen, "no observation window is open", ErrNoWindowOpen)
}

func errInvalidTokenPattern(pattern string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidTokenPattern, "invalid token pattern",
		fmt.Errorf("%w %q: %w", ErrInvalidTokenPattern, pattern, cause))
}

func errIncomplete(windowID string, missing []models.CorrelationToken, cause error) *svcerrors.ServiceError {
	return svcerrors.NewDeadlineExceededError(codeIncomplete, "log correlation incomplete",
		&IncompleteCorrelationError{WindowID: windowID, Missing: missing, Cause: cause})
}

func errAnomalousToken(windowID string, token models.CorrelationToken) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeAnomalousToken, "unexpected correlation token observed",
		&AnomalousTokenError{WindowID: windowID, Token: token})
}

func joinTokens(tokens []models.CorrelationToken, limit int) string {
	parts := make([]string, 0, min(len(tokens), limit)+1)
	for i, token := range tokens {
		if i == limit {
			parts = append(parts, fmt.Sprintf("... %d more", len(tokens)-limit))
			break
		}
		parts = append(parts, string(token))
	}
	return strings.Join(parts, " ")
}
