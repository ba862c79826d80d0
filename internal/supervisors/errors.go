package supervisors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/svcerrors"
)

var (
	ErrInvalidBatchRequest = errors.New("invalid batch request")
	ErrStartupProbeFailed  = errors.New("startup probe failed")
	ErrBatchCanceled       = errors.New("batch canceled")
)

const (
	codeInvalidBatchRequest = "SUP_1000"
	codeStartupProbeFailed  = "SUP_1001"
	codeBatchCanceled       = "SUP_4001"
	codeDuplicateObserved   = "SUP_4002"

	codeInternalUsageCollectFailed = "SUP_9000"
	codeInternalReportFailed       = "SUP_9001"
	codeInternalReportPersist      = "SUP_9002"
)

// DuplicateObservationError reports expected tokens whose log line was seen more than
// once in a window. Counts maps each such token to its observation count.
type DuplicateObservationError struct {
	WindowID string
	Counts   map[models.CorrelationToken]int
}

func (e *DuplicateObservationError) Error() string {
	tokens := make([]models.CorrelationToken, 0, len(e.Counts))
	for token := range e.Counts {
		tokens = append(tokens, token)
	}
	models.SortTokens(tokens)

	parts := make([]string, 0, len(tokens))
	for _, token := range tokens {
		parts = append(parts, fmt.Sprintf("%s(x%d)", token, e.Counts[token]))
	}
	return fmt.Sprintf("window %s observed %d token(s) more than once: %s", e.WindowID, len(tokens), strings.Join(parts, " "))
}

func errInvalidBatchRequest(detail string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidBatchRequest, detail,
		fmt.Errorf("%w: %s", ErrInvalidBatchRequest, detail))
}

func errStartupProbeFailed(function string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeStartupProbeFailed, "startup probe failed",
		fmt.Errorf("%w: function %q: %w", ErrStartupProbeFailed, function, cause))
}

func errBatchCanceled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewDeadlineExceededError(codeBatchCanceled, "batch canceled",
		fmt.Errorf("%w: %w", ErrBatchCanceled, cause))
}

func errDuplicateObserved(windowID string, counts map[models.CorrelationToken]int) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeDuplicateObserved, "correlation token observed more than once",
		&DuplicateObservationError{WindowID: windowID, Counts: counts})
}

func errInternalUsageCollectFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalUsageCollectFailed, fmt.Errorf("usageCollectFailed: %w", cause))
}

func errInternalReportFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportFailed, fmt.Errorf("reportFailed: %w", cause))
}

func errInternalReportPersistFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportPersist, fmt.Errorf("reportPersistFailed: %w", cause))
}

// sortedFailureTokens is used for stable log output.
func sortedFailureTokens[V any](m map[models.CorrelationToken]V) []string {
	out := make([]string, 0, len(m))
	for token := range m {
		out = append(out, string(token))
	}
	sort.Strings(out)
	return out
}
