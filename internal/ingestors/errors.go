package ingestors

import (
	"fmt"

	"fabric-ledger/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed      = "ING_1000"
	codeBatchAlreadyProcessed = "ING_1001"

	codeInternalLogBatchStoreFailed  = "ING_9000"
	codeInternalLogChannelFailed     = "ING_9001"
	codeInternalUsageAggregateFailed = "ING_9002"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errLogBatchAlreadyProcessed returns an error when a log batch has already been processed.
func errLogBatchAlreadyProcessed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeBatchAlreadyProcessed, "log batch already processed", cause)
}

// errInternalLogBatchStoreFailed returns an error when a log batch store operation fails.
func errInternalLogBatchStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogBatchStoreFailed, fmt.Errorf("logBatchStoreFailed: %w", cause))
}

// errInternalLogChannelFailed returns an error when a record cannot be published to the log channel.
func errInternalLogChannelFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalLogChannelFailed, fmt.Errorf("logChannelFailed: %w", cause))
}

func errInternalUsageAggregateFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalUsageAggregateFailed, fmt.Errorf("usageAggregateFailed: %w", cause))
}
