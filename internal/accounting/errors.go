package accounting

import (
	"errors"
	"fmt"

	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/svcerrors"
)

var (
	ErrReportInvariantViolated = errors.New("cost report invariant violated")
	ErrMalformedReport         = errors.New("malformed cost report")
)

const (
	codeLineItemNotFound        = "ACC_1000"
	codeMalformedReport         = "ACC_1001"
	codeReportSerializeFailed   = "ACC_9001"
	codeReportInvariantViolated = "ACC_9000"
)

func errLineItemNotFound(name string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeLineItemNotFound, "cost line item not found",
		fmt.Errorf("%w: %q", models.ErrLineItemNotFound, name))
}

func errMalformedReport(detail string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeMalformedReport, "malformed cost report",
		fmt.Errorf("%w: %s", ErrMalformedReport, detail))
}

func errReportSerializeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeReportSerializeFailed, fmt.Errorf("reportSerializeFailed: %w", cause))
}

func errReportInvariantViolated(detail string) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeReportInvariantViolated, fmt.Errorf("%w: %s", ErrReportInvariantViolated, detail))
}
