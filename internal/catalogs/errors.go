package catalogs

import (
	"errors"
	"fmt"

	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/shared/validators"
)

var (
	ErrInvalidMetric   = errors.New("invalid metric definition")
	ErrDuplicateMetric = errors.New("duplicate metric")
	ErrUnknownMetric   = errors.New("unknown metric")
)

const (
	codeInvalidMetric   = "CAT_1000"
	codeDuplicateMetric = "CAT_1001"
	codeUnknownMetric   = "CAT_1002"
)

func errInvalidMetric(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidMetric, "invalid metric definition",
		fmt.Errorf("%w: %s", ErrInvalidMetric, validators.Describe(cause, 1)))
}

func errDuplicateMetric(name string) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeDuplicateMetric, "metric already registered",
		fmt.Errorf("%w: %q", ErrDuplicateMetric, name))
}

// ErrUnknownMetricNamed builds the lookup failure for name. Exported so that
// packages resolving metrics through the catalog report the same code.
func ErrUnknownMetricNamed(name string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeUnknownMetric, "metric not registered",
		fmt.Errorf("%w: %q", ErrUnknownMetric, name))
}
