package aggregators

import (
	"errors"
	"fmt"

	"fabric-ledger/internal/shared/svcerrors"
)

var (
	ErrInvalidQuantity = errors.New("invalid usage quantity")
	ErrInvalidBinding  = errors.New("invalid usage binding")
)

const (
	codeInvalidQuantity = "AGG_1000"
	codeInvalidBinding  = "AGG_1001"
)

// errInvalidQuantity returns an error when a sample or batch carries a negative or non-finite quantity.
func errInvalidQuantity(metric string, detail string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQuantity, "invalid usage quantity",
		fmt.Errorf("%w: metric %q: %s", ErrInvalidQuantity, metric, detail))
}

// errInvalidBinding returns an error when a usage binding cannot be resolved against the catalog.
func errInvalidBinding(stat string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidBinding, "invalid usage binding",
		fmt.Errorf("%w: stat %q: %w", ErrInvalidBinding, stat, cause))
}
