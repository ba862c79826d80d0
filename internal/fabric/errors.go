package fabric

import (
	"errors"
	"fmt"

	"fabric-ledger/internal/shared/svcerrors"
)

var (
	ErrUnknownFunction      = errors.New("unknown function")
	ErrDuplicateFunction    = errors.New("function already registered")
	ErrStartupMarkerMissing = errors.New("startup marker missing from output")
)

const (
	codeUnknownFunction      = "FAB_1000"
	codeDuplicateFunction    = "FAB_1001"
	codeInvocationFailed     = "FAB_2000"
	codeStartupMarkerMissing = "FAB_2001"
)

// InvocationError is a remote-side failure of one invocation.
type InvocationError struct {
	Function     string
	InvocationID string
	Message      string
	Cause        error
}

func (e *InvocationError) Error() string {
	if e.InvocationID == "" {
		return fmt.Sprintf("invocation of %s failed: %s", e.Function, e.Message)
	}
	return fmt.Sprintf("invocation %s of %s failed: %s", e.InvocationID, e.Function, e.Message)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

func errUnknownFunction(name string) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeUnknownFunction, "function not registered",
		&InvocationError{Function: name, Message: "not registered", Cause: ErrUnknownFunction})
}

func errDuplicateFunction(name string) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeDuplicateFunction, "function already registered",
		fmt.Errorf("%w: %q", ErrDuplicateFunction, name))
}

func errInvocationFailed(function, invocationID string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeInvocationFailed, "invocation failed",
		&InvocationError{Function: function, InvocationID: invocationID, Message: cause.Error(), Cause: cause})
}

func errStartupMarkerMissing(function, marker string) *svcerrors.ServiceError {
	return svcerrors.NewUpstreamError(codeStartupMarkerMissing, "startup marker missing",
		fmt.Errorf("%w: function %q, marker %q", ErrStartupMarkerMissing, function, marker))
}
