package streams

import (
	"errors"
	"fmt"

	"fabric-ledger/internal/shared/svcerrors"
)

var ErrChannelStopped = errors.New("log channel stopped")

const (
	codeChannelStopped  = "STR_1000"
	codePublishCanceled = "STR_1001"
)

func errChannelStopped() *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeChannelStopped, ErrChannelStopped)
}

func errPublishCanceled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewDeadlineExceededError(codePublishCanceled, "log record not published before the deadline",
		fmt.Errorf("publishCanceled: %w", cause))
}
