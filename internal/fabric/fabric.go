package fabric

import (
	"context"
	"time"

	"fabric-ledger/internal/events"
	"fabric-ledger/internal/models"
)

// Usage statistic names reported by GetUsageStats.
const (
	StatExecutionTime       = "executionTime"       // milliseconds
	StatEstimatedBilledTime = "estimatedBilledTime" // milliseconds, rounded up to the billing granularity
	StatInvocations         = "invocations"
	StatOutboundBytes       = "outboundBytes"
)

// Invocation is one logical call of a deployed function.
type Invocation struct {
	Function string
	Token    models.CorrelationToken
	// Epoch is stamped on every log record the invocation emits.
	Epoch   uint64
	Payload []byte
}

type InvocationResult struct {
	InvocationID string
	Output       []byte
	Duration     time.Duration
	BilledTime   time.Duration
}

// LogSink receives the log records emitted by running invocations.
type LogSink interface {
	Publish(ctx context.Context, record events.LogRecord) error
}

// ExecutionFabric is the remote compute backend functions run on.
//
//go:generate mockgen -source=fabric.go -destination=./mocks/fabric_mock.go -package=mocks
type ExecutionFabric interface {
	// Invoke runs one invocation to completion. Remote failures are reported as a
	// ServiceError wrapping *InvocationError.
	Invoke(ctx context.Context, inv Invocation) (*InvocationResult, error)
	// AttachLogger routes emitted log records to sink; nil detaches.
	AttachLogger(sink LogSink)
	// GetUsageStats returns cumulative consumption keyed by statistic name.
	GetUsageStats(ctx context.Context) (map[string]models.UsageStats, error)
}
