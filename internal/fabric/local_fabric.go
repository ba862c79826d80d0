package fabric

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"fabric-ledger/internal/events"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/shared/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FunctionContext is what a running handler sees of its invocation.
type FunctionContext struct {
	Invocation
	InvocationID string

	emit func(text string)
}

// Log emits one line of output on the fabric's log stream.
func (fc *FunctionContext) Log(text string) {
	fc.emit(text)
}

func (fc *FunctionContext) Logf(format string, args ...any) {
	fc.emit(fmt.Sprintf(format, args...))
}

// FunctionHandler is the body of a function deployed on a LocalFabric.
type FunctionHandler func(ctx context.Context, fc *FunctionContext) ([]byte, error)

type Option func(*LocalFabric)

// WithBillingGranularity sets the unit billed time is rounded up to. Default 100ms.
func WithBillingGranularity(d time.Duration) Option {
	return func(f *LocalFabric) {
		if d > 0 {
			f.granularity = d
		}
	}
}

// WithRedeliveryRate makes the fabric deliver a fraction of log records twice, drawn
// from a RNG seeded with seed.
func WithRedeliveryRate(rate float64, seed int64) Option {
	return func(f *LocalFabric) {
		f.redeliveryRate = rate
		f.rng = rand.New(rand.NewSource(seed))
	}
}

type runningStat struct {
	count int64
	sum   float64
}

// LocalFabric runs registered function handlers in-process, each invocation on its
// own goroutine, and accounts for their consumption the way a hosted fabric would.
type LocalFabric struct {
	tracer      tracing.Tracer
	granularity time.Duration

	handlersMu sync.RWMutex
	handlers   map[string]FunctionHandler

	sinkMu sync.RWMutex
	sink   LogSink

	rngMu          sync.Mutex
	rng            *rand.Rand
	redeliveryRate float64

	statsMu sync.Mutex
	stats   map[string]*runningStat
}

func NewLocalFabric(tracer tracing.Tracer, opts ...Option) *LocalFabric {
	f := &LocalFabric{
		tracer:      tracer,
		granularity: 100 * time.Millisecond,
		handlers:    make(map[string]FunctionHandler),
		stats:       make(map[string]*runningStat),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register deploys handler under name.
func (f *LocalFabric) Register(name string, handler FunctionHandler) error {
	f.handlersMu.Lock()
	defer f.handlersMu.Unlock()

	if _, exists := f.handlers[name]; exists {
		return errDuplicateFunction(name)
	}
	f.handlers[name] = handler
	return nil
}

func (f *LocalFabric) AttachLogger(sink LogSink) {
	f.sinkMu.Lock()
	defer f.sinkMu.Unlock()
	f.sink = sink
}

func (f *LocalFabric) Invoke(ctx context.Context, inv Invocation) (*InvocationResult, error) {
	f.handlersMu.RLock()
	handler, ok := f.handlers[inv.Function]
	f.handlersMu.RUnlock()
	if !ok {
		svcErr := errUnknownFunction(inv.Function)
		metricInvocationsTotal.WithLabelValues(inv.Function, svcErr.Code).Inc()
		return nil, svcErr
	}

	invocationID := uuid.NewString()
	ctx, span := f.tracer.Start(ctx, "fabric.invoke")
	defer span.End()
	span.SetAttributes(
		attribute.String("function", inv.Function),
		attribute.String("invocation_id", invocationID),
		attribute.String("token", string(inv.Token)),
		attribute.Int64("epoch", int64(inv.Epoch)),
	)

	ctx = loggers.Ctx(ctx).With().
		Str(loggers.FieldFunction, inv.Function).
		Str(loggers.FieldInvocationID, invocationID).
		Logger().WithContext(ctx)

	var sequence atomic.Uint64
	fc := &FunctionContext{
		Invocation:   inv,
		InvocationID: invocationID,
	}
	fc.emit = func(text string) {
		f.emitLog(ctx, events.LogRecord{
			InvocationID: invocationID,
			Epoch:        inv.Epoch,
			Sequence:     sequence.Add(1) - 1,
			Text:         text,
			EmittedAt:    time.Now().UTC(),
		})
	}

	type outcome struct {
		output []byte
		err    error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("function panicked: %v", r)}
			}
		}()
		output, err := handler(ctx, fc)
		done <- outcome{output: output, err: err}
	}()

	var res outcome
	select {
	case res = <-done:
	case <-ctx.Done():
		res = outcome{err: ctx.Err()}
	}

	elapsed := time.Since(start)
	billed := f.billedTime(elapsed)
	f.recordUsage(elapsed, billed, len(res.output))
	metricInvocationDurationSeconds.WithLabelValues(inv.Function).Observe(elapsed.Seconds())

	if res.err != nil {
		svcErr := errInvocationFailed(inv.Function, invocationID, res.err)
		span.RecordError(res.err)
		span.SetStatus(codes.Error, res.err.Error())
		metricInvocationsTotal.WithLabelValues(inv.Function, svcErr.Code).Inc()
		loggers.Ctx(ctx).Warn().Err(res.err).Msg("invocation failed")
		return nil, svcErr
	}

	metricInvocationsTotal.WithLabelValues(inv.Function, metrics.ValueNoError).Inc()
	return &InvocationResult{
		InvocationID: invocationID,
		Output:       res.output,
		Duration:     elapsed,
		BilledTime:   billed,
	}, nil
}

func (f *LocalFabric) GetUsageStats(_ context.Context) (map[string]models.UsageStats, error) {
	f.statsMu.Lock()
	defer f.statsMu.Unlock()

	out := make(map[string]models.UsageStats, len(f.stats))
	for name, s := range f.stats {
		if s.count == 0 {
			continue
		}
		out[name] = models.UsageStats{Mean: s.sum / float64(s.count), SampleCount: s.count}
	}
	return out, nil
}

func (f *LocalFabric) emitLog(ctx context.Context, record events.LogRecord) {
	f.sinkMu.RLock()
	sink := f.sink
	f.sinkMu.RUnlock()
	if sink == nil {
		return
	}

	f.publish(ctx, sink, record, "first")
	if f.shouldRedeliver() {
		f.publish(ctx, sink, record, "redelivery")
	}
}

func (f *LocalFabric) publish(ctx context.Context, sink LogSink, record events.LogRecord, delivery string) {
	if err := sink.Publish(ctx, record); err != nil {
		loggers.Ctx(ctx).Warn().Err(err).Msg("failed to deliver log record")
		return
	}
	metricLogRecordsEmittedTotal.WithLabelValues(delivery).Inc()
}

func (f *LocalFabric) shouldRedeliver() bool {
	if f.rng == nil || f.redeliveryRate <= 0 {
		return false
	}
	f.rngMu.Lock()
	defer f.rngMu.Unlock()
	return f.rng.Float64() < f.redeliveryRate
}

// billedTime rounds elapsed up to the billing granularity, never below one unit.
func (f *LocalFabric) billedTime(elapsed time.Duration) time.Duration {
	units := int64(math.Ceil(float64(elapsed) / float64(f.granularity)))
	if units < 1 {
		units = 1
	}
	return time.Duration(units) * f.granularity
}

func (f *LocalFabric) recordUsage(elapsed, billed time.Duration, outboundBytes int) {
	f.statsMu.Lock()
	defer f.statsMu.Unlock()

	f.addSample(StatExecutionTime, float64(elapsed)/float64(time.Millisecond))
	f.addSample(StatEstimatedBilledTime, float64(billed/time.Millisecond))
	f.addSample(StatInvocations, 1)
	f.addSample(StatOutboundBytes, float64(outboundBytes))
}

// addSample expects statsMu held.
func (f *LocalFabric) addSample(name string, value float64) {
	s, ok := f.stats[name]
	if !ok {
		s = &runningStat{}
		f.stats[name] = s
	}
	s.count++
	s.sum += value
}
