package supervisors

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fabric-ledger/internal/accounting"
	"fabric-ledger/internal/aggregators"
	"fabric-ledger/internal/correlation"
	"fabric-ledger/internal/fabric"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/shared/tracing"
	"fabric-ledger/internal/shared/ulid"
	"fabric-ledger/internal/stores"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxConcurrency = 64
	defaultAwaitTimeout   = 10 * time.Second
)

// BatchRequest asks for Count concurrent invocations of Function. Payload, when set,
// builds the payload of invocation i.
type BatchRequest struct {
	Function string
	Count    int
	Payload  func(i int) []byte
}

// BatchResult is the outcome of one fully observed batch.
type BatchResult struct {
	WindowID string
	Epoch    uint64
	Ledger   models.CorrelationLedger
	// Failures holds the invocations the fabric reported as failed, keyed by token.
	Failures map[models.CorrelationToken]*fabric.InvocationError
	Report   *models.CostReport
	// ReportID is empty unless the report was persisted.
	ReportID string
}

// InvocationSupervisor runs batches of invocations under one observation window and
// prices the usage they consumed.
//
//go:generate mockgen -source=invocation_supervisor.go -destination=./mocks/invocation_supervisor_mock.go -package=mocks
type InvocationSupervisor interface {
	RunBatch(ctx context.Context, req BatchRequest) (*BatchResult, error)
}

type Option func(*invocationSupervisor)

func WithMaxConcurrency(n int) Option {
	return func(s *invocationSupervisor) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

func WithAwaitTimeout(d time.Duration) Option {
	return func(s *invocationSupervisor) {
		if d > 0 {
			s.awaitTimeout = d
		}
	}
}

// WithStartupProbe makes every batch verify startup before opening its window.
func WithStartupProbe(probe fabric.StartupProbe) Option {
	return func(s *invocationSupervisor) {
		s.probe = probe
	}
}

// LogDrainer flushes log records already handed to the log channel.
type LogDrainer interface {
	Drain(ctx context.Context) error
}

// WithLogDrain makes the supervisor wait for in-flight log records before closing a
// window, so late duplicates are still counted.
func WithLogDrain(drainer LogDrainer) Option {
	return func(s *invocationSupervisor) {
		s.drainer = drainer
	}
}

// WithReportStore persists every verified report.
func WithReportStore(store stores.CostReportStore) Option {
	return func(s *invocationSupervisor) {
		s.reportStore = store
	}
}

type invocationSupervisor struct {
	fabric     fabric.ExecutionFabric
	correlator correlation.LogCorrelationEngine
	collector  aggregators.UsageCollector
	accountant accounting.CostAccountingEngine
	tracer     tracing.Tracer

	maxConcurrency int
	awaitTimeout   time.Duration
	probe          fabric.StartupProbe
	drainer        LogDrainer
	reportStore    stores.CostReportStore

	// one batch at a time; the correlation engine holds a single window
	runMu sync.Mutex
}

func NewInvocationSupervisor(
	fab fabric.ExecutionFabric,
	correlator correlation.LogCorrelationEngine,
	collector aggregators.UsageCollector,
	accountant accounting.CostAccountingEngine,
	tracer tracing.Tracer,
	opts ...Option,
) InvocationSupervisor {
	s := &invocationSupervisor{
		fabric:         fab,
		correlator:     correlator,
		collector:      collector,
		accountant:     accountant,
		tracer:         tracer,
		maxConcurrency: defaultMaxConcurrency,
		awaitTimeout:   defaultAwaitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *invocationSupervisor) RunBatch(ctx context.Context, req BatchRequest) (result *BatchResult, err error) {
	if err := validateRequest(req); err != nil {
		metricBatchesTotal.WithLabelValues(err.Code).Inc()
		return nil, err
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "supervisor.run_batch")
	defer span.End()
	span.SetAttributes(
		attribute.String("function", req.Function),
		attribute.Int("count", req.Count),
	)
	defer func() {
		metricBatchDurationSeconds.WithLabelValues().Observe(time.Since(start).Seconds())
		s.countBatch(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if s.probe != nil {
		if err := s.probe.VerifyStartup(ctx); err != nil {
			return nil, errStartupProbeFailed(req.Function, err)
		}
	}

	expected := make([]models.CorrelationToken, req.Count)
	for i := range expected {
		expected[i] = models.TokenFromIndex(i)
	}

	handle, err := s.correlator.OpenWindow(ctx, expected)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("window_id", handle.WindowID),
		attribute.Int64("epoch", int64(handle.Epoch)),
	)
	ctx = loggers.Ctx(ctx).With().
		Str(loggers.FieldWindowID, handle.WindowID).
		Uint64(loggers.FieldEpoch, handle.Epoch).
		Str(loggers.FieldFunction, req.Function).
		Logger().WithContext(ctx)
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("opened window for %d invocation(s)", req.Count)

	failures := s.dispatch(ctx, handle, req)

	awaitCtx, cancel := context.WithTimeout(ctx, s.awaitTimeout)
	awaitErr := s.correlator.AwaitCompletion(awaitCtx)
	if s.drainer != nil {
		if err := s.drainer.Drain(awaitCtx); err != nil {
			logger.Warn().Err(err).Msg("log channel not drained before closing window")
		}
	}
	cancel()

	// the window is closed on every path so the next batch can open
	ledger, err := s.correlator.CloseWindow(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str(loggers.FieldOutcome, string(ledger.Outcome)).
		Int("failures", len(failures)).
		Int("anomalies", len(ledger.Anomalies)).
		Msg("closed window")
	if len(failures) > 0 {
		logger.Warn().Strs("tokens", sortedFailureTokens(failures)).Msg("invocations failed")
	}

	// usage is accounted even for a failed batch; the fabric billed it regardless
	if err := s.collectUsage(ctx); err != nil {
		return nil, err
	}

	if awaitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errBatchCanceled(ctxErr)
		}
		return nil, awaitErr
	}
	if dups := duplicateCounts(ledger); len(dups) > 0 {
		return nil, errDuplicateObserved(ledger.WindowID, dups)
	}

	report, err := s.accountant.GenerateReport(ctx)
	if err != nil {
		return nil, errInternalReportFailed(err)
	}
	if err := accounting.VerifyReport(report); err != nil {
		return nil, errInternalReportFailed(err)
	}

	result = &BatchResult{
		WindowID: handle.WindowID,
		Epoch:    handle.Epoch,
		Ledger:   ledger,
		Failures: failures,
		Report:   report,
	}

	if s.reportStore != nil {
		reportID := ulid.NewULID()
		if _, err := s.reportStore.Put(ctx, reportID, report); err != nil {
			return nil, errInternalReportPersistFailed(err)
		}
		result.ReportID = reportID
		logger.Debug().Str(loggers.FieldReportID, reportID).Msg("persisted cost report")
	}

	return result, nil
}

// dispatch runs every invocation of req, at most maxConcurrency at a time. A failed
// invocation never cancels its siblings.
func (s *invocationSupervisor) dispatch(ctx context.Context, handle correlation.WindowHandle, req BatchRequest) map[models.CorrelationToken]*fabric.InvocationError {
	var (
		mu       sync.Mutex
		failures = make(map[models.CorrelationToken]*fabric.InvocationError)
	)

	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i := 0; i < req.Count; i++ {
		inv := fabric.Invocation{
			Function: req.Function,
			Token:    models.TokenFromIndex(i),
			Epoch:    handle.Epoch,
		}
		if req.Payload != nil {
			inv.Payload = req.Payload(i)
		}

		g.Go(func() error {
			if err := s.invoke(ctx, inv); err != nil {
				mu.Lock()
				failures[inv.Token] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return failures
}

func (s *invocationSupervisor) invoke(ctx context.Context, inv fabric.Invocation) *fabric.InvocationError {
	ctx, span := s.tracer.Start(ctx, "supervisor.invoke")
	defer span.End()
	span.SetAttributes(attribute.String("token", string(inv.Token)))

	_, err := s.fabric.Invoke(ctx, inv)
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	metricInvocationFailuresTotal.WithLabelValues(inv.Function).Inc()

	var invErr *fabric.InvocationError
	if errors.As(err, &invErr) {
		return invErr
	}
	return &fabric.InvocationError{Function: inv.Function, Message: err.Error(), Cause: err}
}

func (s *invocationSupervisor) collectUsage(ctx context.Context) error {
	snapshot, err := s.fabric.GetUsageStats(ctx)
	if err != nil {
		return errInternalUsageCollectFailed(err)
	}
	if err := s.collector.Collect(ctx, snapshot); err != nil {
		return errInternalUsageCollectFailed(err)
	}
	return nil
}

func (s *invocationSupervisor) countBatch(err error) {
	if err == nil {
		metricBatchesTotal.WithLabelValues(metrics.ValueNoError).Inc()
		return
	}
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		metricBatchesTotal.WithLabelValues(svcErr.Code).Inc()
		return
	}
	metricBatchesTotal.WithLabelValues("unknown").Inc()
}

func validateRequest(req BatchRequest) *svcerrors.ServiceError {
	if req.Function == "" {
		return errInvalidBatchRequest("function is required")
	}
	if req.Count < 1 {
		return errInvalidBatchRequest(fmt.Sprintf("count must be >= 1, got %d", req.Count))
	}
	return nil
}

func duplicateCounts(ledger models.CorrelationLedger) map[models.CorrelationToken]int {
	dups := make(map[models.CorrelationToken]int)
	for token := range ledger.Expected {
		if n := ledger.ObservedCounts[token]; n > 1 {
			dups[token] = n
		}
	}
	return dups
}
