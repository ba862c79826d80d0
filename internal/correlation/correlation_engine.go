package correlation

import (
	"context"
	"sync"
	"time"

	"fabric-ledger/internal/events"
	"fabric-ledger/internal/models"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/ulid"
)

// AnomalyPolicy decides what an unexpected token does to the open window.
type AnomalyPolicy string

const (
	// AnomalyPolicyRecord counts the token and keeps the window going.
	AnomalyPolicyRecord AnomalyPolicy = "record"
	// AnomalyPolicyFailFast fails AwaitCompletion on the first unexpected token.
	AnomalyPolicyFailFast AnomalyPolicy = "fail_fast"
)

// UntaggedPolicy decides what happens to records that carry no window epoch.
type UntaggedPolicy string

const (
	// UntaggedAttribute counts untagged records toward the window open when they arrive.
	UntaggedAttribute UntaggedPolicy = "attribute"
	// UntaggedDiscard drops untagged records, so only epoch-stamped records count.
	UntaggedDiscard UntaggedPolicy = "discard"
)

// Option customizes a LogCorrelationEngine.
type Option func(*logCorrelationEngine)

// WithUntaggedPolicy sets how records without an epoch are treated. Empty keeps the default.
func WithUntaggedPolicy(policy UntaggedPolicy) Option {
	return func(e *logCorrelationEngine) {
		if policy != "" {
			e.untagged = policy
		}
	}
}

// WindowHandle identifies an open observation window. Dispatchers stamp Epoch on the
// log records of the window's invocations.
type WindowHandle struct {
	WindowID string
	Epoch    uint64
}

// LogCorrelationEngine tracks, per observation window, which expected correlation
// tokens have been seen in the log stream and how often.
//
// State machine: no window -> OpenWindow -> OPEN -> (all expected tokens seen) ->
// CLOSED -> CloseWindow -> no window. CloseWindow also abandons a window that never
// reached CLOSED. At most one window is open at a time.
//
//go:generate mockgen -source=correlation_engine.go -destination=./mocks/correlation_engine_mock.go -package=mocks
type LogCorrelationEngine interface {
	OpenWindow(ctx context.Context, expected []models.CorrelationToken) (WindowHandle, error)
	// HandleRecord is the log channel subscriber.
	HandleRecord(ctx context.Context, record events.LogRecord)
	// AwaitCompletion blocks until every expected token has been observed, ctx is done,
	// or (fail-fast only) an unexpected token arrives.
	AwaitCompletion(ctx context.Context) error
	// CloseWindow returns a copy of the final ledger and clears the window.
	CloseWindow(ctx context.Context) (models.CorrelationLedger, error)
}

type window struct {
	ledger    *models.CorrelationLedger
	remaining int
	done      chan struct{}
	failed    chan struct{}
	failure   error
}

type logCorrelationEngine struct {
	matcher  TokenMatcher
	policy   AnomalyPolicy
	untagged UntaggedPolicy
	now      func() time.Time

	mu     sync.Mutex
	epoch  uint64
	active *window
}

func NewLogCorrelationEngine(matcher TokenMatcher, policy AnomalyPolicy, opts ...Option) LogCorrelationEngine {
	if policy == "" {
		policy = AnomalyPolicyRecord
	}
	e := &logCorrelationEngine{
		matcher:  matcher,
		policy:   policy,
		untagged: UntaggedAttribute,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *logCorrelationEngine) OpenWindow(ctx context.Context, expected []models.CorrelationToken) (WindowHandle, error) {
	if len(expected) == 0 {
		return WindowHandle{}, errEmptyExpectation()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return WindowHandle{}, errWindowAlreadyOpen(e.active.ledger.WindowID)
	}

	e.epoch++
	ledger := models.NewCorrelationLedger(ulid.NewULID(), e.epoch, expected, e.now())
	e.active = &window{
		ledger:    ledger,
		remaining: len(ledger.Expected),
		done:      make(chan struct{}),
		failed:    make(chan struct{}),
	}

	loggers.Ctx(ctx).Info().
		Str(loggers.FieldWindowID, ledger.WindowID).
		Uint64(loggers.FieldEpoch, ledger.Epoch).
		Int("expected", len(ledger.Expected)).
		Msg("observation window opened")

	return WindowHandle{WindowID: ledger.WindowID, Epoch: ledger.Epoch}, nil
}

func (e *logCorrelationEngine) HandleRecord(ctx context.Context, record events.LogRecord) {
	token, ok := e.matcher.Match(record.Text)
	if !ok {
		metricRecordsTotal.WithLabelValues(recordUnmatched).Inc()
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	w := e.active
	// records of an abandoned window, or arriving with no window open, belong to nobody
	if w == nil || !e.belongsTo(w, record) {
		metricRecordsTotal.WithLabelValues(recordStale).Inc()
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldToken, string(token)).
			Uint64(loggers.FieldEpoch, record.Epoch).
			Msg("stale log record discarded")
		return
	}

	if !w.ledger.IsExpected(token) {
		w.ledger.Anomalies[token]++
		metricRecordsTotal.WithLabelValues(recordAnomaly).Inc()
		loggers.Ctx(ctx).Warn().
			Str(loggers.FieldWindowID, w.ledger.WindowID).
			Str(loggers.FieldToken, string(token)).
			Msg("unexpected correlation token")

		if e.policy == AnomalyPolicyFailFast && w.failure == nil {
			w.failure = errAnomalousToken(w.ledger.WindowID, token)
			close(w.failed)
		}
		return
	}

	w.ledger.ObservedCounts[token]++
	if w.ledger.ObservedCounts[token] > 1 {
		metricRecordsTotal.WithLabelValues(recordDuplicate).Inc()
		loggers.Ctx(ctx).Warn().
			Str(loggers.FieldWindowID, w.ledger.WindowID).
			Str(loggers.FieldToken, string(token)).
			Int("count", w.ledger.ObservedCounts[token]).
			Msg("correlation token observed more than once")
		return
	}

	metricRecordsTotal.WithLabelValues(recordMatched).Inc()
	w.remaining--
	if w.remaining == 0 {
		close(w.done)
	}
}

func (e *logCorrelationEngine) belongsTo(w *window, record events.LogRecord) bool {
	if record.Epoch == 0 {
		return e.untagged == UntaggedAttribute
	}
	return record.Epoch == w.ledger.Epoch
}

func (e *logCorrelationEngine) AwaitCompletion(ctx context.Context) error {
	e.mu.Lock()
	w := e.active
	e.mu.Unlock()

	if w == nil {
		return errNoWindowOpen()
	}

	select {
	case <-w.done:
		return nil
	default:
	}

	select {
	case <-w.done:
		return nil
	case <-w.failed:
		return w.failure
	case <-ctx.Done():
		// the window may have settled in the same instant the deadline fired
		e.mu.Lock()
		remaining, failure := w.remaining, w.failure
		missing := w.ledger.Missing()
		e.mu.Unlock()
		if failure != nil {
			return failure
		}
		if remaining == 0 {
			return nil
		}

		loggers.Ctx(ctx).Warn().
			Str(loggers.FieldWindowID, w.ledger.WindowID).
			Int("missing", len(missing)).
			Msg("gave up waiting for correlation tokens")
		return errIncomplete(w.ledger.WindowID, missing, ctx.Err())
	}
}

func (e *logCorrelationEngine) CloseWindow(ctx context.Context) (models.CorrelationLedger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	w := e.active
	if w == nil {
		return models.CorrelationLedger{}, errNoWindowOpen()
	}
	e.active = nil

	ledger := w.ledger
	ledger.ClosedAt = e.now()
	switch {
	case w.failure != nil:
		ledger.Outcome = models.WindowAnomalous
	case ledger.IsComplete():
		ledger.Outcome = models.WindowComplete
	default:
		ledger.Outcome = models.WindowAbandoned
	}

	outcome := string(ledger.Outcome)
	metricWindowsClosedTotal.WithLabelValues(outcome).Inc()
	metricWindowDurationSeconds.WithLabelValues(outcome).Observe(ledger.ClosedAt.Sub(ledger.OpenedAt).Seconds())

	loggers.Ctx(ctx).Info().
		Str(loggers.FieldWindowID, ledger.WindowID).
		Uint64(loggers.FieldEpoch, ledger.Epoch).
		Str(loggers.FieldOutcome, outcome).
		Int("missing", len(ledger.Missing())).
		Int("duplicates", len(ledger.Duplicates())).
		Int("anomalies", len(ledger.Anomalies)).
		Msg("observation window closed")

	return ledger.Clone(), nil
}
