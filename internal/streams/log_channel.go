package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"strconv"
	"sync"

	"fabric-ledger/internal/events"
	"fabric-ledger/internal/shared/loggers"
	"fabric-ledger/internal/shared/metrics"
	"fabric-ledger/internal/shared/svcerrors"
	"fabric-ledger/internal/shared/ulid"
)

// LogHandler receives one delivered log record. Handlers of the same channel run on
// the partition workers, so a handler must be safe for concurrent use.
type LogHandler func(ctx context.Context, record events.LogRecord)

// LogChannel is the asynchronous stream of log records emitted by the execution
// fabric. Records are partitioned by invocation id: records of one invocation are
// delivered in publish order, records of different invocations interleave freely.
// Publishing a record twice delivers it twice.
//
//go:generate mockgen -source=log_channel.go -destination=./mocks/log_channel_mock.go -package=mocks
type LogChannel interface {
	Publish(ctx context.Context, record events.LogRecord) error
	// Subscribe registers handler for every record dispatched after the call and
	// returns a func that removes it again.
	Subscribe(handler LogHandler) (unsubscribe func())
	// Start spawns 1 worker goroutine per partition.
	Start(ctx context.Context)
	// Stop waits for workers to stop (best called during app shutdown).
	Stop()
	// Drain blocks until every record published so far has been dispatched.
	Drain(ctx context.Context) error
}

type subscription struct {
	id      uint64
	handler LogHandler
}

type logChannel struct {
	queue *PartitionedQueue[events.LogRecord]

	subsMu sync.RWMutex
	subs   map[uint64]LogHandler
	nextID uint64

	pendingMu sync.Mutex
	pending   int
	idle      chan struct{} // closed while pending == 0

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewLogChannel(queue *PartitionedQueue[events.LogRecord], logger loggers.Logger) LogChannel {
	idle := make(chan struct{})
	close(idle)
	return &logChannel{
		queue:  queue,
		subs:   make(map[uint64]LogHandler),
		idle:   idle,
		stopCh: make(chan struct{}),
		logger: logger,
	}
}

func (c *logChannel) Publish(ctx context.Context, record events.LogRecord) error {
	select {
	case <-c.stopCh:
		svcErr := errChannelStopped()
		metricLogRecordPublishedTotal.WithLabelValues(streamLogRecord, svcErr.Code).Inc()
		return svcErr
	default:
	}

	c.addPending()
	if err := c.queue.Publish(ctx, record.PartitionKey(), record); err != nil {
		c.donePending()
		svcErr := errPublishCanceled(err)
		metricLogRecordPublishedTotal.WithLabelValues(streamLogRecord, svcErr.Code).Inc()
		return svcErr
	}
	metricLogRecordPublishedTotal.WithLabelValues(streamLogRecord, metrics.ValueNoError).Inc()
	return nil
}

func (c *logChannel) Subscribe(handler LogHandler) func() {
	c.subsMu.Lock()
	c.nextID++
	id := c.nextID
	c.subs[id] = handler
	metricSubscribers.WithLabelValues(streamLogRecord).Set(float64(len(c.subs)))
	c.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subsMu.Lock()
			delete(c.subs, id)
			metricSubscribers.WithLabelValues(streamLogRecord).Set(float64(len(c.subs)))
			c.subsMu.Unlock()
		})
	}
}

func (c *logChannel) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < c.queue.PartitionCount(); partitionIndex++ {
		partitionIndex := partitionIndex
		ch := c.queue.Partition(partitionIndex)
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

func (c *logChannel) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.wg.Wait()
}

func (c *logChannel) Drain(ctx context.Context) error {
	c.pendingMu.Lock()
	idle := c.idle
	c.pendingMu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *logChannel) addPending() {
	c.pendingMu.Lock()
	if c.pending == 0 {
		c.idle = make(chan struct{})
	}
	c.pending++
	c.pendingMu.Unlock()
}

func (c *logChannel) donePending() {
	c.pendingMu.Lock()
	c.pending--
	if c.pending == 0 {
		close(c.idle)
	}
	c.pendingMu.Unlock()
}

// snapshotSubscribers returns the handlers in subscription order.
func (c *logChannel) snapshotSubscribers() []subscription {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()

	out := make([]subscription, 0, len(c.subs))
	for id, h := range c.subs {
		out = append(out, subscription{id: id, handler: h})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (c *logChannel) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.LogRecord) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case record, ok := <-ch:
			if !ok {
				return
			}
			c.dispatch(ctx, partitionIndex, record)
		}
	}
}

func (c *logChannel) dispatch(ctx context.Context, partitionIndex int, record events.LogRecord) {
	defer c.donePending()

	recordCtx := c.logger.With().
		Str(loggers.FieldPartitionId, strconv.Itoa(partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Str(loggers.FieldInvocationID, record.InvocationID).
		Logger().WithContext(ctx)

	for _, sub := range c.snapshotSubscribers() {
		c.deliver(recordCtx, sub.handler, record)
	}
}

// deliver runs one handler, recovering a panic so the worker keeps serving its lane.
func (c *logChannel) deliver(ctx context.Context, handler LogHandler, record events.LogRecord) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("log handler panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricLogRecordDeliveredTotal.WithLabelValues(streamLogRecord, svcErr.Code).Inc()
		}
	}()

	handler(ctx, record)
	metricLogRecordDeliveredTotal.WithLabelValues(streamLogRecord, metrics.ValueNoError).Inc()
}
