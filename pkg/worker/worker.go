package worker

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jzx17/parsum/pkg/aggregate"
	"github.com/jzx17/parsum/pkg/queue"
	"github.com/jzx17/parsum/pkg/types"
)

// WorkerState defines the state of a Worker
type WorkerState int32

const (
	// WorkerStateFetching represents a worker taking (or waiting for) the next task
	WorkerStateFetching WorkerState = iota
	// WorkerStateComputing represents a worker processing a compute task
	WorkerStateComputing
	// WorkerStateWaiting represents a worker processing a wait task
	WorkerStateWaiting
	// WorkerStateExited represents a worker that has returned from Run
	WorkerStateExited
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateFetching:
		return "fetching"
	case WorkerStateComputing:
		return "computing"
	case WorkerStateWaiting:
		return "waiting"
	case WorkerStateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Worker drains a shared TaskQueue into a shared Aggregator
type Worker struct {
	id      int
	state   int32 // atomic state
	started int32
	queue   *queue.TaskQueue
	agg     *aggregate.Aggregator
	unit    time.Duration
	done    chan struct{}

	// statistics
	totalComputed int64
	totalWaited   int64
	totalFailed   int64
	lastTaskTime  int64 // Unix nanosecond timestamp

	// pool callback for syncing statistics
	completionCallback func(types.Task, time.Duration)

	// error handling
	errorHandler types.ErrorHandler

	logger *zap.Logger

	// time operations
	clock types.Clock

	// synchronization
	mu sync.RWMutex
}

// NewWorker creates a new Worker with default real clock
func NewWorker(id int, q *queue.TaskQueue, agg *aggregate.Aggregator, unit time.Duration) *Worker {
	return NewWorkerWithClock(id, q, agg, unit, types.NewRealClock())
}

// NewWorkerWithClock creates a new Worker with specified clock
func NewWorkerWithClock(id int, q *queue.TaskQueue, agg *aggregate.Aggregator, unit time.Duration, clock types.Clock) *Worker {
	if clock == nil {
		clock = types.NewRealClock()
	}

	return &Worker{
		id:     id,
		state:  int32(WorkerStateFetching),
		queue:  q,
		agg:    agg,
		unit:   unit,
		done:   make(chan struct{}),
		logger: zap.NewNop(),
		clock:  clock,
	}
}

// ID returns the Worker ID
func (w *Worker) ID() int {
	return w.id
}

// State returns the current Worker state
func (w *Worker) State() WorkerState {
	return WorkerState(atomic.LoadInt32(&w.state))
}

// Done returns a channel that is closed once the worker has exited
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// SetLogger sets the logger; nil restores the no-op logger
func (w *Worker) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logger = logger.With(zap.Int("worker_id", w.id))
}

// SetErrorHandler sets the error handler
func (w *Worker) SetErrorHandler(handler types.ErrorHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errorHandler = handler
}

// SetCompletionCallback sets the task completion callback
func (w *Worker) SetCompletionCallback(callback func(types.Task, time.Duration)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.completionCallback = callback
}

// Run takes and processes tasks until the queue is empty and shut down.
// The exit decision is made inside TaskQueue.Take, so a worker never exits
// while holding an unprocessed task. Run may be called only once.
func (w *Worker) Run() error {
	if !atomic.CompareAndSwapInt32(&w.started, 0, 1) {
		return fmt.Errorf("worker %d is already running", w.id)
	}

	w.mu.RLock()
	logger := w.logger
	handler := w.errorHandler
	w.mu.RUnlock()

	defer func() {
		w.setState(WorkerStateExited)
		close(w.done)
	}()

	logger.Debug("worker started")

	for {
		w.setState(WorkerStateFetching)

		task, ok := w.queue.Take()
		if !ok {
			logger.Debug("worker exited",
				zap.Int64("computed", atomic.LoadInt64(&w.totalComputed)),
				zap.Int64("waited", atomic.LoadInt64(&w.totalWaited)))
			return nil
		}

		if err := w.processTask(task); err != nil {
			atomic.AddInt64(&w.totalFailed, 1)
			if handler != nil {
				err = handler(err)
			}
			if err != nil {
				logger.Error("worker failed", zap.Stringer("task", task), zap.Error(err))
				return err
			}
			logger.Warn("task failed, continuing", zap.Stringer("task", task))
		}
	}
}

// processTask processes a single task
func (w *Worker) processTask(task types.Task) error {
	if task.Kind == types.KindCompute {
		w.setState(WorkerStateComputing)
	} else {
		w.setState(WorkerStateWaiting)
	}

	// record start time
	startTime := w.clock.Now()
	atomic.StoreInt64(&w.lastTaskTime, startTime.UnixNano())

	if err := w.executeTask(task); err != nil {
		return err
	}

	executionTime := w.clock.Since(startTime)

	if task.Kind == types.KindCompute {
		atomic.AddInt64(&w.totalComputed, 1)
	} else {
		atomic.AddInt64(&w.totalWaited, 1)
	}

	w.mu.RLock()
	callback := w.completionCallback
	w.mu.RUnlock()

	if callback != nil {
		callback(task, executionTime)
	}
	return nil
}

func (w *Worker) setState(state WorkerState) {
	atomic.StoreInt32(&w.state, int32(state))
}

// Stats gets Worker statistics
func (w *Worker) Stats() WorkerStats {
	return WorkerStats{
		ID:           w.id,
		State:        w.State(),
		Computed:     atomic.LoadInt64(&w.totalComputed),
		Waited:       atomic.LoadInt64(&w.totalWaited),
		Failed:       atomic.LoadInt64(&w.totalFailed),
		LastTaskTime: time.Unix(0, atomic.LoadInt64(&w.lastTaskTime)),
	}
}

// WorkerStats defines Worker statistics
type WorkerStats struct {
	ID           int
	State        WorkerState
	Computed     int64
	Waited       int64
	Failed       int64
	LastTaskTime time.Time
}

// IsActive checks if Worker is processing a task
func (ws WorkerStats) IsActive() bool {
	return ws.State == WorkerStateComputing || ws.State == WorkerStateWaiting
}

// IsExited checks if Worker has exited
func (ws WorkerStats) IsExited() bool {
	return ws.State == WorkerStateExited
}

// Processed returns the number of tasks the worker has completed
func (ws WorkerStats) Processed() int64 {
	return ws.Computed + ws.Waited
}
