package worker

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jzx17/parsum/pkg/aggregate"
	"github.com/jzx17/parsum/pkg/queue"
	"github.com/jzx17/parsum/pkg/types"
)

const (
	poolCreated int32 = iota
	poolRunning
	poolClosed
)

// WorkerPoolConfig defines configuration for the worker pool
type WorkerPoolConfig struct {
	// PoolSize is the number of workers, at least 1
	PoolSize int

	// TimeUnit is how long one unit of task amount takes; 0 disables delays
	TimeUnit time.Duration

	// QueueCapacity is the initial task queue capacity; the queue grows as needed
	QueueCapacity int

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// ErrorHandler (optional) is consulted when a task fails; without one a
	// failing worker exits and ShutdownAndWait reports the error
	ErrorHandler types.ErrorHandler

	// Logger (optional, defaults to a no-op logger)
	Logger *zap.Logger
}

// DefaultWorkerPoolConfig returns default configuration
func DefaultWorkerPoolConfig() *WorkerPoolConfig {
	return &WorkerPoolConfig{
		PoolSize:      4,
		TimeUnit:      time.Second,
		QueueCapacity: 64,
		Clock:         types.NewRealClock(),
		Logger:        zap.NewNop(),
	}
}

// WorkerPool owns a fixed set of workers draining one TaskQueue into one Aggregator
type WorkerPool struct {
	config  WorkerPoolConfig
	workers []*Worker
	queue   *queue.TaskQueue
	agg     *aggregate.Aggregator
	group   errgroup.Group
	logger  *zap.Logger

	// state management
	state        int32
	shutdownOnce sync.Once
	shutdownErr  error

	// statistics
	submitted int64
	completed int64
}

var _ types.WorkerPool = (*WorkerPool)(nil)

// NewWorkerPool creates a new worker pool; it does not start any worker
func NewWorkerPool(config *WorkerPoolConfig) (*WorkerPool, error) {
	if config == nil {
		config = DefaultWorkerPoolConfig()
	}

	// parameter validation
	if config.PoolSize < 1 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidWorkerCount, config.PoolSize)
	}
	if config.TimeUnit < 0 {
		return nil, fmt.Errorf("time unit must not be negative, got %v", config.TimeUnit)
	}

	cfg := *config
	if cfg.Clock == nil {
		cfg.Clock = types.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	pool := &WorkerPool{
		config:  cfg,
		workers: make([]*Worker, cfg.PoolSize),
		queue:   queue.NewWithCapacity(cfg.QueueCapacity),
		agg:     aggregate.New(),
		logger:  cfg.Logger,
	}

	// create workers
	for i := 0; i < cfg.PoolSize; i++ {
		w := NewWorkerWithClock(i, pool.queue, pool.agg, cfg.TimeUnit, cfg.Clock)
		w.SetLogger(cfg.Logger)
		if cfg.ErrorHandler != nil {
			w.SetErrorHandler(cfg.ErrorHandler)
		}
		w.SetCompletionCallback(pool.onTaskCompleted)
		pool.workers[i] = w
	}

	return pool, nil
}

func (p *WorkerPool) onTaskCompleted(types.Task, time.Duration) {
	atomic.AddInt64(&p.completed, 1)
}

// Start starts every worker
func (p *WorkerPool) Start() error {
	if !atomic.CompareAndSwapInt32(&p.state, poolCreated, poolRunning) {
		if atomic.LoadInt32(&p.state) == poolRunning {
			return types.ErrPoolRunning
		}
		return types.ErrPoolClosed
	}

	for _, w := range p.workers {
		p.group.Go(w.Run)
	}

	p.logger.Info("worker pool started",
		zap.Int("pool_size", p.config.PoolSize),
		zap.Duration("time_unit", p.config.TimeUnit))
	return nil
}

// Submit enqueues a task. Amounts below 1 are rejected before reaching the queue.
func (p *WorkerPool) Submit(task types.Task) error {
	switch atomic.LoadInt32(&p.state) {
	case poolCreated:
		return types.ErrPoolNotStarted
	case poolClosed:
		return types.ErrPoolClosed
	}

	if task.Amount < 1 {
		return fmt.Errorf("%w: %d", types.ErrInvalidAmount, task.Amount)
	}

	if err := p.queue.Enqueue(task); err != nil {
		return err
	}
	atomic.AddInt64(&p.submitted, 1)
	return nil
}

// ShutdownAndWait signals that input is exhausted, wakes every idle worker and
// blocks until all workers have drained the queue and exited. In-flight tasks
// run to completion. Later calls block until the first completes and return
// the same result: nil, or the first worker failure.
func (p *WorkerPool) ShutdownAndWait() error {
	if atomic.LoadInt32(&p.state) == poolCreated {
		return types.ErrPoolNotStarted
	}

	p.shutdownOnce.Do(func() {
		p.queue.Shutdown()
		p.shutdownErr = p.group.Wait()
		atomic.StoreInt32(&p.state, poolClosed)

		snap := p.agg.Snapshot()
		p.logger.Info("worker pool drained",
			zap.Int64("submitted", atomic.LoadInt64(&p.submitted)),
			zap.Int64("completed", atomic.LoadInt64(&p.completed)),
			zap.Int64("sum", snap.Sum),
			zap.Int64("odd", snap.OddCount),
			zap.Int64("min", snap.Min),
			zap.Int64("max", snap.Max),
			zap.Error(p.shutdownErr))
	})

	return p.shutdownErr
}

// Snapshot returns the aggregate values; final once ShutdownAndWait has returned
func (p *WorkerPool) Snapshot() types.Snapshot {
	return p.agg.Snapshot()
}

// Size returns the worker pool size
func (p *WorkerPool) Size() int {
	return p.config.PoolSize
}

// Stats gets basic worker pool statistics
func (p *WorkerPool) Stats() types.WorkerPoolStats {
	var active, exited int
	for _, w := range p.workers {
		switch w.State() {
		case WorkerStateComputing, WorkerStateWaiting:
			active++
		case WorkerStateExited:
			exited++
		}
	}

	return types.WorkerPoolStats{
		PoolSize:      p.config.PoolSize,
		ActiveWorkers: active,
		ExitedWorkers: exited,
		QueueLength:   p.queue.Len(),
		Submitted:     atomic.LoadInt64(&p.submitted),
		Completed:     atomic.LoadInt64(&p.completed),
	}
}

// GetWorkerStats gets statistics of all Workers
func (p *WorkerPool) GetWorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}

// IsRunning checks if the worker pool is running
func (p *WorkerPool) IsRunning() bool {
	return atomic.LoadInt32(&p.state) == poolRunning
}

// IsClosed checks if the worker pool has been shut down and drained
func (p *WorkerPool) IsClosed() bool {
	return atomic.LoadInt32(&p.state) == poolClosed
}

// QueueLength gets the current queue length
func (p *WorkerPool) QueueLength() int {
	return p.queue.Len()
}

// RunTasks starts a pool, submits tasks in order, shuts it down and returns
// the final snapshot.
func RunTasks(config *WorkerPoolConfig, tasks []types.Task) (types.Snapshot, error) {
	pool, err := NewWorkerPool(config)
	if err != nil {
		return types.Snapshot{}, err
	}
	if err := pool.Start(); err != nil {
		return types.Snapshot{}, err
	}

	for i, task := range tasks {
		if err := pool.Submit(task); err != nil {
			_ = pool.ShutdownAndWait()
			return pool.Snapshot(), fmt.Errorf("submit task %d: %w", i, err)
		}
	}

	if err := pool.ShutdownAndWait(); err != nil {
		return pool.Snapshot(), err
	}
	return pool.Snapshot(), nil
}
