// Package queue provides the blocking FIFO shared by the producer and the workers
package queue

import (
	"sync"

	"github.com/jzx17/parsum/pkg/types"
)

// defaultCapacity is the initial ring buffer size
const defaultCapacity = 16

// TaskQueue is an unbounded FIFO of tasks with blocking removal.
//
// The shutdown flag lives under the same mutex as the buffer, so a taker
// observes "queue empty" and "shutdown signaled" as one atomic state.
type TaskQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond

	// ring buffer; buf[head] is the oldest task
	buf  []types.Task
	head int
	size int

	shutdown bool
}

// New creates an empty task queue
func New() *TaskQueue {
	return NewWithCapacity(defaultCapacity)
}

// NewWithCapacity creates an empty task queue with an initial buffer capacity
func NewWithCapacity(capacity int) *TaskQueue {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	q := &TaskQueue{
		buf: make([]types.Task, capacity),
	}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends a task to the tail and wakes one blocked taker.
// It fails only with ErrQueueShutdown once Shutdown has been called.
func (q *TaskQueue) Enqueue(task types.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown {
		return types.ErrQueueShutdown
	}

	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = task
	q.size++

	q.notEmpty.Signal()
	return nil
}

// Take removes and returns the head task, blocking while the queue is empty
// and shutdown has not been signaled. It returns false only when the queue
// is empty and shutdown has been signaled.
func (q *TaskQueue) Take() (types.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == 0 && !q.shutdown {
		q.notEmpty.Wait()
	}

	if q.size == 0 {
		return types.Task{}, false
	}

	task := q.buf[q.head]
	q.buf[q.head] = types.Task{}
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return task, true
}

// TryTake removes the head task without blocking
func (q *TaskQueue) TryTake() (types.Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		return types.Task{}, false
	}

	task := q.buf[q.head]
	q.buf[q.head] = types.Task{}
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return task, true
}

// Shutdown marks that no further tasks will be enqueued and wakes every
// blocked taker. It reports whether this call performed the transition.
func (q *TaskQueue) Shutdown() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown {
		return false
	}
	q.shutdown = true
	q.notEmpty.Broadcast()
	return true
}

// IsShutdown reports whether Shutdown has been called
func (q *TaskQueue) IsShutdown() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.shutdown
}

// Len returns the number of pending tasks
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap returns the current buffer capacity
func (q *TaskQueue) Cap() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// grow doubles the buffer, unwrapping the ring so head is at index 0.
// Caller must hold q.mu.
func (q *TaskQueue) grow() {
	buf := make([]types.Task, len(q.buf)*2)
	n := copy(buf, q.buf[q.head:])
	copy(buf[n:], q.buf[:q.head])
	q.buf = buf
	q.head = 0
}
