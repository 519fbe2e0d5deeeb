// Package types defines core interfaces and types shared by the queue, aggregator and worker pool
package types

import (
	"fmt"
	"math"
)

const (
	// MinSentinel is the Snapshot.Min value before any compute task was processed
	MinSentinel int64 = math.MaxInt64
	// MaxSentinel is the Snapshot.Max value before any compute task was processed
	MaxSentinel int64 = math.MinInt64
)

// WorkerPool defines the worker pool interface seen by the producer
type WorkerPool interface {
	// Start starts the worker pool
	Start() error

	// Submit enqueues a task for the workers
	Submit(task Task) error

	// ShutdownAndWait signals that no more tasks will arrive and blocks until every worker has exited
	ShutdownAndWait() error

	// Snapshot returns the aggregate values; final once ShutdownAndWait has returned
	Snapshot() Snapshot

	// Size returns the size of the worker pool
	Size() int

	// Stats returns worker pool statistics
	Stats() WorkerPoolStats
}

// ErrorHandler decides what happens when a worker fails to process a task.
// Returning nil marks the error as handled and the worker continues;
// returning an error makes the worker exit with it.
type ErrorHandler func(error) error

// Snapshot is a copy of the aggregate state
type Snapshot struct {
	// Sum is the sum of all compute amounts
	Sum int64

	// OddCount is the number of odd compute amounts
	OddCount int64

	// Min is the smallest compute amount, MinSentinel if none
	Min int64

	// Max is the largest compute amount, MaxSentinel if none
	Max int64

	// Count is the number of compute amounts incorporated
	Count int64
}

// EmptySnapshot returns the snapshot of an aggregate that has seen no compute task
func EmptySnapshot() Snapshot {
	return Snapshot{Min: MinSentinel, Max: MaxSentinel}
}

// HasValues reports whether at least one compute amount was incorporated
func (s Snapshot) HasValues() bool {
	return s.Count > 0
}

// String renders the result line "<sum> <odd> <min> <max>"
func (s Snapshot) String() string {
	return fmt.Sprintf("%d %d %d %d", s.Sum, s.OddCount, s.Min, s.Max)
}

// WorkerPoolStats defines basic statistics for worker pools
type WorkerPoolStats struct {
	// PoolSize is the size of the pool
	PoolSize int

	// ActiveWorkers is the number of workers currently processing a task
	ActiveWorkers int

	// ExitedWorkers is the number of workers that have exited
	ExitedWorkers int

	// QueueLength is the current number of tasks in the queue
	QueueLength int

	// Submitted is the number of tasks accepted by Submit
	Submitted int64

	// Completed is the number of tasks fully processed
	Completed int64
}
