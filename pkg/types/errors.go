// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrInvalidWorkerCount indicates a pool was configured with fewer than one worker
	ErrInvalidWorkerCount = errors.New("invalid number of threads")

	// ErrInvalidAmount indicates a task amount that is not a positive integer
	ErrInvalidAmount = errors.New("invalid action parameter")

	// ErrUnknownAction indicates an action character other than compute or wait
	ErrUnknownAction = errors.New("unrecognized action")

	// ErrInvalidInput indicates a record that could not be parsed
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueueShutdown indicates the queue no longer accepts tasks
	ErrQueueShutdown = errors.New("task queue is shut down")

	// ErrPoolNotStarted indicates the worker pool has not been started
	ErrPoolNotStarted = errors.New("worker pool is not started")

	// ErrPoolRunning indicates the worker pool is already running
	ErrPoolRunning = errors.New("worker pool is already running")

	// ErrPoolClosed indicates the worker pool has been shut down
	ErrPoolClosed = errors.New("worker pool is closed")
)

// TaskError represents a failure while a worker was processing a task
type TaskError struct {
	// Operation is the name of the operation where the error occurred
	Operation string

	// Task is the task being processed when the error occurred
	Task Task

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task error in operation %s (%s): %v", e.Operation, e.Task, e.Cause)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *TaskError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewTaskError creates a new task error
func NewTaskError(operation string, task Task, cause error) *TaskError {
	return &TaskError{
		Operation: operation,
		Task:      task,
		Cause:     cause,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	e.Context[key] = value
	return e
}
