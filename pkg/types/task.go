package types

import (
	"fmt"
)

// TaskKind defines what a task does once a worker has taken it
type TaskKind int

const (
	// KindCompute simulates work and then contributes its amount to the aggregate
	KindCompute TaskKind = iota
	// KindWait simulates work with no aggregate effect
	KindWait
)

// String returns the string representation of TaskKind
func (k TaskKind) String() string {
	switch k {
	case KindCompute:
		return "compute"
	case KindWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Action returns the input action character for the kind
func (k TaskKind) Action() byte {
	switch k {
	case KindCompute:
		return 'p'
	case KindWait:
		return 'w'
	default:
		return '?'
	}
}

// ParseKind maps an input action character to a TaskKind
func ParseKind(action byte) (TaskKind, error) {
	switch action {
	case 'p':
		return KindCompute, nil
	case 'w':
		return KindWait, nil
	default:
		return 0, fmt.Errorf("%w: '%c'", ErrUnknownAction, action)
	}
}

// Task is an immutable unit of work
type Task struct {
	Kind   TaskKind
	Amount int64
}

// NewTask creates a task, rejecting non-positive amounts and unknown kinds
func NewTask(kind TaskKind, amount int64) (Task, error) {
	if amount < 1 {
		return Task{}, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if kind != KindCompute && kind != KindWait {
		return Task{}, fmt.Errorf("%w: kind %d", ErrUnknownAction, int(kind))
	}
	return Task{Kind: kind, Amount: amount}, nil
}

// Compute creates a compute task without validation, for callers that already hold a positive amount
func Compute(amount int64) Task {
	return Task{Kind: KindCompute, Amount: amount}
}

// Wait creates a wait task without validation
func Wait(amount int64) Task {
	return Task{Kind: KindWait, Amount: amount}
}

// String renders the task in input form, e.g. "p 3"
func (t Task) String() string {
	return fmt.Sprintf("%c %d", t.Kind.Action(), t.Amount)
}
