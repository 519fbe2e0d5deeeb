// Package testutils provides simplified testing utilities and helper functions
package testutils

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jzx17/parsum/pkg/types"
	"github.com/stretchr/testify/assert"
)

// ComputeTasks builds compute tasks for the given amounts
func ComputeTasks(amounts ...int64) []types.Task {
	tasks := make([]types.Task, len(amounts))
	for i, v := range amounts {
		tasks[i] = types.Compute(v)
	}
	return tasks
}

// RandomTasks builds n tasks with amounts in [1, maxAmount]; roughly one in
// four is a wait task.
func RandomTasks(rng *rand.Rand, n int, maxAmount int64) []types.Task {
	tasks := make([]types.Task, n)
	for i := range tasks {
		amount := rng.Int63n(maxAmount) + 1
		if rng.Intn(4) == 0 {
			tasks[i] = types.Wait(amount)
		} else {
			tasks[i] = types.Compute(amount)
		}
	}
	return tasks
}

// ExpectedSnapshot computes the aggregate serially
func ExpectedSnapshot(tasks []types.Task) types.Snapshot {
	snap := types.EmptySnapshot()
	for _, task := range tasks {
		if task.Kind != types.KindCompute {
			continue
		}
		snap.Sum += task.Amount
		if task.Amount%2 != 0 {
			snap.OddCount++
		}
		snap.Min = min(snap.Min, task.Amount)
		snap.Max = max(snap.Max, task.Amount)
		snap.Count++
	}
	return snap
}

// CountKind counts tasks of a kind
func CountKind(tasks []types.Task, kind types.TaskKind) int64 {
	var n int64
	for _, task := range tasks {
		if task.Kind == kind {
			n++
		}
	}
	return n
}

// WaitClosed fails the test if ch is not closed within timeout
func WaitClosed(t testing.TB, ch <-chan struct{}, timeout time.Duration, msgAndArgs ...interface{}) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return assert.Fail(t, "channel not closed in time", msgAndArgs...)
	}
}

// Async runs fn in a goroutine and returns a channel closed when it returns
func Async(fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	return done
}
