// Package aggregate maintains the running sum, odd count, minimum and maximum
// of compute task amounts.
package aggregate

import (
	"sync"

	"github.com/jzx17/parsum/pkg/types"
)

// Aggregator is the single owner of the aggregate state. All four fields are
// guarded by one mutex, so every Snapshot reflects a whole number of updates.
//
// Sum is an int64; inputs whose total exceeds math.MaxInt64 wrap around.
type Aggregator struct {
	mu    sync.Mutex
	state types.Snapshot
}

// New creates an aggregator holding the empty snapshot
func New() *Aggregator {
	return &Aggregator{state: types.EmptySnapshot()}
}

// Update incorporates amount into the aggregate
func (a *Aggregator) Update(amount int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Sum += amount
	if amount%2 != 0 {
		a.state.OddCount++
	}
	if amount < a.state.Min {
		a.state.Min = amount
	}
	if amount > a.state.Max {
		a.state.Max = amount
	}
	a.state.Count++
}

// Snapshot returns a copy of the current aggregate state
func (a *Aggregator) Snapshot() types.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}
