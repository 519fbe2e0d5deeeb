package queue

import (
	"math/rand"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jzx17/parsum/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQueue_FIFO(t *testing.T) {
	q := New()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, q.Enqueue(types.Compute(i)))
	}
	assert.Equal(t, 5, q.Len())

	for i := int64(1); i <= 5; i++ {
		task, ok := q.Take()
		require.True(t, ok)
		assert.Equal(t, i, task.Amount)
	}
	assert.Equal(t, 0, q.Len())
}

func TestTaskQueue_GrowPreservesOrder(t *testing.T) {
	q := NewWithCapacity(2)

	require.NoError(t, q.Enqueue(types.Compute(1)))
	require.NoError(t, q.Enqueue(types.Compute(2)))

	// move head off index 0 so the next growth has to unwrap the ring
	task, ok := q.Take()
	require.True(t, ok)
	assert.Equal(t, int64(1), task.Amount)

	for i := int64(3); i <= 6; i++ {
		require.NoError(t, q.Enqueue(types.Wait(i)))
	}
	assert.GreaterOrEqual(t, q.Cap(), 5)

	var got []int64
	for q.Len() > 0 {
		task, ok := q.Take()
		require.True(t, ok)
		got = append(got, task.Amount)
	}
	assert.Equal(t, []int64{2, 3, 4, 5, 6}, got)
}

func TestTaskQueue_TakeBlocksUntilEnqueue(t *testing.T) {
	q := New()
	result := make(chan types.Task, 1)

	go func() {
		task, ok := q.Take()
		if ok {
			result <- task
		}
	}()

	select {
	case <-result:
		t.Fatal("Take returned before any task was enqueued")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, q.Enqueue(types.Compute(7)))

	select {
	case task := <-result:
		assert.Equal(t, types.Compute(7), task)
	case <-time.After(time.Second):
		t.Fatal("Take did not wake after Enqueue")
	}
}

func TestTaskQueue_ShutdownWakesAllTakers(t *testing.T) {
	q := New()
	const takers = 8

	var wg sync.WaitGroup
	wg.Add(takers)
	for i := 0; i < takers; i++ {
		go func() {
			defer wg.Done()
			_, ok := q.Take()
			assert.False(t, ok)
		}()
	}

	// give the takers time to block
	time.Sleep(10 * time.Millisecond)
	assert.True(t, q.Shutdown())

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("takers still blocked after Shutdown")
	}
}

func TestTaskQueue_DrainAfterShutdown(t *testing.T) {
	q := New()
	require.NoError(t, q.Enqueue(types.Compute(3)))
	require.NoError(t, q.Enqueue(types.Wait(1)))

	assert.True(t, q.Shutdown())
	assert.True(t, q.IsShutdown())

	task, ok := q.Take()
	require.True(t, ok)
	assert.Equal(t, types.Compute(3), task)

	task, ok = q.Take()
	require.True(t, ok)
	assert.Equal(t, types.Wait(1), task)

	_, ok = q.Take()
	assert.False(t, ok)
}

func TestTaskQueue_EnqueueAfterShutdown(t *testing.T) {
	q := New()
	assert.True(t, q.Shutdown())
	assert.False(t, q.Shutdown())

	err := q.Enqueue(types.Compute(1))
	assert.ErrorIs(t, err, types.ErrQueueShutdown)
	assert.Equal(t, 0, q.Len())
}

func TestTaskQueue_TryTake(t *testing.T) {
	q := New()

	_, ok := q.TryTake()
	assert.False(t, ok)

	require.NoError(t, q.Enqueue(types.Compute(4)))
	task, ok := q.TryTake()
	require.True(t, ok)
	assert.Equal(t, int64(4), task.Amount)
}

// TestTaskQueue_ConcurrentProducerConsumers checks that no task is lost or
// handed to two takers under randomized timing.
func TestTaskQueue_ConcurrentProducerConsumers(t *testing.T) {
	const (
		numTasks     = 20000
		numConsumers = 8
	)

	q := NewWithCapacity(4)
	seen := make([]int32, numTasks+1)
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(numConsumers)
	for c := 0; c < numConsumers; c++ {
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				task, ok := q.Take()
				if !ok {
					return
				}
				mu.Lock()
				seen[task.Amount]++
				mu.Unlock()
				if rng.Intn(64) == 0 {
					runtime.Gosched()
				}
			}
		}(int64(c))
	}

	rng := rand.New(rand.NewSource(42))
	for i := int64(1); i <= numTasks; i++ {
		require.NoError(t, q.Enqueue(types.Compute(i)))
		if rng.Intn(500) == 0 {
			time.Sleep(time.Duration(rng.Intn(100)) * time.Microsecond)
		}
	}
	q.Shutdown()
	wg.Wait()

	for i := 1; i <= numTasks; i++ {
		if seen[i] != 1 {
			t.Fatalf("task %d taken %d times", i, seen[i])
		}
	}
	assert.Equal(t, 0, q.Len())
}
