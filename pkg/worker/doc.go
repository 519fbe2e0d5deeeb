/*
Package worker provides a fixed-size worker pool that drains a shared task queue into a shared aggregate.

# Overview

A single producer submits timed tasks; a fixed number of worker goroutines take them in FIFO
order, simulate each task's duration and, for compute tasks, fold the amount into a running
sum, odd count, minimum and maximum. The pool terminates only after the producer has declared
the end of input AND the queue has been fully drained.

# Core Components

## WorkerPool

Owns the TaskQueue, the Aggregator and the workers:
- Start spawns every worker
- Submit enqueues a task (amounts below 1 are rejected)
- ShutdownAndWait signals end of input, wakes all idle workers and joins them
- Snapshot returns the aggregate, final once ShutdownAndWait has returned

## Worker

A loop over the states Fetching → (Computing | Waiting) → Fetching, ending in Exited:
- Fetching blocks in TaskQueue.Take until a task arrives or the queue is shut down and empty
- Computing sleeps for amount × TimeUnit, then updates the aggregate
- Waiting sleeps for amount × TimeUnit with no aggregate effect
- Panics during a task are recovered and returned as *types.TaskError

# Concurrency Safety

The exit decision is taken inside TaskQueue.Take, under the queue lock that also guards the
shutdown flag, so no worker can miss the shutdown broadcast or exit while holding a task.
No lock is held while a task's duration elapses. In-flight tasks always run to completion.

# Usage Examples

	pool, err := worker.NewWorkerPool(&worker.WorkerPoolConfig{
		PoolSize: 4,
		TimeUnit: time.Millisecond,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Start(); err != nil {
		log.Fatal(err)
	}

	_ = pool.Submit(types.Compute(3))
	_ = pool.Submit(types.Wait(1))

	if err := pool.ShutdownAndWait(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(pool.Snapshot()) // 3 1 3 3

# Configuration Options

WorkerPoolConfig supports the following configurations:
- PoolSize: Number of worker goroutines (at least 1)
- TimeUnit: Duration of one amount unit; 0 disables delays
- QueueCapacity: Initial queue buffer size
- Clock: Time source, replaceable by a mock clock in tests
- ErrorHandler: Decides whether a failed task stops its worker
- Logger: zap logger for lifecycle events
*/
package worker
