package worker

import (
	"fmt"
	"runtime"
	"time"

	"github.com/jzx17/parsum/pkg/types"
)

// taskDuration returns how long a task occupies a worker.
// amount*unit overflows for amounts beyond math.MaxInt64/unit.
func taskDuration(amount int64, unit time.Duration) time.Duration {
	if unit <= 0 {
		return 0
	}
	return time.Duration(amount) * unit
}

// executeTask simulates the task and, for compute tasks, updates the
// aggregate afterwards. No lock is held while sleeping.
func (w *Worker) executeTask(task types.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			var cause error
			switch v := r.(type) {
			case error:
				cause = fmt.Errorf("panic: %w", v)
			default:
				cause = fmt.Errorf("panic: %v", v)
			}

			err = types.NewTaskError("execute", task, cause).
				WithContext("stack_trace", string(buf[:n])).
				WithContext("worker_id", w.id)
		}
	}()

	switch task.Kind {
	case types.KindCompute:
		w.clock.Sleep(taskDuration(task.Amount, w.unit))
		w.agg.Update(task.Amount)
	case types.KindWait:
		w.clock.Sleep(taskDuration(task.Amount, w.unit))
	default:
		return types.NewTaskError("execute", task, types.ErrUnknownAction)
	}
	return nil
}
