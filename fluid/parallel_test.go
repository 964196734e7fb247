package fluid

import (
	"sync/atomic"
	"testing"
)

func TestDispatchCoversEveryRowOnce(t *testing.T) {
	pool := newWorkerPool()
	defer pool.stop()

	// Large enough to take the parallel path.
	const rows = 256
	var counts [rows]int32

	pool.Dispatch(rows, func(y int) {
		atomic.AddInt32(&counts[y], 1)
	})

	for y, c := range counts {
		if c != 1 {
			t.Fatalf("row %d processed %d times, want 1", y, c)
		}
	}
}

func TestDispatchSerialFallback(t *testing.T) {
	pool := newWorkerPool()
	defer pool.stop()

	// Below the threshold no workers are started.
	var counts [16]int32
	pool.Dispatch(16, func(y int) {
		counts[y]++
	})

	for y, c := range counts {
		if c != 1 {
			t.Fatalf("row %d processed %d times, want 1", y, c)
		}
	}
	if pool.running {
		t.Error("serial dispatch must not start workers")
	}
}

func TestDispatchBarrier(t *testing.T) {
	pool := newWorkerPool()
	defer pool.stop()

	// Dispatch must not return before every row body has run.
	var done int32
	pool.Dispatch(256, func(y int) {
		atomic.AddInt32(&done, 1)
	})

	if got := atomic.LoadInt32(&done); got != 256 {
		t.Fatalf("dispatch returned with %d rows complete, want 256", got)
	}
}

func TestDispatchReusableAcrossStages(t *testing.T) {
	pool := newWorkerPool()
	defer pool.stop()

	var total int32
	for stage := 0; stage < 5; stage++ {
		pool.Dispatch(128, func(y int) {
			atomic.AddInt32(&total, 1)
		})
	}

	if total != 5*128 {
		t.Fatalf("expected %d row executions, got %d", 5*128, total)
	}
}
