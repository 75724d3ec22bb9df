package concurrent

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func runPool(t *testing.T, wp *WorkerPool[int, string], jobs []int, jobFunc JobFunc[int, string]) []string {
	t.Helper()
	ctx := context.Background()
	wp.Start(ctx, jobFunc)
	go func() {
		for _, j := range jobs {
			assert.NoError(t, wp.AddJob(ctx, j))
		}
		wp.Close()
	}()
	go wp.Wait()

	results := make([]string, 0, len(jobs))
	for r := range wp.CollectResults() {
		results = append(results, r)
	}
	sort.Strings(results)
	return results
}

func TestWorkerPool(t *testing.T) {
	testCases := []struct {
		name       string
		numWorkers int
		queueSize  int
		numJobs    int
	}{
		{name: "more jobs than queue", numWorkers: 2, queueSize: 1, numJobs: 50},
		{name: "single worker", numWorkers: 1, queueSize: 10, numJobs: 10},
		{name: "no jobs", numWorkers: 4, queueSize: 4, numJobs: 0},
		{name: "zero workers runs with one", numWorkers: 0, queueSize: 2, numJobs: 5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			jobs := make([]int, tt.numJobs)
			want := make([]string, tt.numJobs)
			for i := range jobs {
				jobs[i] = i
				want[i] = fmt.Sprintf("job-%03d", i)
			}
			sort.Strings(want)

			wp := NewWorkerPool[int, string](tt.numWorkers, tt.queueSize)
			got := runPool(t, wp, jobs, func(ctx context.Context, job int) string {
				return fmt.Sprintf("job-%03d", job)
			})
			assert.Equal(t, want, got)
		})
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	wp := NewWorkerPool[int, string](3, 1)
	jobs := make([]int, 30)

	runPool(t, wp, jobs, func(ctx context.Context, job int) string {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return ""
	})
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Equal(t, 3, wp.NumWorkers())
}

func TestWorkerPoolPanicHandler(t *testing.T) {
	wp := NewWorkerPool[int, string](2, 2).WithPanicHandler(func(job int, recovered any) string {
		return fmt.Sprintf("panic %d: %v", job, recovered)
	})

	got := runPool(t, wp, []int{1, 2, 3}, func(ctx context.Context, job int) string {
		if job == 2 {
			panic("boom")
		}
		return fmt.Sprintf("ok %d", job)
	})
	assert.Equal(t, []string{"ok 1", "ok 3", "panic 2: boom"}, got)
}

func TestWorkerPoolAddJobCancelled(t *testing.T) {
	wp := NewWorkerPool[int, string](1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// no worker started, the unbuffered queue never accepts
	err := wp.AddJob(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
