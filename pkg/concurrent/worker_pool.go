package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

// PanicHandler. turns a panic raised while running job into that job's result.
type PanicHandler[T any, G any] func(job T, recovered any) G

// WorkerPool. fixed number of workers draining a bounded job queue. jobs beyond the queue size block AddJob.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
	onPanic    PanicHandler[T, G]
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

// WithPanicHandler. without a handler a panicking job crashes the process.
func (wp *WorkerPool[T, G]) WithPanicHandler(h PanicHandler[T, G]) *WorkerPool[T, G] {
	wp.onPanic = h
	return wp
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- wp.run(ctx, jobFunc, job)
	}
}

func (wp *WorkerPool[T, G]) run(ctx context.Context, jobFunc JobFunc[T, G], job T) (res G) {
	if wp.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				res = wp.onPanic(job, r)
			}
		}()
	}
	return jobFunc(ctx, job)
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait. blocks until every worker returned, then closes the results channel. call after Close.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// AddJob. queue a job, giving up when ctx is done.
func (wp *WorkerPool[T, G]) AddJob(ctx context.Context, job T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.jobQueue <- job:
		return nil
	}
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}

// Close. no more jobs. workers exit once the queue is drained.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) NumWorkers() int {
	return wp.numWorkers
}
