package workers

import (
	"context"
	"sync"
)

// WorkerPool manages a pool of workers that execute jobs concurrently.
type WorkerPool struct {
	jobCh chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// NewWorkerPool initializes a worker pool with a fixed number of workers.
func NewWorkerPool(workerCount, jobBufferSize int) *WorkerPool {
	wp := &WorkerPool{
		jobCh: make(chan func(), jobBufferSize),
	}
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobCh {
		job()
	}
}

// TryAddJob enqueues a job without blocking; the job is dropped when
// the queue is full.
func (wp *WorkerPool) TryAddJob(job func()) bool {
	wp.wg.Add(1)
	select {
	case wp.jobCh <- func() {
		defer wp.wg.Done()
		job()
	}:
		return true
	default:
		wp.wg.Done()
		return false
	}
}

// Submit enqueues a job, blocking until there is queue space or ctx is
// cancelled. Batch signing uses this so back-pressure reaches the
// producer instead of dropping events.
func (wp *WorkerPool) Submit(ctx context.Context, job func()) error {
	wp.wg.Add(1)
	select {
	case wp.jobCh <- func() {
		defer wp.wg.Done()
		job()
	}:
		return nil
	case <-ctx.Done():
		wp.wg.Done()
		return ctx.Err()
	}
}

// Wait blocks until all enqueued jobs are completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop closes the job channel and waits for in-flight jobs.
func (wp *WorkerPool) Stop() {
	wp.once.Do(func() {
		close(wp.jobCh)
		wp.wg.Wait()
	})
}
