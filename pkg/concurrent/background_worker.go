// Package concurrent runs jobs on a fixed pool of background goroutines fed by a buffered channel.
package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any] func(ctx context.Context, job T) error

// BackgroundWorker consumes submitted jobs with a fixed number of goroutines.
// The first job error cancels the worker's context; Close reports it.
type BackgroundWorker[T any] struct {
	workers   int
	msgC      chan T
	waitGroup sync.WaitGroup
	jobFunc   JobFunc[T]

	ctx    context.Context
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

func NewBackgroundWorker[T any](ctx context.Context, workers, buffer int, jobFunc JobFunc[T]) *BackgroundWorker[T] {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &BackgroundWorker[T]{
		workers: workers,
		msgC:    make(chan T, buffer),
		jobFunc: jobFunc,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (bw *BackgroundWorker[T]) Start() {
	bw.waitGroup.Add(bw.workers)
	for i := 0; i < bw.workers; i++ {
		go func() {
			defer bw.waitGroup.Done()
			for job := range bw.msgC {
				if bw.ctx.Err() != nil {
					// drain so producers never block
					continue
				}
				if err := bw.jobFunc(bw.ctx, job); err != nil {
					bw.fail(err)
				}
			}
		}()
	}
}

// Submit queues a job. It returns the worker's error once a job failed or the context is done.
func (bw *BackgroundWorker[T]) Submit(job T) error {
	select {
	case <-bw.ctx.Done():
		return bw.Err()
	default:
	}
	select {
	case bw.msgC <- job:
		return nil
	case <-bw.ctx.Done():
		return bw.Err()
	}
}

func (bw *BackgroundWorker[T]) Err() error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.err != nil {
		return bw.err
	}
	return bw.ctx.Err()
}

func (bw *BackgroundWorker[T]) fail(err error) {
	bw.mu.Lock()
	if bw.err == nil {
		bw.err = err
	}
	bw.mu.Unlock()
	bw.cancel()
}

// Close waits for queued jobs to finish and returns the first job error.
func (bw *BackgroundWorker[T]) Close() error {
	close(bw.msgC)
	bw.waitGroup.Wait()
	err := bw.Err()
	bw.cancel()
	return err
}
