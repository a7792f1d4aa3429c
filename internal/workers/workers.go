// Package workers provides the bounded worker pool that fans the
// line-of-sight pipeline out over many peak pairs.
package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/summitlab/peaksight/internal/logger"
)

// Task is one unit of work executed by a [Pool].
type Task func(ctx context.Context) error

// Pool runs batches of tasks with a fixed concurrency limit.
type Pool struct {
	concurrency int

	logger *logger.Logger
}

// NewPool constructs a Pool. A concurrency of zero or less falls back to 1.
func NewPool(concurrency int, log *logger.Logger) *Pool {
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Pool{
		concurrency: concurrency,
		logger:      log,
	}
}

// Run executes all tasks, at most concurrency at a time, and blocks until
// every started task has finished. Once ctx is cancelled no further tasks
// are started, but tasks already running are left to finish on their own.
//
// The returned error joins every task error plus the context error when the
// batch was cut short.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	p.logger.Debug().
		Int("tasks", len(tasks)).
		Int("concurrency", p.concurrency).
		Msg("running task batch")

	queue := make(chan Task)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for range p.concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if err := task(ctx); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, task := range tasks {
		select {
		case <-ctx.Done():
			break feed
		case queue <- task:
		}
	}
	close(queue)

	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
