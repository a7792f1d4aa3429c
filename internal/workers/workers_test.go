package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summitlab/peaksight/internal/logger"
)

func TestPool_RunsEveryTask(t *testing.T) {
	pool := NewPool(4, logger.Nop())

	var done atomic.Int64
	tasks := make([]Task, 50)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			done.Add(1)
			return nil
		}
	}

	err := pool.Run(context.Background(), tasks)
	require.NoError(t, err)
	assert.Equal(t, int64(50), done.Load())
}

func TestPool_RespectsConcurrencyLimit(t *testing.T) {
	const limit = 3
	pool := NewPool(limit, logger.Nop())

	var (
		mu      sync.Mutex
		running int
		peak    int
	)

	tasks := make([]Task, 20)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			mu.Lock()
			running--
			mu.Unlock()
			return nil
		}
	}

	require.NoError(t, pool.Run(context.Background(), tasks))
	assert.LessOrEqual(t, peak, limit)
}

func TestPool_CollectsTaskErrors(t *testing.T) {
	pool := NewPool(2, logger.Nop())

	wantErr := errors.New("bad sample")
	tasks := []Task{
		func(context.Context) error { return nil },
		func(context.Context) error { return wantErr },
		func(context.Context) error { return nil },
	}

	err := pool.Run(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestPool_StopsFeedingOnCancel(t *testing.T) {
	pool := NewPool(1, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var started atomic.Int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			started.Add(1)
			cancel()
			return nil
		}
	}

	err := pool.Run(ctx, tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, started.Load(), int64(100))
}

func TestPool_ZeroConcurrencyFallsBackToOne(t *testing.T) {
	pool := NewPool(0, logger.Nop())

	var done atomic.Int64
	err := pool.Run(context.Background(), []Task{
		func(context.Context) error { done.Add(1); return nil },
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), done.Load())
}

func TestPool_EmptyBatch(t *testing.T) {
	pool := NewPool(4, logger.Nop())
	require.NoError(t, pool.Run(context.Background(), nil))
}
