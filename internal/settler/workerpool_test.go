package settler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name           string
		numTasks       int
		numWorkers     int
		expectedErrors int
	}{
		{
			name:           "Test worker pool with simple tasks",
			numTasks:       5,
			numWorkers:     2,
			expectedErrors: 0,
		},
		{
			name:           "Test worker pool with error in task",
			numTasks:       2,
			numWorkers:     2,
			expectedErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.numWorkers)
			defer wp.Close()

			var mu sync.Mutex
			var taskExecutionCount int
			var errorCount int
			var wg sync.WaitGroup

			for i := 0; i < tt.numTasks; i++ {
				wg.Add(1)
				task := func(i int) Task {
					return func() error {
						defer wg.Done()
						if i == tt.numTasks-1 && tt.expectedErrors > 0 {
							mu.Lock()
							errorCount++
							mu.Unlock()
							return assert.AnError
						}
						time.Sleep(20 * time.Millisecond)
						mu.Lock()
						taskExecutionCount++
						mu.Unlock()
						return nil
					}
				}(i)
				assert.NoError(t, wp.AddTask(context.Background(), task))
			}

			wg.Wait()
			assert.Equal(t, tt.numTasks-tt.expectedErrors, taskExecutionCount)
			assert.Equal(t, tt.expectedErrors, errorCount)
		})
	}
}

func TestWorkerPoolCancelledContext(t *testing.T) {
	wp := NewWorkerPool(1)
	defer wp.Close()

	block := make(chan struct{})
	assert.NoError(t, wp.AddTask(context.Background(), func() error {
		<-block
		return nil
	}))
	// The single worker is busy, so the queue fills and the next add
	// has to wait on the context.
	assert.NoError(t, wp.AddTask(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := wp.AddTask(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	close(block)
}

func TestWorkerPoolCloseIdempotent(t *testing.T) {
	wp := NewWorkerPool(2)

	var wg sync.WaitGroup
	wg.Add(1)
	assert.NoError(t, wp.AddTask(context.Background(), func() error {
		defer wg.Done()
		return nil
	}))
	wg.Wait()

	wp.Close()
	assert.NotPanics(t, func() { wp.Close() })
}
