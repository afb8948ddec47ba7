package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/PigFarmBot_Go/internal/testing/testkit"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func TestPool(t *testing.T) {
	checker := testkit.NewGoroutineChecker(t)
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	job := &testJob{executed: &executed}
	assert.True(t, pool.Enqueue(context.Background(), job))
	assert.True(t, pool.Enqueue(context.Background(), job))
	assert.True(t, pool.Enqueue(context.Background(), &testJob{executed: &executed, err: errors.New("boom")}))

	pool.Stop()

	assert.Equal(t, int32(3), atomic.LoadInt32(&executed))
	checker.Check(0)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	var executed int32
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(context.Background(), &testJob{executed: &executed}))
	assert.Zero(t, atomic.LoadInt32(&executed))
}

func TestPool_EnqueueHonoursContext(t *testing.T) {
	var executed int32
	// Not started, so the single slot stays full
	pool := NewPool(1, 1)
	assert.True(t, pool.Enqueue(context.Background(), &testJob{executed: &executed}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.False(t, pool.Enqueue(ctx, &testJob{executed: &executed}))

	pool.Start()
	pool.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}
