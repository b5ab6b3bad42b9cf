package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLoop_CallSerializes(t *testing.T) {
	loop := NewEventLoop(context.Background())
	defer loop.Stop()

	var seen []int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = loop.Call(func() { seen = append(seen, i) })
		}()
	}
	wg.Wait()

	var count int
	require.NoError(t, loop.Call(func() { count = len(seen) }))
	assert.Equal(t, 50, count)
}

func TestEventLoop_GoPostsContinuation(t *testing.T) {
	loop := NewEventLoop(context.Background())
	defer loop.Stop()

	applied := make(chan string, 1)
	loop.Go(func(ctx context.Context) func() {
		return func() { applied <- "done" }
	})

	select {
	case v := <-applied:
		assert.Equal(t, "done", v)
	case <-time.After(time.Second):
		t.Fatal("continuation never ran")
	}
}

func TestEventLoop_GoNilContinuation(t *testing.T) {
	loop := NewEventLoop(context.Background())
	ran := make(chan struct{})
	loop.Go(func(ctx context.Context) func() {
		close(ran)
		return nil
	})
	<-ran
	loop.Stop()
}

func TestEventLoop_StopCancelsTasks(t *testing.T) {
	loop := NewEventLoop(context.Background())

	started := make(chan struct{})
	var cancelled bool
	loop.Go(func(ctx context.Context) func() {
		close(started)
		<-ctx.Done()
		cancelled = true
		return func() { t.Error("continuation must not run after stop") }
	})
	<-started

	loop.Stop()
	assert.True(t, cancelled)
	assert.ErrorIs(t, loop.Call(func() {}), ErrLoopStopped)
	assert.ErrorIs(t, loop.Post(func() {}), ErrLoopStopped)
}

func TestEventLoop_ParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewEventLoop(ctx)
	cancel()

	assert.Eventually(t, func() bool {
		return loop.Call(func() {}) == ErrLoopStopped
	}, time.Second, 5*time.Millisecond)
	loop.Stop()
}
