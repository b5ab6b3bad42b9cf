// pkg/services/loop.go
package service

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned when an action reaches a stopped event loop
var ErrLoopStopped = errors.New("event loop stopped")

// Task runs off the loop (typically a fetch) and returns the continuation
// to run on the loop, or nil when there is nothing to apply.
type Task func(ctx context.Context) func()

// Executor starts tasks whose continuations must run on the owning loop
type Executor interface {
	Go(task Task)
}

// EventLoop serializes every dashboard state mutation on one goroutine.
// Fetches run on their own goroutines and post their continuation back.
type EventLoop struct {
	actions chan func()
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	tasks   sync.WaitGroup
}

// NewEventLoop starts a loop bound to parent
func NewEventLoop(parent context.Context) *EventLoop {
	ctx, cancel := context.WithCancel(parent)
	l := &EventLoop{
		actions: make(chan func()),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *EventLoop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.actions:
			fn()
		}
	}
}

// Post enqueues fn without waiting for it. It must not be called from the loop itself.
func (l *EventLoop) Post(fn func()) error {
	select {
	case <-l.ctx.Done():
		return ErrLoopStopped
	case l.actions <- fn:
		return nil
	}
}

// Call runs fn on the loop and waits for it to finish.
// It must not be called from the loop itself.
func (l *EventLoop) Call(fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		// the loop may have run fn right before stopping
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}

// Go runs task on its own goroutine and posts its continuation to the loop
func (l *EventLoop) Go(task Task) {
	l.tasks.Add(1)
	go func() {
		defer l.tasks.Done()
		apply := task(l.ctx)
		if apply == nil {
			return
		}
		// a stopped loop drops late results
		_ = l.Post(apply)
	}()
}

// Stop cancels in-flight tasks and waits for the loop and its tasks to exit
func (l *EventLoop) Stop() {
	l.cancel()
	<-l.done
	l.tasks.Wait()
}
