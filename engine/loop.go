// Package engine hosts the cooperative event loop and the timer primitives the
// controller is scheduled on.
package engine

import (
	"context"
	"sync"
)

// DefaultLoopCapacity bounds queued handlers before Post blocks
const DefaultLoopCapacity = 256

// Loop runs posted handlers one at a time on a single goroutine
// Handlers execute to completion in the order they were posted
type Loop struct {
	queue     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop creates a loop with the given queue capacity
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = DefaultLoopCapacity
	}
	return &Loop{
		queue: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn for execution on the loop goroutine
// Returns false once the loop is closed; blocks while the queue is full
// Must not be called from a handler when the queue may be full
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes handlers until ctx is cancelled or Close is called
// Handlers still queued at close are dropped
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			// Close may race with a ready handler; done wins
			select {
			case <-l.done:
				return nil
			default:
			}
			fn()
		}
	}
}

// Close stops the loop and rejects further posts, idempotent
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed when the loop is closed
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
