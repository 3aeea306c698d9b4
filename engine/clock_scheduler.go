package engine

import (
	"sync/atomic"
	"time"
)

// Timer is a revocable one-shot
type Timer interface {
	// Stop prevents the callback from running
	// Returns false if it already ran or was stopped
	Stop() bool
}

// Scheduler fires a callback once after a delay
// Re-arming is the caller's responsibility
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

// LoopScheduler arms wall-clock timers whose callbacks run on a Loop
// Callbacks never execute on the runtime timer goroutine
type LoopScheduler struct {
	loop  *Loop
	clock *TimeProvider
}

// NewLoopScheduler creates a scheduler delivering onto loop
func NewLoopScheduler(loop *Loop) *LoopScheduler {
	return &LoopScheduler{
		loop:  loop,
		clock: NewTimeProvider(),
	}
}

// Now returns wall-clock time
func (s *LoopScheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc arms fn to be posted onto the loop after d
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.timer = time.AfterFunc(d, func() {
		s.loop.Post(func() {
			// Stop called on the loop after expiry but before delivery
			if lt.stopped.Load() {
				return
			}
			lt.fired.Store(true)
			fn()
		})
	})
	return lt
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.fired.Load() || !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}
