package engine

import (
	"sync"
	"time"
)

// MockScheduler is a virtual-clock Scheduler for tests
// Callbacks run synchronously inside Advance on the caller's goroutine
type MockScheduler struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*mockTimer
	armed   []time.Duration // Every delay ever requested, in arming order
}

type mockTimer struct {
	s       *MockScheduler
	due     time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewMockScheduler creates a scheduler whose clock starts at start
func NewMockScheduler(start time.Time) *MockScheduler {
	return &MockScheduler{now: start}
}

// Now returns the virtual time
func (s *MockScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc arms fn at now+d
func (s *MockScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	mt := &mockTimer{
		s:   s,
		due: s.now.Add(d),
		seq: s.seq,
		fn:  fn,
	}
	s.pending = append(s.pending, mt)
	s.armed = append(s.armed, d)
	return mt
}

// Advance moves the clock forward by d, firing due callbacks in due order
// Ties fire in arming order; callbacks armed during Advance fire if due within the window
func (s *MockScheduler) Advance(d time.Duration) {
	target := s.Now().Add(d)

	for {
		s.mu.Lock()
		next := s.popDueLocked(target)
		if next == nil {
			s.mu.Unlock()
			break
		}
		next.fired = true
		s.now = next.due
		s.mu.Unlock()

		next.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// popDueLocked removes and returns the earliest timer due at or before target
func (s *MockScheduler) popDueLocked(target time.Time) *mockTimer {
	idx := -1
	for i, mt := range s.pending {
		if mt.due.After(target) {
			continue
		}
		if idx < 0 {
			idx = i
			continue
		}
		best := s.pending[idx]
		if mt.due.Before(best.due) || (mt.due.Equal(best.due) && mt.seq < best.seq) {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	mt := s.pending[idx]
	s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
	return mt
}

// Pending returns the number of armed timers
func (s *MockScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// NextDelay returns the time until the earliest armed timer fires
func (s *MockScheduler) NextDelay() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return 0, false
	}
	earliest := s.pending[0].due
	for _, mt := range s.pending[1:] {
		if mt.due.Before(earliest) {
			earliest = mt.due
		}
	}
	return earliest.Sub(s.now), true
}

// Armed returns a copy of every delay requested so far
func (s *MockScheduler) Armed() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.armed...)
}

func (t *mockTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	for i, mt := range t.s.pending {
		if mt == t {
			t.s.pending = append(t.s.pending[:i], t.s.pending[i+1:]...)
			break
		}
	}
	return true
}
