// internal/sched/sched.go
//
// Cancellable delayed callbacks for session pacing (feedback display,
// countdown ticks, card flip-back).
//
//   - Scheduler: what sessions depend on.
//   - Clock:     wall-clock implementation backed by time.AfterFunc.
//   - Manual:    virtual clock for tests; callbacks run inside Advance.

package sched

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. Reports false if it already ran or was stopped.
	Stop() bool
}

// Scheduler invokes f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Clock schedules on the real clock. Callbacks run on their own goroutine.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Manual is a virtual clock. Nothing fires until Advance is called.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m       *Manual
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

// NewManual returns a virtual clock at t=0.
func NewManual() *Manual { return &Manual{} }

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, at: m.now + d, seq: m.seq, f: f}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now reports elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending counts callbacks that are neither stopped nor fired.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running due callbacks in deadline
// order. Callbacks scheduled while advancing run too if they fall due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		next.fired = true
		m.now = next.at
		m.mu.Unlock()

		next.f()
	}
}

// nextDue pops the earliest live timer at or before target. Caller holds mu.
func (m *Manual) nextDue(target time.Duration) *manualTimer {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.pending = live
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	if len(m.pending) == 0 || m.pending[0].at > target {
		return nil
	}
	return m.pending[0]
}
