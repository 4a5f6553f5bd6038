// internal/game/session.go
//
// Shared session plumbing.
//   - Session: the operations every game exposes to the transport layer.
//   - core: lock, epoch token, pending timers and the event outbox.
//
// Every reset and every new round/deck bumps the epoch. Scheduled callbacks
// capture the epoch when scheduled and do nothing if it has moved on, so a
// feedback or flip-back timer from a superseded round can never touch the
// current one. Bumping also stops the outstanding timers.

package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kidgames/internal/sched"
)

// Session is one running game.
type Session interface {
	ID() string
	Kind() Kind
	// Start begins (or restarts) play. Reports false if ignored.
	Start() bool
	// Reset returns to idle and zeroes all counters.
	Reset()
	// Close resets and permanently disables the session.
	Close()
	Snapshot() Snapshot
	LastActive() time.Time
}

type core struct {
	mu         sync.Mutex
	id         string
	kind       Kind
	sched      sched.Scheduler
	emitter    Emitter
	epoch      uint64
	timers     []sched.Timer
	outbox     []Event
	closed     bool
	lastActive time.Time
	snap       func() Snapshot // concrete session's snapshot; caller holds mu
}

func (c *core) init(id string, kind Kind, s sched.Scheduler, e Emitter, snap func() Snapshot) {
	c.id, c.kind, c.sched, c.emitter, c.snap = id, kind, s, e, snap
	c.lastActive = time.Now()
}

func (c *core) ID() string { return c.id }

func (c *core) Kind() Kind { return c.kind }

func (c *core) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *core) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap()
}

// do runs f under the lock and flushes the events it queued afterwards.
func (c *core) do(f func()) {
	c.mu.Lock()
	c.lastActive = time.Now()
	f()
	out := c.outbox
	c.outbox = nil
	c.mu.Unlock()
	c.flush(out)
}

func (c *core) flush(events []Event) {
	if c.emitter == nil {
		return
	}
	for _, e := range events {
		c.emitter.Emit(e)
	}
}

// bump invalidates every callback scheduled so far.
func (c *core) bump() {
	c.epoch++
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = c.timers[:0]
}

// after schedules f under the current epoch. Caller holds mu.
func (c *core) after(d time.Duration, f func()) {
	epoch := c.epoch
	t := c.sched.AfterFunc(d, func() {
		c.mu.Lock()
		if c.closed || c.epoch != epoch {
			c.mu.Unlock()
			log.Debug().Str("session", c.id).Uint64("epoch", epoch).Msg("dropped stale callback")
			return
		}
		f()
		out := c.outbox
		c.outbox = nil
		c.mu.Unlock()
		c.flush(out)
	})
	c.timers = append(c.timers, t)
}

// push queues an event carrying the current snapshot. Caller holds mu.
func (c *core) push(e Event) {
	if c.closed {
		return
	}
	e.Session = c.id
	e.State = c.snap()
	c.outbox = append(c.outbox, e)
}

// close bumps the epoch and drops further events. Caller holds mu.
func (c *core) close() {
	c.bump()
	c.closed = true
	c.outbox = nil
}
