// internal/store/memory.go
//
// In-memory implementation of the Store interface.
//
// Characteristics:
//   - Stores live game.Session values keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Removing a session closes it, which cancels its pending timers.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/kidgames/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store holds running sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (game.Session, error)

	// Delete removes and closes a session.
	Delete(ctx context.Context, id string) error

	// Sweep closes and removes sessions idle since before cutoff,
	// returning their IDs.
	Sweep(ctx context.Context, cutoff time.Time) []string

	// Len reports the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]game.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]game.Session)}
}

func (m *memory) Save(ctx context.Context, s game.Session) error {
	m.mu.Lock()
	old, ok := m.sessions[s.ID()]
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	if ok && old != s {
		old.Close()
	}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.Close()
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) []string {
	var expired []game.Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, s := range expired {
		s.Close()
		ids = append(ids, s.ID())
	}
	return ids
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
