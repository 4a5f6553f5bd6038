// internal/events/hub.go
//
// Websocket fan-out of session events. Every session can have any number
// of subscribers; events are JSON-encoded game.Event values. Slow
// subscribers lose messages rather than stall the session that emitted them.

package events

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kidgames/internal/game"
)

const sendBuffer = 64

// subscriber is one websocket connection watching a session.
type subscriber struct {
	session string
	send    chan []byte
}

type message struct {
	session string
	data    []byte
}

// Hub routes session events to subscribers. It implements game.Emitter.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{} // session -> subscribers

	register   chan *subscriber
	unregister chan *subscriber
	drop       chan string
	broadcast  chan message
	done       chan struct{}
	closeOnce  sync.Once

	origin string
}

// NewHub starts a hub. Websocket upgrades are accepted from origin, or
// from any origin when it is "*".
func NewHub(origin string) *Hub {
	h := &Hub{
		subs:       make(map[string]map[*subscriber]struct{}),
		register:   make(chan *subscriber),
		unregister: make(chan *subscriber),
		drop:       make(chan string),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
		origin:     origin,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case s := <-h.register:
			h.mu.Lock()
			if h.subs[s.session] == nil {
				h.subs[s.session] = make(map[*subscriber]struct{})
			}
			h.subs[s.session][s] = struct{}{}
			h.mu.Unlock()
			log.Debug().Str("session", s.session).Msg("subscriber joined")

		case s := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.subs[s.session]; ok {
				if _, ok := set[s]; ok {
					delete(set, s)
					close(s.send)
					if len(set) == 0 {
						delete(h.subs, s.session)
					}
				}
			}
			h.mu.Unlock()

		case id := <-h.drop:
			h.mu.Lock()
			for s := range h.subs[id] {
				close(s.send)
			}
			delete(h.subs, id)
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.RLock()
			for s := range h.subs[m.session] {
				select {
				case s.send <- m.data:
				default:
					log.Warn().Str("session", m.session).Msg("subscriber too slow, event dropped")
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for id, set := range h.subs {
				for s := range set {
					close(s.send)
				}
				delete(h.subs, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Emit queues an event for the subscribers of its session.
func (h *Hub) Emit(e game.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("session", e.Session).Msg("encode event")
		return
	}
	select {
	case h.broadcast <- message{session: e.Session, data: data}:
	case <-h.done:
	}
}

// Drop disconnects every subscriber of a session.
func (h *Hub) Drop(session string) {
	select {
	case h.drop <- session:
	case <-h.done:
	}
}

// Subscribers reports how many connections watch a session.
func (h *Hub) Subscribers(session string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[session])
}

// Close disconnects everyone and stops the hub.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) add(s *subscriber) bool {
	select {
	case h.register <- s:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(s *subscriber) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}
