// internal/game/memory.go
//
// Pair-matching session (memory-game and memory-cards).
//
//   - NewDeck deals PairsAt(level) random images twice each, shuffled.
//   - Flip reveals up to two cards; the second flip is a move and locks input
//     until the pair resolves (matched after MatchDelay, hidden again after
//     MismatchDelay).
//   - Clearing the deck enters PhaseWon; after WinDelay the level goes up
//     (capped at MaxLevel) and a larger deck is dealt.

package game

import (
	"slices"

	"github.com/robalobadob/kidgames/internal/random"
	"github.com/robalobadob/kidgames/internal/sched"
)

// NewDeck deals a shuffled deck holding pairs distinct images, two cards each.
func NewDeck(src random.Source, images []string, pairs int) []Card {
	pairs = min(pairs, len(images))
	chosen := random.Shuffle(src, images)[:pairs]
	deck := make([]Card, 0, 2*pairs)
	for i, img := range slices.Concat(chosen, chosen) {
		deck = append(deck, Card{ID: i, Image: img})
	}
	random.ShuffleInPlace(src, deck)
	return deck
}

// Memory is a running pair-matching session.
type Memory struct {
	core
	cfg MemoryConfig
	src random.Source

	phase   Phase
	level   int
	score   int
	moves   int
	busy    bool
	deck    []Card
	flipped []int
}

// NewMemory validates cfg and returns an idle session.
func NewMemory(id string, cfg MemoryConfig, src random.Source, s sched.Scheduler, e Emitter) (*Memory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Memory{cfg: cfg, src: src, phase: PhaseIdle, level: 1}
	m.core.init(id, cfg.Kind, s, e, m.snapshot)
	return m, nil
}

// Start deals a level 1 deck from idle. Ignored otherwise.
func (m *Memory) Start() bool {
	started := false
	m.do(func() {
		if m.closed || m.phase != PhaseIdle {
			return
		}
		started = true
		m.score, m.moves, m.level = 0, 0, 1
		m.deal()
		m.push(Event{Type: EventRoundChanged})
	})
	return started
}

// Redeal shuffles a fresh deck at the current level and zeroes score and
// moves, keeping the level.
func (m *Memory) Redeal() bool {
	ok := false
	m.do(func() {
		if m.closed || m.phase == PhaseIdle {
			return
		}
		ok = true
		m.score, m.moves = 0, 0
		m.deal()
		m.push(Event{Type: EventRoundChanged})
	})
	return ok
}

// deal replaces the deck at the current level. Runs under the lock.
func (m *Memory) deal() {
	m.bump()
	m.deck = NewDeck(m.src, m.cfg.Images, m.cfg.PairsAt(m.level))
	m.flipped = nil
	m.busy = false
	m.phase = PhasePlaying
}

// Flip turns card idx face up. Reports false when ignored: busy, not
// playing, out of range, already face up or matched, or two cards showing.
func (m *Memory) Flip(idx int) bool {
	ok := false
	m.do(func() {
		if m.closed || m.phase != PhasePlaying || m.busy || len(m.flipped) >= 2 {
			return
		}
		if idx < 0 || idx >= len(m.deck) || m.deck[idx].Matched || slices.Contains(m.flipped, idx) {
			return
		}
		ok = true
		m.flipped = append(m.flipped, idx)
		m.push(Event{Type: EventCardFlipped, Cards: []int{idx}})
		if len(m.flipped) < 2 {
			return
		}

		m.busy = true
		m.moves++
		a, b := m.flipped[0], m.flipped[1]
		if m.deck[a].Image == m.deck[b].Image {
			m.after(m.cfg.MatchDelay, func() { m.matchPair(a, b) })
			return
		}
		m.after(m.cfg.MismatchDelay, func() {
			m.flipped = nil
			m.busy = false
			m.push(Event{Type: EventCardsHidden, Cards: []int{a, b}})
		})
	})
	return ok
}

// matchPair marks a and b matched. Runs under the lock.
func (m *Memory) matchPair(a, b int) {
	m.deck[a].Matched = true
	m.deck[b].Matched = true
	m.score += PointsPerCorrect
	m.flipped = nil
	m.busy = false
	m.push(Event{Type: EventPairMatched, Cards: []int{a, b}})

	if m.matchedCount() < len(m.deck) {
		return
	}
	m.phase = PhaseWon
	m.push(Event{Type: EventGameWon})
	m.after(m.cfg.WinDelay, m.levelUp)
}

func (m *Memory) levelUp() {
	prev := m.level
	m.level = min(m.level+1, m.cfg.MaxLevel)
	m.deal()
	if m.level != prev {
		m.push(Event{Type: EventLevelChanged})
		return
	}
	m.push(Event{Type: EventRoundChanged})
}

func (m *Memory) matchedCount() int {
	n := 0
	for _, c := range m.deck {
		if c.Matched {
			n++
		}
	}
	return n
}

// Reset returns to idle at level 1, cancelling pending timers.
func (m *Memory) Reset() {
	m.do(func() {
		if m.closed {
			return
		}
		m.bump()
		m.clear()
		m.push(Event{Type: EventSessionReset})
	})
}

// Close cancels pending timers and disables the session.
func (m *Memory) Close() {
	m.do(func() {
		m.clear()
		m.close()
	})
}

// Deck returns a copy of the deck, images included.
func (m *Memory) Deck() []Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.deck)
}

func (m *Memory) clear() {
	m.phase = PhaseIdle
	m.level = 1
	m.score, m.moves = 0, 0
	m.busy = false
	m.deck, m.flipped = nil, nil
}

func (m *Memory) snapshot() Snapshot {
	s := Snapshot{
		ID:    m.id,
		Game:  m.kind,
		Phase: m.phase,
		Score: m.score,
		Moves: m.moves,
		Busy:  m.busy,
		Level: m.level,
		Cards: make([]CardView, len(m.deck)),
	}
	for i, c := range m.deck {
		up := c.Matched || slices.Contains(m.flipped, i)
		s.Cards[i] = CardView{ID: c.ID, FaceUp: up, Matched: c.Matched}
		if up {
			s.Cards[i].Image = c.Image
		}
	}
	return s
}
