// internal/game/quiz.go
//
// Session controller for the answer-picking games (bubble-pop, frog-jump,
// count-the-critters).
//
// State transitions:
//   idle --Start--> countdown --ticks--> playing      (Countdown > 0)
//   idle --Start--> playing                           (Countdown == 0)
//   playing: new round (busy) --reveal--> ready --Submit--> feedback (busy)
//            --FeedbackDelay--> next round, or game_over once MaxRounds is hit
//   any --Reset--> idle

package game

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kidgames/internal/random"
	"github.com/robalobadob/kidgames/internal/sched"
)

// Quiz is a running bubble-pop, frog-jump or counting session.
type Quiz struct {
	core
	cfg QuizConfig
	src random.Source
	gen *generator

	phase     Phase
	score     int
	moves     int
	played    int // rounds answered since Start
	seq       int
	busy      bool
	answered  bool
	countdown int
	round     *Round
	last      Evaluation
}

// NewQuiz validates cfg and returns an idle session.
func NewQuiz(id string, cfg QuizConfig, src random.Source, s sched.Scheduler, e Emitter) (*Quiz, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	q := &Quiz{cfg: cfg, src: src, gen: gen, phase: PhaseIdle}
	q.core.init(id, cfg.Kind, s, e, q.snapshot)
	return q, nil
}

// Start begins play from idle or game_over. Ignored otherwise.
func (q *Quiz) Start() bool {
	started := false
	q.do(func() {
		if q.closed || (q.phase != PhaseIdle && q.phase != PhaseGameOver) {
			return
		}
		started = true
		q.bump()
		q.clear()
		if q.cfg.Countdown > 0 {
			q.phase = PhaseCountdown
			q.countdown = q.cfg.Countdown
			q.push(Event{Type: EventCountdown})
			q.after(q.cfg.CountdownTick, q.tick)
			return
		}
		q.phase = PhasePlaying
		q.nextRound()
	})
	return started
}

// tick advances the countdown. Runs under the lock.
func (q *Quiz) tick() {
	q.countdown--
	if q.countdown > 0 {
		q.push(Event{Type: EventCountdown})
		q.after(q.cfg.CountdownTick, q.tick)
		return
	}
	q.phase = PhasePlaying
	q.push(Event{Type: EventCountdown})
	q.nextRound()
}

// nextRound replaces the live round. Runs under the lock.
func (q *Quiz) nextRound() {
	q.bump()
	if q.cfg.MaxRounds > 0 && q.played >= q.cfg.MaxRounds {
		q.phase = PhaseGameOver
		q.busy = false
		q.push(Event{Type: EventGameOver})
		return
	}
	q.seq++
	r, err := q.gen.round(q.src, q.seq)
	if err != nil {
		// Unreachable for a validated config.
		log.Error().Err(err).Str("session", q.id).Msg("round generation failed")
		q.phase = PhaseGameOver
		q.busy = false
		q.push(Event{Type: EventGameOver})
		return
	}
	q.round = &r
	q.answered = false
	q.busy = true
	q.last = Evaluation{}
	q.push(Event{Type: EventRoundChanged})

	reveal := q.cfg.RevealDelay + q.cfg.Stagger*time.Duration(len(r.Options))
	q.after(reveal, func() {
		q.busy = false
		q.push(Event{Type: EventRoundReady})
	})
}

// Submit answers the live round. The second return is false when the
// selection was ignored: not playing, busy, or already answered.
func (q *Quiz) Submit(value int) (Evaluation, bool) {
	var (
		ev Evaluation
		ok bool
	)
	q.do(func() {
		if q.closed || q.phase != PhasePlaying || q.busy || q.answered || q.round == nil {
			return
		}
		ev, ok = Evaluate(*q.round, value, q.cfg.Feedback), true
		q.answered = true
		q.busy = true
		q.score += ev.ScoreDelta
		q.moves++
		q.played++
		q.last = ev
		q.push(Event{Type: EventAnswerEvaluated, Evaluation: &ev})
		q.after(q.cfg.FeedbackDelay, q.nextRound)
	})
	return ev, ok
}

// Reset returns to idle, cancelling pending timers.
func (q *Quiz) Reset() {
	q.do(func() {
		if q.closed {
			return
		}
		q.bump()
		q.clear()
		q.phase = PhaseIdle
		q.push(Event{Type: EventSessionReset})
	})
}

// Close cancels pending timers and disables the session.
func (q *Quiz) Close() {
	q.do(func() {
		q.clear()
		q.phase = PhaseIdle
		q.close()
	})
}

// Round returns a copy of the live round, correctness included.
func (q *Quiz) Round() (Round, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.round == nil {
		return Round{}, false
	}
	return q.round.Clone(), true
}

func (q *Quiz) clear() {
	q.score, q.moves, q.played = 0, 0, 0
	q.busy, q.answered = false, false
	q.countdown = 0
	q.round = nil
	q.last = Evaluation{}
}

func (q *Quiz) snapshot() Snapshot {
	s := Snapshot{
		ID:        q.id,
		Game:      q.kind,
		Phase:     q.phase,
		Score:     q.score,
		Moves:     q.moves,
		Busy:      q.busy,
		Countdown: q.countdown,
		Feedback:  q.last.Feedback,
		Message:   q.last.Message,
	}
	if q.round != nil {
		s.Round = viewRound(*q.round, q.answered)
	}
	return s
}
