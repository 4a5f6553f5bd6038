// internal/game/types.go
//
// Core type definitions for the round engine.
// Defines:
//   - Kind: which mini-game a session plays.
//   - Phase: coarse session state (idle/countdown/playing/won/game_over).
//   - Round/Option: one puzzle instance and its candidate answers.
//   - Card: one memory-game card.
//   - Evaluation: result of judging a selection.

package game

import "time"

// Kind identifies a mini-game.
type Kind string

const (
	KindBubblePop     Kind = "bubble-pop"
	KindFrogJump      Kind = "frog-jump"
	KindCountCritters Kind = "count-the-critters"
	KindMemoryGame    Kind = "memory-game"
	KindMemoryCards   Kind = "memory-cards"
)

// Phase is the session state machine position.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseCountdown Phase = "countdown"
	PhasePlaying   Phase = "playing"
	PhaseWon       Phase = "won"
	PhaseGameOver  Phase = "game_over"
)

// FeedbackKind classifies the reaction to a selection.
type FeedbackKind string

const (
	FeedbackNone      FeedbackKind = ""
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
)

// Operator is an arithmetic operator shown in a prompt.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
)

// PointsPerCorrect is awarded for a correct answer or a matched pair.
const PointsPerCorrect = 10

// Option is one candidate answer.
type Option struct {
	Value   int
	Correct bool
	X       float64       // horizontal placement, 0..1 of the play area
	Y       float64       // starting vertical offset, 0..1
	Delay   time.Duration // stagger before the option appears
}

// Round is one puzzle instance. Treat as immutable; use Clone when handing it out.
type Round struct {
	Seq     int
	Prompt  string
	Left    int
	Op      Operator
	Right   int
	Answer  int
	Options []Option
	Sprites []string // counting rounds only
}

// Clone returns a deep copy.
func (r Round) Clone() Round {
	r.Options = append([]Option(nil), r.Options...)
	r.Sprites = append([]string(nil), r.Sprites...)
	return r
}

// Values lists option values in presentation order.
func (r Round) Values() []int {
	out := make([]int, len(r.Options))
	for i, o := range r.Options {
		out[i] = o.Value
	}
	return out
}

// Card is a memory-game card. Image carries the pair identity.
type Card struct {
	ID      int
	Image   string
	Matched bool
}

// Evaluation is the outcome of judging one selection.
type Evaluation struct {
	Correct    bool         `json:"correct"`
	ScoreDelta int          `json:"scoreDelta"`
	Feedback   FeedbackKind `json:"feedback"`
	Message    string       `json:"message"`
}
