// internal/game/snapshot.go
//
// Outbound view of a session. Option correctness and face-down card
// images are never included.

package game

// EventType names a session transition.
type EventType string

const (
	EventCountdown       EventType = "countdown"
	EventRoundChanged    EventType = "round_changed"
	EventRoundReady      EventType = "round_ready"
	EventAnswerEvaluated EventType = "answer_evaluated"
	EventCardFlipped     EventType = "card_flipped"
	EventPairMatched     EventType = "pair_matched"
	EventCardsHidden     EventType = "cards_hidden"
	EventGameWon         EventType = "game_won"
	EventLevelChanged    EventType = "level_changed"
	EventGameOver        EventType = "game_over"
	EventSessionReset    EventType = "session_reset"
)

// Event is emitted after every state transition.
type Event struct {
	Type       EventType   `json:"type"`
	Session    string      `json:"session"`
	State      Snapshot    `json:"state"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Cards      []int       `json:"cards,omitempty"`
}

// Emitter receives session events. Emit is called without the session lock
// held, in transition order.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(e Event) { f(e) }

// Snapshot is the presentation-facing session state.
type Snapshot struct {
	ID        string       `json:"id"`
	Game      Kind         `json:"game"`
	Phase     Phase        `json:"phase"`
	Score     int          `json:"score"`
	Moves     int          `json:"moves"`
	Busy      bool         `json:"busy"`
	Countdown int          `json:"countdown,omitempty"`
	Feedback  FeedbackKind `json:"feedback,omitempty"`
	Message   string       `json:"message,omitempty"`
	Round     *RoundView   `json:"round,omitempty"`
	Level     int          `json:"level,omitempty"`
	Cards     []CardView   `json:"cards,omitempty"`
}

// RoundView is a Round without correctness markers.
type RoundView struct {
	Seq      int          `json:"seq"`
	Prompt   string       `json:"prompt"`
	Count    int          `json:"count,omitempty"`
	Sprites  []string     `json:"sprites,omitempty"`
	Options  []OptionView `json:"options"`
	Answered bool         `json:"answered"`
}

// OptionView is an Option without its correctness flag.
type OptionView struct {
	Value   int     `json:"value"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	DelayMs int64   `json:"delayMs,omitempty"`
}

// CardView shows the image only while the card is face up.
type CardView struct {
	ID      int    `json:"id"`
	FaceUp  bool   `json:"faceUp"`
	Matched bool   `json:"matched"`
	Image   string `json:"image,omitempty"`
}

func viewRound(r Round, answered bool) *RoundView {
	v := &RoundView{
		Seq:      r.Seq,
		Prompt:   r.Prompt,
		Sprites:  append([]string(nil), r.Sprites...),
		Options:  make([]OptionView, len(r.Options)),
		Answered: answered,
	}
	if len(r.Sprites) > 0 {
		v.Count = len(r.Sprites)
	}
	for i, o := range r.Options {
		v.Options[i] = OptionView{Value: o.Value, X: o.X, Y: o.Y, DelayMs: o.Delay.Milliseconds()}
	}
	return v
}
