// internal/game/config.go
//
// Per-game tuning. The presets mirror the timings and ranges the games
// shipped with; Validate is the configuration-time guard that keeps the
// bounded generators from ever running out of candidates.

package game

import (
	"fmt"
	"time"
)

// PromptStyle selects how an arithmetic problem is phrased.
type PromptStyle int

const (
	PromptEquation PromptStyle = iota // "7 - 3 = ?"
	PromptJump                        // "Start at 7, jump - 3. Where do you land?"
)

// ArithmeticConfig bounds the operands and the accepted result.
type ArithmeticConfig struct {
	LeftMin, LeftMax     int
	RightMin, RightMax   int
	ResultMin, ResultMax int
	// Reorder swaps subtraction operands so the result is never negative.
	Reorder bool
	// MaxTries random draws before falling back to a uniform pick among
	// all valid problems.
	MaxTries int
	Style    PromptStyle
}

// CountingConfig bounds the number of sprites to count.
type CountingConfig struct {
	Min, Max int
	Sprites  []string
}

// OptionsConfig describes the option set offered each round.
type OptionsConfig struct {
	Count  int
	Lo, Hi int
	// Window > 0 draws distractors from answer±Window clamped into [Lo,Hi];
	// Window == 0 draws them uniformly from [Lo,Hi].
	Window int
}

// FeedbackText holds the messages shown after a selection. Incorrect may
// contain one %d verb, replaced by the correct answer.
type FeedbackText struct {
	Correct   string
	Incorrect string
}

// QuizConfig configures the three answer-picking games.
type QuizConfig struct {
	Kind       Kind
	Arithmetic *ArithmeticConfig
	Counting   *CountingConfig
	Options    OptionsConfig
	Feedback   FeedbackText

	Countdown     int           // countdown ticks before the first round; 0 starts immediately
	CountdownTick time.Duration
	Stagger       time.Duration // per-option reveal stagger
	RevealDelay   time.Duration // input stays gated this long (plus stagger) after a new round
	FeedbackDelay time.Duration // feedback display time before the next round
	Placement     bool          // spread options across the play area
	MaxRounds     int           // 0 = endless
}

// PairCurve maps a level to the number of distinct images in the deck.
type PairCurve int

const (
	CurveLinear  PairCurve = iota // 2, 4, 6, 8, ...
	CurveStepped                  // 2, 4, 6, 7, 8, ...
)

// Pairs returns the uncapped pair count for level.
func (c PairCurve) Pairs(level int) int {
	if c == CurveStepped && level > 3 {
		return 6 + (level - 3)
	}
	return 2 + (level-1)*2
}

// MemoryConfig configures the pair-matching games.
type MemoryConfig struct {
	Kind          Kind
	Images        []string
	Curve         PairCurve
	MaxLevel      int
	MatchDelay    time.Duration
	MismatchDelay time.Duration
	WinDelay      time.Duration
}

// PairsAt returns the number of pairs dealt at level, capped by the image set.
func (c MemoryConfig) PairsAt(level int) int {
	return min(c.Curve.Pairs(level), len(c.Images))
}

// BubblePop returns the bubble-pop preset.
func BubblePop() QuizConfig {
	return QuizConfig{
		Kind: KindBubblePop,
		Arithmetic: &ArithmeticConfig{
			LeftMin: 1, LeftMax: 10,
			RightMin: 1, RightMax: 10,
			ResultMin: 1, ResultMax: 20,
			Reorder:  true,
			MaxTries: 100,
			Style:    PromptEquation,
		},
		Options:       OptionsConfig{Count: 4, Lo: 1, Hi: 20, Window: 3},
		Feedback:      FeedbackText{Correct: "🎉 Correct!", Incorrect: "Oops! Try again."},
		Countdown:     3,
		CountdownTick: time.Second,
		Stagger:       200 * time.Millisecond,
		RevealDelay:   500 * time.Millisecond,
		FeedbackDelay: 1500 * time.Millisecond,
		Placement:     true,
	}
}

// FrogJump returns the number-line preset.
func FrogJump() QuizConfig {
	return QuizConfig{
		Kind: KindFrogJump,
		Arithmetic: &ArithmeticConfig{
			LeftMin: 1, LeftMax: 15,
			RightMin: 1, RightMax: 5,
			ResultMin: 0, ResultMax: 20,
			MaxTries: 10,
			Style:    PromptJump,
		},
		Options:       OptionsConfig{Count: 4, Lo: 0, Hi: 20, Window: 3},
		Feedback:      FeedbackText{Correct: "🎉 Excellent!", Incorrect: "Not quite! The answer is %d."},
		RevealDelay:   800 * time.Millisecond,
		FeedbackDelay: 2 * time.Second,
	}
}

// CountCritters returns the counting preset drawing from sprites.
func CountCritters(sprites []string) QuizConfig {
	return QuizConfig{
		Kind:          KindCountCritters,
		Counting:      &CountingConfig{Min: 3, Max: 8, Sprites: append([]string(nil), sprites...)},
		Options:       OptionsConfig{Count: 4, Lo: 1, Hi: 10},
		Feedback:      FeedbackText{Correct: "🎉 Great job!", Incorrect: "Oops! Try again."},
		RevealDelay:   500 * time.Millisecond,
		FeedbackDelay: 1500 * time.Millisecond,
	}
}

// MemoryGame returns the linear-curve memory preset.
func MemoryGame(images []string) MemoryConfig {
	return MemoryConfig{
		Kind:          KindMemoryGame,
		Images:        append([]string(nil), images...),
		Curve:         CurveLinear,
		MaxLevel:      10,
		MatchDelay:    800 * time.Millisecond,
		MismatchDelay: 1200 * time.Millisecond,
		WinDelay:      time.Second,
	}
}

// MemoryCards returns the stepped-curve memory preset.
func MemoryCards(images []string) MemoryConfig {
	c := MemoryGame(images)
	c.Kind = KindMemoryCards
	c.Curve = CurveStepped
	return c
}

// Validate checks that every round this config can produce is satisfiable.
func (c QuizConfig) Validate() error {
	if (c.Arithmetic == nil) == (c.Counting == nil) {
		return fmt.Errorf("%w: %s needs exactly one of arithmetic or counting", ErrInvalidConfig, c.Kind)
	}
	o := c.Options
	if o.Count < 1 || o.Lo > o.Hi || o.Window < 0 {
		return fmt.Errorf("%w: options %+v", ErrInvalidConfig, o)
	}
	if o.Hi-o.Lo+1 < o.Count {
		return fmt.Errorf("%w: [%d,%d] holds fewer than %d values", ErrInfeasibleOption, o.Lo, o.Hi, o.Count)
	}
	if c.Countdown < 0 || c.MaxRounds < 0 || c.CountdownTick < 0 || c.Stagger < 0 ||
		c.RevealDelay < 0 || c.FeedbackDelay < 0 {
		return fmt.Errorf("%w: negative timing or counter", ErrInvalidConfig)
	}
	if c.Countdown > 0 && c.CountdownTick <= 0 {
		return fmt.Errorf("%w: countdown needs a tick interval", ErrInvalidConfig)
	}

	var answers []int
	if a := c.Arithmetic; a != nil {
		if a.LeftMin > a.LeftMax || a.RightMin > a.RightMax || a.ResultMin > a.ResultMax || a.MaxTries < 1 {
			return fmt.Errorf("%w: arithmetic %+v", ErrInvalidConfig, *a)
		}
		problems := enumerate(*a)
		if len(problems) == 0 {
			return fmt.Errorf("%w: %s", ErrInfeasibleRange, c.Kind)
		}
		for _, p := range problems {
			answers = append(answers, p.answer)
		}
	} else {
		n := c.Counting
		if n.Min < 1 || n.Min > n.Max || len(n.Sprites) == 0 {
			return fmt.Errorf("%w: counting %d..%d with %d sprites", ErrInvalidConfig, n.Min, n.Max, len(n.Sprites))
		}
		for v := n.Min; v <= n.Max; v++ {
			answers = append(answers, v)
		}
	}

	for _, ans := range answers {
		if ans < o.Lo || ans > o.Hi {
			return fmt.Errorf("%w: answer %d outside option bounds [%d,%d]", ErrInfeasibleOption, ans, o.Lo, o.Hi)
		}
		if o.Window > 0 && reachable(ans, o.Lo, o.Hi, o.Window) < o.Count {
			return fmt.Errorf("%w: answer %d reaches fewer than %d values within ±%d", ErrInfeasibleOption, ans, o.Count, o.Window)
		}
	}
	return nil
}

// Validate checks the image set can always deal a full deck.
func (c MemoryConfig) Validate() error {
	if c.MaxLevel < 1 {
		return fmt.Errorf("%w: max level %d", ErrInvalidConfig, c.MaxLevel)
	}
	if c.MatchDelay < 0 || c.MismatchDelay < 0 || c.WinDelay < 0 {
		return fmt.Errorf("%w: negative delay", ErrInvalidConfig)
	}
	if len(c.Images) < c.Curve.Pairs(1) {
		return fmt.Errorf("%w: %d images, level 1 needs %d", ErrInvalidConfig, len(c.Images), c.Curve.Pairs(1))
	}
	seen := make(map[string]struct{}, len(c.Images))
	for _, img := range c.Images {
		if _, dup := seen[img]; dup || img == "" {
			return fmt.Errorf("%w: image %q empty or repeated", ErrInvalidConfig, img)
		}
		seen[img] = struct{}{}
	}
	return nil
}
