package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kidgames/internal/random"
)

var testCritters = []string{"cat", "dog", "bird", "fish", "rabbit", "bear", "duck", "owl"}

func assertRound(t *testing.T, r Round, k, lo, hi int) {
	t.Helper()
	assertOptionSet(t, r.Values(), r.Answer, k, lo, hi)
	correct := 0
	for _, o := range r.Options {
		assert.Equal(t, o.Value == r.Answer, o.Correct)
		if o.Correct {
			correct++
		}
	}
	assert.Equal(t, 1, correct)
}

func TestBubblePopRounds(t *testing.T) {
	cfg := BubblePop()
	gen, err := newGenerator(cfg)
	require.NoError(t, err)
	src := random.NewSeeded(11)

	for seq := 1; seq <= 2000; seq++ {
		r, err := gen.round(src, seq)
		require.NoError(t, err)
		assert.Equal(t, seq, r.Seq)
		require.GreaterOrEqual(t, r.Answer, 1)
		require.LessOrEqual(t, r.Answer, 20)
		assertRound(t, r, 4, 1, 20)

		assert.Equal(t, fmt.Sprintf("%d %s %d = ?", r.Left, r.Op, r.Right), r.Prompt)
		if r.Op == OpSub {
			assert.GreaterOrEqual(t, r.Left, r.Right)
			assert.Equal(t, r.Left-r.Right, r.Answer)
		} else {
			assert.Equal(t, r.Left+r.Right, r.Answer)
		}
		for i, o := range r.Options {
			assert.GreaterOrEqual(t, o.X, placeMin)
			assert.LessOrEqual(t, o.X, placeMax)
			assert.Equal(t, time.Duration(i)*200*time.Millisecond, o.Delay)
		}
	}
}

func TestSubtractionScenario(t *testing.T) {
	cfg := BubblePop().Arithmetic
	p := cfg.build(3, 7, OpSub)
	assert.Equal(t, "7 - 3 = ?", p.prompt(PromptEquation))
	assert.Equal(t, 4, p.answer)

	got, err := OptionSet(random.NewSeeded(12), p.answer, 4, 1, 20, 3)
	require.NoError(t, err)
	assertOptionSet(t, got, 4, 4, 1, 20)
}

func TestFrogJumpRounds(t *testing.T) {
	gen, err := newGenerator(FrogJump())
	require.NoError(t, err)
	src := random.NewSeeded(13)
	for seq := 1; seq <= 2000; seq++ {
		r, err := gen.round(src, seq)
		require.NoError(t, err)
		require.GreaterOrEqual(t, r.Answer, 0)
		require.LessOrEqual(t, r.Answer, 20)
		assertRound(t, r, 4, 0, 20)
		assert.Equal(t, fmt.Sprintf("Start at %d, jump %s %d. Where do you land?", r.Left, r.Op, r.Right), r.Prompt)
		assert.GreaterOrEqual(t, r.Right, 1)
		assert.LessOrEqual(t, r.Right, 5)
	}
}

func TestArithmeticFallsBackAfterMaxTries(t *testing.T) {
	// A source pinned to the lowest operands only ever draws 1+1 = 2, which
	// the config rejects; the fallback must still yield an in-range problem.
	cfg := ArithmeticConfig{
		LeftMin: 1, LeftMax: 15,
		RightMin: 1, RightMax: 5,
		ResultMin: 16, ResultMax: 20,
		MaxTries: 10,
	}
	a, err := newArithmetic(cfg)
	require.NoError(t, err)
	p := a.next(fixedSource{n: 0})
	assert.GreaterOrEqual(t, p.answer, 16)
	assert.LessOrEqual(t, p.answer, 20)
}

func TestCountingRounds(t *testing.T) {
	gen, err := newGenerator(CountCritters(testCritters))
	require.NoError(t, err)
	src := random.NewSeeded(14)
	for seq := 1; seq <= 500; seq++ {
		r, err := gen.round(src, seq)
		require.NoError(t, err)
		assert.Equal(t, "How many critters do you see?", r.Prompt)
		require.GreaterOrEqual(t, r.Answer, 3)
		require.LessOrEqual(t, r.Answer, 8)
		assert.Len(t, r.Sprites, r.Answer)
		for _, s := range r.Sprites {
			assert.Contains(t, testCritters, s)
		}
		assertRound(t, r, 4, 1, 10)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, BubblePop().Validate())
	require.NoError(t, FrogJump().Validate())
	require.NoError(t, CountCritters(testCritters).Validate())

	tests := []struct {
		name   string
		mutate func(*QuizConfig)
		want   error
	}{
		{"unsatisfiable result range", func(c *QuizConfig) { c.Arithmetic.ResultMin, c.Arithmetic.ResultMax = 100, 200 }, ErrInfeasibleRange},
		{"option bounds too narrow", func(c *QuizConfig) { c.Options.Lo, c.Options.Hi = 1, 3 }, ErrInfeasibleOption},
		{"answer outside option bounds", func(c *QuizConfig) { c.Options.Hi = 10 }, ErrInfeasibleOption},
		{"window cannot reach k at the edge", func(c *QuizConfig) { c.Options.Count = 5 }, ErrInfeasibleOption},
		{"no generator", func(c *QuizConfig) { c.Arithmetic = nil }, ErrInvalidConfig},
		{"zero tries", func(c *QuizConfig) { c.Arithmetic.MaxTries = 0 }, ErrInvalidConfig},
		{"countdown without tick", func(c *QuizConfig) { c.CountdownTick = 0 }, ErrInvalidConfig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := BubblePop()
			a := *cfg.Arithmetic
			cfg.Arithmetic = &a
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}

	noSprites := CountCritters(nil)
	assert.ErrorIs(t, noSprites.Validate(), ErrInvalidConfig)
}

func TestEvaluate(t *testing.T) {
	r := Round{Answer: 4, Options: []Option{{Value: 4, Correct: true}, {Value: 5}}}

	ev := Evaluate(r, 4, FrogJump().Feedback)
	assert.Equal(t, Evaluation{Correct: true, ScoreDelta: 10, Feedback: FeedbackCorrect, Message: "🎉 Excellent!"}, ev)

	ev = Evaluate(r, 5, FrogJump().Feedback)
	assert.Equal(t, Evaluation{Feedback: FeedbackIncorrect, Message: "Not quite! The answer is 4."}, ev)

	ev = Evaluate(r, 5, BubblePop().Feedback)
	assert.Equal(t, "Oops! Try again.", ev.Message)
	assert.Zero(t, ev.ScoreDelta)
}
