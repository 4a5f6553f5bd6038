// internal/game/problem.go
//
// Problem generation for the quiz games.
//   - Arithmetic: operands from bounded ranges, + or - uniformly, rejected and
//     redrawn while the result is out of range. After MaxTries draws the
//     generator picks uniformly among every valid problem instead of
//     accepting an out-of-range answer.
//   - Counting: a quantity in range; the quantity is the answer and drives
//     how many sprites are shown.

package game

import (
	"fmt"
	"time"

	"github.com/robalobadob/kidgames/internal/random"
)

// problem is a generated prompt before options are attached.
type problem struct {
	left, right int
	op          Operator
	answer      int
}

func (p problem) prompt(style PromptStyle) string {
	if style == PromptJump {
		return fmt.Sprintf("Start at %d, jump %s %d. Where do you land?", p.left, p.op, p.right)
	}
	return fmt.Sprintf("%d %s %d = ?", p.left, p.op, p.right)
}

// arithmetic draws problems for one ArithmeticConfig.
type arithmetic struct {
	cfg   ArithmeticConfig
	valid []problem // every in-range problem, for the exhaustion fallback
}

func newArithmetic(cfg ArithmeticConfig) (*arithmetic, error) {
	valid := enumerate(cfg)
	if len(valid) == 0 {
		return nil, ErrInfeasibleRange
	}
	return &arithmetic{cfg: cfg, valid: valid}, nil
}

func (a *arithmetic) next(src random.Source) problem {
	for try := 0; try < a.cfg.MaxTries; try++ {
		op := OpAdd
		if src.IntN(2) == 1 {
			op = OpSub
		}
		p := a.cfg.build(
			random.Between(src, a.cfg.LeftMin, a.cfg.LeftMax),
			random.Between(src, a.cfg.RightMin, a.cfg.RightMax),
			op,
		)
		if a.cfg.inRange(p.answer) {
			return p
		}
	}
	return a.valid[src.IntN(len(a.valid))]
}

// build applies the operator, reordering subtraction when configured.
func (c ArithmeticConfig) build(left, right int, op Operator) problem {
	if op == OpSub {
		if c.Reorder && left < right {
			left, right = right, left
		}
		return problem{left: left, right: right, op: op, answer: left - right}
	}
	return problem{left: left, right: right, op: op, answer: left + right}
}

func (c ArithmeticConfig) inRange(v int) bool {
	return v >= c.ResultMin && v <= c.ResultMax
}

// enumerate lists every problem the draw loop can accept.
func enumerate(c ArithmeticConfig) []problem {
	var out []problem
	for l := c.LeftMin; l <= c.LeftMax; l++ {
		for r := c.RightMin; r <= c.RightMax; r++ {
			for _, op := range []Operator{OpAdd, OpSub} {
				if p := c.build(l, r, op); c.inRange(p.answer) {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// generator produces complete rounds for a validated QuizConfig.
type generator struct {
	cfg   QuizConfig
	arith *arithmetic
}

func newGenerator(cfg QuizConfig) (*generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &generator{cfg: cfg}
	if cfg.Arithmetic != nil {
		a, err := newArithmetic(*cfg.Arithmetic)
		if err != nil {
			return nil, err
		}
		g.arith = a
	}
	return g, nil
}

// round builds round seq: prompt, answer, shuffled options and placement.
func (g *generator) round(src random.Source, seq int) (Round, error) {
	r := Round{Seq: seq}
	if g.arith != nil {
		p := g.arith.next(src)
		r.Left, r.Op, r.Right, r.Answer = p.left, p.op, p.right, p.answer
		r.Prompt = p.prompt(g.cfg.Arithmetic.Style)
	} else {
		c := g.cfg.Counting
		r.Answer = random.Between(src, c.Min, c.Max)
		r.Prompt = "How many critters do you see?"
		r.Sprites = make([]string, r.Answer)
		for i := range r.Sprites {
			r.Sprites[i] = c.Sprites[src.IntN(len(c.Sprites))]
		}
	}

	o := g.cfg.Options
	values, err := OptionSet(src, r.Answer, o.Count, o.Lo, o.Hi, o.Window)
	if err != nil {
		return Round{}, fmt.Errorf("round %d (answer %d): %w", seq, r.Answer, err)
	}
	random.ShuffleInPlace(src, values)

	r.Options = make([]Option, len(values))
	var xs []float64
	if g.cfg.Placement {
		xs = placements(src, len(values))
	}
	for i, v := range values {
		r.Options[i] = Option{Value: v, Correct: v == r.Answer, Delay: time.Duration(i) * g.cfg.Stagger}
		if xs != nil {
			r.Options[i].X = xs[i]
			r.Options[i].Y = src.Float64() * placeLift
		}
	}
	return r, nil
}
