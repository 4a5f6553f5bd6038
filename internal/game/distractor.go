package game

import (
	"fmt"

	"github.com/robalobadob/kidgames/internal/random"
)

// drawsPerOption bounds the random draws spent per requested option before
// the remaining slots are filled deterministically.
const drawsPerOption = 64

// OptionSet returns exactly k distinct integers in [lo,hi] including correct.
// With window > 0 distractors are correct+offset (offset in [-window,window])
// clamped into the bounds; with window == 0 they are uniform over [lo,hi].
// Output order is insertion order; callers shuffle.
func OptionSet(src random.Source, correct, k, lo, hi, window int) ([]int, error) {
	if k < 1 || lo > hi || correct < lo || correct > hi {
		return nil, fmt.Errorf("%w: k=%d correct=%d bounds [%d,%d]", ErrInfeasibleOption, k, correct, lo, hi)
	}
	if hi-lo+1 < k {
		return nil, fmt.Errorf("%w: [%d,%d] holds fewer than %d values", ErrInfeasibleOption, lo, hi, k)
	}
	if window > 0 && reachable(correct, lo, hi, window) < k {
		return nil, fmt.Errorf("%w: %d±%d in [%d,%d] holds fewer than %d values", ErrInfeasibleOption, correct, window, lo, hi, k)
	}

	set := map[int]struct{}{correct: {}}
	out := []int{correct}
	add := func(v int) {
		if _, ok := set[v]; !ok {
			set[v] = struct{}{}
			out = append(out, v)
		}
	}

	for draws := 0; len(out) < k && draws < drawsPerOption*k; draws++ {
		if window > 0 {
			add(clamp(correct+random.Between(src, -window, window), lo, hi))
		} else {
			add(random.Between(src, lo, hi))
		}
	}

	// Fallback: nearest unused values around the answer. Only reached on a
	// pathological source; the feasibility checks above guarantee it completes.
	span := hi - lo
	if window > 0 {
		span = window
	}
	for d := 1; len(out) < k && d <= span; d++ {
		for _, v := range []int{correct - d, correct + d} {
			if len(out) < k && v >= lo && v <= hi {
				add(v)
			}
		}
	}
	return out, nil
}

// reachable counts the distinct values correct±window can clamp to.
func reachable(correct, lo, hi, window int) int {
	return min(hi, correct+window) - max(lo, correct-window) + 1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
