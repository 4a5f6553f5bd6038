package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kidgames/internal/random"
)

// fixedSource always returns the same draw.
type fixedSource struct{ n int }

func (f fixedSource) IntN(n int) int {
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func (f fixedSource) Float64() float64 { return 0 }

func assertOptionSet(t *testing.T, got []int, correct, k, lo, hi int) {
	t.Helper()
	require.Len(t, got, k)
	seen := map[int]int{}
	for _, v := range got {
		seen[v]++
		assert.GreaterOrEqual(t, v, lo)
		assert.LessOrEqual(t, v, hi)
	}
	assert.Len(t, seen, k, "values must be distinct: %v", got)
	assert.Equal(t, 1, seen[correct], "correct answer exactly once: %v", got)
}

func TestOptionSetWindow(t *testing.T) {
	src := random.NewSeeded(7)
	for c := 1; c <= 20; c++ {
		for i := 0; i < 50; i++ {
			got, err := OptionSet(src, c, 4, 1, 20, 3)
			require.NoError(t, err)
			assertOptionSet(t, got, c, 4, 1, 20)
			for _, v := range got {
				assert.LessOrEqual(t, abs(v-c), 3)
			}
		}
	}
}

func TestOptionSetUniform(t *testing.T) {
	src := random.NewSeeded(8)
	for c := 3; c <= 8; c++ {
		got, err := OptionSet(src, c, 4, 1, 10, 0)
		require.NoError(t, err)
		assertOptionSet(t, got, c, 4, 1, 10)
	}
}

func TestOptionSetExactFit(t *testing.T) {
	got, err := OptionSet(random.NewSeeded(9), 2, 4, 1, 4, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, got)
}

func TestOptionSetInfeasible(t *testing.T) {
	src := random.NewSeeded(10)
	tests := []struct {
		name                    string
		correct, k, lo, hi, win int
	}{
		{"range too small", 2, 4, 1, 3, 0},
		{"window too small at edge", 1, 5, 1, 20, 3},
		{"answer out of bounds", 25, 4, 1, 20, 3},
		{"no options", 5, 0, 1, 20, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OptionSet(src, tc.correct, tc.k, tc.lo, tc.hi, tc.win)
			assert.ErrorIs(t, err, ErrInfeasibleOption)
		})
	}
}

func TestOptionSetTerminatesOnDegenerateSource(t *testing.T) {
	// Every draw yields the same clamped value; the fill step must finish the set.
	got, err := OptionSet(fixedSource{n: 0}, 10, 4, 1, 20, 3)
	require.NoError(t, err)
	assertOptionSet(t, got, 10, 4, 1, 20)

	got, err = OptionSet(fixedSource{n: 0}, 1, 4, 1, 20, 3)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, got)

	got, err = OptionSet(fixedSource{n: 0}, 5, 4, 1, 10, 0)
	require.NoError(t, err)
	assertOptionSet(t, got, 5, 4, 1, 10)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
