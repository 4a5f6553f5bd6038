package game

import "github.com/robalobadob/kidgames/internal/random"

// Placement bounds as fractions of the play area width.
const (
	placeMin    = 0.22
	placeMax    = 0.88
	placeJitter = 0.04
	placeLift   = 0.125 // max starting offset below the play area
)

// placements spreads n options evenly across the play area with a little
// jitter, then shuffles the slots so value order and position are unrelated.
func placements(src random.Source, n int) []float64 {
	xs := evenlySpaced(src, n, placeMin, placeMax, placeJitter)
	random.ShuffleInPlace(src, xs)
	return xs
}

func evenlySpaced(src random.Source, n int, lo, hi, jitter float64) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo + (hi-lo)/2}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		x := lo + float64(i)*step
		if jitter > 0 {
			x += (src.Float64() - 0.5) * jitter
			x = max(lo, min(hi, x))
		}
		out[i] = x
	}
	return out
}
