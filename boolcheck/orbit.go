package boolcheck

import "github.com/binaryfield/boolcheck/gf128"

// TwistEvals computes the inverse Frobenius orbit of a 128-entry
// coordinate evaluation vector: repeatedly squaring the whole vector and
// summing it against the standard basis, then reversing, so that
// untwisting (squaring element i exactly i times) recovers the original
// per-coordinate evaluations. The square-then-sum-then-reverse order is
// load-bearing; do not reorder it.
func TwistEvals(evals []gf128.Elem) []gf128.Elem {
	if len(evals) != 128 {
		panic("boolcheck: TwistEvals requires exactly 128 evaluations")
	}
	work := make([]gf128.Elem, 128)
	copy(work, evals)

	out := make([]gf128.Elem, 128)
	for s := 0; s < 128; s++ {
		for i := range work {
			work[i] = gf128.Square(work[i])
		}
		sum := gf128.Zero()
		for i := 0; i < 128; i++ {
			sum = gf128.Add(sum, gf128.Mul(gf128.Basis(i), work[i]))
		}
		out[s] = sum
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
