package andcheck

import "github.com/binaryfield/boolcheck/gf128"

// UntwistEvals inverts boolcheck.TwistEvals: given the inverse-Frobenius
// orbit evaluations boolcheck.Single.Finish produces, it recovers the
// original per-coordinate evaluations. It is a test/verification helper;
// the prover itself only ever needs the forward twist.
func UntwistEvals(twisted []gf128.Elem) []gf128.Elem {
	if len(twisted) != 128 {
		panic("andcheck: UntwistEvals requires exactly 128 evaluations")
	}
	frobbed := make([]gf128.Elem, 128)
	for i := 0; i < 128; i++ {
		frobbed[i] = gf128.Frob(twisted[i], i)
	}
	out := make([]gf128.Elem, 128)
	for i := 0; i < 128; i++ {
		out[i] = gf128.Pi(i, frobbed)
	}
	return out
}
