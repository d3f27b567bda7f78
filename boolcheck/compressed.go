package boolcheck

import "github.com/binaryfield/boolcheck/gf128"

// CompressedPoly is a degree-3 round polynomial with its linear
// coefficient elided: given [a0, a1, a2, a3], it stores [a0, a2, a3]
// and relies on the verifier's running claim to recover a1 (since
// a1+a2+a3, i.e. poly(0)+poly(1), equals the claim being folded).
type CompressedPoly struct {
	Compressed []gf128.Elem
}

// Compress drops poly's linear coefficient and returns the sum of all
// coefficients but the constant term (poly(1) once poly(0) is
// subtracted out), which callers track as the running claim.
func Compress(poly []gf128.Elem) (CompressedPoly, gf128.Elem) {
	sum := gf128.Zero()
	for _, c := range poly[1:] {
		sum = gf128.Add(sum, c)
	}
	compressed := make([]gf128.Elem, 0, len(poly)-1)
	compressed = append(compressed, poly[0])
	compressed = append(compressed, poly[2:]...)
	return CompressedPoly{Compressed: compressed}, sum
}

// Full recovers the full coefficient vector [a0, a1, a2, a3, ...] given
// the running claim (poly(0)+poly(1) under XOR, i.e. the sum recorded
// by Compress).
func (c CompressedPoly) Full(sum gf128.Elem) []gf128.Elem {
	coeff0 := c.Compressed[0]
	ev1 := gf128.Add(coeff0, sum)
	coeff1 := ev1
	for _, x := range c.Compressed {
		coeff1 = gf128.Add(coeff1, x)
	}
	ret := make([]gf128.Elem, 0, len(c.Compressed)+1)
	ret = append(ret, coeff0, coeff1)
	ret = append(ret, c.Compressed[1:]...)
	return ret
}

// Clone returns a deep copy, since round_msg must be safe to call
// repeatedly and hand back a cached value without aliasing it.
func (c CompressedPoly) Clone() CompressedPoly {
	out := make([]gf128.Elem, len(c.Compressed))
	copy(out, c.Compressed)
	return CompressedPoly{Compressed: out}
}
