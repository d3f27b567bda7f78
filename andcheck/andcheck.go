// Package andcheck specializes the boolcheck sum-check prover to a
// single bitwise AND of two multilinear polynomials, f(p,q) = p & q,
// and supplies the verifier-side evaluation combinator and Frobenius
// orbit helpers the AND case needs but the generic boolcheck package
// does not.
package andcheck

import (
	"github.com/binaryfield/boolcheck/boolcheck"
	"github.com/binaryfield/boolcheck/gf128"
)

// F is the AND combinator: f(p,q) = p & q. AND is already bilinear, so
// its linear half is zero and F doubles as its own quadratic half.
func F(args []gf128.Elem) gf128.Elem {
	return gf128.And(args[0], args[1])
}

// FQuad is F's purely-quadratic half. For AND, f_lin is identically
// zero, so FQuad equals F itself.
func FQuad(args []gf128.Elem) gf128.Elem {
	return gf128.And(args[0], args[1])
}

// FAlg is the algebraic form of F against bit-sliced coordinate data:
// buf holds 128 coordinate rows of p followed by 128 coordinate rows of
// q, each row of length offset. i selects a position within a row pair
// (2*i is the "at 0" slot, 2*i+1 is "at 1"); the returned triple gives
// the weighted sum over all 128 coordinates at 0, 1, and infinity.
func FAlg(buf []gf128.Elem, i, offset int) [3]gf128.Elem {
	idxA := i * 2
	idxB := idxA + offset*128

	var ret [3]gf128.Elem
	ret[0] = gf128.Mul(gf128.Basis(0), gf128.Mul(buf[idxA], buf[idxB]))
	ret[1] = gf128.Mul(gf128.Basis(0), gf128.Mul(buf[idxA+1], buf[idxB+1]))
	ret[2] = gf128.Mul(gf128.Basis(0), gf128.Mul(gf128.Add(buf[idxA], buf[idxA+1]), gf128.Add(buf[idxB], buf[idxB+1])))

	for k := 1; k < 128; k++ {
		idxA += offset
		idxB += offset
		ret[0] = gf128.Add(ret[0], gf128.Mul(gf128.Basis(k), gf128.Mul(buf[idxA], buf[idxB])))
		ret[1] = gf128.Add(ret[1], gf128.Mul(gf128.Basis(k), gf128.Mul(buf[idxA+1], buf[idxB+1])))
		ret[2] = gf128.Add(ret[2], gf128.Mul(gf128.Basis(k), gf128.Mul(gf128.Add(buf[idxA], buf[idxA+1]), gf128.Add(buf[idxB], buf[idxB+1]))))
	}

	return ret
}

// ApplyAlgebraicCombinator computes the evaluation of (P & Q) at the
// sum-check's challenge point from the final claim's inverse-Frobenius-
// orbit evaluations of P and Q, by twisting each coordinate back with
// its own Frobenius power and selecting bit i of coordinate i.
func ApplyAlgebraicCombinator(final boolcheck.FinalClaim) gf128.Elem {
	if len(final.PEvs) != 2 {
		panic("andcheck: ApplyAlgebraicCombinator expects exactly two input polynomials")
	}
	pEvs, qEvs := final.PEvs[0], final.PEvs[1]
	if len(pEvs) != 128 || len(qEvs) != 128 {
		panic("andcheck: ApplyAlgebraicCombinator expects 128 orbit evaluations per polynomial")
	}

	pTwists := make([]gf128.Elem, 128)
	qTwists := make([]gf128.Elem, 128)
	for i := 0; i < 128; i++ {
		pTwists[i] = gf128.Frob(pEvs[i], i)
		qTwists[i] = gf128.Frob(qEvs[i], i)
	}

	ret := gf128.Zero()
	for i := 0; i < 128; i++ {
		ret = gf128.Add(ret, gf128.Mul(gf128.Basis(i), gf128.Mul(gf128.Pi(i, pTwists), gf128.Pi(i, qTwists))))
	}
	return ret
}
