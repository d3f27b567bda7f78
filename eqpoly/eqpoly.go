// Package eqpoly builds the multilinear equality polynomial tables the
// sum-check prover folds its claims against.
package eqpoly

import (
	"fmt"

	"github.com/binaryfield/boolcheck/gf128"
	"github.com/binaryfield/boolcheck/internal/fanout"
)

// EqPoly returns eq_poly(pt), a table of length 2^len(pt) such that
// EqPoly(pt)[x] = prod_i ((1+pt_i) + x_i) for x read as a little-endian
// bit vector. Doubling algorithm: each level folds the previous table
// against the next coordinate of pt.
func EqPoly(pt []gf128.Elem) []gf128.Elem {
	ret := make([]gf128.Elem, 1<<uint(len(pt)))
	ret[0] = gf128.One()
	for i := 0; i < len(pt); i++ {
		half := 1 << uint(i)
		m := pt[i]
		fanout.Execute(half, func(start, end int) {
			for j := start; j < end; j++ {
				w := ret[j]
				mw := gf128.Mul(m, w)
				ret[half+j] = mw
				ret[j] = gf128.Add(w, mw)
			}
		})
	}
	return ret
}

// EqPolySequence returns, for i = 0..len(pt), the table
// EqPoly(pt[len(pt)-i:]); result[i] has length 2^i. It is computed
// incrementally, each level built from the previous by the
// split-and-multiply identity, so it shares no recomputation with a
// naive per-level call to EqPoly.
func EqPolySequence(pt []gf128.Elem) [][]gf128.Elem {
	l := len(pt)
	ret := make([][]gf128.Elem, l+1)
	ret[0] = []gf128.Elem{gf128.One()}

	for i := 1; i <= l; i++ {
		last := ret[i-1]
		multiplier := pt[l-i]
		incoming := make([]gf128.Elem, 1<<uint(i))
		half := 1 << uint(i-1)
		fanout.Execute(half, func(start, end int) {
			for j := start; j < end; j++ {
				w := last[j]
				m := gf128.Mul(multiplier, w)
				incoming[2*j] = gf128.Add(w, m)
				incoming[2*j+1] = m
			}
		})
		ret[i] = incoming
	}
	return ret
}

// EqEv returns eq(x, y) = prod_i (1 + x_i + y_i) for equal-length point
// vectors x and y.
func EqEv(x, y []gf128.Elem) gf128.Elem {
	if len(x) != len(y) {
		panic(fmt.Sprintf("eqpoly: EqEv length mismatch %d != %d", len(x), len(y)))
	}
	acc := gf128.One()
	for i := range x {
		term := gf128.Add(gf128.One(), gf128.Add(x[i], y[i]))
		acc = gf128.Mul(acc, term)
	}
	return acc
}

// Evaluate evaluates the dense multilinear polynomial poly (length
// 2^len(pt)) at pt.
func Evaluate(poly []gf128.Elem, pt []gf128.Elem) gf128.Elem {
	if len(poly) != 1<<uint(len(pt)) {
		panic(fmt.Sprintf("eqpoly: Evaluate shape mismatch, poly len %d, pt len %d", len(poly), len(pt)))
	}
	eq := EqPoly(pt)
	acc := gf128.Zero()
	for i := range poly {
		acc = gf128.Add(acc, gf128.Mul(poly[i], eq[i]))
	}
	return acc
}

// EvaluateUnivariate evaluates a univariate polynomial given by its
// coefficients (lowest degree first) at the point "at", via Horner's
// method.
func EvaluateUnivariate(poly []gf128.Elem, at gf128.Elem) gf128.Elem {
	l := len(poly)
	ret := poly[l-1]
	for i := 0; i < l-1; i++ {
		ret = gf128.Mul(ret, at)
		ret = gf128.Add(ret, poly[l-2-i])
	}
	return ret
}
