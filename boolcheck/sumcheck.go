// Package boolcheck implements the two-phase sum-check prover: the
// state machine that, given N multilinear input polynomials and a
// quadratic-friendly combinator f, drives n rounds of round-message /
// challenge-bind exchanges and finalizes into 128 Frobenius-orbit
// evaluations per input.
package boolcheck

import "github.com/binaryfield/boolcheck/gf128"

// SumcheckObject is the contract every sum-check prover state machine
// in this module satisfies: round_msg and bind must be called by a
// single caller in strict alternation, never concurrently on the same
// instance.
type SumcheckObject interface {
	// IsReverseOrder reports whether this protocol binds its
	// variables most-significant-first. BoolCheck binds least
	// significant first, so this is always false here.
	IsReverseOrder() bool
	// Bind consumes a verifier challenge and advances the state
	// machine by one round.
	Bind(t gf128.Elem)
	// RoundMsg returns the current round's compressed polynomial.
	// It is idempotent: calling it twice without an intervening
	// Bind returns the identical cached value.
	RoundMsg() CompressedPoly
}

// Combinator evaluates a quadratic-friendly function of N field
// elements, one per input polynomial, returning a single field
// element.
type Combinator func(args []gf128.Elem) gf128.Elem

// AlgCombinator evaluates the algebraic form of a combinator against
// bit-sliced coordinate data. buf holds 128*N coordinate rows laid out
// contiguously; AlgCombinator reads buf[2*i], buf[2*i+offset], ... for
// the "at 0" output, buf[2*i+1], buf[2*i+1+offset], ... for "at 1", and
// combines the two for "at infinity".
type AlgCombinator func(buf []gf128.Elem, i, offset int) [3]gf128.Elem
