package boolcheck

import (
	"testing"

	"github.com/binaryfield/boolcheck/eqpoly"
	"github.com/binaryfield/boolcheck/gf128"
	"github.com/binaryfield/boolcheck/internal/xtranscript"
)

func andF(args []gf128.Elem) gf128.Elem    { return gf128.And(args[0], args[1]) }
func andFQuad(args []gf128.Elem) gf128.Elem { return gf128.And(args[0], args[1]) }

func andFAlg(buf []gf128.Elem, i, offset int) [3]gf128.Elem {
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

func evalAndClaim(pt, p, q []gf128.Elem) gf128.Elem {
	eq := eqpoly.EqPoly(pt)
	acc := gf128.Zero()
	for i := range eq {
		acc = gf128.Add(acc, gf128.Mul(gf128.And(p[i], q[i]), eq[i]))
	}
	return acc
}

// applyAndAlgebraicCombinator reconstructs the evaluation of P & Q at
// the challenge point from a finished prover's orbit evaluations. It
// duplicates andcheck.ApplyAlgebraicCombinator (which cannot be
// imported here without an import cycle, since andcheck imports this
// package) so that TwistEvals, Basis and Pi can be exercised together
// from this package's own tests.
func applyAndAlgebraicCombinator(final FinalClaim) gf128.Elem {
	pEvs, qEvs := final.PEvs[0], final.PEvs[1]
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

// runAndCheck drives an AND-check prover through all its rounds and
// returns its final orbit claim alongside the point, the bound
// challenges, and the running claim those rounds folded down to, so
// callers can check the end-to-end identity
// ApplyAlgebraicCombinator(final) * eq(pt, challenges) == claim.
func runAndCheck(t *testing.T, numVars, c int) (final FinalClaim, pt, challenges []gf128.Elem, claim gf128.Elem) {
	t.Helper()
	stream := xtranscript.New("boolcheck-single-test", []byte{byte(numVars), byte(c)})
	pt = stream.NextN(numVars)
	p := stream.NextN(1 << uint(numVars))
	q := stream.NextN(1 << uint(numVars))
	initialClaim := evalAndClaim(pt, p, q)

	prover := NewSingle(pt, [][]gf128.Elem{p, q}, c, initialClaim, andF, andFQuad, andFAlg)

	challengeStream := xtranscript.New("boolcheck-single-test-challenges", []byte{byte(numVars), byte(c)})
	for i := 0; i < numVars; i++ {
		msg := prover.RoundMsg()
		msgAgain := prover.RoundMsg()
		if len(msg.Compressed) != len(msgAgain.Compressed) {
			t.Fatalf("round %d: RoundMsg is not idempotent", i)
		}
		for k := range msg.Compressed {
			if !msg.Compressed[k].Equal(msgAgain.Compressed[k]) {
				t.Fatalf("round %d: RoundMsg is not idempotent at coeff %d", i, k)
			}
		}
		ch := challengeStream.Next()
		prover.Bind(ch)
		challenges = append(challenges, ch)
	}

	final = prover.Finish()
	claim = prover.Claim()
	return final, pt, challenges, claim
}

// assertFinalClaimMatches checks the identity every AND-check run must
// satisfy: the algebraic combination of the final orbit evaluations,
// weighted by eq(pt, challenges), equals the claim the rounds folded
// down to.
func assertFinalClaimMatches(t *testing.T, final FinalClaim, pt, challenges []gf128.Elem, claim gf128.Elem) {
	t.Helper()
	got := gf128.Mul(applyAndAlgebraicCombinator(final), eqpoly.EqEv(pt, challenges))
	if !got.Equal(claim) {
		t.Fatalf("final claim mismatch: got %v want %v", got, claim)
	}
}

func TestSmallAndCheckEndToEnd(t *testing.T) {
	final, pt, challenges, claim := runAndCheck(t, 5, 2)
	assertFinalClaimMatches(t, final, pt, challenges, claim)
}

func TestMidAndCheckEndToEnd(t *testing.T) {
	final, pt, challenges, claim := runAndCheck(t, 10, 4)
	assertFinalClaimMatches(t, final, pt, challenges, claim)
}

func TestAndCheckPhaseSwitchAtBoundary(t *testing.T) {
	final, pt, challenges, claim := runAndCheck(t, 6, 0)
	assertFinalClaimMatches(t, final, pt, challenges, claim)

	final, pt, challenges, claim = runAndCheck(t, 6, 5)
	assertFinalClaimMatches(t, final, pt, challenges, claim)
}

func TestFinishPanicsBeforeAllRoundsBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	stream := xtranscript.New("boolcheck-single-test-early-finish", nil)
	pt := stream.NextN(4)
	p := stream.NextN(16)
	q := stream.NextN(16)
	claim := evalAndClaim(pt, p, q)
	prover := NewSingle(pt, [][]gf128.Elem{p, q}, 1, claim, andF, andFQuad, andFAlg)
	prover.Bind(stream.Next())
	prover.Finish()
}

func TestNewSinglePanicsOnShapeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	pt := make([]gf128.Elem, 4)
	p := make([]gf128.Elem, 8) // wrong length
	q := make([]gf128.Elem, 16)
	NewSingle(pt, [][]gf128.Elem{p, q}, 1, gf128.Zero(), andF, andFQuad, andFAlg)
}
