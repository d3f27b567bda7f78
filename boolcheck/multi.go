package boolcheck

import "github.com/binaryfield/boolcheck/gf128"

// FinalClaim is the output of a finished Single prover: the 128
// per-input inverse-Frobenius-orbit evaluations, one slice per input
// polynomial.
type FinalClaim struct {
	PEvs [][]gf128.Elem
}

// MultiCombinator evaluates an M-output function of N field elements.
type MultiCombinator func(args []gf128.Elem) []gf128.Elem

// MultiAlgCombinator is the algebraic-form analogue of MultiCombinator,
// returning the {0,1,infinity} triple for each of the M outputs.
type MultiAlgCombinator func(buf []gf128.Elem, i, offset int) [3][]gf128.Elem

// Multi batches M simultaneous evaluation claims about the same N input
// polynomials behind one combinator pair, to be folded by a verifier
// challenge gamma into a single Single prover via FoldingChallenge.
type Multi struct {
	f     MultiCombinator
	fQuad MultiCombinator
	fAlg  MultiAlgCombinator

	pt     []gf128.Elem
	polys  [][]gf128.Elem
	c      int
	claims []gf128.Elem
}

// NewMulti constructs a batched prover for M claims about the same N
// input polynomials.
func NewMulti(pt []gf128.Elem, polys [][]gf128.Elem, c int, claims []gf128.Elem, f, fQuad MultiCombinator, fAlg MultiAlgCombinator) *Multi {
	return &Multi{f: f, fQuad: fQuad, fAlg: fAlg, pt: pt, polys: polys, c: c, claims: claims}
}

// FoldingChallenge is the verifier's first message: it folds the M
// outputs and M claims into one, via a Horner scheme in gamma, and
// returns the resulting single-output prover.
func (m *Multi) FoldingChallenge(gamma gf128.Elem) *Single {
	numOutputs := len(m.claims)
	if numOutputs == 0 {
		panic("boolcheck: Multi requires at least one claim")
	}

	fFolded := func(args []gf128.Elem) gf128.Elem {
		return hornerFold(m.f(args), gamma)
	}
	fQuadFolded := func(args []gf128.Elem) gf128.Elem {
		return hornerFold(m.fQuad(args), gamma)
	}
	fAlgFolded := func(buf []gf128.Elem, i, offset int) [3]gf128.Elem {
		fx := m.fAlg(buf, i, offset)
		return [3]gf128.Elem{
			hornerFold(fx[0], gamma),
			hornerFold(fx[1], gamma),
			hornerFold(fx[2], gamma),
		}
	}

	claim := hornerFold(m.claims, gamma)

	return NewSingle(m.pt, m.polys, m.c, claim, fFolded, fQuadFolded, fAlgFolded)
}

// hornerFold combines values[0..M) into values[0] + gamma*(values[1]
// + gamma*(... + gamma*values[M-1])), i.e. Horner's scheme evaluating the
// polynomial with values as coefficients (lowest index first) at gamma.
func hornerFold(values []gf128.Elem, gamma gf128.Elem) gf128.Elem {
	ret := values[len(values)-1]
	for i := 0; i < len(values)-1; i++ {
		ret = gf128.Mul(ret, gamma)
		ret = gf128.Add(ret, values[len(values)-2-i])
	}
	return ret
}
