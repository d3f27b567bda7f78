package boolcheck

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/binaryfield/boolcheck/eqpoly"
	"github.com/binaryfield/boolcheck/extend"
	"github.com/binaryfield/boolcheck/gf128"
	"github.com/binaryfield/boolcheck/internal/fanout"
	"github.com/binaryfield/boolcheck/restrict"
	"github.com/binaryfield/boolcheck/trit"
)

// Single is the two-phase sum-check prover for a single-output claim
// S = sum_x f(P_1(x),...,P_N(x)) * eq(x, pt).
//
// f is supplied alongside fQuad, its purely-quadratic half (f = fQuad +
// fLin, with fLin recovered internally as f XOR fQuad); extend.ExtendNTables
// requires fLin to vanish at every infinity-digit trit position, which
// holds for every combinator used in this module (see DESIGN.md).
type Single struct {
	f     Combinator
	fQuad Combinator
	fAlg  AlgCombinator

	pt      []gf128.Elem
	polys   [][]gf128.Elem
	n       int // number of input polynomials
	numVars int
	c       int // phase switch: rounds 0..c are phase 1

	ext         []gf128.Elem   // present during phase 1
	polysCoords [][]gf128.Elem // history of phase-2 restrictions, last is current

	claim      gf128.Elem
	challenges []gf128.Elem
	bitMapping []uint16
	eqSequence [][]gf128.Elem
	roundPolys []CompressedPoly
}

// NewSingle constructs a prover for pt (n = len(pt) rounds), N input
// polynomials each of length 2^n, phase switch c (0 <= c < n), and the
// initial evaluation claim.
func NewSingle(pt []gf128.Elem, polys [][]gf128.Elem, c int, claim gf128.Elem, f, fQuad Combinator, fAlg AlgCombinator) *Single {
	numVars := len(pt)
	if numVars == 0 {
		panic("boolcheck: pt must have at least one coordinate")
	}
	for i, p := range polys {
		if len(p) != 1<<uint(numVars) {
			panic(fmt.Sprintf("boolcheck: poly %d has length %d, want 2^%d", i, len(p), numVars))
		}
	}
	if c < 0 || c >= numVars {
		panic(fmt.Sprintf("boolcheck: phase switch c=%d must be in [0, %d)", c, numVars))
	}

	bitMapping, tritMapping := trit.ComputeTritMappings(c)
	fLin := func(args []gf128.Elem) gf128.Elem {
		return gf128.Add(f(args), fQuad(args))
	}
	ext := extend.ExtendNTables(polys, c, tritMapping, fLin, extend.Combinator(fQuad))
	eqSequence := eqpoly.EqPolySequence(pt[1:])

	return &Single{
		f:          f,
		fQuad:      fQuad,
		fAlg:       fAlg,
		pt:         pt,
		polys:      polys,
		n:          len(polys),
		numVars:    numVars,
		c:          c,
		ext:        ext,
		claim:      claim,
		bitMapping: bitMapping,
		eqSequence: eqSequence,
	}
}

// CurrRound returns how many challenges have been bound so far.
func (s *Single) CurrRound() int { return len(s.challenges) }

// NumVars returns n, the total number of rounds.
func (s *Single) NumVars() int { return s.numVars }

// Claim returns the running evaluation claim, folded down by every
// Bind call so far. Once CurrRound equals NumVars, this is the value a
// verifier checks against Finish's final claim combined with eq(pt,
// challenges).
func (s *Single) Claim() gf128.Elem { return s.claim }

// IsReverseOrder implements SumcheckObject.
func (s *Single) IsReverseOrder() bool { return false }

// RoundMsg implements SumcheckObject.
func (s *Single) RoundMsg() CompressedPoly {
	round := s.CurrRound()
	if round >= s.numVars {
		panic("boolcheck: protocol has already finished")
	}
	if len(s.roundPolys) > round {
		return s.roundPolys[len(s.roundPolys)-1].Clone()
	}

	curPhase1 := round <= s.c
	ptL := s.pt[:round]
	ptR := s.pt[round]

	var pd2 [3]gf128.Elem
	if curPhase1 {
		pd2 = s.phase1Sum(round)
	} else {
		pd2 = s.phase2Sum(round)
	}

	// Convert {0,1,infinity} evaluations to coefficient form of the
	// degree-2 univariate h(T) = pd2[0] + (pd2[0]+pd2[1]+pd2[2])*T + pd2[2]*T^2.
	pd2[1] = gf128.Add(pd2[1], pd2[0])
	pd2[1] = gf128.Add(pd2[1], pd2[2])

	eqYMultiplier := eqpoly.EqEv(s.challenges, ptL)
	for i := range pd2 {
		pd2[i] = gf128.Mul(pd2[i], eqYMultiplier)
	}

	eqT0 := gf128.Add(ptR, gf128.One())
	eqT1 := gf128.One()

	polyFinal := [4]gf128.Elem{
		gf128.Mul(eqT0, pd2[0]),
		gf128.Add(gf128.Mul(eqT0, pd2[1]), gf128.Mul(eqT1, pd2[0])),
		gf128.Add(gf128.Mul(eqT0, pd2[2]), gf128.Mul(eqT1, pd2[1])),
		gf128.Mul(eqT1, pd2[2]),
	}

	compressed, expectedClaim := Compress(polyFinal[:])
	if !expectedClaim.Equal(s.claim) {
		panic("boolcheck: round polynomial does not match running claim (corrupted ext/poly_coords)")
	}

	if len(s.roundPolys) != round {
		panic("boolcheck: round polynomial cache is out of sync")
	}
	s.roundPolys = append(s.roundPolys, compressed)

	log.Debug().Int("round", round).Int("phase", phaseNumber(curPhase1)).Int("num_vars", s.numVars).Msg("boolcheck round message")

	return compressed.Clone()
}

func phaseNumber(phase1 bool) int {
	if phase1 {
		return 1
	}
	return 2
}

// phase1Sum computes the three {0,1,infinity} partial evaluations for
// this round from the trit-extended table.
func (s *Single) phase1Sum(round int) [3]gf128.Elem {
	eqEvs := s.eqSequence[s.numVars-round-1]
	phase1Dims := s.c - round
	pow3 := intPow(3, phase1Dims)
	outer := 1 << uint(s.numVars-s.c-1)

	return reduceXor3(outer, func(i int) [3]gf128.Elem {
		var part [3]gf128.Elem
		for j := 0; j < 1<<uint(phase1Dims); j++ {
			index := (i << uint(phase1Dims)) + j
			offset := 3 * (i*pow3 + int(s.bitMapping[j]))
			multiplier := eqEvs[index]
			part[0] = gf128.Add(part[0], gf128.Mul(s.ext[offset], multiplier))
			part[1] = gf128.Add(part[1], gf128.Mul(s.ext[offset+1], multiplier))
			part[2] = gf128.Add(part[2], gf128.Mul(s.ext[offset+2], multiplier))
		}
		return part
	})
}

// phase2Sum computes the three {0,1,infinity} partial evaluations for
// this round from the bit-sliced coordinate restrictions.
func (s *Single) phase2Sum(round int) [3]gf128.Elem {
	eqEvs := s.eqSequence[s.numVars-round-1]
	half := len(eqEvs)
	full := half * 2
	polysCoords := s.polysCoords[len(s.polysCoords)-1]

	return reduceXor3(half, func(i int) [3]gf128.Elem {
		vals := s.fAlg(polysCoords, i, full)
		mult := eqEvs[i]
		return [3]gf128.Elem{
			gf128.Mul(vals[0], mult),
			gf128.Mul(vals[1], mult),
			gf128.Mul(vals[2], mult),
		}
	})
}

// Bind implements SumcheckObject.
func (s *Single) Bind(t gf128.Elem) {
	round := s.CurrRound()
	if round >= s.numVars {
		panic("boolcheck: protocol has already finished")
	}
	curPhase1 := round <= s.c

	full := s.RoundMsg().Full(s.claim)
	t2 := gf128.Mul(t, t)
	t3 := gf128.Mul(t2, t)
	s.claim = gf128.Add(full[0], gf128.Add(gf128.Mul(t, full[1]), gf128.Add(gf128.Mul(t2, full[2]), gf128.Mul(t3, full[3]))))
	s.challenges = append(s.challenges, t)

	if curPhase1 {
		oldExt := s.ext
		newExt := make([]gf128.Elem, len(oldExt)/3)
		fanout.Execute(len(newExt), func(start, end int) {
			for idx := start; idx < end; idx++ {
				base := idx * 3
				c0, c1, c2 := oldExt[base], oldExt[base+1], oldExt[base+2]
				sum := gf128.Add(gf128.Add(c0, c1), c2)
				newExt[idx] = gf128.Add(c0, gf128.Add(gf128.Mul(sum, t), gf128.Mul(c2, t2)))
			}
		})
		s.ext = newExt
	} else {
		prev := s.polysCoords[len(s.polysCoords)-1]
		restriction := make([]gf128.Elem, len(prev)/2)
		fanout.Execute(len(restriction), func(start, end int) {
			for j := start; j < end; j++ {
				a := prev[2*j]
				b := prev[2*j+1]
				restriction[j] = gf128.Add(a, gf128.Mul(gf128.Add(b, a), t))
			}
		})
		s.polysCoords = append(s.polysCoords, restriction)
	}

	if s.CurrRound() == s.c+1 && len(s.challenges) < 4 { // too few coordinates for restrict.Restrict
		s.ext = nil
		eq := eqpoly.EqPoly(s.challenges)
		rowLen := len(s.polys[0]) / len(eq)
		coords := make([]gf128.Elem, s.n*128*rowLen)
		for idx := range coords {
			row, i := idx/rowLen, idx%rowLen
			for x := range eq {
				if s.polys[row/128][i*len(eq)+x].Bit(row%128) == 1 {
					coords[idx].AddAssign(eq[x])
				}
			}
		}
		s.polysCoords = append(s.polysCoords, coords)
	} else if s.CurrRound() == s.c+1 {
		s.ext = nil
		s.polysCoords = append(s.polysCoords, restrict.Restrict(s.polys, s.challenges, s.numVars))
	}

	log.Debug().Int("round", round).Int("phase", phaseNumber(curPhase1)).Msg("boolcheck bind")
}

// Finish returns the 128-element inverse Frobenius orbit evaluation
// for each input polynomial. It leaves the prover's state in place, so
// Claim still reports the final folded claim afterwards.
func (s *Single) Finish() FinalClaim {
	if s.CurrRound() != s.numVars {
		panic("boolcheck: finish called before all rounds are bound")
	}
	finalCoords := s.polysCoords[len(s.polysCoords)-1]
	pEvs := make([][]gf128.Elem, s.n)
	for k := 0; k < s.n; k++ {
		coordEvs := make([]gf128.Elem, 128)
		copy(coordEvs, finalCoords[k*128:(k+1)*128])
		pEvs[k] = TwistEvals(coordEvs)
	}
	return FinalClaim{PEvs: pEvs}
}

func intPow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// reduceXor3 sums f(i) for i in [0,n) into a 3-element XOR accumulator:
// each fanout chunk sums its own indices locally, then XORs that partial
// sum into the result under a mutex, in place of the
// reference implementation's atomic-XOR accumulators, since Go has no
// portable SIMD-atomic equivalent.
func reduceXor3(n int, f func(i int) [3]gf128.Elem) [3]gf128.Elem {
	var mu sync.Mutex
	var acc [3]gf128.Elem
	fanout.Execute(n, func(start, end int) {
		var local [3]gf128.Elem
		for i := start; i < end; i++ {
			v := f(i)
			local[0] = gf128.Add(local[0], v[0])
			local[1] = gf128.Add(local[1], v[1])
			local[2] = gf128.Add(local[2], v[2])
		}
		mu.Lock()
		acc[0] = gf128.Add(acc[0], local[0])
		acc[1] = gf128.Add(acc[1], local[1])
		acc[2] = gf128.Add(acc[2], local[2])
		mu.Unlock()
	})
	return acc
}
