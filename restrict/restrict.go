// Package restrict implements the bit-sliced coordinate restrictor:
// phase 2's entry point, turning N boolean-cube polynomials into
// 128*N coordinate-polynomial restrictions to a partial challenge
// point, using a "method of four Russians" bit-transpose kernel.
package restrict

import (
	"fmt"

	"github.com/binaryfield/boolcheck/eqpoly"
	"github.com/binaryfield/boolcheck/gf128"
	"github.com/binaryfield/boolcheck/internal/fanout"
)

// DropTopBit returns x with its highest set bit cleared, and the
// position of that bit. x must be in [1, 256).
func DropTopBit(x int) (cleared int, pos int) {
	s := 0
	for i := 0; i < 8; i++ {
		bit := (x >> uint(i)) & 1
		if bit == 1 {
			s = i
		}
	}
	return x - (1 << uint(s)), s
}

// buildEqSums builds, for each group of 8 consecutive eq values, a
// 256-entry table of all 2^8 XOR-subset sums, so that a byte's worth of
// eq selection can be summed with a single lookup.
func buildEqSums(eq []gf128.Elem) []gf128.Elem {
	groups := len(eq) / 8
	eqSums := make([]gf128.Elem, 256*groups)
	for i := 0; i < groups; i++ {
		base := i * 256
		eqSums[base] = gf128.Zero()
		for j := 1; j < 256; j++ {
			sumIdx, eqIdx := DropTopBit(j)
			eqSums[base+j] = gf128.Add(eq[i*8+eqIdx], eqSums[base+sumIdx])
		}
	}
	return eqSums
}

// Restrict returns the restriction of all 128 coordinate polynomials of
// every input polynomial to the sub-cube with the first len(coords)
// variables bound to coords. Output is a flat array of length
// len(polys)*128*2^(dims-len(coords)), laid out as
// [poly_index*128 + coord_index][remaining_cube].
func Restrict(polys [][]gf128.Elem, coords []gf128.Elem, dims int) []gf128.Elem {
	n := len(polys)
	for _, poly := range polys {
		if len(poly) != 1<<uint(dims) {
			panic(fmt.Sprintf("restrict: poly length %d != 2^%d", len(poly), dims))
		}
	}
	if len(coords) > dims {
		panic(fmt.Sprintf("restrict: len(coords)=%d exceeds dims=%d", len(coords), dims))
	}

	chunkSize := 1 << uint(len(coords))
	numChunks := 1 << uint(dims-len(coords))

	eq := eqpoly.EqPoly(coords)
	if len(eq)%16 != 0 {
		panic(fmt.Sprintf("restrict: eq length %d is not a multiple of 16", len(eq)))
	}
	eqSums := buildEqSums(eq)

	ret := make([]gf128.Elem, numChunks*128*n)

	for q := 0; q < n; q++ {
		poly := polys[q]
		fanout.Execute(numChunks, func(start, end int) {
			for i := start; i < end; i++ {
				accumulateChunk(ret, poly, eqSums, i, q, chunkSize, numChunks, eq)
			}
		})
	}

	return ret
}

// accumulateChunk performs the bit-transpose fold for output chunk i of
// polynomial q, XOR-accumulating into ret.
func accumulateChunk(ret []gf128.Elem, poly []gf128.Elem, eqSums []gf128.Elem, i, q, chunkSize, numChunks int, eq []gf128.Elem) {
	for j := 0; j < len(eq)/16; j++ {
		v0 := eqSums[j*512 : j*512+256]
		v1 := eqSums[j*512+256 : j*512+512]

		window := poly[i*chunkSize+j*16 : i*chunkSize+(j+1)*16]
		var bytearr [16][16]byte
		for k := 0; k < 16; k++ {
			bytearr[k] = window[k].Bytes()
		}

		for s := 0; s < 16; s++ {
			var t [16]byte
			for k := 0; k < 16; k++ {
				t[k] = bytearr[k][s]
			}
			for u := 0; u < 8; u++ {
				bits := gf128.MovemaskEpi8(t)
				outIdx := (s*8 + 7 - u + q*128)*numChunks + i
				ret[outIdx] = gf128.Add(ret[outIdx], v0[bits&255])
				ret[outIdx] = gf128.Add(ret[outIdx], v1[(bits>>8)&255])
				t = gf128.SlliEpi64x1(t)
			}
		}
	}
}

// RestrictLegacy is the reference, per-input form of Restrict: it
// returns, for a single polynomial, 128 separate coordinate-restriction
// vectors. Concatenating RestrictLegacy(p, ...) over every input
// polynomial and coordinate index must equal Restrict's flat output;
// this is the block-wise agreement property tests check Restrict
// against.
func RestrictLegacy(poly []gf128.Elem, coords []gf128.Elem, dims int) [][]gf128.Elem {
	if len(poly) != 1<<uint(dims) {
		panic(fmt.Sprintf("restrict: poly length %d != 2^%d", len(poly), dims))
	}
	if len(coords) > dims {
		panic(fmt.Sprintf("restrict: len(coords)=%d exceeds dims=%d", len(coords), dims))
	}

	chunkSize := 1 << uint(len(coords))
	numChunks := 1 << uint(dims-len(coords))

	eq := eqpoly.EqPoly(coords)
	if len(eq)%16 != 0 {
		panic(fmt.Sprintf("restrict: eq length %d is not a multiple of 16", len(eq)))
	}
	eqSums := buildEqSums(eq)

	ret := make([][]gf128.Elem, 128)
	for c := range ret {
		ret[c] = make([]gf128.Elem, numChunks)
	}

	fanout.Execute(numChunks, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < len(eq)/16; j++ {
				v0 := eqSums[j*512 : j*512+256]
				v1 := eqSums[j*512+256 : j*512+512]

				window := poly[i*chunkSize+j*16 : i*chunkSize+(j+1)*16]
				var bytearr [16][16]byte
				for k := 0; k < 16; k++ {
					bytearr[k] = window[k].Bytes()
				}

				for s := 0; s < 16; s++ {
					var t [16]byte
					for k := 0; k < 16; k++ {
						t[k] = bytearr[k][s]
					}
					for u := 0; u < 8; u++ {
						bits := gf128.MovemaskEpi8(t)
						coord := s*8 + 7 - u
						ret[coord][i] = gf128.Add(ret[coord][i], v0[bits&255])
						ret[coord][i] = gf128.Add(ret[coord][i], v1[(bits>>8)&255])
						t = gf128.SlliEpi64x1(t)
					}
				}
			}
		}
	})

	return ret
}
