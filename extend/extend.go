// Package extend implements the N-table trit-extender: phase 1's core
// combinatorial step, turning N boolean-cube polynomials into one
// trit-indexed table of f-values at {0,1,infinity} per still-unbound
// phase-1 variable.
package extend

import (
	"fmt"

	"github.com/binaryfield/boolcheck/gf128"
	"github.com/binaryfield/boolcheck/internal/fanout"
)

// Combinator evaluates f (or its linear/quadratic half) pointwise on N
// field elements, one per input table.
type Combinator func(args []gf128.Elem) gf128.Elem

// ExtendNTables extends N polynomials of length 2^dims into the
// combined 3^(c+1) * 2^(dims-c-1) table, applying fLin+fQuad at
// pure-boolean trit positions and fQuad alone at positions containing
// an infinity digit (fLin is required to vanish there; see
// DESIGN.md's Open Question note). The 1/3-skip optimization avoids
// materializing the top third of each per-input extended table, since
// those slots feed only the final ret write and are never read again.
func ExtendNTables(tables [][]gf128.Elem, c int, tritMapping []uint16, fLin, fQuad Combinator) []gf128.Elem {
	n := len(tables)
	if n == 0 {
		panic("extend: no input tables")
	}
	dims := log2Exact(len(tables[0]))
	for _, table := range tables {
		if len(table) != 1<<uint(dims) {
			panic(fmt.Sprintf("extend: table length %d != 2^%d", len(table), dims))
		}
	}
	if c >= dims {
		panic(fmt.Sprintf("extend: phase width c=%d must be < dims=%d", c, dims))
	}
	pow3 := intPow(3, c+1)
	if pow3 >= 1<<15 {
		panic(fmt.Sprintf("extend: 3^(c+1)=%d is too large (must be < 2^15)", pow3))
	}
	pow3Adj := pow3 / 3 * 2
	pow2 := 1 << uint(dims-c-1)

	tablesExt := make([][]gf128.Elem, n)
	for z := range tablesExt {
		tablesExt[z] = make([]gf128.Elem, pow3Adj*pow2)
	}
	ret := make([]gf128.Elem, pow3*pow2)

	fanout.Execute(pow2, func(chunkStart, chunkEnd int) {
		args := make([]gf128.Elem, n)
		for chunkID := chunkStart; chunkID < chunkEnd; chunkID++ {
			globalTabOffset := chunkID * (1 << uint(c+1))
			globalExtOffset := chunkID * pow3Adj
			globalRetOffset := chunkID * pow3

			for j := 0; j < pow3Adj; j++ {
				offset := int(tritMapping[j])
				if offset%2 == 0 {
					for z := 0; z < n; z++ {
						v := tables[z][globalTabOffset+offset>>1]
						tablesExt[z][globalExtOffset+j] = v
						args[z] = v
					}
					ret[globalRetOffset+j] = gf128.Add(fQuad(args), fLin(args))
				} else {
					for z := 0; z < n; z++ {
						ext := tablesExt[z]
						v := gf128.Add(ext[globalExtOffset+j-offset], ext[globalExtOffset+j-2*offset])
						ext[globalExtOffset+j] = v
						args[z] = v
					}
					ret[globalRetOffset+j] = fQuad(args)
				}
			}

			for j := pow3Adj; j < pow3; j++ {
				offset := int(tritMapping[j])
				for z := 0; z < n; z++ {
					ext := tablesExt[z]
					args[z] = gf128.Add(ext[globalExtOffset+j-offset], ext[globalExtOffset+j-2*offset])
				}
				ret[globalRetOffset+j] = fQuad(args)
			}
		}
	})

	return ret
}

func log2Exact(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("extend: %d is not a power of two", n))
	}
	l := 0
	for 1<<uint(l) < n {
		l++
	}
	return l
}

func intPow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
