// Package gf128 implements the binary field GF(2^128) used by the
// sum-check prover: XOR addition, carryless multiplication modulo the
// irreducible x^128 + x^7 + x^2 + x + 1, the Frobenius endomorphism, and
// the standard-basis coordinate decomposition.
package gf128

import "fmt"

// Elem is an element of GF(2^128), stored as two little-endian 64-bit
// lanes: bit i of the element lives in Lo if i < 64, else in Hi at
// position i-64.
type Elem struct {
	Lo, Hi uint64
}

// Zero is the additive identity.
func Zero() Elem { return Elem{} }

// One is the multiplicative identity.
func One() Elem { return Elem{Lo: 1} }

// Add returns a+b, i.e. a XOR b.
func Add(a, b Elem) Elem {
	return Elem{a.Lo ^ b.Lo, a.Hi ^ b.Hi}
}

// AddAssign adds b into a in place.
func (a *Elem) AddAssign(b Elem) {
	a.Lo ^= b.Lo
	a.Hi ^= b.Hi
}

// And returns the bitwise AND of the raw 128-bit representations. This
// is not a field operation; it is the boolean-layer combinator used at
// trit-extension boolean corners, where GF(2) multiplication and
// bitwise AND coincide bit-by-bit.
func And(a, b Elem) Elem {
	return Elem{a.Lo & b.Lo, a.Hi & b.Hi}
}

// IsZero reports whether a is the additive identity.
func (a Elem) IsZero() bool {
	return a.Lo == 0 && a.Hi == 0
}

// Equal reports value equality.
func (a Elem) Equal(b Elem) bool {
	return a.Lo == b.Lo && a.Hi == b.Hi
}

// Basis returns the standard basis vector beta_i of GF(2^128) as an
// F2-vector space, i.e. the element with only bit i set.
func Basis(i int) Elem {
	if i < 0 || i >= 128 {
		panic(fmt.Sprintf("gf128: basis index %d out of range", i))
	}
	if i < 64 {
		return Elem{Lo: 1 << uint(i)}
	}
	return Elem{Hi: 1 << uint(i-64)}
}

// Bit returns bit i of the raw representation, as 0 or 1.
func (a Elem) Bit(i int) uint64 {
	if i < 64 {
		return (a.Lo >> uint(i)) & 1
	}
	return (a.Hi >> uint(i-64)) & 1
}

// Pi extracts the i-th coordinate of v[i], i.e. bit i of the i-th
// element of v, returned as the field element 0 or 1. It is a
// verifier-side helper, never called from the prover's hot loops.
func Pi(i int, v []Elem) Elem {
	if v[i].Bit(i) == 1 {
		return One()
	}
	return Zero()
}

// Bytes returns the little-endian 16-byte representation.
func (a Elem) Bytes() [16]byte {
	var b [16]byte
	putU64(b[0:8], a.Lo)
	putU64(b[8:16], a.Hi)
	return b
}

// FromBytes builds an element from its little-endian 16-byte view.
func FromBytes(b [16]byte) Elem {
	return Elem{Lo: getU64(b[0:8]), Hi: getU64(b[8:16])}
}

func putU64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

func getU64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * uint(i))
	}
	return v
}

func (a Elem) String() string {
	b := a.Bytes()
	return fmt.Sprintf("%x", b)
}
