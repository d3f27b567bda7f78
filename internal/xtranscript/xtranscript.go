// Package xtranscript generates deterministic streams of field
// elements from a seed, for tests and the demo binary. It is not a
// challenge-sampling transcript for the protocol itself — the spec
// treats that RNG as an external collaborator — it only exists so
// tests and cmd/andcheck-demo can reproduce a run byte-for-byte without
// pulling in math/rand's non-cryptographic, version-dependent stream.
package xtranscript

import (
	"golang.org/x/crypto/sha3"

	"github.com/binaryfield/boolcheck/gf128"
)

// Stream is a deterministic source of field elements derived from a
// seed via SHAKE256.
type Stream struct {
	xof sha3.ShakeHash
}

// New returns a Stream seeded from label and seed; the same inputs
// always produce the same sequence of Next() outputs.
func New(label string, seed []byte) *Stream {
	xof := sha3.NewShake256()
	_, _ = xof.Write([]byte(label))
	_, _ = xof.Write(seed)
	return &Stream{xof: xof}
}

// Next returns the next pseudo-random field element in the stream.
func (s *Stream) Next() gf128.Elem {
	var b [16]byte
	_, _ = s.xof.Read(b[:])
	return gf128.FromBytes(b)
}

// NextN returns n pseudo-random field elements.
func (s *Stream) NextN(n int) []gf128.Elem {
	out := make([]gf128.Elem, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}
