package andcheck

import "github.com/binaryfield/boolcheck/gf128"

// EfficientMatrix is an F2-linear map on GF(2^128), represented as a
// byte-sliced lookup table: applying it to an element costs 16 XORs of
// precomputed partial sums, one per input byte, instead of 128
// conditional adds.
type EfficientMatrix struct {
	precomp []gf128.Elem // 256 * 16 entries, one 256-row block per input byte
}

// dropTopBit clears x's highest set bit and returns the cleared value
// and the bit's position. x must be in [1, 256).
func dropTopBit(x int) (cleared int, pos int) {
	s := 0
	for i := 0; i < 8; i++ {
		if (x>>uint(i))&1 == 1 {
			s = i
		}
	}
	return x - (1 << uint(s)), s
}

// NewEfficientMatrixFromCols builds the matrix whose j-th column (the
// image of the j-th standard basis vector) is cols[j].
func NewEfficientMatrixFromCols(cols []gf128.Elem) EfficientMatrix {
	if len(cols) != 128 {
		panic("andcheck: NewEfficientMatrixFromCols requires exactly 128 columns")
	}
	precomp := make([]gf128.Elem, 256*16)
	for block := 0; block < 16; block++ {
		rows := cols[block*8 : block*8+8]
		sums := precomp[block*256 : block*256+256]
		sums[0] = gf128.Zero()
		for i := 1; i < 256; i++ {
			sumIdx, rowIdx := dropTopBit(i)
			sums[i] = gf128.Add(sums[sumIdx], rows[rowIdx])
		}
	}
	return EfficientMatrix{precomp: precomp}
}

// Apply evaluates the linear map at elt.
func (m EfficientMatrix) Apply(elt gf128.Elem) gf128.Elem {
	b := elt.Bytes()
	ret := m.precomp[b[0]]
	for i := 1; i < 16; i++ {
		ret = gf128.Add(ret, m.precomp[int(b[i])+256*i])
	}
	return ret
}

// FrobeniusLC builds the matrix x -> sum_i gammas[i] * Frob^i(x).
func FrobeniusLC(gammas []gf128.Elem) EfficientMatrix {
	if len(gammas) != 128 {
		panic("andcheck: FrobeniusLC requires exactly 128 coefficients")
	}
	cols := make([]gf128.Elem, 128)
	for j := 0; j < 128; j++ {
		col := gf128.Zero()
		for i := 0; i < 128; i++ {
			col = gf128.Add(col, gf128.Mul(gammas[i], gf128.Frob(gf128.Basis(j), i)))
		}
		cols[j] = col
	}
	return NewEfficientMatrixFromCols(cols)
}

// FrobeniusInvLC builds the matrix x -> sum_i gammas[i] * Frob^(-i)(x).
func FrobeniusInvLC(gammas []gf128.Elem) EfficientMatrix {
	if len(gammas) != 128 {
		panic("andcheck: FrobeniusInvLC requires exactly 128 coefficients")
	}
	cols := make([]gf128.Elem, 128)
	for j := 0; j < 128; j++ {
		col := gf128.Zero()
		for i := 0; i < 128; i++ {
			minusI := (128 - i) % 128
			col = gf128.Add(col, gf128.Mul(gammas[i], gf128.Frob(gf128.Basis(j), minusI)))
		}
		cols[j] = col
	}
	return NewEfficientMatrixFromCols(cols)
}
