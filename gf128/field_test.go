package gf128

import (
	"math/rand"
	"testing"
)

func randElem(r *rand.Rand) Elem {
	return Elem{Lo: r.Uint64(), Hi: r.Uint64()}
}

func TestAddIsXorAndSelfInverse(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		a := randElem(r)
		b := randElem(r)
		sum := Add(a, b)
		if !Add(sum, b).Equal(a) {
			t.Fatalf("Add is not its own inverse for a=%v b=%v", a, b)
		}
	}
}

func TestMulIdentityAndZero(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		a := randElem(r)
		if !Mul(a, One()).Equal(a) {
			t.Fatalf("a*1 != a for a=%v", a)
		}
		if !Mul(a, Zero()).Equal(Zero()) {
			t.Fatalf("a*0 != 0 for a=%v", a)
		}
	}
}

func TestMulCommutative(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		a := randElem(r)
		b := randElem(r)
		if !Mul(a, b).Equal(Mul(b, a)) {
			t.Fatalf("multiplication not commutative for a=%v b=%v", a, b)
		}
	}
}

func TestMulDistributesOverAdd(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		a, b, c := randElem(r), randElem(r), randElem(r)
		lhs := Mul(a, Add(b, c))
		rhs := Add(Mul(a, b), Mul(a, c))
		if !lhs.Equal(rhs) {
			t.Fatalf("distributivity failed for a=%v b=%v c=%v", a, b, c)
		}
	}
}

func TestFrobOrderIs128(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	x := randElem(r)
	if !Frob(x, 128).Equal(x) {
		t.Fatalf("frob(128) should be identity, got %v for x=%v", Frob(x, 128), x)
	}
	if !Frob(x, 0).Equal(x) {
		t.Fatalf("frob(0) should be identity")
	}
}

func TestFrobNegativeIsInverse(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	x := randElem(r)
	for _, i := range []int{1, 7, 63, 127} {
		if !Frob(Frob(x, i), -i).Equal(x) {
			t.Fatalf("frob(-%d) did not invert frob(%d) for x=%v", i, i, x)
		}
	}
}

func TestFrobIsAdditive(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	a, b := randElem(r), randElem(r)
	lhs := Frob(Add(a, b), 5)
	rhs := Add(Frob(a, 5), Frob(b, 5))
	if !lhs.Equal(rhs) {
		t.Fatalf("frob is not additive: lhs=%v rhs=%v", lhs, rhs)
	}
}

func TestBasisDecomposition(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	x := randElem(r)
	var sum Elem
	for i := 0; i < 128; i++ {
		if x.Bit(i) == 1 {
			sum = Add(sum, Basis(i))
		}
	}
	if !sum.Equal(x) {
		t.Fatalf("basis decomposition mismatch: got %v want %v", sum, x)
	}
}

func TestPiExtractsBit(t *testing.T) {
	v := make([]Elem, 128)
	v[3] = Basis(3)
	if !Pi(3, v).Equal(One()) {
		t.Fatalf("Pi(3, v) should be 1")
	}
	v[5] = Zero()
	if !Pi(5, v).Equal(Zero()) {
		t.Fatalf("Pi(5, v) should be 0")
	}
}

func TestMovemaskAndSlli(t *testing.T) {
	var x [16]byte
	for i := range x {
		x[i] = 0x80 // top bit set in every byte
	}
	if got := MovemaskEpi8(x); got != 0xFFFF {
		t.Fatalf("movemask of all-top-bit bytes = %x, want ffff", got)
	}
	var zero [16]byte
	if got := MovemaskEpi8(zero); got != 0 {
		t.Fatalf("movemask of zero bytes = %x, want 0", got)
	}

	var one [16]byte
	one[0] = 1
	shifted := SlliEpi64x1(one)
	if shifted[0] != 2 {
		t.Fatalf("slli did not shift low lane: %v", shifted)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	x := randElem(r)
	if !FromBytes(x.Bytes()).Equal(x) {
		t.Fatalf("byte round-trip failed for %v", x)
	}
}
