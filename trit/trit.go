// Package trit precomputes the base-3 digit mappings that let the
// phase-1 table extension and round-polynomial construction index into
// the trit-indexed extended table in O(1) per lookup.
package trit

import "fmt"

// ComputeTritMappings builds the (bitMapping, tritMapping) pair for
// phase width c.
//
// tritMapping has length 3^(c+1). For index j whose base-3 expansion
// contains no digit 2 ("pure boolean"), tritMapping[j] = 2*b(j) where
// b(j) is the integer formed by reading j's base-3 digits as binary
// digits (the low bit 0 flags pure-boolean). Otherwise tritMapping[j] =
// 3^k, where k is the position of the highest digit-2 in j; that value
// doubles as the offset used to fold the extension recurrence
// ext[j] = ext[j-offset] + ext[j-2*offset].
//
// bitMapping has length 2^(c+1); bitMapping[i] is the trit index whose
// digits equal the binary digits of i, i.e. the inverse of b(.).
func ComputeTritMappings(c int) (bitMapping []uint16, tritMapping []uint16) {
	pow3 := intPow(3, c+1)
	trits := make([]uint8, c+1)

	bitMapping = make([]uint16, 0, 1<<uint(c+1))
	tritMapping = make([]uint16, 0, pow3)

	for i := 0; i < pow3; i++ {
		var binValue uint16
		flag := true
		var badOffset uint16 = 1
		for j := c; ; j-- {
			if flag {
				badOffset *= 3
			}
			binValue *= 2
			if trits[j] == 2 {
				flag = false
			} else {
				binValue += uint16(trits[j])
			}
			if j == 0 {
				break
			}
		}

		if flag {
			tritMapping = append(tritMapping, binValue<<1)
			bitMapping = append(bitMapping, uint16(i))
		} else {
			tritMapping = append(tritMapping, uint16(pow3)/badOffset)
		}

		if i == pow3-1 {
			break
		}
		// increment the base-3 counter trits[0..c+1), little-endian
		for j := 0; j < len(trits); j++ {
			if trits[j] < 2 {
				trits[j]++
				break
			}
			trits[j] = 0
		}
	}

	return bitMapping, tritMapping
}

// BitsToTrits reinterprets the binary digits of x as base-3 digits,
// i.e. maps a binary index to its pure-boolean trit index.
func BitsToTrits(x int) int {
	multiplier := 1
	ret := 0
	for x > 0 {
		ret += multiplier * (x % 2)
		x >>= 1
		multiplier *= 3
	}
	return ret
}

func intPow(base, exp int) int {
	if exp < 0 {
		panic(fmt.Sprintf("trit: negative exponent %d", exp))
	}
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
