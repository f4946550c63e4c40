package vmath

import (
	"fmt"
	"math/bits"
)

// Sqrt returns the Q32.32 square root, truncated (floor) to the nearest ulp
// Panics with ErrNegativeSqrt for negative input
func (a Fixed) Sqrt() Fixed { return must(a.CheckedSqrt()) }

// CheckedSqrt computes floor(sqrt(raw << 32)), which is the root in Q32.32
// Newton-Raphson on the 128-bit integer, seeded at a power of two above the root
// so the iterates decrease monotonically onto the floor root
func (a Fixed) CheckedSqrt() (Fixed, error) {
	if a < 0 {
		return 0, fmt.Errorf("%w: %v", ErrNegativeSqrt, a)
	}
	if a == 0 {
		return 0, nil
	}

	// n = raw << 32 as 128-bit, raw < 2^63 so n < 2^95
	hi := uint64(a) >> (64 - Shift)
	lo := uint64(a) << Shift

	width := bits.Len64(lo)
	if hi != 0 {
		width = 64 + bits.Len64(hi)
	}
	x := uint64(1) << ((width + 1) / 2)

	// x >= isqrt(n) >= 2^32 > hi whenever hi != 0, so Div64 cannot overflow
	for {
		q, _ := bits.Div64(hi, lo, x)
		y := (x + q) >> 1
		if y >= x {
			return Fixed(x), nil
		}
		x = y
	}
}
