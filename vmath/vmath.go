package vmath

import (
	"fmt"
	"math"
	"math/bits"
)

// Q32.32 Fixed Point constants
const (
	Shift  = 32
	Scale  = 1 << Shift
	Mask   = Scale - 1
	ScaleF = float64(Scale)
)

// Fixed is a signed Q32.32 fixed-point number: value = raw / 2^32
// Range is [-2^31, 2^31 - 2^-32], resolution 2^-32
type Fixed int64

const (
	Zero     Fixed = 0
	One      Fixed = Scale
	Half     Fixed = Scale >> 1
	Epsilon  Fixed = 1
	MaxFixed Fixed = math.MaxInt64
	MinFixed Fixed = math.MinInt64

	// Pi rounded to nearest ulp
	Pi Fixed = 13493037705
)

// --- Arithmetic ---
//
// Mul and Div truncate toward zero; the result is within one ulp (2^-32) of
// the exact rational value. Overflow never wraps: the Checked forms report
// it as ErrOverflow, the plain forms panic with that error.

// Add returns a + b, panics on overflow
func (a Fixed) Add(b Fixed) Fixed { return must(a.CheckedAdd(b)) }

// Sub returns a - b, panics on overflow
func (a Fixed) Sub(b Fixed) Fixed { return must(a.CheckedSub(b)) }

// Mul returns a * b truncated toward zero, panics on overflow
func (a Fixed) Mul(b Fixed) Fixed { return must(a.CheckedMul(b)) }

// Div returns a / b truncated toward zero
// Panics with ErrDivideByZero for b == 0 and ErrOverflow when the quotient does not fit
func (a Fixed) Div(b Fixed) Fixed { return must(a.CheckedDiv(b)) }

// Neg returns -a, panics for MinFixed
func (a Fixed) Neg() Fixed { return must(a.CheckedNeg()) }

// Abs panics only for MinFixed, whose magnitude is not representable
func (a Fixed) Abs() Fixed {
	if a < 0 {
		return a.Neg()
	}
	return a
}

// CheckedAdd returns a + b or ErrOverflow
func (a Fixed) CheckedAdd(b Fixed) (Fixed, error) {
	s := a + b
	// Signs of both operands agree and differ from the sum
	if (a^s)&(b^s) < 0 {
		return 0, fmt.Errorf("%w: %v + %v", ErrOverflow, a, b)
	}
	return s, nil
}

// CheckedSub returns a - b or ErrOverflow
func (a Fixed) CheckedSub(b Fixed) (Fixed, error) {
	d := a - b
	if (a^b)&(a^d) < 0 {
		return 0, fmt.Errorf("%w: %v - %v", ErrOverflow, a, b)
	}
	return d, nil
}

// CheckedNeg returns -a or ErrOverflow for MinFixed
func (a Fixed) CheckedNeg() (Fixed, error) {
	if a == MinFixed {
		return 0, fmt.Errorf("%w: -(%v)", ErrOverflow, a)
	}
	return -a, nil
}

// CheckedMul multiplies through a 128-bit product, shifted back to Q32.32
func (a Fixed) CheckedMul(b Fixed) (Fixed, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	negative := (a < 0) != (b < 0)

	hi, lo := bits.Mul64(magnitude(a), magnitude(b))
	// Q32.32 * Q32.32 = Q64.64, shift right 32 for Q32.32
	if hi>>Shift != 0 {
		return 0, fmt.Errorf("%w: %v * %v", ErrOverflow, a, b)
	}
	r, ok := signed((hi<<Shift)|(lo>>Shift), negative)
	if !ok {
		return 0, fmt.Errorf("%w: %v * %v", ErrOverflow, a, b)
	}
	return r, nil
}

// CheckedDiv divides a 128-bit a<<32 by b
// Returns ErrDivideByZero or ErrOverflow instead of panicking
func (a Fixed) CheckedDiv(b Fixed) (Fixed, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %v / 0", ErrDivideByZero, a)
	}
	if a == 0 {
		return 0, nil
	}
	negative := (a < 0) != (b < 0)
	ua, ub := magnitude(a), magnitude(b)

	// a << 32 as 128-bit: hi = a >> 32, lo = a << 32
	hi := ua >> Shift
	lo := ua << Shift

	// Quotient would not fit in 64 bits
	if hi >= ub {
		return 0, fmt.Errorf("%w: %v / %v", ErrOverflow, a, b)
	}
	quo, _ := bits.Div64(hi, lo, ub)

	r, ok := signed(quo, negative)
	if !ok {
		return 0, fmt.Errorf("%w: %v / %v", ErrOverflow, a, b)
	}
	return r, nil
}

// MulDiv computes (a * b) / c with 128-bit intermediate, truncating toward zero
// Useful for ratio calculations without precision loss
func (a Fixed) MulDiv(b, c Fixed) Fixed {
	if c == 0 {
		panic(fmt.Errorf("%w: %v * %v / 0", ErrDivideByZero, a, b))
	}
	negative := ((a < 0) != (b < 0)) != (c < 0)
	hi, lo := bits.Mul64(magnitude(a), magnitude(b))
	uc := magnitude(c)
	if hi >= uc {
		panic(fmt.Errorf("%w: %v * %v / %v", ErrOverflow, a, b, c))
	}
	q, _ := bits.Div64(hi, lo, uc)
	r, ok := signed(q, negative)
	if !ok {
		panic(fmt.Errorf("%w: %v * %v / %v", ErrOverflow, a, b, c))
	}
	return r
}

// --- Comparison ---

// Cmp returns -1, 0 or +1
func (a Fixed) Cmp(b Fixed) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sign returns -1, 0 or +1
func (a Fixed) Sign() int { return a.Cmp(0) }

func (a Fixed) IsZero() bool { return a == 0 }

func Min(a, b Fixed) Fixed {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Fixed) Fixed {
	if a > b {
		return a
	}
	return b
}

// Clamp limits a to [lo, hi]
func Clamp(a, lo, hi Fixed) Fixed {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

// --- Helpers ---

// magnitude returns |a| as uint64, including 2^63 for MinFixed
func magnitude(a Fixed) uint64 {
	if a < 0 {
		return uint64(-a)
	}
	return uint64(a)
}

// signed applies the sign to an unsigned magnitude, reporting whether it fits
func signed(m uint64, negative bool) (Fixed, bool) {
	if negative {
		if m > 1<<63 {
			return 0, false
		}
		return Fixed(-int64(m)), true
	}
	if m > math.MaxInt64 {
		return 0, false
	}
	return Fixed(m), true
}

func must(f Fixed, err error) Fixed {
	if err != nil {
		panic(err)
	}
	return f
}
