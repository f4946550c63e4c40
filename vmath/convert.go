package vmath

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
	"golang.org/x/image/math/fixed"
)

// Integer range representable in Q32.32
const (
	maxInt = math.MaxInt64 >> Shift
	minInt = math.MinInt64 >> Shift
)

// From converts any integer type to Fixed, panicking with ErrOverflow outside [-2^31, 2^31)
// A Fixed argument is returned unchanged, so From is safe to use on mixed inputs
func From[T constraints.Integer](v T) Fixed {
	if f, ok := any(v).(Fixed); ok {
		return f
	}
	if v < 0 {
		n := int64(v)
		if n < minInt {
			panic(fmt.Errorf("%w: integer %d", ErrOverflow, n))
		}
		return Fixed(n << Shift)
	}
	u := uint64(v)
	if u > maxInt {
		panic(fmt.Errorf("%w: integer %d", ErrOverflow, u))
	}
	return Fixed(u << Shift)
}

func FromInt(i int) Fixed { return From(i) }

// FromRaw wraps a raw Q32.32 bit pattern
func FromRaw(raw int64) Fixed { return Fixed(raw) }

// FromFloat truncates toward zero; intended for literals and configuration, not simulation state
func FromFloat(f float64) Fixed {
	s := f * ScaleF
	if math.IsNaN(s) || s >= math.MaxInt64 || s < math.MinInt64 {
		panic(fmt.Errorf("%w: float %v", ErrOverflow, f))
	}
	return Fixed(int64(s))
}

// Raw returns the underlying Q32.32 bit pattern
func (a Fixed) Raw() int64 { return int64(a) }

// Int returns the integer part, rounded toward negative infinity
func (a Fixed) Int() int { return int(int64(a) >> Shift) }

// Round returns the nearest integer, halves rounded up
func (a Fixed) Round() int {
	return int(int64(a)>>Shift + (int64(a)>>(Shift-1))&1)
}

func (a Fixed) Float() float64 { return float64(a) / ScaleF }

// Frac returns the fractional part in [0, One)
func (a Fixed) Frac() Fixed { return a & Mask }

func (a Fixed) String() string {
	return strconv.FormatFloat(a.Float(), 'f', -1, 64)
}

// --- golang.org/x/image/math/fixed interop ---

// Int26_6 truncates to 26.6, rounding toward negative infinity
func (a Fixed) Int26_6() fixed.Int26_6 {
	v := int64(a) >> (Shift - 6)
	if v > math.MaxInt32 || v < math.MinInt32 {
		panic(fmt.Errorf("%w: %v does not fit 26.6", ErrOverflow, a))
	}
	return fixed.Int26_6(v)
}

func FromInt26_6(v fixed.Int26_6) Fixed { return Fixed(int64(v) << (Shift - 6)) }

// Int52_12 truncates to 52.12, rounding toward negative infinity
func (a Fixed) Int52_12() fixed.Int52_12 { return fixed.Int52_12(int64(a) >> (Shift - 12)) }

func FromInt52_12(v fixed.Int52_12) Fixed {
	const limit = math.MaxInt64 >> (Shift - 12)
	if v > limit || v < -limit-1 {
		panic(fmt.Errorf("%w: 52.12 value %d", ErrOverflow, int64(v)))
	}
	return Fixed(int64(v) << (Shift - 12))
}
