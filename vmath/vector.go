package vmath

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Vec2 is a 2D vector in Q32.32 fixed-point
// Comparable with == and usable as a map key
type Vec2 struct {
	X, Y Fixed
}

// Tuple2 is the bare (x, y) form accepted by the tuple operators
type Tuple2 [2]Fixed

var Vec2Zero = Vec2{}

func NewVec2(x, y Fixed) Vec2 {
	return Vec2{X: x, Y: y}
}

// NewVec2Of builds a vector from integer inputs of any type, see From
func NewVec2Of[A, B constraints.Integer](x A, y B) Vec2 {
	return Vec2{X: From(x), Y: From(y)}
}

// --- Conversion ---

func Vec2FromTuple(t Tuple2) Vec2 { return Vec2{X: t[0], Y: t[1]} }

func (v Vec2) Tuple() Tuple2 { return Tuple2{v.X, v.Y} }

// XY returns the components as separate values
func (v Vec2) XY() (x, y Fixed) { return v.X, v.Y }

func (v Vec2) String() string { return fmt.Sprintf("(%v, %v)", v.X, v.Y) }

// --- Magnitude ---

// LenSq returns x*x + y*y; use it instead of Len when only comparing magnitudes
// Panics with ErrOverflow once the square exceeds the Q32.32 range (|v| > ~46340)
func (v Vec2) LenSq() Fixed {
	return must(v.checkedLenSq())
}

// Len is valid for any vector whose length is representable
func (v Vec2) Len() Fixed {
	if sq, err := v.checkedLenSq(); err == nil {
		return sq.Sqrt()
	}
	// Squares overflow: measure v scaled by its largest component
	m := Max(v.X.Abs(), v.Y.Abs())
	return Vec2{X: v.X.Div(m), Y: v.Y.Div(m)}.Len().Mul(m)
}

func (v Vec2) checkedLenSq() (Fixed, error) {
	xx, err := v.X.CheckedMul(v.X)
	if err != nil {
		return 0, err
	}
	yy, err := v.Y.CheckedMul(v.Y)
	if err != nil {
		return 0, err
	}
	return xx.CheckedAdd(yy)
}

// Normalize scales v to unit length in place
// Panics with ErrZeroVector when Len is zero, including vectors below Q32.32 resolution
func (v *Vec2) Normalize() {
	*v = v.Normalized()
}

// Normalized returns v scaled to unit length, panics like Normalize
func (v Vec2) Normalized() Vec2 {
	n, ok := v.TryNormalized()
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrZeroVector, v))
	}
	return n
}

// TryNormalized returns false instead of panicking when Len is zero
func (v Vec2) TryNormalized() (Vec2, bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{X: v.X.Div(l), Y: v.Y.Div(l)}, true
}

// --- Arithmetic ---

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X.Add(o.X), Y: v.Y.Add(o.Y)} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y)} }
func (v Vec2) Neg() Vec2       { return Vec2{X: v.X.Neg(), Y: v.Y.Neg()} }

func (v Vec2) AddTuple(t Tuple2) Vec2 { return v.Add(Vec2FromTuple(t)) }
func (v Vec2) SubTuple(t Tuple2) Vec2 { return v.Sub(Vec2FromTuple(t)) }

// Mul scales both components by s
func (v Vec2) Mul(s Fixed) Vec2 { return Vec2{X: v.X.Mul(s), Y: v.Y.Mul(s)} }

// Div divides both components by s
func (v Vec2) Div(s Fixed) Vec2 { return Vec2{X: v.X.Div(s), Y: v.Y.Div(s)} }

// Compound forms replace the receiver

func (v *Vec2) AddAssign(o Vec2)        { *v = v.Add(o) }
func (v *Vec2) SubAssign(o Vec2)        { *v = v.Sub(o) }
func (v *Vec2) AddTupleAssign(t Tuple2) { *v = v.AddTuple(t) }
func (v *Vec2) SubTupleAssign(t Tuple2) { *v = v.SubTuple(t) }
func (v *Vec2) MulAssign(s Fixed)       { *v = v.Mul(s) }
func (v *Vec2) DivAssign(s Fixed)       { *v = v.Div(s) }

// --- Geometry ---

func (v Vec2) Dot(o Vec2) Fixed {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y))
}

// Cross returns the z component of the 3D cross product
// Positive when o is counter-clockwise from v
func (v Vec2) Cross(o Vec2) Fixed {
	return v.X.Mul(o.Y).Sub(v.Y.Mul(o.X))
}

// Perp returns v rotated 90° counter-clockwise
func (v Vec2) Perp() Vec2 { return Vec2{X: v.Y.Neg(), Y: v.X} }

func (v Vec2) DistSq(o Vec2) Fixed { return o.Sub(v).LenSq() }
func (v Vec2) Dist(o Vec2) Fixed   { return o.Sub(v).Len() }

// ClampLen limits v to maxLen while preserving direction
func (v Vec2) ClampLen(maxLen Fixed) Vec2 {
	if v.Len() <= maxLen {
		return v
	}
	n, ok := v.TryNormalized()
	if !ok {
		return v
	}
	return n.Mul(maxLen)
}

// Reflect returns v reflected off a surface with unit normal n
// v' = v - 2 * dot(v, n) * n
func (v Vec2) Reflect(n Vec2) Vec2 {
	d := v.Dot(n)
	return v.Sub(n.Mul(d.Add(d)))
}

// Rotate rotates counter-clockwise by angle, One = full turn
func (v Vec2) Rotate(angle Fixed) Vec2 {
	c, s := Cos(angle), Sin(angle)
	return Vec2{
		X: v.X.Mul(c).Sub(v.Y.Mul(s)),
		Y: v.X.Mul(s).Add(v.Y.Mul(c)),
	}
}

// Lerp interpolates from v to o, t in [0, One]
func (v Vec2) Lerp(o Vec2, t Fixed) Vec2 {
	return v.Add(o.Sub(v).Mul(t))
}
