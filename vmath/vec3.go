package vmath

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Vec3 is a 3D vector in Q32.32 fixed-point
type Vec3 struct {
	X, Y, Z Fixed
}

type Tuple3 [3]Fixed

var Vec3Zero = Vec3{}

func NewVec3(x, y, z Fixed) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewVec3Of accepts three independently typed integers, each converted with From
func NewVec3Of[A, B, C constraints.Integer](x A, y B, z C) Vec3 {
	return Vec3{X: From(x), Y: From(y), Z: From(z)}
}

// Vec3FromVec2 lifts a 2D vector to 3D with the given z
func Vec3FromVec2(v Vec2, z Fixed) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

func Vec3FromTuple(t Tuple3) Vec3 { return Vec3{X: t[0], Y: t[1], Z: t[2]} }

func (v Vec3) Tuple() Tuple3 { return Tuple3{v.X, v.Y, v.Z} }

func (v Vec3) XYZ() (x, y, z Fixed) { return v.X, v.Y, v.Z }

// XY drops Z for 2D projection
func (v Vec3) XY() Vec2 { return Vec2{X: v.X, Y: v.Y} }

func (v Vec3) String() string { return fmt.Sprintf("(%v, %v, %v)", v.X, v.Y, v.Z) }

func (v Vec3) LenSq() Fixed {
	return must(v.checkedLenSq())
}

// Len falls back to a scaled measurement when the squares overflow
func (v Vec3) Len() Fixed {
	if sq, err := v.checkedLenSq(); err == nil {
		return sq.Sqrt()
	}
	m := Max(Max(v.X.Abs(), v.Y.Abs()), v.Z.Abs())
	return Vec3{X: v.X.Div(m), Y: v.Y.Div(m), Z: v.Z.Div(m)}.Len().Mul(m)
}

func (v Vec3) checkedLenSq() (Fixed, error) {
	sum := Zero
	for _, c := range [3]Fixed{v.X, v.Y, v.Z} {
		sq, err := c.CheckedMul(c)
		if err != nil {
			return 0, err
		}
		if sum, err = sum.CheckedAdd(sq); err != nil {
			return 0, err
		}
	}
	return sum, nil
}

// Normalize scales v to unit length in place, panics with ErrZeroVector when Len is zero
func (v *Vec3) Normalize() {
	*v = v.Normalized()
}

func (v Vec3) Normalized() Vec3 {
	n, ok := v.TryNormalized()
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrZeroVector, v))
	}
	return n
}

func (v Vec3) TryNormalized() (Vec3, bool) {
	l := v.Len()
	if l == 0 {
		return Vec3{}, false
	}
	return Vec3{X: v.X.Div(l), Y: v.Y.Div(l), Z: v.Z.Div(l)}, true
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X.Add(o.X), Y: v.Y.Add(o.Y), Z: v.Z.Add(o.Z)}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y), Z: v.Z.Sub(o.Z)}
}

func (v Vec3) Neg() Vec3 { return Vec3{X: v.X.Neg(), Y: v.Y.Neg(), Z: v.Z.Neg()} }

func (v Vec3) AddTuple(t Tuple3) Vec3 { return v.Add(Vec3FromTuple(t)) }
func (v Vec3) SubTuple(t Tuple3) Vec3 { return v.Sub(Vec3FromTuple(t)) }

func (v Vec3) Mul(s Fixed) Vec3 { return Vec3{X: v.X.Mul(s), Y: v.Y.Mul(s), Z: v.Z.Mul(s)} }
func (v Vec3) Div(s Fixed) Vec3 { return Vec3{X: v.X.Div(s), Y: v.Y.Div(s), Z: v.Z.Div(s)} }

func (v *Vec3) AddAssign(o Vec3)        { *v = v.Add(o) }
func (v *Vec3) SubAssign(o Vec3)        { *v = v.Sub(o) }
func (v *Vec3) AddTupleAssign(t Tuple3) { *v = v.AddTuple(t) }
func (v *Vec3) SubTupleAssign(t Tuple3) { *v = v.SubTuple(t) }
func (v *Vec3) MulAssign(s Fixed)       { *v = v.Mul(s) }
func (v *Vec3) DivAssign(s Fixed)       { *v = v.Div(s) }

func (v Vec3) Dot(o Vec3) Fixed {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		Y: v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		Z: v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3) DistSq(o Vec3) Fixed { return o.Sub(v).LenSq() }
func (v Vec3) Dist(o Vec3) Fixed   { return o.Sub(v).Len() }

// ClampLen limits vector magnitude
func (v Vec3) ClampLen(maxLen Fixed) Vec3 {
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
func (v Vec3) Reflect(n Vec3) Vec3 {
	d := v.Dot(n)
	return v.Sub(n.Mul(d.Add(d)))
}

func (v Vec3) Lerp(o Vec3, t Fixed) Vec3 {
	return v.Add(o.Sub(v).Mul(t))
}
