package vmath

// Sin/Cos lookup, angle unit: One = full turn (2π)
const (
	LUTSize = 1024
	LUTMask = LUTSize - 1
	lutQuad = LUTSize / 4
)

// SinLUT and CosLUT in Q32.32
// Built with fixed-point arithmetic only, so every platform gets identical tables
var (
	SinLUT [LUTSize]Fixed
	CosLUT [LUTSize]Fixed
)

func init() {
	// First quadrant from Taylor series, rest by symmetry
	for i := 0; i <= lutQuad; i++ {
		SinLUT[i] = taylorSin(Fixed(int64(Pi) * int64(i) / (LUTSize / 2)))
	}
	SinLUT[0] = 0
	SinLUT[lutQuad] = One
	for i := 1; i < lutQuad; i++ {
		SinLUT[2*lutQuad-i] = SinLUT[i]
	}
	for i := 0; i < 2*lutQuad; i++ {
		SinLUT[2*lutQuad+i] = -SinLUT[i]
	}
	for i := 0; i < LUTSize; i++ {
		CosLUT[i] = SinLUT[(i+lutQuad)&LUTMask]
	}
}

// taylorSin evaluates sin(x) for x in [0, π/2] radians
func taylorSin(x Fixed) Fixed {
	x2 := x.Mul(x)
	term, sum := x, x
	for k := int64(1); k < 12; k++ {
		term = -term.Mul(x2).Div(Fixed((2 * k * (2*k + 1)) << Shift))
		if term == 0 {
			break
		}
		sum += term
	}
	return Clamp(sum, 0, One)
}

// Sin returns sine of an angle where angle 0..One maps to 0..2π
func Sin(angle Fixed) Fixed {
	return SinLUT[(int64(angle)>>(Shift-10))&LUTMask]
}

func Cos(angle Fixed) Fixed {
	return CosLUT[(int64(angle)>>(Shift-10))&LUTMask]
}
