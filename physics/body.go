package physics

import "github.com/lixenwraith/fxvec/vmath"

// Body is a circle with fixed-point kinematics
type Body struct {
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius vmath.Fixed
	Mass   vmath.Fixed
	Frozen bool // infinite mass, never moves

	// Contacts counts resolved collisions since spawn
	Contacts int
}

// InvMass returns 1/mass, zero for frozen bodies
func (b *Body) InvMass() vmath.Fixed {
	if b.Frozen || b.Mass <= 0 {
		return 0
	}
	return vmath.One.Div(b.Mass)
}

// Integrate advances position by velocity after applying acceleration, semi-implicit Euler
func (b *Body) Integrate(accel vmath.Vec2, dt vmath.Fixed) {
	if b.Frozen {
		return
	}
	b.Vel.AddAssign(accel.Mul(dt))
	b.Pos.AddAssign(b.Vel.Mul(dt))
}

// FastRand is a xorshift64 generator, deterministic across platforms for a given seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi vmath.Fixed) vmath.Fixed {
	if hi <= lo {
		return lo
	}
	span := uint64(hi - lo)
	return lo + vmath.Fixed(r.Next()%span)
}
