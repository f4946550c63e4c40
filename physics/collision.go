package physics

import "github.com/lixenwraith/fxvec/vmath"

// separationMargin pushes overlapping bodies slightly past touching
const separationMargin = vmath.One / 16

// ResolveContact separates two overlapping circles and applies an elastic impulse
// restitution: Q32.32, One = perfectly elastic
// Returns false when the bodies do not touch, are both frozen, or share a center;
// coincident centers have no contact normal and are left for the next step
func ResolveContact(a, b *Body, restitution vmath.Fixed) bool {
	if a.Frozen && b.Frozen {
		return false
	}

	delta := b.Pos.Sub(a.Pos)
	minDist := a.Radius.Add(b.Radius)
	if delta.LenSq() >= minDist.Mul(minDist) {
		return false
	}

	// Collision normal from a toward b
	n, ok := delta.TryNormalized()
	if !ok {
		return false
	}

	separate(a, b, n, minDist.Sub(delta.Len()))

	invA, invB := a.InvMass(), b.InvMass()
	invSum := invA.Add(invB)

	// Impulse only if approaching
	vn := a.Vel.Sub(b.Vel).Dot(n)
	if vn > 0 && invSum > 0 {
		// j = (1 + e) * vn / (1/mA + 1/mB), applied as j/m = k * share
		// so a heavy pair never materializes the full impulse
		k := vmath.One.Add(restitution).Mul(vn)
		a.Vel.SubAssign(n.Mul(k.Mul(invA.Div(invSum))))
		b.Vel.AddAssign(n.Mul(k.Mul(invB.Div(invSum))))
	}

	a.Contacts++
	b.Contacts++
	return true
}

func separate(a, b *Body, n vmath.Vec2, overlap vmath.Fixed) {
	if overlap <= 0 {
		return
	}
	switch {
	case a.Frozen:
		b.Pos.AddAssign(n.Mul(overlap.Add(separationMargin)))
	case b.Frozen:
		a.Pos.SubAssign(n.Mul(overlap.Add(separationMargin)))
	default:
		half := overlap.Div(vmath.From(2)).Add(separationMargin)
		a.Pos.SubAssign(n.Mul(half))
		b.Pos.AddAssign(n.Mul(half))
	}
}

// ReflectAxis clamps position component and reflects velocity on boundary
func ReflectAxis(pos, vel *vmath.Fixed, lo, hi, restitution vmath.Fixed) bool {
	if *pos < lo {
		*pos = lo
		if *vel < 0 {
			*vel = vel.Mul(restitution).Neg()
		}
		return true
	}
	if *pos > hi {
		*pos = hi
		if *vel > 0 {
			*vel = vel.Mul(restitution).Neg()
		}
		return true
	}
	return false
}
