package physics

import "github.com/lixenwraith/fxvec/vmath"

// ApplyImpulse adds impulse/mass to velocity (momentum transfer)
func (b *Body) ApplyImpulse(impulse vmath.Vec2) {
	inv := b.InvMass()
	if inv == 0 {
		return
	}
	b.Vel.AddAssign(impulse.Mul(inv))
}

// SetVelocity overrides velocity (hard redirect)
func (b *Body) SetVelocity(vel vmath.Vec2) {
	if b.Frozen {
		return
	}
	b.Vel = vel
}

// Cell returns the grid cell under the body center
// cellH is world units per row, cells are one unit wide
func (b *Body) Cell(cellH vmath.Fixed) (x, y int) {
	return b.Pos.X.Int(), b.Pos.Y.Div(cellH).Int()
}

// Kick applies an impulse of up to strength in a random direction to every body
// Draws from the world generator, so equal seeds and equal input replay identically
func (w *World) Kick(strength vmath.Fixed) {
	for i := range w.Bodies {
		dir := vmath.NewVec2(vmath.One, 0).Rotate(w.rng.Range(0, vmath.One))
		w.Bodies[i].ApplyImpulse(dir.Mul(w.rng.Range(0, strength)))
	}
}
