package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/fxvec/vmath"
)

// Limits keep every intermediate of a step inside Q32.32
const (
	// MaxExtent bounds world size, speed and gravity per axis
	MaxExtent = vmath.Fixed(16384 << vmath.Shift)
	// MinMass keeps InvMass representable
	MinMass   = vmath.One >> 16
	MaxBodies = 4096
)

var ErrInvalidConfig = errors.New("invalid world configuration")

// Config describes a world and its initial bodies, all values Q32.32
type Config struct {
	Width, Height vmath.Fixed
	Bodies        int
	Radius        vmath.Fixed
	Mass          vmath.Fixed
	MaxSpeed      vmath.Fixed
	Gravity       vmath.Vec2
	Restitution   vmath.Fixed
	Seed          uint64
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: bounds %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.Width > MaxExtent || c.Height > MaxExtent:
		return fmt.Errorf("%w: bounds exceed %v", ErrInvalidConfig, MaxExtent)
	case c.Bodies < 0 || c.Bodies > MaxBodies:
		return fmt.Errorf("%w: body count %d", ErrInvalidConfig, c.Bodies)
	case c.Radius <= 0 || c.Radius >= vmath.Min(c.Width, c.Height)>>1:
		return fmt.Errorf("%w: radius %v", ErrInvalidConfig, c.Radius)
	case c.Mass < MinMass || c.Mass > MaxExtent:
		return fmt.Errorf("%w: mass %v", ErrInvalidConfig, c.Mass)
	case c.MaxSpeed <= 0 || c.MaxSpeed > MaxExtent:
		return fmt.Errorf("%w: max speed %v", ErrInvalidConfig, c.MaxSpeed)
	case !inRange(c.Gravity.X) || !inRange(c.Gravity.Y):
		return fmt.Errorf("%w: gravity %v", ErrInvalidConfig, c.Gravity)
	case c.Restitution < 0 || c.Restitution > vmath.One:
		return fmt.Errorf("%w: restitution %v", ErrInvalidConfig, c.Restitution)
	}
	return nil
}

func inRange(v vmath.Fixed) bool { return v >= -MaxExtent && v <= MaxExtent }

// World is a bounded box of bodies stepped in fixed point
// Not safe for concurrent use; owned by a single simulation loop
type World struct {
	Bodies      []Body
	Width       vmath.Fixed
	Height      vmath.Fixed
	Gravity     vmath.Vec2
	Restitution vmath.Fixed
	MaxSpeed    vmath.Fixed

	frame uint64
	rng   *FastRand
}

// NewWorld validates cfg and spawns bodies from cfg.Seed
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		Bodies:      make([]Body, 0, cfg.Bodies),
		Width:       cfg.Width,
		Height:      cfg.Height,
		Gravity:     cfg.Gravity,
		Restitution: cfg.Restitution,
		MaxSpeed:    cfg.MaxSpeed,
	}

	rng := NewFastRand(cfg.Seed)
	w.rng = rng
	for i := 0; i < cfg.Bodies; i++ {
		pos := vmath.NewVec2(
			rng.Range(cfg.Radius, cfg.Width.Sub(cfg.Radius)),
			rng.Range(cfg.Radius, cfg.Height.Sub(cfg.Radius)),
		)
		// Direction from a full-turn angle, speed up to MaxSpeed
		dir := vmath.NewVec2(vmath.One, 0).Rotate(rng.Range(0, vmath.One))
		vel := dir.Mul(rng.Range(0, cfg.MaxSpeed))
		w.Bodies = append(w.Bodies, Body{
			Pos:    pos,
			Vel:    vel,
			Radius: cfg.Radius,
			Mass:   cfg.Mass,
		})
	}
	return w, nil
}

// Frame returns the number of completed steps
func (w *World) Frame() uint64 { return w.frame }

// Step integrates all bodies by dt and resolves walls then pairwise contacts
// dt is clamped to [0, One]; returns the number of body-body contacts resolved
func (w *World) Step(dt vmath.Fixed) int {
	dt = vmath.Clamp(dt, 0, vmath.One)
	for i := range w.Bodies {
		b := &w.Bodies[i]
		if b.Frozen {
			continue
		}
		b.Integrate(w.Gravity, dt)
		if w.MaxSpeed > 0 {
			b.Vel = b.Vel.ClampLen(w.MaxSpeed)
		}
		ReflectAxis(&b.Pos.X, &b.Vel.X, b.Radius, w.Width.Sub(b.Radius), w.Restitution)
		ReflectAxis(&b.Pos.Y, &b.Vel.Y, b.Radius, w.Height.Sub(b.Radius), w.Restitution)
	}

	contacts := 0
	for i := 0; i < len(w.Bodies); i++ {
		for j := i + 1; j < len(w.Bodies); j++ {
			if ResolveContact(&w.Bodies[i], &w.Bodies[j], w.Restitution) {
				contacts++
			}
		}
	}
	w.frame++
	return contacts
}

// Checksum hashes frame number and every body's kinematic state
func (w *World) Checksum() uint64 {
	c := vmath.NewChecksum()
	c.WriteFixed(vmath.FromRaw(int64(w.frame)))
	for i := range w.Bodies {
		c.WriteVec2(w.Bodies[i].Pos)
		c.WriteVec2(w.Bodies[i].Vel)
	}
	return c.Sum64()
}
