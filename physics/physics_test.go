package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/fxvec/vmath"
)

func testConfig() Config {
	return Config{
		Width:       vmath.From(80),
		Height:      vmath.From(40),
		Bodies:      24,
		Radius:      vmath.FromFloat(1.5),
		Mass:        vmath.One,
		MaxSpeed:    vmath.From(20),
		Gravity:     vmath.NewVec2(0, vmath.From(5)),
		Restitution: vmath.FromFloat(0.9),
		Seed:        42,
	}
}

func TestHeadOnExchange(t *testing.T) {
	a := Body{Pos: vmath.NewVec2Of(0, 0), Vel: vmath.NewVec2Of(1, 0), Radius: vmath.One, Mass: vmath.One}
	b := Body{Pos: vmath.NewVec2(vmath.FromFloat(1.5), 0), Vel: vmath.NewVec2Of(-1, 0), Radius: vmath.One, Mass: vmath.One}

	require.True(t, ResolveContact(&a, &b, vmath.One))
	assert.Equal(t, vmath.NewVec2Of(-1, 0), a.Vel)
	assert.Equal(t, vmath.NewVec2Of(1, 0), b.Vel)
	assert.Equal(t, 1, a.Contacts)
	assert.Equal(t, 1, b.Contacts)

	// Separated past touching distance
	assert.Greater(t, a.Pos.Dist(b.Pos), vmath.From(2))
}

func TestContactSkipsCoincidentCenters(t *testing.T) {
	a := Body{Pos: vmath.NewVec2Of(5, 5), Vel: vmath.NewVec2Of(1, 0), Radius: vmath.One, Mass: vmath.One}
	b := a

	assert.NotPanics(t, func() {
		assert.False(t, ResolveContact(&a, &b, vmath.One))
	})
	assert.Equal(t, 0, a.Contacts)
	assert.Equal(t, vmath.NewVec2Of(5, 5), a.Pos)
}

func TestContactIgnoresSeparatedAndFrozen(t *testing.T) {
	a := Body{Pos: vmath.NewVec2Of(0, 0), Radius: vmath.One, Mass: vmath.One}
	b := Body{Pos: vmath.NewVec2Of(3, 0), Radius: vmath.One, Mass: vmath.One}
	assert.False(t, ResolveContact(&a, &b, vmath.One))

	a.Frozen, b.Frozen = true, true
	b.Pos = vmath.NewVec2Of(1, 0)
	assert.False(t, ResolveContact(&a, &b, vmath.One))
}

func TestContactAgainstFrozen(t *testing.T) {
	wall := Body{Pos: vmath.NewVec2Of(0, 0), Radius: vmath.One, Frozen: true}
	ball := Body{Pos: vmath.NewVec2Of(0, 1), Vel: vmath.NewVec2Of(0, -2), Radius: vmath.One, Mass: vmath.One}

	require.True(t, ResolveContact(&wall, &ball, vmath.One))
	assert.Equal(t, vmath.NewVec2Of(0, 0), wall.Pos)
	assert.Equal(t, vmath.Vec2Zero, wall.Vel)
	assert.Equal(t, vmath.NewVec2Of(0, 2), ball.Vel)
	assert.Greater(t, ball.Pos.Y, vmath.From(2))
}

func TestReflectAxis(t *testing.T) {
	pos, vel := vmath.From(-1), vmath.From(-4)
	assert.True(t, ReflectAxis(&pos, &vel, 0, vmath.From(10), vmath.Half))
	assert.Equal(t, vmath.Zero, pos)
	assert.Equal(t, vmath.From(2), vel)

	pos, vel = vmath.From(12), vmath.From(4)
	assert.True(t, ReflectAxis(&pos, &vel, 0, vmath.From(10), vmath.One))
	assert.Equal(t, vmath.From(10), pos)
	assert.Equal(t, vmath.From(-4), vel)

	pos, vel = vmath.From(5), vmath.From(4)
	assert.False(t, ReflectAxis(&pos, &vel, 0, vmath.From(10), vmath.One))
}

func TestIntegrate(t *testing.T) {
	b := Body{Vel: vmath.NewVec2Of(2, 0), Mass: vmath.One}
	b.Integrate(vmath.NewVec2Of(0, 4), vmath.Half)
	assert.Equal(t, vmath.NewVec2Of(2, 2), b.Vel)
	assert.Equal(t, vmath.NewVec2Of(1, 1), b.Pos)

	frozen := Body{Vel: vmath.NewVec2Of(2, 0), Frozen: true}
	frozen.Integrate(vmath.NewVec2Of(0, 4), vmath.One)
	assert.Equal(t, vmath.Vec2Zero, frozen.Pos)
	assert.Equal(t, vmath.Zero, frozen.InvMass())
}

func TestWorldDeterministic(t *testing.T) {
	dt := vmath.One / 30
	run := func() (uint64, int) {
		w, err := NewWorld(testConfig())
		require.NoError(t, err)
		total := 0
		for i := 0; i < 600; i++ {
			total += w.Step(dt)
		}
		return w.Checksum(), total
	}

	sumA, contactsA := run()
	sumB, contactsB := run()
	assert.Equal(t, sumA, sumB)
	assert.Equal(t, contactsA, contactsB)
	assert.Positive(t, contactsA)
}

func TestWorldSeedChangesState(t *testing.T) {
	cfg := testConfig()
	a, err := NewWorld(cfg)
	require.NoError(t, err)
	cfg.Seed = 7
	b, err := NewWorld(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Checksum(), b.Checksum())
}

func TestWorldKeepsBodiesInBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Bodies = 1
	cfg.Gravity = vmath.Vec2Zero
	cfg.Restitution = vmath.One
	w, err := NewWorld(cfg)
	require.NoError(t, err)

	// Fast enough to hit several walls
	w.Bodies[0].Vel = vmath.NewVec2Of(100, -70)
	lo := w.Bodies[0].Radius
	for i := 0; i < 1000; i++ {
		require.Zero(t, w.Step(vmath.One/30))
		b := w.Bodies[0]
		require.LessOrEqual(t, b.Vel.Len(), w.MaxSpeed, "frame %d", w.Frame())
		require.GreaterOrEqual(t, b.Pos.X, lo)
		require.LessOrEqual(t, b.Pos.X, w.Width.Sub(lo))
		require.GreaterOrEqual(t, b.Pos.Y, lo)
		require.LessOrEqual(t, b.Pos.Y, w.Height.Sub(lo))
	}
	assert.Equal(t, uint64(1000), w.Frame())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, testConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"too large", func(c *Config) { c.Height = MaxExtent + 1 }},
		{"negative bodies", func(c *Config) { c.Bodies = -1 }},
		{"radius too big", func(c *Config) { c.Radius = vmath.From(20) }},
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"restitution above one", func(c *Config) { c.Restitution = vmath.From(2) }},
		{"speed too large", func(c *Config) { c.MaxSpeed = MaxExtent + 1 }},
		{"zero max speed", func(c *Config) { c.MaxSpeed = 0 }},
		{"mass too small", func(c *Config) { c.Mass = vmath.Epsilon }},
		{"too many bodies", func(c *Config) { c.Bodies = MaxBodies + 1 }},
		{"gravity too large", func(c *Config) { c.Gravity = vmath.NewVec2Of(0, 10_000_000) }},
		{"negative gravity too large", func(c *Config) { c.Gravity.X = -MaxExtent - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewWorld(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(0)
	lo, hi := vmath.From(-3), vmath.From(3)
	for i := 0; i < 1000; i++ {
		v := r.Range(lo, hi)
		require.GreaterOrEqual(t, v, lo)
		require.Less(t, v, hi)
	}
	assert.Equal(t, lo, r.Range(lo, lo))
}

func TestStepAtConfigLimits(t *testing.T) {
	cfg := Config{
		Width:       MaxExtent,
		Height:      MaxExtent,
		Bodies:      64,
		Radius:      vmath.From(1024),
		Mass:        MaxExtent,
		MaxSpeed:    MaxExtent,
		Gravity:     vmath.NewVec2(MaxExtent, -MaxExtent),
		Restitution: vmath.One,
		Seed:        11,
	}
	w, err := NewWorld(cfg)
	require.NoError(t, err)

	// dt above One is clamped
	require.NotPanics(t, func() {
		for i := 0; i < 200; i++ {
			w.Step(vmath.From(4))
		}
	})
	assert.Equal(t, uint64(200), w.Frame())
}

func TestResolveContactHeavyBodies(t *testing.T) {
	a := Body{Pos: vmath.NewVec2Of(0, 0), Vel: vmath.NewVec2Of(8000, 0), Radius: vmath.One, Mass: MaxExtent}
	b := Body{Pos: vmath.NewVec2Of(1, 0), Vel: vmath.NewVec2Of(-8000, 0), Radius: vmath.One, Mass: MaxExtent}
	require.True(t, ResolveContact(&a, &b, vmath.One))
	assert.Equal(t, vmath.NewVec2Of(-8000, 0), a.Vel)
	assert.Equal(t, vmath.NewVec2Of(8000, 0), b.Vel)
}
