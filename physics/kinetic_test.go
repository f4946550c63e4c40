package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/fxvec/vmath"
)

func TestApplyImpulse(t *testing.T) {
	b := Body{Mass: vmath.From(2)}
	b.ApplyImpulse(vmath.NewVec2Of(4, -6))
	assert.Equal(t, vmath.NewVec2Of(2, -3), b.Vel)

	frozen := Body{Mass: vmath.One, Frozen: true}
	frozen.ApplyImpulse(vmath.NewVec2Of(4, -6))
	frozen.SetVelocity(vmath.NewVec2Of(1, 1))
	assert.Equal(t, vmath.Vec2Zero, frozen.Vel)

	b.SetVelocity(vmath.NewVec2Of(7, 0))
	assert.Equal(t, vmath.NewVec2Of(7, 0), b.Vel)
}

func TestBodyCell(t *testing.T) {
	b := Body{Pos: vmath.NewVec2(vmath.FromFloat(12.75), vmath.FromFloat(9.5))}
	x, y := b.Cell(vmath.From(2))
	assert.Equal(t, 12, x)
	assert.Equal(t, 4, y)
}

func TestKickReplays(t *testing.T) {
	run := func() uint64 {
		w, err := NewWorld(testConfig())
		require.NoError(t, err)
		for i := 0; i < 120; i++ {
			if i%40 == 0 {
				w.Kick(vmath.From(10))
			}
			w.Step(vmath.One / 30)
		}
		return w.Checksum()
	}
	assert.Equal(t, run(), run())

	w, err := NewWorld(testConfig())
	require.NoError(t, err)
	before := w.Checksum()
	w.Kick(vmath.From(10))
	assert.NotEqual(t, before, w.Checksum())
}
