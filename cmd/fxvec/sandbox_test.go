package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/fxvec/physics"
	"github.com/lixenwraith/fxvec/vmath"
)

func newTestSandbox(t *testing.T, width, height int) (*Sandbox, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(width, height)

	s, err := newSandbox(screen, DefaultSceneConfig(), 1, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(s.fini)
	return s, screen
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSandboxKeepsWorldWhenTooSmall(t *testing.T) {
	s, screen := newTestSandbox(t, 80, 24)
	world := s.world

	// Only the HUD fits, no rows left for the world
	screen.SetSize(80, hudRows)
	assert.False(t, s.handleInput(tcell.NewEventResize(80, hudRows)))
	assert.Same(t, world, s.world)
	assert.True(t, s.tooSmall)
	require.NotPanics(t, s.draw)

	assert.False(t, s.handleInput(keyRune('r')))
	assert.Same(t, world, s.world)

	screen.SetSize(100, 30)
	assert.False(t, s.handleInput(tcell.NewEventResize(100, 30)))
	assert.NotSame(t, world, s.world)
	assert.False(t, s.tooSmall)
	assert.Equal(t, vmath.From(100), s.world.Width)
	assert.Equal(t, vmath.From((30-hudRows)*2), s.world.Height)
}

func TestSandboxKeys(t *testing.T) {
	s, _ := newTestSandbox(t, 80, 24)

	assert.False(t, s.handleInput(keyRune(' ')))
	assert.True(t, s.paused)

	assert.False(t, s.handleInput(keyRune('g')))
	assert.Equal(t, vmath.Vec2Zero, s.world.Gravity)

	// Gravity setting survives a reseed
	assert.False(t, s.handleInput(keyRune('n')))
	assert.Equal(t, uint64(2), s.seed)
	assert.Equal(t, vmath.Vec2Zero, s.world.Gravity)

	before := s.world.Checksum()
	assert.False(t, s.handleInput(keyRune('k')))
	assert.NotEqual(t, before, s.world.Checksum())

	assert.True(t, s.handleInput(keyRune('q')))
	assert.True(t, s.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestBodyGlyph(t *testing.T) {
	cellH := vmath.From(2)
	upper := physics.Body{Pos: vmath.NewVec2(0, vmath.FromFloat(8.5))}
	lower := physics.Body{Pos: vmath.NewVec2(0, vmath.FromFloat(9.5))}
	assert.Equal(t, '▀', bodyGlyph(&upper, cellH))
	assert.Equal(t, '▄', bodyGlyph(&lower, cellH))
}
