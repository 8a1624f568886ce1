package object

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnRecorder struct {
	spawned []Object
}

func (r *spawnRecorder) Spawn(obj Object) { r.spawned = append(r.spawned, obj) }

func playerCtx(control Control, spawner Spawner) UpdateContext {
	return UpdateContext{
		Delta:   time.Second / 60,
		Control: control,
		Screen:  testScreen,
		Spawner: spawner,
	}
}

func TestPlayerStaysOnScreen(t *testing.T) {
	p := NewPlayer(testScreen)

	for i := 0; i < 1000; i++ {
		_, err := p.Update(playerCtx(Control{Left: true}, nil))
		require.NoError(t, err)
	}
	assert.Equal(t, 0.0, p.X)

	for i := 0; i < 1000; i++ {
		_, err := p.Update(playerCtx(Control{Right: true}, nil))
		require.NoError(t, err)
	}
	assert.Equal(t, float64(testScreen.Width)-PlayerWidth, p.X)
}

func TestPlayerAxisMovement(t *testing.T) {
	p := NewPlayer(testScreen)
	startX := p.X

	_, err := p.Update(playerCtx(Control{AxisX: 1}, nil))
	require.NoError(t, err)
	assert.Greater(t, p.X, startX)

	// Stick drift inside the deadzone does not move the can.
	p = NewPlayer(testScreen)
	_, err = p.Update(playerCtx(Control{AxisX: 0.1}, nil))
	require.NoError(t, err)
	assert.Equal(t, startX, p.X)
}

func TestPlayerFireCooldown(t *testing.T) {
	p := NewPlayer(testScreen)
	rec := &spawnRecorder{}

	frames := int(FireInterval * 60 * 2)
	for i := 0; i < frames; i++ {
		_, err := p.Update(playerCtx(Control{Fire: true}, rec))
		require.NoError(t, err)
	}

	assert.Len(t, rec.spawned, 2, "held fire is limited by the cooldown")
	for _, obj := range rec.spawned {
		assert.IsType(t, &Spray{}, obj)
	}
}

func TestPlayerReposition(t *testing.T) {
	p := NewPlayer(testScreen)
	portrait := NewScreen(80, 120)
	p.X = float64(testScreen.Width) - PlayerWidth

	p.Reposition(portrait)

	assert.Equal(t, float64(portrait.Height)-PlayerHeight-2, p.Y)
	assert.LessOrEqual(t, p.X+PlayerWidth, float64(portrait.Width))
}
