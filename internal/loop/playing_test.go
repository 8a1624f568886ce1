package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshspray/invaders/internal/calib"
	"github.com/freshspray/invaders/internal/input"
)

func startPlaying(t *testing.T) *State {
	t.Helper()
	s := newTestState()
	HandleEvents(s, []input.Event{{Kind: input.Confirm}})
	require.Equal(t, GameStatePlaying, s.GameState)
	s.Delta = time.Second / 60
	return s
}

func TestLevelCompleteAdvances(t *testing.T) {
	s := startPlaying(t)

	s.Tracker.Add(s.Tracker.Target())
	require.NoError(t, updatePlaying(s, input.Held{}))

	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 0, s.Tracker.Current(), "score resets for the new level")
	assert.Equal(t, GameStatePlaying, s.GameState)
	assert.Greater(t, s.Formation.Count(), 0)
}

func TestWaveClearRefillsWithBonus(t *testing.T) {
	s := startPlaying(t)

	for _, o := range s.Formation.Alive() {
		o.MarkDestroyed()
	}
	require.NoError(t, updatePlaying(s, input.Held{}))

	assert.Equal(t, waveBonus*s.Level, s.Tracker.Current())
	assert.Greater(t, s.Formation.Count(), 0, "a fresh wave replaces the cleared one")
	assert.Equal(t, 1, s.Level, "clearing a wave is not a level")
}

func TestFormationReachingPlayerEndsRun(t *testing.T) {
	s := startPlaying(t)

	for _, o := range s.Formation.Alive() {
		o.Y = s.Player.Bounds().Y + 1
	}
	require.NoError(t, updatePlaying(s, input.Held{}))

	assert.Equal(t, GameStateGameOver, s.GameState)
}

func TestNoLivesEndsRun(t *testing.T) {
	s := startPlaying(t)

	s.Lives = 0
	require.NoError(t, updatePlaying(s, input.Held{}))

	assert.Equal(t, GameStateGameOver, s.GameState)
}

func TestResolveControlWithoutProfile(t *testing.T) {
	s := startPlaying(t)
	connectPad(s)

	HandleEvents(s, []input.Event{
		{Kind: input.AxisMoved, DeviceID: "js0", Axis: 0, Value: 30000},
		{Kind: input.ButtonPressed, DeviceID: "js0", Button: 0},
	})
	c := resolveControl(s, input.Held{Left: true})

	assert.True(t, c.Left)
	assert.True(t, c.Fire, "button fire works without calibration")
	assert.Zero(t, c.AxisX, "uncalibrated axes contribute nothing")
}

func TestResolveControlWithProfile(t *testing.T) {
	s := startPlaying(t)
	connectPad(s)
	s.Profiles["TestPad"] = calib.Profile{
		Model: "TestPad",
		Axes:  []calib.AxisRange{{Min: -30000, Max: 30000}},
	}

	HandleEvents(s, []input.Event{
		{Kind: input.AxisMoved, DeviceID: "js0", Axis: 0, Value: 30000},
	})
	c := resolveControl(s, input.Held{})
	assert.InDelta(t, 1.0, c.AxisX, 0.001)

	HandleEvents(s, []input.Event{
		{Kind: input.AxisMoved, DeviceID: "js0", Axis: 0, Value: 1000},
	})
	c = resolveControl(s, input.Held{})
	assert.Zero(t, c.AxisX, "drift inside the deadzone is ignored")
}

func TestFireButtonIsEdgeTriggered(t *testing.T) {
	s := startPlaying(t)
	connectPad(s)

	HandleEvents(s, []input.Event{{Kind: input.ButtonPressed, DeviceID: "js0", Button: 0}})

	c := resolveControl(s, input.Held{})
	assert.True(t, c.Fire)

	c = resolveControl(s, input.Held{})
	assert.False(t, c.Fire, "one press fires once")
}
