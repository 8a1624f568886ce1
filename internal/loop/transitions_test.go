package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshspray/invaders/internal/display"
	"github.com/freshspray/invaders/internal/input"
	"github.com/freshspray/invaders/internal/joystick"
)

func newTestState() *State {
	s := NewState(landscapeScreen)
	s.Display = display.NewController(nil)
	return s
}

func testPad() joystick.Device {
	return joystick.Device{ID: "js0", Model: "TestPad", Axes: 1, Buttons: 2}
}

func connectPad(s *State) {
	HandleEvents(s, []input.Event{{
		Kind:     input.DeviceConnected,
		DeviceID: "js0",
		Device:   testPad(),
	}})
}

func TestMenuConfirmStartsRun(t *testing.T) {
	s := newTestState()

	HandleEvents(s, []input.Event{{Kind: input.Confirm}})

	assert.Equal(t, GameStatePlaying, s.GameState)
	assert.Equal(t, 0, s.Tracker.Current())
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, initialLives, s.Lives)
	assert.NotNil(t, s.Player)
	assert.NotNil(t, s.Formation)
}

func TestMenuCalibrateWithoutJoystick(t *testing.T) {
	s := newTestState()

	HandleEvents(s, []input.Event{{Kind: input.CalibrateRequest}})

	assert.Equal(t, GameStateMenu, s.GameState, "no joystick keeps the menu")
	assert.Nil(t, s.Session)
	assert.NotEmpty(t, s.Notice())
}

func TestMenuCancelExits(t *testing.T) {
	s := newTestState()

	HandleEvents(s, []input.Event{{Kind: input.Cancel}})

	assert.Equal(t, GameStateExiting, s.GameState)
	assert.False(t, s.Running)
}

func TestQuitWorksEverywhere(t *testing.T) {
	for _, start := range []GameState{GameStateMenu, GameStatePlaying, GameStateGameOver} {
		s := newTestState()
		s.GameState = start

		HandleEvents(s, []input.Event{{Kind: input.Quit}})
		assert.Equal(t, GameStateExiting, s.GameState)
		assert.False(t, s.Running)
	}
}

func TestDeviceConnectRegistersAndActivates(t *testing.T) {
	s := newTestState()

	connectPad(s)

	assert.Equal(t, "js0", s.ActiveDevice)
	assert.True(t, s.JoystickPresent())
	assert.Equal(t, GameStateMenu, s.GameState, "connecting never changes the screen")
}

func TestCalibrationCancelKeepsDevice(t *testing.T) {
	s := newTestState()
	connectPad(s)

	HandleEvents(s, []input.Event{{Kind: input.CalibrateRequest}})
	require.Equal(t, GameStateCalibrating, s.GameState)
	require.NotNil(t, s.Session)

	HandleEvents(s, []input.Event{{Kind: input.Cancel}})

	assert.Equal(t, GameStateMenu, s.GameState)
	assert.Nil(t, s.Session)
	assert.Contains(t, s.Devices, "js0", "cancel discards nothing about the device")
	assert.Empty(t, s.Profiles, "aborted sessions record no profile")
}

func TestCalibrationCompleteRecordsProfile(t *testing.T) {
	s := newTestState()
	connectPad(s)

	HandleEvents(s, []input.Event{
		{Kind: input.CalibrateRequest},
		{Kind: input.AxisMoved, DeviceID: "js0", Axis: 0, Value: -30000},
		{Kind: input.AxisMoved, DeviceID: "js0", Axis: 0, Value: 30000},
		{Kind: input.ButtonPressed, DeviceID: "js0", Button: 0},
		{Kind: input.Confirm},
	})

	assert.Equal(t, GameStateMenu, s.GameState)
	assert.Nil(t, s.Session)

	profile, ok := s.Profiles["TestPad"]
	require.True(t, ok)
	assert.Equal(t, []int{0}, profile.Buttons)
}

func TestDisconnectDuringCalibrationAborts(t *testing.T) {
	s := newTestState()
	connectPad(s)
	HandleEvents(s, []input.Event{{Kind: input.CalibrateRequest}})
	require.Equal(t, GameStateCalibrating, s.GameState)

	HandleEvents(s, []input.Event{{Kind: input.DeviceDisconnected, DeviceID: "js0"}})

	assert.Equal(t, GameStateMenu, s.GameState)
	assert.Nil(t, s.Session)
	assert.False(t, s.JoystickPresent())
	assert.Empty(t, s.Profiles)
}

func TestPlayingCancelReturnsToMenu(t *testing.T) {
	s := newTestState()
	HandleEvents(s, []input.Event{{Kind: input.Confirm}})
	require.Equal(t, GameStatePlaying, s.GameState)

	HandleEvents(s, []input.Event{{Kind: input.Cancel}})

	assert.Equal(t, GameStateMenu, s.GameState)
	assert.Nil(t, s.Player)
	assert.Nil(t, s.Formation)
}

func TestGameOverConfirmRestarts(t *testing.T) {
	s := newTestState()
	HandleEvents(s, []input.Event{{Kind: input.Confirm}})
	s.Tracker.Add(1234)
	s.Lives = 0
	s.GameState = GameStateGameOver

	HandleEvents(s, []input.Event{{Kind: input.Confirm}})

	assert.Equal(t, GameStatePlaying, s.GameState)
	assert.Equal(t, 0, s.Tracker.Current())
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, initialLives, s.Lives)
}

func TestTogglePortraitSwapsScreen(t *testing.T) {
	s := newTestState()

	HandleEvents(s, []input.Event{{Kind: input.TogglePortrait}})

	assert.Equal(t, portraitScreen, s.Screen)
	assert.Equal(t, display.PortraitFullscreen, s.Display.Mode())

	// A second toggle changes nothing.
	HandleEvents(s, []input.Event{{Kind: input.TogglePortrait}})
	assert.Equal(t, portraitScreen, s.Screen)
}

type deniedBackend struct{}

func (deniedBackend) SetPortraitFullscreen() error { return display.ErrModeUnsupported }

func TestTogglePortraitUnsupportedKeepsMode(t *testing.T) {
	s := NewState(landscapeScreen)
	s.Display = display.NewController(deniedBackend{})

	HandleEvents(s, []input.Event{{Kind: input.TogglePortrait}})

	assert.Equal(t, landscapeScreen, s.Screen)
	assert.Equal(t, display.Mode{}, s.Display.Mode())
	assert.NotEmpty(t, s.Notice())
}

func TestTogglePortraitDuringPlayKeepsPlayerInBounds(t *testing.T) {
	s := newTestState()
	HandleEvents(s, []input.Event{{Kind: input.Confirm}})
	s.Player.X = float64(landscapeScreen.Width) // Off the portrait screen

	HandleEvents(s, []input.Event{{Kind: input.TogglePortrait}})

	b := s.Player.Bounds()
	assert.LessOrEqual(t, b.X+b.W, float64(portraitScreen.Width))
	assert.Equal(t, GameStatePlaying, s.GameState)
}
