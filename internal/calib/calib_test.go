package calib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshspray/invaders/internal/input"
	"github.com/freshspray/invaders/internal/joystick"
)

func testDevice() joystick.Device {
	return joystick.Device{ID: "js0", Model: "TestPad", Axes: 2, Buttons: 4}
}

func axisMove(dev string, axis int, value int16) input.Event {
	return input.Event{Kind: input.AxisMoved, DeviceID: dev, Axis: axis, Value: value}
}

// exerciseAxis feeds both extremes of one axis.
func exerciseAxis(s *Session, axis int) {
	s.Feed(axisMove("js0", axis, -30000))
	s.Feed(axisMove("js0", axis, 30000))
}

func TestBeginRequiresDevice(t *testing.T) {
	_, err := Begin(joystick.Device{})
	assert.ErrorIs(t, err, ErrNoDevice)
}

func TestConfirmBeforeExercisingStaysInProgress(t *testing.T) {
	s, err := Begin(testDevice())
	require.NoError(t, err)

	res := s.Feed(input.Event{Kind: input.Confirm})
	assert.Equal(t, InProgress, res.Status)
	assert.False(t, s.Ready())
}

func TestCompletionRequiresAllAxes(t *testing.T) {
	s, err := Begin(testDevice())
	require.NoError(t, err)

	exerciseAxis(s, 0)
	res := s.Feed(input.Event{Kind: input.Confirm})
	assert.Equal(t, InProgress, res.Status, "one axis untouched")

	done, total := s.AxesExercised()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)

	exerciseAxis(s, 1)
	require.True(t, s.Ready())
	res = s.Feed(input.Event{Kind: input.Confirm})
	require.Equal(t, Completed, res.Status)

	assert.Equal(t, "TestPad", res.Profile.Model)
	require.Len(t, res.Profile.Axes, 2)
	assert.Equal(t, int16(-30000), res.Profile.Axes[0].Min)
	assert.Equal(t, int16(30000), res.Profile.Axes[0].Max)
}

func TestSmallWiggleDoesNotCount(t *testing.T) {
	dev := testDevice()
	dev.Axes = 1
	s, err := Begin(dev)
	require.NoError(t, err)

	s.Feed(axisMove("js0", 0, -100))
	s.Feed(axisMove("js0", 0, 100))
	assert.False(t, s.Ready())
}

func TestCancelAborts(t *testing.T) {
	s, err := Begin(testDevice())
	require.NoError(t, err)

	exerciseAxis(s, 0)
	res := s.Feed(input.Event{Kind: input.Cancel})
	assert.Equal(t, Aborted, res.Status)

	// The session stays terminal.
	exerciseAxis(s, 1)
	res = s.Feed(input.Event{Kind: input.Confirm})
	assert.Equal(t, Aborted, res.Status)
}

func TestDisconnectAborts(t *testing.T) {
	s, err := Begin(testDevice())
	require.NoError(t, err)

	res := s.Feed(input.Event{Kind: input.DeviceDisconnected, DeviceID: "js0"})
	assert.Equal(t, Aborted, res.Status)
}

func TestOtherDeviceIgnored(t *testing.T) {
	dev := testDevice()
	dev.Axes = 1
	s, err := Begin(dev)
	require.NoError(t, err)

	res := s.Feed(input.Event{Kind: input.DeviceDisconnected, DeviceID: "js1"})
	assert.Equal(t, InProgress, res.Status)

	s.Feed(axisMove("js1", 0, -30000))
	s.Feed(axisMove("js1", 0, 30000))
	assert.False(t, s.Ready(), "another device's axes never exercise ours")
}

func TestReplayDeterminism(t *testing.T) {
	events := []input.Event{
		axisMove("js0", 0, -30000),
		axisMove("js0", 0, 30000),
		{Kind: input.ButtonPressed, DeviceID: "js0", Button: 2},
		axisMove("js0", 1, -25000),
		axisMove("js0", 1, 28000),
		{Kind: input.ButtonPressed, DeviceID: "js0", Button: 0},
		{Kind: input.Confirm},
	}

	run := func() []Result {
		s, err := Begin(testDevice())
		require.NoError(t, err)
		results := make([]Result, 0, len(events))
		for _, ev := range events {
			results = append(results, s.Feed(ev))
		}
		return results
	}

	assert.Equal(t, run(), run(), "same events yield the same results")
}

func TestProfileButtonsSorted(t *testing.T) {
	dev := testDevice()
	dev.Axes = 1
	s, err := Begin(dev)
	require.NoError(t, err)

	s.Feed(input.Event{Kind: input.ButtonPressed, DeviceID: "js0", Button: 3})
	s.Feed(input.Event{Kind: input.ButtonPressed, DeviceID: "js0", Button: 0})
	s.Feed(input.Event{Kind: input.ButtonPressed, DeviceID: "js0", Button: 1})
	assert.Equal(t, 3, s.ButtonsSeen())

	exerciseAxis(s, 0)
	res := s.Feed(input.Event{Kind: input.Confirm})
	require.Equal(t, Completed, res.Status)
	assert.Equal(t, []int{0, 1, 3}, res.Profile.Buttons)
}
