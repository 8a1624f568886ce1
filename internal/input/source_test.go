package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshspray/invaders/internal/joystick"
)

// fakeBus feeds canned joystick events through the Bus interface.
type fakeBus struct {
	events     chan joystick.Event
	errs       chan error
	subscribed []string
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		events: make(chan joystick.Event, 16),
		errs:   make(chan error, 1),
	}
}

func (b *fakeBus) Devices() []joystick.Device { return nil }
func (b *fakeBus) Subscribe(id string) error {
	b.subscribed = append(b.subscribed, id)
	return nil
}
func (b *fakeBus) Unsubscribe(id string) error   { return nil }
func (b *fakeBus) Events() <-chan joystick.Event { return b.events }
func (b *fakeBus) Errors() <-chan error          { return b.errs }
func (b *fakeBus) Close()                        {}

var _ joystick.Bus = (*fakeBus)(nil)

func TestSourceTranslatesBusEvents(t *testing.T) {
	bus := newFakeBus()
	src := NewSource(nil, bus)

	dev := joystick.Device{ID: "js0", Model: "TestPad", Axes: 2, Buttons: 2}
	bus.events <- joystick.Event{Kind: joystick.EventConnected, ID: "js0", Device: dev}
	bus.events <- joystick.Event{
		Kind: joystick.EventControl, ID: "js0",
		Control: joystick.ControlEvent{Kind: joystick.ControlAxis, Index: 1, Value: -12345},
	}
	bus.events <- joystick.Event{
		Kind: joystick.EventControl, ID: "js0",
		Control: joystick.ControlEvent{Kind: joystick.ControlButton, Index: 0, Value: 1},
	}
	bus.events <- joystick.Event{Kind: joystick.EventDisconnected, ID: "js0"}

	events, _ := src.Poll()
	require.Len(t, events, 4)

	assert.Equal(t, DeviceConnected, events[0].Kind)
	assert.Equal(t, dev, events[0].Device)
	assert.Equal(t, []string{"js0"}, bus.subscribed, "connected devices subscribe immediately")

	assert.Equal(t, AxisMoved, events[1].Kind)
	assert.Equal(t, 1, events[1].Axis)
	assert.Equal(t, int16(-12345), events[1].Value)

	assert.Equal(t, ButtonPressed, events[2].Kind)
	assert.Equal(t, 0, events[2].Button)

	assert.Equal(t, DeviceDisconnected, events[3].Kind)
}

func TestSourceDropsButtonReleases(t *testing.T) {
	bus := newFakeBus()
	src := NewSource(nil, bus)

	bus.events <- joystick.Event{
		Kind: joystick.EventControl, ID: "js0",
		Control: joystick.ControlEvent{Kind: joystick.ControlButton, Index: 0, Value: 0},
	}

	events, _ := src.Poll()
	assert.Empty(t, events)
}

func TestSourceNeverBlocksWhenIdle(t *testing.T) {
	src := NewSource(nil, newFakeBus())

	events, held := src.Poll()
	assert.Empty(t, events)
	assert.Equal(t, Held{}, held)
}
