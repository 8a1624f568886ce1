// Package joystick provides access to connected joystick devices and their
// axis/button events. On Linux it reads the kernel joystick interface
// (/dev/input/js*) directly and watches /dev/input for hot-plug.
package joystick

import "errors"

var (
	// ErrOSNotSupported is returned by New on platforms without a joystick backend.
	ErrOSNotSupported = errors.New("joystick: os not supported")
	// ErrDeviceNotFound is returned when subscribing to an unknown device ID.
	ErrDeviceNotFound = errors.New("joystick: device not found")
	// ErrAlreadySubscribed is returned when a device is subscribed twice.
	ErrAlreadySubscribed = errors.New("joystick: device already subscribed")
	// ErrNotSubscribed is returned when unsubscribing a device that is not subscribed.
	ErrNotSubscribed = errors.New("joystick: device not subscribed")
)

// Device describes a connected joystick.
type Device struct {
	ID        string // Device node name, e.g. "js0"
	Model     string // Kernel-reported device name
	Axes      int
	Buttons   int
	AxisMap   []int // Kernel axis codes by axis index
	ButtonMap []int // Kernel button codes by button index
}

// EventKind discriminates bus events.
type EventKind uint8

const (
	EventConnected EventKind = iota
	EventDisconnected
	EventControl
)

// ControlKind discriminates control events. Values match the kernel
// joystick interface event types.
type ControlKind uint8

const (
	ControlButton ControlKind = 0x01
	ControlAxis   ControlKind = 0x02

	// controlInit is OR-ed into the kind for the synthetic events the kernel
	// emits on open to report initial state.
	controlInit ControlKind = 0x80
)

// ControlEvent is a single axis movement or button change.
type ControlEvent struct {
	Timestamp uint32 // Kernel event time in ms
	Kind      ControlKind
	Index     int
	Value     int16
}

// Event is delivered on the bus event channel.
type Event struct {
	Kind    EventKind
	ID      string
	Device  Device       // Populated for EventConnected
	Control ControlEvent // Populated for EventControl
}

// Bus watches for joystick devices and delivers their events.
// Events and Errors are delivered from background goroutines; consumers are
// expected to drain them non-blocking (the frame loop drains once per frame).
type Bus interface {
	// Devices returns the currently connected devices.
	Devices() []Device
	// Subscribe starts delivering control events for the given device.
	Subscribe(id string) error
	// Unsubscribe stops delivering control events for the given device.
	Unsubscribe(id string) error
	// Events returns the event channel. Closed by Close.
	Events() <-chan Event
	// Errors returns the channel for background errors.
	Errors() <-chan error
	// Close stops all watchers and readers and closes the event channel.
	Close()
}

// New opens the platform joystick bus. Returns ErrOSNotSupported where no
// backend exists; callers should treat that as "keyboard only", not fatal.
func New() (Bus, error) {
	return newBus()
}
