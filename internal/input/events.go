package input

import "github.com/freshspray/invaders/internal/joystick"

// Kind identifies a logical input event.
type Kind uint8

const (
	// Confirm is Enter: start game, confirm calibration.
	Confirm Kind = iota
	// CalibrateRequest is J: enter joystick calibration from the menu.
	CalibrateRequest
	// Cancel is Esc: back out of the current screen.
	Cancel
	// TogglePortrait is P: switch the display to portrait fullscreen.
	TogglePortrait
	// Quit ends the process: Q, Ctrl-C, or the input stream closing.
	Quit
	// DeviceConnected reports a joystick arriving. Device is populated.
	DeviceConnected
	// DeviceDisconnected reports a joystick leaving.
	DeviceDisconnected
	// AxisMoved carries a raw joystick axis sample.
	AxisMoved
	// ButtonPressed carries a joystick button press (not releases).
	ButtonPressed
)

// Event is one logical input event. Poll returns them in the order the
// backends produced them within the frame.
type Event struct {
	Kind     Kind
	DeviceID string
	Device   joystick.Device // DeviceConnected only
	Axis     int             // AxisMoved only
	Button   int             // ButtonPressed only
	Value    int16           // AxisMoved: raw axis sample
}

// Held is the per-frame held state for continuous controls (movement, fire).
// Discrete commands go through Event instead.
type Held struct {
	Left  bool
	Right bool
	Fire  bool
}
