// Package calib walks a connected joystick through capturing its usable axis
// ranges and button mappings.
package calib

import (
	"errors"

	"github.com/google/uuid"

	"github.com/freshspray/invaders/internal/input"
	"github.com/freshspray/invaders/internal/joystick"
)

// ErrNoDevice is returned by Begin when no device is available.
var ErrNoDevice = errors.New("calib: no joystick device")

// exercisedSpan is the minimum recorded max-min spread for an axis to count
// as exercised: half the nominal int16 travel. Real sticks report close to
// the full ±32767 range; this threshold tolerates drift and soft stops.
const exercisedSpan = 32767

// Status is the state of a calibration session after feeding an event.
type Status uint8

const (
	InProgress Status = iota
	Completed
	Aborted
)

// Result is the outcome of feeding one event to a session.
// Profile is populated only when Status == Completed.
type Result struct {
	Status  Status
	Profile Profile
}

// Session captures axis ranges and button presses for one device.
// Feeding the same event sequence always yields the same results.
type Session struct {
	ID     uuid.UUID
	device joystick.Device

	axes    []axisCapture
	buttons map[int]bool
	done    bool
}

type axisCapture struct {
	min, max int16
	touched  bool
}

// Begin starts a calibration session for dev. All axes start unset.
func Begin(dev joystick.Device) (*Session, error) {
	if dev.ID == "" {
		return nil, ErrNoDevice
	}
	return &Session{
		ID:      uuid.New(),
		device:  dev,
		axes:    make([]axisCapture, dev.Axes),
		buttons: make(map[int]bool),
	}, nil
}

// Device returns the device being calibrated.
func (s *Session) Device() joystick.Device { return s.device }

// Feed advances the session with one input event. Events for other devices
// are ignored. After a terminal result the session stays terminal.
func (s *Session) Feed(ev input.Event) Result {
	if s.done {
		return Result{Status: Aborted}
	}

	switch ev.Kind {
	case input.Cancel:
		s.done = true
		return Result{Status: Aborted}

	case input.DeviceDisconnected:
		if ev.DeviceID == s.device.ID {
			s.done = true
			return Result{Status: Aborted}
		}

	case input.AxisMoved:
		if ev.DeviceID == s.device.ID && ev.Axis >= 0 && ev.Axis < len(s.axes) {
			s.widen(ev.Axis, ev.Value)
		}

	case input.ButtonPressed:
		if ev.DeviceID == s.device.ID {
			s.buttons[ev.Button] = true
		}

	case input.Confirm:
		if s.axesExercised() {
			s.done = true
			return Result{Status: Completed, Profile: s.profile()}
		}
	}

	return Result{Status: InProgress}
}

// AxesExercised reports how many axes have been moved through enough range,
// for the calibration screen's progress readout.
func (s *Session) AxesExercised() (done, total int) {
	for _, a := range s.axes {
		if exercised(a) {
			done++
		}
	}
	return done, len(s.axes)
}

// Ready reports whether a Confirm would complete the session.
func (s *Session) Ready() bool { return s.axesExercised() }

// ButtonsSeen reports how many distinct buttons have been pressed.
func (s *Session) ButtonsSeen() int { return len(s.buttons) }

func (s *Session) widen(axis int, value int16) {
	a := &s.axes[axis]
	if !a.touched {
		a.min, a.max = value, value
		a.touched = true
		return
	}
	if value < a.min {
		a.min = value
	}
	if value > a.max {
		a.max = value
	}
}

func (s *Session) axesExercised() bool {
	if len(s.axes) == 0 {
		return false
	}
	for _, a := range s.axes {
		if !exercised(a) {
			return false
		}
	}
	return true
}

func exercised(a axisCapture) bool {
	return a.touched && int(a.max)-int(a.min) >= exercisedSpan
}

func (s *Session) profile() Profile {
	p := Profile{
		Model:   s.device.Model,
		Axes:    make([]AxisRange, len(s.axes)),
		Buttons: make([]int, 0, len(s.buttons)),
	}
	for i, a := range s.axes {
		p.Axes[i] = AxisRange{Min: a.min, Max: a.max}
	}
	for b := range s.buttons {
		p.Buttons = append(p.Buttons, b)
	}
	sortInts(p.Buttons)
	return p
}

func sortInts(v []int) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}
