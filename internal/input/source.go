// Package input abstracts keyboard and joystick polling into ordered
// per-frame sequences of logical events plus held-key state.
package input

import (
	"time"

	"github.com/freshspray/invaders/internal/joystick"
)

// Source merges a keyboard and an optional joystick bus. All event delivery
// happens on the caller's goroutine via Poll, so downstream code never sees
// concurrent input.
type Source struct {
	kb  *Keyboard
	bus joystick.Bus

	now func() time.Time
}

// NewSource creates a source. bus may be nil (keyboard-only play).
func NewSource(kb *Keyboard, bus joystick.Bus) *Source {
	return &Source{kb: kb, bus: bus, now: time.Now}
}

// Poll returns the frame's ordered events and held-control state.
// Never blocks; with both backends gone it returns empty slices.
func (s *Source) Poll() ([]Event, Held) {
	now := s.now()

	var events []Event
	var held Held
	if s.kb != nil {
		events = s.kb.poll(now)
		held = s.kb.held(now)
	}
	if s.bus != nil {
		events = append(events, s.drainBus()...)
	}
	return events, held
}

// drainBus converts pending bus events into logical events. Connected devices
// are subscribed immediately so their control events flow; subscription
// failures are ignored here and the device simply stays silent.
func (s *Source) drainBus() []Event {
	var events []Event
	for {
		select {
		case ev, ok := <-s.bus.Events():
			if !ok {
				s.bus = nil
				return events
			}
			if logical, ok := s.translate(ev); ok {
				events = append(events, logical)
			}
		default:
			return events
		}
	}
}

func (s *Source) translate(ev joystick.Event) (Event, bool) {
	switch ev.Kind {
	case joystick.EventConnected:
		_ = s.bus.Subscribe(ev.ID)
		return Event{Kind: DeviceConnected, DeviceID: ev.ID, Device: ev.Device}, true
	case joystick.EventDisconnected:
		return Event{Kind: DeviceDisconnected, DeviceID: ev.ID}, true
	case joystick.EventControl:
		switch ev.Control.Kind {
		case joystick.ControlAxis:
			return Event{
				Kind:     AxisMoved,
				DeviceID: ev.ID,
				Axis:     ev.Control.Index,
				Value:    ev.Control.Value,
			}, true
		case joystick.ControlButton:
			if ev.Control.Value == 0 {
				return Event{}, false // Releases are not interesting.
			}
			return Event{
				Kind:     ButtonPressed,
				DeviceID: ev.ID,
				Button:   ev.Control.Index,
			}, true
		}
	}
	return Event{}, false
}
