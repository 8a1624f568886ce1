package loop

import (
	"fmt"

	"github.com/freshspray/invaders/internal/calib"
	"github.com/freshspray/invaders/internal/input"
	"github.com/freshspray/invaders/internal/object"
)

// HandleEvents applies one frame's logical events to the state machine, in
// order. Called only from the frame loop goroutine.
func HandleEvents(s *State, events []input.Event) {
	for _, ev := range events {
		handleEvent(s, ev)
	}
}

func handleEvent(s *State, ev input.Event) {
	// Events that behave the same in every non-terminal state.
	switch ev.Kind {
	case input.Quit:
		exit(s)
		return
	case input.TogglePortrait:
		togglePortrait(s)
		return
	case input.DeviceConnected:
		s.Devices[ev.DeviceID] = ev.Device
		if s.ActiveDevice == "" {
			s.ActiveDevice = ev.DeviceID
		}
		s.SetNotice("joystick connected: " + ev.Device.Model)
		return
	case input.DeviceDisconnected:
		// The session sees the unplug first so mid-calibration aborts.
		if s.GameState == GameStateCalibrating && s.Session != nil {
			feedSession(s, ev)
		}
		delete(s.Devices, ev.DeviceID)
		if s.ActiveDevice == ev.DeviceID {
			s.ActiveDevice = ""
			for id := range s.Devices {
				s.ActiveDevice = id
				break
			}
			clear(s.axisValues)
		}
		return
	}

	switch s.GameState {
	case GameStateMenu:
		handleMenuEvent(s, ev)
	case GameStateCalibrating:
		feedSession(s, ev)
	case GameStatePlaying:
		handlePlayingEvent(s, ev)
	case GameStateGameOver:
		handleGameOverEvent(s, ev)
	}
}

func handleMenuEvent(s *State, ev input.Event) {
	switch ev.Kind {
	case input.Confirm:
		startRun(s)
	case input.CalibrateRequest:
		dev, ok := s.Devices[s.ActiveDevice]
		if !ok {
			// No joystick: stay on the menu.
			s.SetNotice("no joystick connected")
			return
		}
		session, err := calib.Begin(dev)
		if err != nil {
			s.SetNotice("no joystick connected")
			return
		}
		s.Session = session
		s.GameState = GameStateCalibrating
	case input.Cancel:
		exit(s)
	}
}

// feedSession routes an event into the calibration session and handles its
// terminal outcomes.
func feedSession(s *State, ev input.Event) {
	if s.Session == nil {
		s.GameState = GameStateMenu
		return
	}
	res := s.Session.Feed(ev)
	switch res.Status {
	case calib.Completed:
		s.Profiles[res.Profile.Model] = res.Profile
		if s.Store != nil {
			if err := s.Store.Save(res.Profile); err != nil {
				s.SetNotice("calibrated (could not save profile)")
			} else {
				s.SetNotice("calibration saved")
			}
		} else {
			s.SetNotice("calibrated")
		}
		s.Session = nil
		s.GameState = GameStateMenu
	case calib.Aborted:
		s.Session = nil
		s.GameState = GameStateMenu
	}
}

func handlePlayingEvent(s *State, ev input.Event) {
	switch ev.Kind {
	case input.Cancel:
		backToMenu(s)
	case input.AxisMoved:
		if ev.DeviceID == s.ActiveDevice {
			s.axisValues[ev.Axis] = ev.Value
		}
	case input.ButtonPressed:
		if ev.DeviceID == s.ActiveDevice {
			s.firePressed = true
		}
	}
}

func handleGameOverEvent(s *State, ev input.Event) {
	switch ev.Kind {
	case input.Confirm:
		startRun(s)
	case input.Cancel:
		backToMenu(s)
	}
}

// startRun begins a fresh run at level 1 with a zeroed score.
func startRun(s *State) {
	s.Level = 1
	s.Lives = initialLives
	s.Tracker.Reset()
	s.Player = object.NewPlayer(s.Screen)
	s.Formation = object.NewFormation(s.Level, s.Screen)
	s.Objects = s.Objects[:0]
	s.toSpawn = s.toSpawn[:0]
	s.firePressed = false
	s.GameState = GameStatePlaying
}

// backToMenu discards the world and returns to the menu.
func backToMenu(s *State) {
	s.Player = nil
	s.Formation = nil
	s.Objects = s.Objects[:0]
	s.toSpawn = s.toSpawn[:0]
	s.GameState = GameStateMenu
}

// exit moves to the terminal state; the frame loop stops after this frame.
func exit(s *State) {
	s.GameState = GameStateExiting
	s.Running = false
}

// togglePortrait switches the display to portrait fullscreen. On backend
// refusal the mode and logical screen are unchanged.
func togglePortrait(s *State) {
	if s.Display == nil {
		return
	}
	if err := s.Display.TogglePortraitFullscreen(); err != nil {
		s.SetNotice("portrait fullscreen not supported here")
		return
	}
	if s.Screen != portraitScreen {
		s.Screen = portraitScreen
		s.Starfield = object.NewStarfield(starCount, s.Screen)
		if s.Player != nil {
			s.Player.Reposition(s.Screen)
		}
		s.SetNotice(fmt.Sprintf("display: %s %s",
			s.Display.Mode().Orientation, s.Display.Mode().Presentation))
	}
}
