package loop

import (
	"time"

	"github.com/freshspray/invaders/internal/calib"
	"github.com/freshspray/invaders/internal/display"
	"github.com/freshspray/invaders/internal/joystick"
	"github.com/freshspray/invaders/internal/object"
	"github.com/freshspray/invaders/internal/score"
)

// GameState is the current application phase.
type GameState int

const (
	GameStateMenu        GameState = iota // Main menu
	GameStateCalibrating                  // Joystick calibration sub-flow
	GameStatePlaying                      // Active gameplay
	GameStateGameOver                     // Run ended, show restart prompt
	GameStateExiting                      // Terminal; the loop exits
)

const initialLives = 3

// starCount is how many background stars to scatter.
const starCount = 60

// noticeFrames is how long a transient HUD notice stays visible (~2s at 60fps).
const noticeFrames = 120

// State holds all game state. It is owned by the frame loop goroutine;
// nothing mutates it concurrently.
type State struct {
	GameState GameState
	Running   bool
	Screen    object.Screen // Logical play area (swaps on portrait toggle)
	Delta     time.Duration

	// Score and progression. Tracker data is only meaningful while Playing.
	Tracker *score.Tracker
	Level   int
	Lives   int

	// Joystick devices and calibration.
	Devices      map[string]joystick.Device
	ActiveDevice string // Device used for play and calibration
	Profiles     map[string]calib.Profile
	Session      *calib.Session // Non-nil only while Calibrating
	Store        *calib.Store   // Nil disables profile persistence

	Display *display.Controller

	// World, present only while Playing or GameOver (frozen remains).
	Player    *object.Player
	Formation *object.Formation
	Objects   []object.Object // Sprays and particles
	toSpawn   []object.Object
	Starfield *object.Starfield

	// Per-frame control plumbing.
	axisValues  map[int]int16
	firePressed bool

	notice     string
	noticeLeft int
}

// NewState creates the initial state: menu, landscape, no devices.
func NewState(screen object.Screen) *State {
	return &State{
		GameState:  GameStateMenu,
		Running:    true,
		Screen:     screen,
		Tracker:    score.NewTracker(score.LevelTarget),
		Lives:      initialLives,
		Level:      1,
		Devices:    map[string]joystick.Device{},
		Profiles:   map[string]calib.Profile{},
		axisValues: map[int]int16{},
		Starfield:  object.NewStarfield(starCount, screen),
	}
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner.
func (s *State) Spawn(obj object.Object) {
	s.toSpawn = append(s.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (s *State) FlushSpawned() {
	s.Objects = append(s.Objects, s.toSpawn...)
	s.toSpawn = s.toSpawn[:0]
}

// ActiveProfile returns the calibration profile for the active device, if any.
func (s *State) ActiveProfile() (calib.Profile, bool) {
	dev, ok := s.Devices[s.ActiveDevice]
	if !ok {
		return calib.Profile{}, false
	}
	p, ok := s.Profiles[dev.Model]
	return p, ok
}

// JoystickPresent reports whether a device is connected.
func (s *State) JoystickPresent() bool {
	return s.ActiveDevice != ""
}

// SetNotice shows a transient one-line message on the current screen.
func (s *State) SetNotice(msg string) {
	s.notice = msg
	s.noticeLeft = noticeFrames
}

// TickNotice ages the transient notice one frame.
func (s *State) TickNotice() {
	if s.noticeLeft > 0 {
		s.noticeLeft--
		if s.noticeLeft == 0 {
			s.notice = ""
		}
	}
}

// Notice returns the current transient message, or "".
func (s *State) Notice() string { return s.notice }
