// Package loop runs the frame loop and the application state machine:
// menu, joystick calibration, gameplay, game over.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/freshspray/invaders/internal/calib"
	"github.com/freshspray/invaders/internal/display"
	"github.com/freshspray/invaders/internal/draw"
	"github.com/freshspray/invaders/internal/input"
	"github.com/freshspray/invaders/internal/joystick"
	"github.com/freshspray/invaders/internal/object"
)

const (
	targetFPS       = 60
	targetFrameTime = time.Second / targetFPS
)

// Logical play areas. Heights are in sub-pixels (two per terminal row).
// Landscape is the default; the portrait toggle swaps to the tall one.
var (
	landscapeScreen = object.NewScreen(120, 80)
	portraitScreen  = object.NewScreen(80, 120)
)

// Options configures a Run. Zero values select sensible defaults.
type Options struct {
	// TermSize reports the output terminal's dimensions each frame.
	// Nil uses the local stdout size.
	TermSize draw.TermSizeFunc

	// Bus delivers joystick events. Nil means keyboard-only play.
	Bus joystick.Bus

	// ProfilePath is where calibration profiles are persisted.
	// Empty disables persistence; calibrations last for the session.
	ProfilePath string
}

// Run drives the game on the given terminal until the player quits or the
// input stream closes. It reads raw bytes from r and writes ANSI output to w.
// Everything runs on the calling goroutine at a fixed frame rate.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	sizeFn := opts.TermSize
	if sizeFn == nil {
		sizeFn = draw.DefaultTermSizeFunc
	}

	s := NewState(landscapeScreen)
	if opts.ProfilePath != "" {
		s.Store = calib.NewStore(opts.ProfilePath)
		if profiles, err := s.Store.Load(); err == nil {
			s.Profiles = profiles
		}
	}

	kb := input.NewKeyboard(r)
	src := input.NewSource(kb, opts.Bus)

	ts, err := draw.TerminalSize(sizeFn)
	if err != nil {
		return err
	}
	canvas := draw.NewScaledCanvas(ts.Width, ts.Height,
		float64(s.Screen.Width), float64(s.Screen.Height))
	cw := draw.NewChunkWriter(w, 0, 0)

	s.Display = display.NewController(&terminalReconfigurer{
		termSize: sizeFn,
		writer:   cw,
	})

	draw.HideCursor(cw)
	draw.ClearScreen(cw)
	if err := cw.Flush(); err != nil {
		return err
	}

	last := time.Now()
	for s.Running {
		frameStart := time.Now()
		s.Delta = frameStart.Sub(last)
		last = frameStart

		events, held := src.Poll()
		HandleEvents(s, events)
		if !s.Running {
			break
		}

		layoutCanvas(canvas, cw, s, sizeFn)

		switch s.GameState {
		case GameStatePlaying:
			if err := updatePlaying(s, held); err != nil {
				return err
			}
		case GameStateGameOver:
			updateGameOver(s)
		default:
			updateAmbient(s)
		}
		s.TickNotice()

		drawFrame(s, cw, canvas)
		if err := cw.Flush(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	cw.SetOffset(0, 0)
	if s.Display.Mode() == display.PortraitFullscreen {
		draw.LeaveAltScreen(cw)
	}
	draw.ClearScreen(cw)
	draw.ShowCursor(cw)
	return cw.Flush()
}

// layoutCanvas fits the render area to the current terminal, keeping the
// logical aspect of the active play area and centering it. A failed size
// query keeps the previous layout.
func layoutCanvas(canvas *draw.Canvas, cw *draw.ChunkWriter, s *State, sizeFn draw.TermSizeFunc) {
	ts, err := draw.TerminalSize(sizeFn)
	if err != nil {
		return
	}

	w := ts.Width - 2
	h := ts.Height - 2
	if w > s.Screen.Width {
		w = s.Screen.Width
	}
	if h > s.Screen.Height/2 {
		h = s.Screen.Height / 2
	}
	if w < 20 {
		w = 20
	}
	if h < 10 {
		h = 10
	}

	canvas.Resize(w, h)
	canvas.SetLogicalSize(float64(s.Screen.Width), float64(s.Screen.Height))

	offCol := (ts.Width - w) / 2
	offRow := (ts.Height - h) / 2
	if offCol < 0 {
		offCol = 0
	}
	if offRow < 0 {
		offRow = 0
	}
	canvas.SetOffset(offCol, offRow)
	cw.SetOffset(offCol, offRow)
}
