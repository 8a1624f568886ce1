package loop

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/freshspray/invaders/internal/draw"
	"github.com/freshspray/invaders/internal/object"
)

// drawFrame clears the screen, draws the world onto the canvas, renders it
// and overlays the current screen's text.
func drawFrame(s *State, cw *draw.ChunkWriter, canvas *draw.Canvas) {
	draw.ClearScreen(cw)
	canvas.Clear()

	ctx := object.DrawContext{Canvas: canvas, Writer: cw}
	_ = s.Starfield.Draw(ctx)

	switch s.GameState {
	case GameStatePlaying, GameStateGameOver:
		if s.Formation != nil {
			for _, o := range s.Formation.Alive() {
				_ = o.Draw(ctx)
			}
		}
		if s.Player != nil && s.GameState == GameStatePlaying {
			_ = s.Player.Draw(ctx)
		}
		for _, obj := range s.Objects {
			_ = obj.Draw(ctx)
		}
	}

	canvas.Render(cw)
	canvas.RenderBorder(cw)

	switch s.GameState {
	case GameStateMenu:
		drawMenu(s, cw, canvas)
	case GameStateCalibrating:
		drawCalibrating(s, cw, canvas)
	case GameStatePlaying:
		drawPlayingHUD(s, cw, canvas)
	case GameStateGameOver:
		drawGameOver(s, cw, canvas)
	}

	drawNotice(s, cw, canvas)
}

// centered writes text horizontally centered on the given canvas row.
func centered(cw *draw.ChunkWriter, canvas *draw.Canvas, row int, text string) {
	col := canvas.TerminalWidth()/2 - len(text)/2
	if col < 1 {
		col = 1
	}
	cw.WriteAt(col, row, text)
}

func drawMenu(s *State, cw *draw.ChunkWriter, canvas *draw.Canvas) {
	centerY := canvas.TerminalHeight() / 2

	centered(cw, canvas, centerY-6, "F R E S H   I N V A D E R S")
	centered(cw, canvas, centerY-4, "Defeat the bad odors!")

	centered(cw, canvas, centerY-1, "ENTER  start game")
	centered(cw, canvas, centerY, "J      calibrate joystick")
	centered(cw, canvas, centerY+1, "P      portrait fullscreen")
	centered(cw, canvas, centerY+2, "ESC    quit")
	centered(cw, canvas, centerY+4, "Move with ARROWS or A/D, spray with SPACE")

	centered(cw, canvas, centerY+6, joystickStatus(s))
}

// joystickStatus is the menu's one-line device summary.
func joystickStatus(s *State) string {
	dev, ok := s.Devices[s.ActiveDevice]
	if !ok {
		return "no joystick connected"
	}
	if _, calibrated := s.Profiles[dev.Model]; calibrated {
		return fmt.Sprintf("joystick: %s (calibrated)", dev.Model)
	}
	return fmt.Sprintf("joystick: %s (not calibrated)", dev.Model)
}

func drawCalibrating(s *State, cw *draw.ChunkWriter, canvas *draw.Canvas) {
	centerY := canvas.TerminalHeight() / 2

	centered(cw, canvas, centerY-5, "JOYSTICK CALIBRATION")
	if s.Session == nil {
		return
	}

	centered(cw, canvas, centerY-3, s.Session.Device().Model)
	centered(cw, canvas, centerY-1, "Move every stick and trigger through its full range.")

	done, total := s.Session.AxesExercised()
	centered(cw, canvas, centerY+1, fmt.Sprintf("Axes exercised: %d/%d", done, total))
	centered(cw, canvas, centerY+2, fmt.Sprintf("Buttons seen: %d", s.Session.ButtonsSeen()))

	if s.Session.Ready() {
		centered(cw, canvas, centerY+4, "Press ENTER to finish")
	} else {
		centered(cw, canvas, centerY+4, "ENTER finishes once all axes are exercised")
	}
	centered(cw, canvas, centerY+5, "ESC cancels")
}

func drawPlayingHUD(s *State, cw *draw.ChunkWriter, canvas *draw.Canvas) {
	scoreText := fmt.Sprintf("Level Score: %s/%s",
		humanize.Comma(int64(s.Tracker.Current())),
		humanize.Comma(int64(s.Tracker.Target())))
	cw.WriteAt(2, 1, scoreText)

	if combo := s.Tracker.Combo(); combo > 1 {
		cw.WriteAt(2, 2, fmt.Sprintf("COMBO x%d!", combo))
	}

	levelText := fmt.Sprintf("Level: %d", s.Level)
	centered(cw, canvas, 1, levelText)

	livesText := fmt.Sprintf("Lives: %d", s.Lives)
	cw.WriteAt(canvas.TerminalWidth()-len(livesText)-1, 1, livesText)
}

func drawGameOver(s *State, cw *draw.ChunkWriter, canvas *draw.Canvas) {
	centerY := canvas.TerminalHeight() / 2

	centered(cw, canvas, centerY-2, "G A M E   O V E R")
	centered(cw, canvas, centerY, fmt.Sprintf("Final Score: %s",
		humanize.Comma(int64(s.Tracker.Current()))))
	centered(cw, canvas, centerY+1, fmt.Sprintf("Level reached: %d", s.Level))
	centered(cw, canvas, centerY+3, "ENTER play again - ESC menu")
}

func drawNotice(s *State, cw *draw.ChunkWriter, canvas *draw.Canvas) {
	if s.Notice() == "" {
		return
	}
	centered(cw, canvas, canvas.TerminalHeight()-1, s.Notice())
}
