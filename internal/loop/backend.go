package loop

import (
	"io"

	"github.com/freshspray/invaders/internal/display"
	"github.com/freshspray/invaders/internal/draw"
)

// Smallest terminal the portrait play area is usable on.
const (
	minPortraitCols = 30
	minPortraitRows = 20
)

// terminalReconfigurer applies portrait fullscreen on a terminal by switching
// to the alternate screen buffer. Terminals too small for the portrait play
// area are refused, which leaves the current mode in place.
type terminalReconfigurer struct {
	termSize draw.TermSizeFunc
	writer   io.Writer
}

func (t *terminalReconfigurer) SetPortraitFullscreen() error {
	w, h, err := t.termSize()
	if err != nil {
		return display.ErrModeUnsupported
	}
	if w < minPortraitCols || h < minPortraitRows {
		return display.ErrModeUnsupported
	}
	draw.EnterAltScreen(t.writer)
	draw.ClearScreen(t.writer)
	return nil
}
