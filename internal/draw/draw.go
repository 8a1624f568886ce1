// Package draw renders the game to a terminal using half-block characters.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Screen holds terminal dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnterAltScreen switches to the terminal's alternate screen buffer.
// Used for the fullscreen presentation so the scrollback is preserved.
func EnterAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?1049h")
}

// LeaveAltScreen returns to the normal screen buffer.
func LeaveAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?1049l")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSize returns the terminal dimensions as a Screen.
func TerminalSize(sizeFunc TermSizeFunc) (Screen, error) {
	width, height, err := sizeFunc()
	if err != nil {
		return Screen{}, err
	}
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}, nil
}
