package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Game objects draw in logical coordinates; the canvas scales
// them to the actual terminal and centers the play area with offsets.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y*termWidth + x]

	logicalWidth  float64
	logicalHeight float64 // In sub-pixels
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets for centering the play area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas mapping logical coordinates onto the
// given terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]bool, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
	}
}

// Resize updates the canvas for new terminal dimensions, keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetLogicalSize changes the logical coordinate space, e.g. swapping from a
// landscape to a portrait play area. Terminal dimensions are unchanged.
func (c *Canvas) SetLogicalSize(logicalWidth, logicalHeight float64) {
	c.logicalWidth = logicalWidth
	c.logicalHeight = logicalHeight
	c.scaleX = float64(c.termWidth) / logicalWidth
	c.scaleY = float64(c.subPixelHeight) / logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based: the canvas starts at terminal cell (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// SetFloat sets a pixel at logical coordinates.
func (c *Canvas) SetFloat(x, y float64) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py)
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x1 := int(math.Round(x * c.scaleX))
	y1 := int(math.Round(y * c.scaleY))
	x2 := int(math.Round((x + w) * c.scaleX))
	y2 := int(math.Round((y + h) * c.scaleY))
	for py := y1; py < y2; py++ {
		for px := x1; px < x2; px++ {
			c.setPixel(px, py)
		}
	}
}

// Blit draws a sprite with its top-left corner at logical (x, y).
// Sprite cells are one logical unit each; '#' and '*' rows mark set pixels.
func (c *Canvas) Blit(x, y float64, sprite Sprite) {
	for row, line := range sprite {
		for col, ch := range line {
			if ch == ' ' {
				continue
			}
			c.FillRect(x+float64(col), y+float64(row), 1, 1)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network
// flow. 1400 bytes stays under typical MTU for smooth SSH transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 12)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := row*2+1 < c.subPixelHeight && c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue // Skip empty cells
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, ch)
		}
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// RenderBorder draws a box border around the play area when the terminal is
// larger than the render resolution.
func (c *Canvas) RenderBorder(w io.Writer) {
	if c.offsetCol < 1 && c.offsetRow < 1 {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	if c.offsetRow >= 1 {
		fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
		fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
	}
	if c.offsetCol >= 1 {
		for row := top + 1; row < bottom; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 { return c.logicalWidth }

// LogicalHeight returns the logical height in sub-pixels.
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based terminal cell,
// for placing text overlays next to canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}
