package object

import (
	"github.com/freshspray/invaders/internal/draw"
)

// Odor cloud dimensions in logical units.
const (
	OdorWidth  = 6.0
	OdorHeight = 4.0
)

// odorSprites has one two-frame animation per odor type. Higher types are
// denser clouds worth more points.
var odorSprites = [4][2]draw.Sprite{
	{
		{" #  # ", "  ##  ", " #### ", "  ##  "},
		{"  ##  ", " #  # ", "  ##  ", " #### "},
	},
	{
		{" #### ", "# ## #", " #### ", " #  # "},
		{" #### ", "## ###", " #### ", "  ##  "},
	},
	{
		{"######", "# ## #", "######", " #  # "},
		{"######", "## # #", "######", "  ##  "},
	},
	{
		{"######", "######", "# ## #", "######"},
		{"######", "######", "## ###", "######"},
	},
}

// Odor is one enemy cloud. Movement is driven by its Formation; the odor
// itself only animates.
type Odor struct {
	X, Y float64 // Top-left corner
	Type int     // 0..3, higher types score more

	animFrame float64
	destroyed bool
}

// NewOdor creates a cloud of the given type at (x, y).
func NewOdor(x, y float64, odorType int) *Odor {
	if odorType < 0 {
		odorType = 0
	}
	if odorType >= len(odorSprites) {
		odorType = len(odorSprites) - 1
	}
	return &Odor{X: x, Y: y, Type: odorType}
}

// Points returns the base score for destroying this cloud.
func (o *Odor) Points() int {
	return (o.Type + 1) * 10
}

// Bounds returns the cloud's bounding box.
func (o *Odor) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, W: OdorWidth, H: OdorHeight}
}

// MarkDestroyed marks the cloud for removal.
func (o *Odor) MarkDestroyed() { o.destroyed = true }

// IsDestroyed reports whether the cloud has been destroyed.
func (o *Odor) IsDestroyed() bool { return o.destroyed }

// Update only advances the animation; the formation moves the cloud.
func (o *Odor) Update(ctx UpdateContext) (bool, error) {
	if o.destroyed {
		return true, nil
	}
	o.animFrame += 2 * ctx.Delta.Seconds()
	return false, nil
}

// Draw renders the current animation frame.
func (o *Odor) Draw(ctx DrawContext) error {
	frame := int(o.animFrame) % 2
	ctx.Canvas.Blit(o.X, o.Y, odorSprites[o.Type][frame])
	return nil
}
