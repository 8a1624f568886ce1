// Package object contains the game entities: the spray can, its spray
// bursts, the odor clouds and their formation, and visual effects.
package object

import (
	"io"
	"time"

	"github.com/freshspray/invaders/internal/draw"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Control is the per-frame movement/fire input resolved from keyboard and
// calibrated joystick state.
type Control struct {
	Left  bool
	Right bool
	AxisX float64 // Calibrated joystick X in [-1, 1]; 0 when absent
	Fire  bool
}

// Screen represents the logical play area.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen builds a Screen with derived centers.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Control Control
	Screen  Screen
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text overlays)
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object one frame. Returns true to remove it.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto the canvas.
	Draw(ctx DrawContext) error
}

// Rect is an axis-aligned bounding box in logical coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Collidable is implemented by objects with a bounding box.
type Collidable interface {
	Bounds() Rect
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
