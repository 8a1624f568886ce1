package object

// SpraySpeed is how fast spray bursts travel upward, in units per second.
const SpraySpeed = 60.0

// Spray is a burst fired by the player, travelling up the screen.
type Spray struct {
	X, Y float64 // Bottom-center of the burst

	destroyed bool
}

// NewSpray creates a burst at the player's nozzle.
func NewSpray(x, y float64) *Spray {
	return &Spray{X: x, Y: y}
}

// Bounds returns the burst's bounding box.
func (s *Spray) Bounds() Rect {
	return Rect{X: s.X - 0.5, Y: s.Y - 3, W: 1, H: 3}
}

// MarkDestroyed marks the burst for removal.
func (s *Spray) MarkDestroyed() { s.destroyed = true }

// IsDestroyed reports whether the burst has been consumed.
func (s *Spray) IsDestroyed() bool { return s.destroyed }

// Update moves the burst upward; it is removed above the screen or when spent.
func (s *Spray) Update(ctx UpdateContext) (bool, error) {
	if s.destroyed {
		return true, nil
	}
	s.Y -= SpraySpeed * ctx.Delta.Seconds()
	return s.Y < -3, nil
}

// Draw renders the burst as a short fading trail.
func (s *Spray) Draw(ctx DrawContext) error {
	ctx.Canvas.SetFloat(s.X, s.Y)
	ctx.Canvas.SetFloat(s.X, s.Y-1)
	ctx.Canvas.SetFloat(s.X, s.Y-2)
	return nil
}
