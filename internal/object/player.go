package object

import (
	"github.com/freshspray/invaders/internal/draw"
)

// Player dimensions and tuning in logical units.
const (
	PlayerWidth  = 12.0
	PlayerHeight = 5.0
	PlayerSpeed  = 45.0 // Units per second
	FireInterval = 0.25 // Seconds between shots

	// axisDeadzone ignores small stick drift on calibrated joysticks.
	axisDeadzone = 0.2
)

var playerSprite = draw.Sprite{
	"     ##     ",
	"  ########  ",
	" ########## ",
	" ########## ",
	" ########## ",
}

// Player is the spray can at the bottom of the screen.
type Player struct {
	X, Y float64 // Top-left corner

	fireCooldown float64
}

// NewPlayer creates the player centered near the bottom of the screen.
func NewPlayer(screen Screen) *Player {
	return &Player{
		X: float64(screen.CenterX) - PlayerWidth/2,
		Y: float64(screen.Height) - PlayerHeight - 2,
	}
}

// Bounds returns the player's bounding box.
func (p *Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: PlayerWidth, H: PlayerHeight}
}

// Reposition clamps the player back inside a changed screen (portrait toggle).
func (p *Player) Reposition(screen Screen) {
	p.Y = float64(screen.Height) - PlayerHeight - 2
	p.clampX(screen)
}

// Update moves the player from keyboard and joystick input and fires sprays.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	if ctx.Control.Left {
		p.X -= PlayerSpeed * dt
	}
	if ctx.Control.Right {
		p.X += PlayerSpeed * dt
	}
	if ax := ctx.Control.AxisX; ax > axisDeadzone || ax < -axisDeadzone {
		p.X += ax * PlayerSpeed * dt
	}
	p.clampX(ctx.Screen)

	p.fireCooldown -= dt
	if ctx.Control.Fire && p.fireCooldown <= 0 && ctx.Spawner != nil {
		p.fireCooldown = FireInterval
		ctx.Spawner.Spawn(NewSpray(p.X+PlayerWidth/2, p.Y))
	}

	return false, nil
}

func (p *Player) clampX(screen Screen) {
	if p.X < 0 {
		p.X = 0
	}
	if max := float64(screen.Width) - PlayerWidth; p.X > max {
		p.X = max
	}
}

// Draw renders the spray can sprite.
func (p *Player) Draw(ctx DrawContext) error {
	ctx.Canvas.Blit(p.X, p.Y, playerSprite)
	return nil
}
