package object

import "math/rand"

// Starfield is the scrolling background, drawn on every screen.
type Starfield struct {
	stars []star
}

type star struct {
	x, y  float64
	speed float64
}

// NewStarfield scatters count stars across the screen.
func NewStarfield(count int, screen Screen) *Starfield {
	s := &Starfield{stars: make([]star, count)}
	for i := range s.stars {
		s.stars[i] = star{
			x:     rand.Float64() * float64(screen.Width),
			y:     rand.Float64() * float64(screen.Height),
			speed: 2 + rand.Float64()*6,
		}
	}
	return s
}

// Update scrolls stars downward, respawning them at the top.
func (s *Starfield) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	h := float64(ctx.Screen.Height)
	w := float64(ctx.Screen.Width)
	for i := range s.stars {
		s.stars[i].y += s.stars[i].speed * dt
		if s.stars[i].y > h {
			s.stars[i].y = 0
			s.stars[i].x = rand.Float64() * w
		}
		if s.stars[i].x > w {
			s.stars[i].x = rand.Float64() * w
		}
	}
	return false, nil
}

// Draw renders each star as a single pixel.
func (s *Starfield) Draw(ctx DrawContext) error {
	for _, st := range s.stars {
		ctx.Canvas.SetFloat(st.x, st.y)
	}
	return nil
}
