package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool reuses Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64
	Drag        float64 // Velocity decay (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion scatters particles in a circular burst at (x, y).
func SpawnExplosion(x, y float64, count int, speed, lifetime float64, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)
		spawner.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
}

// Update moves the particle and expires it.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false, nil
}

// Draw renders the particle as a single pixel, skipping the faded tail end.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.SetFloat(p.X, p.Y)
	return nil
}
