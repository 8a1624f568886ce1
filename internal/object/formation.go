package object

// Formation tuning in logical units. The block steps sideways on a frame
// timer, drops and reverses at the edges, and accelerates as the level and
// the number of reversals grow.
const (
	formationStartX = 4.0
	formationStartY = 6.0
	formationGapX   = 9.0
	formationGapY   = 7.0

	formationEdgeMargin = 3.0
	formationDrop       = 4.5
	formationStepUnit   = 1.2

	baseRows = 3
	baseCols = 8
	maxRows  = 6
	maxCols  = 12
)

// Formation owns the odor block and its classic invaders movement.
type Formation struct {
	Odors []*Odor

	direction float64 // +1 right, -1 left
	speed     float64
	stepDelay int // Frames between steps
	stepTimer int
}

// NewFormation builds the wave for a level: more and faster clouds as the
// level climbs, capped so the block still fits the screen.
func NewFormation(level int, screen Screen) *Formation {
	if level < 1 {
		level = 1
	}
	rows := baseRows + (level-1)/2
	if rows > maxRows {
		rows = maxRows
	}
	cols := baseCols + (level - 1)
	if cols > maxCols {
		cols = maxCols
	}
	// Narrow screens (portrait) fit fewer columns.
	if fit := fitCols(screen); cols > fit {
		cols = fit
	}

	f := &Formation{
		direction: 1,
		speed:     1 + float64(level-1)*0.3,
		stepDelay: 30 - (level-1)*2,
	}
	if f.stepDelay < 10 {
		f.stepDelay = 10
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := formationStartX + float64(col)*formationGapX
			y := formationStartY + float64(row)*formationGapY
			odorType := row
			if odorType > 3 {
				odorType = 3
			}
			f.Odors = append(f.Odors, NewOdor(x, y, odorType))
		}
	}
	return f
}

// Alive returns the clouds not yet destroyed.
func (f *Formation) Alive() []*Odor {
	alive := f.Odors[:0]
	for _, o := range f.Odors {
		if !o.IsDestroyed() {
			alive = append(alive, o)
		}
	}
	f.Odors = alive
	return alive
}

// Step advances the formation one frame. Movement happens only when the step
// timer fires, like the original cadence-based invaders block.
func (f *Formation) Step(screen Screen) {
	f.stepTimer++
	if f.stepTimer < f.stepDelay {
		return
	}
	f.stepTimer = 0

	if f.hitEdge(screen) {
		f.direction = -f.direction
		for _, o := range f.Alive() {
			o.Y += formationDrop
		}
		// Each reversal tightens the screw.
		f.speed += 0.1
		if f.stepDelay > 5 {
			f.stepDelay--
		}
		return
	}

	dx := f.direction * f.speed * formationStepUnit
	for _, o := range f.Alive() {
		o.X += dx
	}
}

// fitCols returns how many columns fit between the edge margins.
func fitCols(screen Screen) int {
	usable := float64(screen.Width) - 2*formationStartX - OdorWidth
	if usable < 0 {
		return 1
	}
	return int(usable/formationGapX) + 1
}

func (f *Formation) hitEdge(screen Screen) bool {
	for _, o := range f.Alive() {
		if f.direction > 0 && o.X+OdorWidth >= float64(screen.Width)-formationEdgeMargin {
			return true
		}
		if f.direction < 0 && o.X <= formationEdgeMargin {
			return true
		}
	}
	return false
}

// LowestY returns the bottom edge of the deepest cloud, or 0 when empty.
func (f *Formation) LowestY() float64 {
	lowest := 0.0
	for _, o := range f.Alive() {
		if bottom := o.Y + OdorHeight; bottom > lowest {
			lowest = bottom
		}
	}
	return lowest
}

// Count returns the number of clouds still alive.
func (f *Formation) Count() int {
	return len(f.Alive())
}
