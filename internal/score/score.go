// Package score tracks the running level score against a fixed target.
package score

// LevelTarget is the score needed to finish a level.
const LevelTarget = 5000

const (
	// comboWindow is how many frames a kill keeps the combo alive.
	comboWindow = 60
	// maxMultiplier caps the combo score multiplier.
	maxMultiplier = 5
)

// Tracker accumulates points within a level. The score never decreases
// except through Reset; completion is a pure function of the current value.
type Tracker struct {
	current int
	target  int

	combo       int
	comboFrames int
}

// NewTracker creates a tracker. A non-positive target falls back to LevelTarget.
func NewTracker(target int) *Tracker {
	if target <= 0 {
		target = LevelTarget
	}
	return &Tracker{target: target}
}

// Reset zeroes the score and combo for a fresh level.
func (t *Tracker) Reset() {
	t.current = 0
	t.combo = 0
	t.comboFrames = 0
}

// Add credits points. Negative values are ignored.
func (t *Tracker) Add(points int) {
	if points <= 0 {
		return
	}
	t.current += points
}

// AddKill credits a kill worth base points, applying and extending the combo
// multiplier. Returns the points actually awarded.
func (t *Tracker) AddKill(base int) int {
	t.combo++
	t.comboFrames = comboWindow

	mult := t.combo
	if mult > maxMultiplier {
		mult = maxMultiplier
	}
	awarded := base * mult
	t.Add(awarded)
	return awarded
}

// TickCombo advances the combo timer one frame, expiring stale combos.
func (t *Tracker) TickCombo() {
	if t.comboFrames > 0 {
		t.comboFrames--
		if t.comboFrames == 0 {
			t.combo = 0
		}
	}
}

// BreakCombo ends the combo immediately (e.g. the player got hit).
func (t *Tracker) BreakCombo() {
	t.combo = 0
	t.comboFrames = 0
}

// Combo returns the current kill streak.
func (t *Tracker) Combo() int { return t.combo }

// Current returns the accumulated score for this level.
func (t *Tracker) Current() int { return t.current }

// Target returns the level's score target.
func (t *Tracker) Target() int { return t.target }

// LevelComplete reports whether the score has reached the target.
func (t *Tracker) LevelComplete() bool {
	return t.current >= t.target
}
