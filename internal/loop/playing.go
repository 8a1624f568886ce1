package loop

import (
	"fmt"

	"github.com/freshspray/invaders/internal/calib"
	"github.com/freshspray/invaders/internal/input"
	"github.com/freshspray/invaders/internal/object"
)

// waveBonus is the score credited per level when a whole wave is cleared.
const waveBonus = 100

// resolveControl merges held keyboard state with the calibrated joystick.
// An uncalibrated joystick contributes no axis movement (calibrate first);
// its buttons still fire.
func resolveControl(s *State, held input.Held) object.Control {
	c := object.Control{
		Left:  held.Left,
		Right: held.Right,
		Fire:  held.Fire || s.firePressed,
	}
	s.firePressed = false
	if profile, ok := s.ActiveProfile(); ok {
		c.AxisX = calib.ApplyDeadzone(profile.NormalizeAxis(0, s.axisValues[0]), 0.2)
	}
	return c
}

// updatePlaying advances one gameplay frame: objects, formation movement,
// collisions, lives, wave refills and the level-complete check.
func updatePlaying(s *State, held input.Held) error {
	ctx := object.UpdateContext{
		Delta:   s.Delta,
		Control: resolveControl(s, held),
		Screen:  s.Screen,
		Spawner: s,
	}

	if _, err := s.Starfield.Update(ctx); err != nil {
		return err
	}
	if _, err := s.Player.Update(ctx); err != nil {
		return err
	}

	if err := updateObjects(s, ctx); err != nil {
		return err
	}
	for _, o := range s.Formation.Alive() {
		if _, err := o.Update(ctx); err != nil {
			return err
		}
	}
	s.Formation.Step(s.Screen)

	checkCollisions(s)
	s.FlushSpawned()
	s.Tracker.TickCombo()

	// The wave wins by reaching the player's row.
	if s.Formation.LowestY() >= s.Player.Bounds().Y {
		s.GameState = GameStateGameOver
		return nil
	}
	if s.Lives <= 0 {
		s.GameState = GameStateGameOver
		return nil
	}

	// A cleared wave refills within the same level, with a bonus.
	if s.Formation.Count() == 0 {
		s.Tracker.Add(waveBonus * s.Level)
		s.Formation = object.NewFormation(s.Level, s.Screen)
	}

	// Reaching the target advances to the next, harder level.
	if s.Tracker.LevelComplete() {
		s.Level++
		s.Tracker.Reset()
		s.Formation = object.NewFormation(s.Level, s.Screen)
		s.SetNotice(fmt.Sprintf("LEVEL %d", s.Level))
	}
	return nil
}

// updateObjects updates sprays and particles, dropping the expired ones.
func updateObjects(s *State, ctx object.UpdateContext) error {
	kept := s.Objects[:0] // Reuse backing array
	for _, obj := range s.Objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	s.Objects = kept
	return nil
}

// checkCollisions handles spray-odor hits and odors reaching the player.
func checkCollisions(s *State) {
	odors := s.Formation.Alive()

	for _, obj := range s.Objects {
		spray, ok := obj.(*object.Spray)
		if !ok || spray.IsDestroyed() {
			continue
		}
		for _, o := range odors {
			if o.IsDestroyed() {
				continue
			}
			if spray.Bounds().Overlaps(o.Bounds()) {
				spray.MarkDestroyed()
				o.MarkDestroyed()
				s.Tracker.AddKill(o.Points())
				b := o.Bounds()
				object.SpawnExplosion(b.X+b.W/2, b.Y+b.H/2, 10, 20.0, 0.8, s)
				break
			}
		}
	}

	pb := s.Player.Bounds()
	for _, o := range odors {
		if o.IsDestroyed() {
			continue
		}
		if o.Bounds().Overlaps(pb) {
			o.MarkDestroyed()
			s.Lives--
			s.Tracker.BreakCombo()
			object.SpawnExplosion(pb.X+pb.W/2, pb.Y+pb.H/2, 15, 25.0, 1.0, s)
		}
	}
}

// updateAmbient keeps the starfield moving on non-gameplay screens.
func updateAmbient(s *State) {
	ctx := object.UpdateContext{Delta: s.Delta, Screen: s.Screen}
	_, _ = s.Starfield.Update(ctx)
}

// updateGameOver lets the death explosion particles finish while the wave
// stays frozen behind the prompt.
func updateGameOver(s *State) {
	ctx := object.UpdateContext{Delta: s.Delta, Screen: s.Screen}
	_, _ = s.Starfield.Update(ctx)

	kept := s.Objects[:0]
	for _, obj := range s.Objects {
		if _, isParticle := obj.(*object.Particle); !isParticle {
			kept = append(kept, obj)
			continue
		}
		remove, _ := obj.Update(ctx)
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	s.Objects = kept
	s.FlushSpawned()
}
