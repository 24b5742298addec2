package game

import (
	"math"
	"time"

	"github.com/tomz197/survivors/internal/physics"
)

// spawner accumulates simulation time and releases one enemy per interval.
type spawner struct {
	interval time.Duration
	acc      time.Duration
}

func (s *spawner) reset() {
	s.acc = 0
}

// UpdateSpawner advances the spawn timer by dt. When the interval has been
// exceeded the timer resets and, below the population cap, an enemy is
// placed on a ring around the player. Returns true if an enemy was spawned.
func (w *World) UpdateSpawner(dt time.Duration) bool {
	s := &w.spawner
	s.acc += dt
	if s.acc <= s.interval {
		return false
	}
	s.acc = 0

	if w.Enemies.Count() >= w.tuning.MaxEnemies {
		return false
	}
	w.SpawnEnemy(w.spawnPoint())
	return true
}

// spawnPoint picks a random point on the spawn ring, clamped to the world.
func (w *World) spawnPoint() physics.Vec2 {
	angle := w.rng.Float64() * 2 * math.Pi
	radius := w.tuning.SpawnRadiusMin + w.rng.Float64()*(w.tuning.SpawnRadiusMax-w.tuning.SpawnRadiusMin)
	pos := w.Player.Pos.Add(physics.FromAngle(angle).Scale(radius))
	return pos.Clamp(w.tuning.WorldWidth, w.tuning.WorldHeight)
}
