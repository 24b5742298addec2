// Package game runs the arena simulation: world registry, steering, combat,
// spawning, the pausable clock and the state machine driving a run.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/object"
	"github.com/tomz197/survivors/internal/physics"
)

// skillOrder fixes the update order of owned skills.
var skillOrder = []object.SkillKind{object.SkillBolt, object.SkillGuardian}

// World holds every actor of a run and the spatial index over live enemies.
type World struct {
	tuning config.Tuning
	rng    *rand.Rand

	Player      *object.Player
	Enemies     *object.EnemyRegistry
	Projectiles []*object.Projectile
	Pickups     []*object.Pickup

	index    *physics.Quadtree[*object.Enemy]
	rebuilds int

	Kills       int
	RunCurrency float64

	spawner spawner

	// Scratch buffers reused across ticks
	candidates []*object.Enemy
	pairs      []hitPair
}

// NewWorld creates an empty world sized by tuning.
func NewWorld(tuning config.Tuning, rng *rand.Rand) *World {
	bounds := physics.Rect{W: tuning.WorldWidth, H: tuning.WorldHeight}
	return &World{
		tuning:  tuning,
		rng:     rng,
		Player:  object.NewPlayer(bounds.Center(), 0),
		Enemies: object.NewEnemyRegistry(tuning.MaxEnemies),
		index:   physics.NewQuadtree[*object.Enemy](bounds, tuning.QuadtreeCapacity, tuning.QuadtreeMaxDepth),
		spawner: spawner{interval: tuning.SpawnInterval()},
	}
}

// Reset clears every run-scoped collection and puts the player at the
// world center. Live enemies go back to the pool.
func (w *World) Reset(expToNext float64) {
	w.Enemies.ReleaseAll()
	clear(w.Projectiles)
	w.Projectiles = w.Projectiles[:0]
	clear(w.Pickups)
	w.Pickups = w.Pickups[:0]
	w.index.Clear()

	w.Player.Reset(w.Bounds().Center(), expToNext)
	w.Kills = 0
	w.RunCurrency = 0
	w.rebuilds = 0
	w.spawner.reset()
}

// Bounds returns the world rectangle.
func (w *World) Bounds() physics.Rect {
	return physics.Rect{W: w.tuning.WorldWidth, H: w.tuning.WorldHeight}
}

// SpawnEnemy takes an instance from the pool, re-initializes it at pos with
// a random speed of 1 or 2 and adds it to the live set.
func (w *World) SpawnEnemy(pos physics.Vec2) *object.Enemy {
	speed := float64(1 + w.rng.IntN(int(object.EnemyMaxSpeed)))
	e := w.Enemies.Spawn(pos, speed)
	e.Damage = w.tuning.ContactDamageBase
	return e
}

// ReturnToPool removes e from the live set and parks it in the free list.
func (w *World) ReturnToPool(e *object.Enemy) {
	w.Enemies.Release(e)
}

// SpawnProjectile implements object.Spawner.
func (w *World) SpawnProjectile(p *object.Projectile) {
	w.Projectiles = append(w.Projectiles, p)
}

// RebuildIndex clears the quadtree and inserts every live enemy.
func (w *World) RebuildIndex() {
	w.index.Clear()
	for _, e := range w.Enemies.Live() {
		w.index.Insert(e)
	}
	w.rebuilds++
}

// Rebuilds returns how many times the index was rebuilt this run.
func (w *World) Rebuilds() int {
	return w.rebuilds
}

// query appends index candidates for r to the scratch buffer. The rectangle
// is inflated by the maximum enemy step since enemies move after the rebuild.
func (w *World) query(r physics.Rect) []*object.Enemy {
	w.candidates = w.index.Retrieve(r.Inflate(object.EnemyMaxSpeed), w.candidates[:0])
	return w.candidates
}

// UpdateSkills advances every owned skill.
func (w *World) UpdateSkills(now time.Duration) {
	ctx := object.UpdateContext{
		Now:     now,
		Player:  w.Player,
		Enemies: w.Enemies.Live(),
		Spawner: w,
	}
	for _, kind := range skillOrder {
		if s, ok := w.Player.Skills[kind]; ok {
			s.Update(ctx)
		}
	}
}

// UpdateProjectiles moves projectiles and drops expired ones.
func (w *World) UpdateProjectiles(now time.Duration) {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Update(now) {
			kept = append(kept, p)
		}
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept
}

// compact drops destroyed projectiles and consumed pickups.
func (w *World) compact() {
	w.Projectiles = compact(w.Projectiles)
	w.Pickups = compact(w.Pickups)
}

// compact removes destroyed items in place, keeping order, and clears the
// freed tail so dropped items can be collected.
func compact[T object.Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
