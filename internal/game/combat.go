package game

import (
	"time"

	"github.com/tomz197/survivors/internal/object"
	"github.com/tomz197/survivors/internal/progression"
)

// hitPair is a candidate collision captured before any state changes.
type hitPair struct {
	enemy      *object.Enemy
	projectile *object.Projectile
	damage     float64
}

// CombatResult summarizes what combat resolution changed this tick.
type CombatResult struct {
	Kills        int
	PlayerHit    bool
	LevelsGained int
}

// ResolveCombat runs every collision step in order: projectiles, contact,
// pickups, skills. Pairs are snapshotted per step and dead enemies are
// skipped, so each enemy pays out at most once per tick.
func (w *World) ResolveCombat(now time.Duration) CombatResult {
	var res CombatResult
	res.Kills += w.resolveProjectiles()
	res.PlayerHit = w.resolveContact(now)
	res.LevelsGained = w.resolvePickups()
	res.Kills += w.resolveSkills(now)
	w.compact()
	return res
}

func (w *World) resolveProjectiles() int {
	w.pairs = w.pairs[:0]
	for _, p := range w.Projectiles {
		if p.IsDestroyed() {
			continue
		}
		pb := p.Bounds()
		for _, e := range w.query(pb) {
			if e.Live() && e.Bounds().Overlaps(pb) {
				w.pairs = append(w.pairs, hitPair{enemy: e, projectile: p, damage: p.Damage})
			}
		}
	}

	kills := 0
	for _, hp := range w.pairs {
		if hp.projectile.IsDestroyed() || !hp.enemy.Live() || hp.enemy.Dead() {
			continue
		}
		hp.projectile.MarkDestroyed()
		if hp.enemy.TakeDamage(hp.damage) {
			w.kill(hp.enemy)
			kills++
		}
	}
	return kills
}

// resolveContact applies one hit of the strongest overlapping enemy's
// damage plus the number of overlapping enemies, gated by the player's
// invincibility window.
func (w *World) resolveContact(now time.Duration) bool {
	pb := w.Player.Bounds()
	overlapping := 0
	base := 0.0
	for _, e := range w.query(pb) {
		if e.Live() && !e.Dead() && e.Bounds().Overlaps(pb) {
			overlapping++
			base = max(base, e.Damage)
		}
	}
	if overlapping == 0 {
		return false
	}
	return w.Player.TakeDamage(base+float64(overlapping), now)
}

func (w *World) resolvePickups() int {
	pb := w.Player.Bounds()
	levels := 0
	for _, p := range w.Pickups {
		if p.IsDestroyed() || !p.Bounds().Overlaps(pb) {
			continue
		}
		p.MarkDestroyed()
		levels += progression.GainExp(w.Player, p.Value)
	}
	return levels
}

func (w *World) resolveSkills(now time.Duration) int {
	w.pairs = w.pairs[:0]
	for _, kind := range skillOrder {
		s, ok := w.Player.Skills[kind]
		if !ok {
			continue
		}
		for _, part := range s.Parts() {
			ob := part.Bounds()
			for _, e := range w.query(ob) {
				if e.Live() && e.Bounds().Overlaps(ob) {
					w.pairs = append(w.pairs, hitPair{enemy: e, damage: s.Damage()})
				}
			}
		}
	}

	kills := 0
	for _, hp := range w.pairs {
		e := hp.enemy
		if !e.Live() || e.Dead() || !e.CanTakeSkillHit(now) {
			continue
		}
		e.MarkSkillHit(now)
		if e.TakeDamage(hp.damage) {
			w.kill(e)
			kills++
		}
	}
	return kills
}

// kill pays out a dead enemy and returns it to the pool.
func (w *World) kill(e *object.Enemy) {
	w.Pickups = append(w.Pickups, object.NewPickup(e.Pos, e.ExpDrop))
	w.RunCurrency += e.CurrencyDrop * w.Player.CurrencyMultiplier
	w.Kills++
	w.ReturnToPool(e)
}
