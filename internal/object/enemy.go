package object

import (
	"time"

	"github.com/tomz197/survivors/internal/physics"
)

// Enemy stats applied on every Reset.
const (
	EnemySize             = 40
	EnemyBaseHealth       = 20.0
	EnemyContactDamage    = 5.0
	EnemyExpDrop          = 15.0
	EnemyCurrencyDrop     = 1.0
	EnemySkillHitCooldown = 500 * time.Millisecond
	EnemyMaxSpeed         = 2.0
)

// Enemy chases the player. Instances are recycled through EnemyRegistry.
type Enemy struct {
	Pos       physics.Vec2
	Speed     float64 // World units per tick, 1 or 2
	MaxHealth float64
	Health    float64
	Damage    float64 // Contact damage base

	CurrencyDrop float64
	ExpDrop      float64

	SkillHitAt       time.Duration
	SkillHitCooldown time.Duration
	skillHit         bool // A skill hit has been registered since Reset

	live bool
	slot int // Index in the registry's live slice
}

// Reset fully re-initializes the enemy for reuse.
func (e *Enemy) Reset(pos physics.Vec2, speed float64) {
	*e = Enemy{
		Pos:              pos,
		Speed:            speed,
		MaxHealth:        EnemyBaseHealth,
		Health:           EnemyBaseHealth,
		Damage:           EnemyContactDamage,
		CurrencyDrop:     EnemyCurrencyDrop,
		ExpDrop:          EnemyExpDrop,
		SkillHitCooldown: EnemySkillHitCooldown,
		live:             e.live,
		slot:             e.slot,
	}
}

// Bounds returns the collision rectangle.
func (e *Enemy) Bounds() physics.Rect {
	return physics.RectAround(e.Pos, EnemySize, EnemySize)
}

// Kind implements Visual.
func (e *Enemy) Kind() Kind { return KindEnemy }

// Live reports whether the enemy is in the live registry (not pooled).
func (e *Enemy) Live() bool {
	return e.live
}

// Dead reports whether health has reached zero.
func (e *Enemy) Dead() bool {
	return e.Health <= 0
}

// TakeDamage subtracts health, clamped at zero. Returns true if this hit killed it.
func (e *Enemy) TakeDamage(amount float64) bool {
	if e.Dead() {
		return false
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		return true
	}
	return false
}

// CanTakeSkillHit reports whether the skill-hit cooldown has elapsed.
func (e *Enemy) CanTakeSkillHit(now time.Duration) bool {
	return !e.skillHit || now-e.SkillHitAt > e.SkillHitCooldown
}

// MarkSkillHit records a skill hit at now.
func (e *Enemy) MarkSkillHit(now time.Duration) {
	e.skillHit = true
	e.SkillHitAt = now
}
