package object

import (
	"time"

	"github.com/tomz197/survivors/internal/physics"
)

// ProjectileSize is the side of the projectile's collision square.
const ProjectileSize = 10

// ProjectileLifespan is how long projectiles last before disappearing.
const ProjectileLifespan = 2000 * time.Millisecond

// Projectile is a bolt fired at an enemy.
type Projectile struct {
	Pos       physics.Vec2
	Vel       physics.Vec2 // World units per tick
	Damage    float64
	SpawnedAt time.Duration
	Lifespan  time.Duration
	destroyed bool
}

// NewProjectile creates a projectile at pos flying toward target at speed.
func NewProjectile(pos, target physics.Vec2, speed, damage float64, now time.Duration) *Projectile {
	dir := target.Sub(pos).Normalize()
	if dir.IsZero() {
		dir = physics.Vec2{X: 1}
	}
	return &Projectile{
		Pos:       pos,
		Vel:       dir.Scale(speed),
		Damage:    damage,
		SpawnedAt: now,
		Lifespan:  ProjectileLifespan,
	}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Update moves the projectile. Returns true once it should be removed.
func (p *Projectile) Update(now time.Duration) bool {
	if p.destroyed {
		return true
	}
	p.Pos = p.Pos.Add(p.Vel)
	if now-p.SpawnedAt > p.Lifespan {
		p.destroyed = true
		return true
	}
	return false
}

// Bounds returns the collision rectangle.
func (p *Projectile) Bounds() physics.Rect {
	return physics.RectAround(p.Pos, ProjectileSize, ProjectileSize)
}

// Kind implements Visual.
func (p *Projectile) Kind() Kind { return KindProjectile }
