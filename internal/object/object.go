// Package object defines the simulated actors of the arena and their skills.
package object

import (
	"time"

	"github.com/tomz197/survivors/internal/physics"
)

// Kind identifies how an actor is presented to the renderer.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
	KindPickup
	KindOrbiter
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	case KindPickup:
		return "pickup"
	case KindOrbiter:
		return "orbiter"
	default:
		return "unknown"
	}
}

// Visual is implemented by every actor that can appear in a frame.
type Visual interface {
	Bounds() physics.Rect
	Kind() Kind
}

// Spawner allows skills to add projectiles to the world during update.
type Spawner interface {
	SpawnProjectile(p *Projectile)
}

// UpdateContext provides everything a skill needs during update.
// Now is simulation time since run start; it does not advance while paused.
type UpdateContext struct {
	Now     time.Duration
	Player  *Player
	Enemies []*Enemy
	Spawner Spawner
}

// Destructible is implemented by actors that are removed lazily after a hit.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}
