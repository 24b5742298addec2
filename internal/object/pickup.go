package object

import "github.com/tomz197/survivors/internal/physics"

// PickupSize is the side of the experience gem's collision square.
const PickupSize = 15

// Pickup is an experience gem dropped where an enemy died.
type Pickup struct {
	Pos      physics.Vec2
	Value    float64
	consumed bool
}

// NewPickup creates a gem worth value experience.
func NewPickup(pos physics.Vec2, value float64) *Pickup {
	return &Pickup{Pos: pos, Value: value}
}

// MarkDestroyed marks the gem as collected.
func (p *Pickup) MarkDestroyed() {
	p.consumed = true
}

// IsDestroyed reports whether the gem was collected.
func (p *Pickup) IsDestroyed() bool {
	return p.consumed
}

// Bounds returns the collision rectangle.
func (p *Pickup) Bounds() physics.Rect {
	return physics.RectAround(p.Pos, PickupSize, PickupSize)
}

// Kind implements Visual.
func (p *Pickup) Kind() Kind { return KindPickup }
