package object

import (
	"time"

	"github.com/tomz197/survivors/internal/physics"
)

// Player base stats, re-applied on every Reset.
const (
	PlayerSize          = 50
	PlayerBaseSpeed     = 5.0
	PlayerBaseHealth    = 100.0
	PlayerInvincibility = 1000 * time.Millisecond
)

// Player is the survivor controlled by the input intent.
type Player struct {
	Pos    physics.Vec2 // Center in world coordinates
	Intent physics.Vec2 // Desired direction from held keys, any length

	Speed     float64 // World units per tick
	MaxHealth float64
	Health    float64

	Invincible    bool
	HitAt         time.Duration // Simulation time of the last accepted hit
	InvincibleFor time.Duration

	Level     int
	Exp       float64
	ExpToNext float64

	Skills map[SkillKind]Skill

	ExpMultiplier      float64
	CurrencyMultiplier float64
}

// NewPlayer creates a player at pos with base stats.
func NewPlayer(pos physics.Vec2, expToNext float64) *Player {
	p := &Player{}
	p.Reset(pos, expToNext)
	return p
}

// Reset re-initializes every run-scoped field and tears down owned skills.
func (p *Player) Reset(pos physics.Vec2, expToNext float64) {
	for _, s := range p.Skills {
		s.Teardown()
	}
	*p = Player{
		Pos:                pos,
		Speed:              PlayerBaseSpeed,
		MaxHealth:          PlayerBaseHealth,
		Health:             PlayerBaseHealth,
		InvincibleFor:      PlayerInvincibility,
		Level:              1,
		ExpToNext:          expToNext,
		Skills:             make(map[SkillKind]Skill),
		ExpMultiplier:      1,
		CurrencyMultiplier: 1,
	}
}

// Bounds returns the collision rectangle.
func (p *Player) Bounds() physics.Rect {
	return physics.RectAround(p.Pos, PlayerSize, PlayerSize)
}

// Kind implements Visual.
func (p *Player) Kind() Kind { return KindPlayer }

// Alive reports whether the player has health left.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// HasSkill reports whether the skill has been acquired this run.
func (p *Player) HasSkill(kind SkillKind) bool {
	_, ok := p.Skills[kind]
	return ok
}

// Move steps the player along its normalized intent and clamps to the world.
func (p *Player) Move(worldW, worldH float64) {
	if dir := p.Intent.Normalize(); !dir.IsZero() {
		p.Pos = p.Pos.Add(dir.Scale(p.Speed))
	}
	p.Pos = p.Pos.Clamp(worldW, worldH)
}

// UpdateInvincibility ends the invincibility window once it has elapsed.
func (p *Player) UpdateInvincibility(now time.Duration) {
	if p.Invincible && now-p.HitAt > p.InvincibleFor {
		p.Invincible = false
	}
}

// TakeDamage applies a hit unless invincible and opens the invincibility
// window. Health is clamped at zero. Returns true if the hit was accepted.
func (p *Player) TakeDamage(amount float64, now time.Duration) bool {
	if p.Invincible {
		return false
	}
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	p.Invincible = true
	p.HitAt = now
	return true
}

// ApplyAttr mutates a player attribute. Raising max health does not heal.
func (p *Player) ApplyAttr(attr PlayerAttr, op Op, magnitude float64) {
	switch attr {
	case AttrSpeed:
		p.Speed = op.Apply(p.Speed, magnitude)
	case AttrMaxHealth:
		p.MaxHealth = op.Apply(p.MaxHealth, magnitude)
		if p.MaxHealth < 1 {
			p.MaxHealth = 1
		}
		if p.Health > p.MaxHealth {
			p.Health = p.MaxHealth
		}
	case AttrExpMultiplier:
		p.ExpMultiplier = op.Apply(p.ExpMultiplier, magnitude)
	case AttrCurrencyMultiplier:
		p.CurrencyMultiplier = op.Apply(p.CurrencyMultiplier, magnitude)
	}
}

// HealthRatio returns current over max health in [0,1].
func (p *Player) HealthRatio() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	return p.Health / p.MaxHealth
}

// ExpRatio returns progress toward the next level in [0,1].
func (p *Player) ExpRatio() float64 {
	if p.ExpToNext <= 0 {
		return 0
	}
	r := p.Exp / p.ExpToNext
	if r > 1 {
		r = 1
	}
	return r
}
