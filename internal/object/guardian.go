package object

import (
	"math"

	"github.com/tomz197/survivors/internal/physics"
)

// Guardian base stats.
const (
	GuardianDamage        = 15.0
	GuardianRadius        = 100.0
	GuardianRotationSpeed = 2.0 // Degrees per tick
	OrbiterWidth          = 30
	OrbiterHeight         = 40
)

// Orbiter is a guardian sub-entity circling the player.
type Orbiter struct {
	Pos   physics.Vec2
	Angle float64 // Degrees, [0, 360)
}

// Bounds returns the collision rectangle.
func (o *Orbiter) Bounds() physics.Rect {
	return physics.RectAround(o.Pos, OrbiterWidth, OrbiterHeight)
}

// Kind implements Visual.
func (o *Orbiter) Kind() Kind { return KindOrbiter }

// Guardian keeps a ring of orbiters around the player that damage enemies on contact.
type Guardian struct {
	level         int
	damage        float64
	count         int
	radius        float64
	rotationSpeed float64
	parts         []*Orbiter
}

// NewGuardian creates a level one guardian skill with no orbiters placed yet.
func NewGuardian() *Guardian {
	return &Guardian{
		level:         1,
		damage:        GuardianDamage,
		count:         1,
		radius:        GuardianRadius,
		rotationSpeed: GuardianRotationSpeed,
	}
}

func (g *Guardian) Kind() SkillKind        { return SkillGuardian }
func (g *Guardian) Level() int             { return g.level }
func (g *Guardian) Damage() float64        { return g.damage }
func (g *Guardian) Count() int             { return g.count }
func (g *Guardian) Radius() float64        { return g.radius }
func (g *Guardian) RotationSpeed() float64 { return g.rotationSpeed }
func (g *Guardian) Parts() []*Orbiter      { return g.parts }

// Rebuild re-places count orbiters at equal spacing of 360/count degrees.
func (g *Guardian) Rebuild(owner physics.Vec2) {
	g.Teardown()
	step := 360.0 / float64(g.count)
	for i := 0; i < g.count; i++ {
		o := &Orbiter{Angle: float64(i) * step}
		g.place(o, owner)
		g.parts = append(g.parts, o)
	}
}

// Teardown drops all orbiters.
func (g *Guardian) Teardown() {
	clear(g.parts)
	g.parts = g.parts[:0]
}

// Update rotates every orbiter around the player.
func (g *Guardian) Update(ctx UpdateContext) {
	if ctx.Player == nil {
		return
	}
	for _, o := range g.parts {
		o.Angle = math.Mod(o.Angle+g.rotationSpeed, 360)
		g.place(o, ctx.Player.Pos)
	}
}

func (g *Guardian) place(o *Orbiter, owner physics.Vec2) {
	rad := o.Angle * math.Pi / 180
	o.Pos = owner.Add(physics.FromAngle(rad).Scale(g.radius))
}

// ApplyUpgrade implements Skill.
func (g *Guardian) ApplyUpgrade(attr SkillAttr, op Op, magnitude float64) error {
	switch attr {
	case SkillDamage:
		g.damage = op.Apply(g.damage, magnitude)
	case SkillCount:
		g.count = applyCount(g.count, op, magnitude)
	case SkillRadius:
		g.radius = op.Apply(g.radius, magnitude)
	case SkillRotationSpeed:
		g.rotationSpeed = op.Apply(g.rotationSpeed, magnitude)
	default:
		return unsupported(SkillGuardian, attr)
	}
	g.level++
	return nil
}
