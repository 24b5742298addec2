package object

import (
	"fmt"

	"github.com/tomz197/survivors/internal/physics"
)

// Skill is the capability set shared by all skill variants.
type Skill interface {
	Kind() SkillKind
	Level() int
	Damage() float64

	// Update advances the skill by one tick.
	Update(ctx UpdateContext)
	// ApplyUpgrade mutates one attribute and raises the skill level.
	ApplyUpgrade(attr SkillAttr, op Op, magnitude float64) error
	// Rebuild recreates owned sub-entities around the owner position.
	Rebuild(owner physics.Vec2)
	// Teardown drops all owned sub-entities.
	Teardown()
	// Parts returns the sub-entities that collide with enemies.
	Parts() []*Orbiter
}

// NewSkill instantiates a skill at level one.
func NewSkill(kind SkillKind) (Skill, error) {
	switch kind {
	case SkillBolt:
		return NewBolt(), nil
	case SkillGuardian:
		return NewGuardian(), nil
	}
	return nil, fmt.Errorf("unknown skill kind %d", kind)
}

func unsupported(kind SkillKind, attr SkillAttr) error {
	return fmt.Errorf("skill %s has no attribute %d", kind, attr)
}
