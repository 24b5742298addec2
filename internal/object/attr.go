package object

import (
	"fmt"
	"math"
)

// Op is the arithmetic an upgrade applies to an attribute.
type Op int

const (
	OpAdd Op = iota
	OpMultiply
)

// ParseOp converts an upgrade table operation name.
func ParseOp(name string) (Op, error) {
	switch name {
	case "add":
		return OpAdd, nil
	case "multiply":
		return OpMultiply, nil
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}

func (o Op) String() string {
	if o == OpMultiply {
		return "multiply"
	}
	return "add"
}

// Apply returns v changed by magnitude under the operation.
func (o Op) Apply(v, magnitude float64) float64 {
	if o == OpMultiply {
		return v * magnitude
	}
	return v + magnitude
}

// PlayerAttr is the closed set of player attributes upgrades may target.
type PlayerAttr int

const (
	AttrSpeed PlayerAttr = iota
	AttrMaxHealth
	AttrExpMultiplier
	AttrCurrencyMultiplier
)

var playerAttrNames = map[string]PlayerAttr{
	"speed":               AttrSpeed,
	"max_health":          AttrMaxHealth,
	"exp_multiplier":      AttrExpMultiplier,
	"currency_multiplier": AttrCurrencyMultiplier,
}

// ParsePlayerAttr resolves a player attribute name.
func ParsePlayerAttr(name string) (PlayerAttr, error) {
	if a, ok := playerAttrNames[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown player attribute %q", name)
}

// SkillAttr is the closed set of skill attributes upgrades may target.
type SkillAttr int

const (
	SkillDamage SkillAttr = iota
	SkillCooldown
	SkillCount
	SkillRadius
	SkillRotationSpeed
	SkillProjectileSpeed
)

var skillAttrNames = map[string]SkillAttr{
	"damage":           SkillDamage,
	"cooldown":         SkillCooldown,
	"count":            SkillCount,
	"radius":           SkillRadius,
	"rotation_speed":   SkillRotationSpeed,
	"projectile_speed": SkillProjectileSpeed,
}

// ParseSkillAttr resolves a skill attribute name.
func ParseSkillAttr(name string) (SkillAttr, error) {
	if a, ok := skillAttrNames[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown skill attribute %q", name)
}

// SkillKind enumerates the skill variants.
type SkillKind int

const (
	SkillBolt SkillKind = iota
	SkillGuardian
)

// ParseSkillKind resolves a skill name.
func ParseSkillKind(name string) (SkillKind, error) {
	switch name {
	case "bolt":
		return SkillBolt, nil
	case "guardian":
		return SkillGuardian, nil
	}
	return 0, fmt.Errorf("unknown skill %q", name)
}

func (k SkillKind) String() string {
	switch k {
	case SkillBolt:
		return "bolt"
	case SkillGuardian:
		return "guardian"
	default:
		return "unknown"
	}
}

// Attributes each skill responds to.
var skillAttrs = map[SkillKind][]SkillAttr{
	SkillBolt:     {SkillDamage, SkillCooldown, SkillCount, SkillProjectileSpeed},
	SkillGuardian: {SkillDamage, SkillCount, SkillRadius, SkillRotationSpeed},
}

// SkillSupports reports whether a skill kind has the given attribute.
func SkillSupports(kind SkillKind, attr SkillAttr) bool {
	for _, a := range skillAttrs[kind] {
		if a == attr {
			return true
		}
	}
	return false
}

// applyCount applies op to an integer count, never dropping below one.
func applyCount(count int, op Op, magnitude float64) int {
	n := int(math.Round(op.Apply(float64(count), magnitude)))
	if n < 1 {
		n = 1
	}
	return n
}
