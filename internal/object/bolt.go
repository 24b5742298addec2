package object

import (
	"time"

	"github.com/tomz197/survivors/internal/physics"
)

// Bolt base stats.
const (
	BoltDamage          = 10.0
	BoltCooldown        = 500 * time.Millisecond
	BoltProjectileSpeed = 10.0
	BoltMinCooldown     = 50 * time.Millisecond
)

// Bolt periodically fires projectiles at the closest enemies.
type Bolt struct {
	level           int
	damage          float64
	cooldown        time.Duration
	projectileSpeed float64
	count           int // Projectiles per volley, one target each

	lastShot time.Duration
	fired    bool

	targets []*Enemy // Scratch buffer for target selection
}

// NewBolt creates a level one bolt skill.
func NewBolt() *Bolt {
	return &Bolt{
		level:           1,
		damage:          BoltDamage,
		cooldown:        BoltCooldown,
		projectileSpeed: BoltProjectileSpeed,
		count:           1,
	}
}

func (b *Bolt) Kind() SkillKind          { return SkillBolt }
func (b *Bolt) Level() int               { return b.level }
func (b *Bolt) Damage() float64          { return b.damage }
func (b *Bolt) Cooldown() time.Duration  { return b.cooldown }
func (b *Bolt) ProjectileSpeed() float64 { return b.projectileSpeed }
func (b *Bolt) Count() int               { return b.count }

// Parts returns nil; projectiles belong to the world once fired.
func (b *Bolt) Parts() []*Orbiter { return nil }

// Rebuild is a no-op; the bolt has no persistent sub-entities.
func (b *Bolt) Rebuild(physics.Vec2) {}

// Teardown is a no-op; fired projectiles expire on their own.
func (b *Bolt) Teardown() {}

// Update fires a volley at the closest enemies once the cooldown has elapsed.
func (b *Bolt) Update(ctx UpdateContext) {
	if ctx.Player == nil || ctx.Spawner == nil {
		return
	}
	if b.fired && ctx.Now-b.lastShot <= b.cooldown {
		return
	}

	b.targets = closestEnemies(ctx.Player.Pos, ctx.Enemies, b.count, b.targets[:0])
	if len(b.targets) == 0 {
		return
	}
	b.fired = true
	b.lastShot = ctx.Now
	for _, e := range b.targets {
		ctx.Spawner.SpawnProjectile(NewProjectile(ctx.Player.Pos, e.Pos, b.projectileSpeed, b.damage, ctx.Now))
	}
}

// ApplyUpgrade implements Skill.
func (b *Bolt) ApplyUpgrade(attr SkillAttr, op Op, magnitude float64) error {
	switch attr {
	case SkillDamage:
		b.damage = op.Apply(b.damage, magnitude)
	case SkillCooldown:
		ms := op.Apply(float64(b.cooldown.Milliseconds()), magnitude)
		b.cooldown = max(time.Duration(ms*float64(time.Millisecond)), BoltMinCooldown)
	case SkillCount:
		b.count = applyCount(b.count, op, magnitude)
	case SkillProjectileSpeed:
		b.projectileSpeed = op.Apply(b.projectileSpeed, magnitude)
	default:
		return unsupported(SkillBolt, attr)
	}
	b.level++
	return nil
}

// closestEnemies appends up to n live enemies nearest to pos, nearest first.
func closestEnemies(pos physics.Vec2, enemies []*Enemy, n int, dst []*Enemy) []*Enemy {
	for _, e := range enemies {
		if e.Dead() {
			continue
		}
		d := physics.DistanceSquared(pos, e.Pos)
		if len(dst) == n && d >= physics.DistanceSquared(pos, dst[n-1].Pos) {
			continue
		}
		if len(dst) < n {
			dst = append(dst, e)
		} else {
			dst[n-1] = e
		}
		// Insertion step keeps dst ordered by distance
		for i := len(dst) - 1; i > 0; i-- {
			if physics.DistanceSquared(pos, dst[i].Pos) >= physics.DistanceSquared(pos, dst[i-1].Pos) {
				break
			}
			dst[i], dst[i-1] = dst[i-1], dst[i]
		}
	}
	return dst
}
