package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/object"
	"github.com/tomz197/survivors/internal/physics"
	"github.com/tomz197/survivors/internal/progression"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(config.DefaultTuning(), rand.New(rand.NewPCG(1, 2)))
	w.Reset(progression.Threshold(1))
	return w
}

func offset(p physics.Vec2, dx, dy float64) physics.Vec2 {
	return physics.Vec2{X: p.X + dx, Y: p.Y + dy}
}

func lethalProjectile(at physics.Vec2) *object.Projectile {
	return object.NewProjectile(at, offset(at, 1, 0), 0, 100, 0)
}

func TestDeathReturnsEnemyToPoolSameTick(t *testing.T) {
	w := newTestWorld(t)
	pos := offset(w.Player.Pos, 300, 0)
	e := w.SpawnEnemy(pos)
	w.SpawnProjectile(lethalProjectile(pos))

	w.RebuildIndex()
	res := w.ResolveCombat(0)

	if res.Kills != 1 || w.Kills != 1 {
		t.Fatalf("kills = %d/%d, want 1", res.Kills, w.Kills)
	}
	if e.Live() || !w.Enemies.InFreeList(e) || w.Enemies.Count() != 0 {
		t.Fatal("dead enemy not returned to the pool")
	}
	if len(w.Pickups) != 1 || w.Pickups[0].Pos != pos || w.Pickups[0].Value != object.EnemyExpDrop {
		t.Fatalf("pickup not dropped at death position: %+v", w.Pickups)
	}
	if w.RunCurrency != object.EnemyCurrencyDrop {
		t.Fatalf("run currency = %g, want %g", w.RunCurrency, object.EnemyCurrencyDrop)
	}
	if len(w.Projectiles) != 0 {
		t.Fatal("spent projectile not removed")
	}
}

func TestDeathPayoutOncePerTick(t *testing.T) {
	w := newTestWorld(t)
	pos := offset(w.Player.Pos, 300, 0)
	w.SpawnEnemy(pos)
	w.SpawnProjectile(lethalProjectile(pos))
	w.SpawnProjectile(lethalProjectile(pos))

	w.RebuildIndex()
	w.ResolveCombat(0)

	if w.Kills != 1 || len(w.Pickups) != 1 {
		t.Fatalf("kills %d pickups %d, want 1 1", w.Kills, len(w.Pickups))
	}
	if len(w.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want the second one untouched", len(w.Projectiles))
	}
}

func TestProjectileHitsOneEnemy(t *testing.T) {
	w := newTestWorld(t)
	pos := offset(w.Player.Pos, 300, 0)
	a := w.SpawnEnemy(pos)
	b := w.SpawnEnemy(offset(pos, 5, 0))
	w.SpawnProjectile(object.NewProjectile(pos, offset(pos, 1, 0), 0, 5, 0))

	w.RebuildIndex()
	w.ResolveCombat(0)

	hurt := 0
	for _, e := range []*object.Enemy{a, b} {
		if e.Health < e.MaxHealth {
			hurt++
		}
	}
	if hurt != 1 {
		t.Fatalf("projectile damaged %d enemies, want 1", hurt)
	}
}

func TestContactDamageAndInvincibility(t *testing.T) {
	w := newTestWorld(t)
	w.SpawnEnemy(offset(w.Player.Pos, 10, 0))
	w.SpawnEnemy(offset(w.Player.Pos, -10, 0))
	w.RebuildIndex()

	res := w.ResolveCombat(0)
	if !res.PlayerHit || w.Player.Health != object.PlayerBaseHealth-7 {
		t.Fatalf("health = %g, want %g", w.Player.Health, object.PlayerBaseHealth-7)
	}

	w.ResolveCombat(500 * time.Millisecond)
	if w.Player.Health != object.PlayerBaseHealth-7 {
		t.Fatal("contact damage applied during invincibility")
	}

	now := 1100 * time.Millisecond
	w.Player.UpdateInvincibility(now)
	w.ResolveCombat(now)
	if w.Player.Health != object.PlayerBaseHealth-14 {
		t.Fatalf("health = %g after the window, want %g", w.Player.Health, object.PlayerBaseHealth-14)
	}
}

func TestPickupGrantsExperience(t *testing.T) {
	w := newTestWorld(t)
	w.Pickups = append(w.Pickups, object.NewPickup(w.Player.Pos, 60))

	res := w.ResolveCombat(0)
	if res.LevelsGained != 1 || w.Player.Level != 2 || w.Player.Exp != 10 {
		t.Fatalf("levels %d level %d exp %g", res.LevelsGained, w.Player.Level, w.Player.Exp)
	}
	if len(w.Pickups) != 0 {
		t.Fatal("consumed pickup not removed")
	}
}

func TestSkillHitCooldown(t *testing.T) {
	w := newTestWorld(t)
	catalog, err := progression.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if err := catalog.Apply(w.Player, "ACQUIRE_GUARDIAN"); err != nil {
		t.Fatal(err)
	}
	orbiter := w.Player.Skills[object.SkillGuardian].Parts()[0]
	e := w.SpawnEnemy(orbiter.Pos)
	w.RebuildIndex()

	w.ResolveCombat(0)
	if e.Health != object.EnemyBaseHealth-object.GuardianDamage {
		t.Fatalf("health = %g after first hit", e.Health)
	}
	w.ResolveCombat(400 * time.Millisecond)
	if e.Health != object.EnemyBaseHealth-object.GuardianDamage {
		t.Fatal("skill hit applied during cooldown")
	}
	w.ResolveCombat(501 * time.Millisecond)
	if e.Live() || w.Kills != 1 {
		t.Fatal("second guardian hit should kill the enemy")
	}
}

func TestSteeringTowardPlayer(t *testing.T) {
	w := newTestWorld(t)
	far := w.Enemies.Spawn(offset(w.Player.Pos, 200, 0), 1)
	near := w.Enemies.Spawn(offset(w.Player.Pos, 0, 30), 2)
	nearStart := near.Pos

	w.RebuildIndex()
	w.Steer()

	if far.Pos != offset(w.Player.Pos, 199, 0) {
		t.Fatalf("far enemy at %+v, want one step closer", far.Pos)
	}
	if near.Pos != nearStart {
		t.Fatal("enemy within the steering radius should hold still")
	}
}

func TestSteeringSeparatesNeighbors(t *testing.T) {
	w := newTestWorld(t)
	a := w.Enemies.Spawn(offset(w.Player.Pos, 200, 0), 1)
	b := w.Enemies.Spawn(offset(w.Player.Pos, 200, 10), 1)
	ay, by := a.Pos.Y, b.Pos.Y

	w.RebuildIndex()
	w.Steer()

	if a.Pos.Y >= ay {
		t.Fatalf("upper enemy did not move away: y %g -> %g", ay, a.Pos.Y)
	}
	if b.Pos.Y <= by {
		t.Fatalf("lower enemy did not move away: y %g -> %g", by, b.Pos.Y)
	}
}

func TestSpawnerAtCapCreatesNothing(t *testing.T) {
	w := newTestWorld(t)
	for i := 0; i < w.tuning.MaxEnemies; i++ {
		w.SpawnEnemy(offset(w.Player.Pos, 500, float64(i)))
	}

	if w.UpdateSpawner(600 * time.Millisecond) {
		t.Fatal("spawned above the cap")
	}
	if w.Enemies.Count() != 150 {
		t.Fatalf("population = %d, want 150", w.Enemies.Count())
	}
}

func TestSpawnerIntervalAndRing(t *testing.T) {
	w := newTestWorld(t)
	if w.UpdateSpawner(400 * time.Millisecond) {
		t.Fatal("spawned before the interval")
	}
	if !w.UpdateSpawner(200 * time.Millisecond) {
		t.Fatal("did not spawn after the interval")
	}
	if w.UpdateSpawner(16 * time.Millisecond) {
		t.Fatal("timer was not reset")
	}

	e := w.Enemies.Live()[0]
	d := physics.Distance(w.Player.Pos, e.Pos)
	if d < 700 || d > 800 {
		t.Fatalf("spawn distance %g outside [700, 800]", d)
	}
	if e.Speed != 1 && e.Speed != 2 {
		t.Fatalf("speed = %g, want 1 or 2", e.Speed)
	}
}

func TestSpawnPointClampedToWorld(t *testing.T) {
	w := newTestWorld(t)
	w.Player.Pos = physics.Vec2{}
	for i := 0; i < 50; i++ {
		p := w.spawnPoint()
		if !w.Bounds().ContainsPoint(p) {
			t.Fatalf("spawn point %+v outside the world", p)
		}
	}
}

func TestCameraClampedToWorld(t *testing.T) {
	w := newTestWorld(t)
	w.Player.Pos = physics.Vec2{X: 10, Y: 10}
	if c := w.Camera(config.ViewWidth, config.ViewHeight); c != (physics.Vec2{}) {
		t.Fatalf("camera = %+v, want origin", c)
	}
	w.Player.Pos = physics.Vec2{X: w.tuning.WorldWidth, Y: w.tuning.WorldHeight}
	want := physics.Vec2{X: w.tuning.WorldWidth - config.ViewWidth, Y: w.tuning.WorldHeight - config.ViewHeight}
	if c := w.Camera(config.ViewWidth, config.ViewHeight); c != want {
		t.Fatalf("camera = %+v, want %+v", c, want)
	}
}

func guardianAround(t *testing.T, w *World, owner physics.Vec2, count int, radius float64) *object.Guardian {
	t.Helper()
	g := object.NewGuardian()
	if err := g.ApplyUpgrade(object.SkillCount, object.OpAdd, float64(count-1)); err != nil {
		t.Fatal(err)
	}
	if err := g.ApplyUpgrade(object.SkillRadius, object.OpMultiply, radius/object.GuardianRadius); err != nil {
		t.Fatal(err)
	}
	g.Rebuild(owner)
	w.Player.Skills[object.SkillGuardian] = g
	return g
}

func TestProjectileKillNotPaidAgainBySkill(t *testing.T) {
	w := newTestWorld(t)
	pos := offset(w.Player.Pos, 300, 0)
	guardianAround(t, w, pos, 1, 1) // Orbiter sits on the enemy
	e := w.SpawnEnemy(pos)
	w.SpawnProjectile(lethalProjectile(pos))

	w.RebuildIndex()
	res := w.ResolveCombat(0)

	if res.Kills != 1 || w.Kills != 1 || len(w.Pickups) != 1 {
		t.Fatalf("kills %d/%d pickups %d, want 1 1 1", res.Kills, w.Kills, len(w.Pickups))
	}
	if w.RunCurrency != object.EnemyCurrencyDrop {
		t.Fatalf("run currency = %g, want %g", w.RunCurrency, object.EnemyCurrencyDrop)
	}
	if e.Live() || w.Enemies.Pooled() != 1 {
		t.Fatal("enemy not pooled exactly once")
	}
	if len(w.Projectiles) != 0 {
		t.Fatalf("%d projectiles left after the hit", len(w.Projectiles))
	}
}

func TestCompactKeepsOrderAndClearsTail(t *testing.T) {
	at := physics.Vec2{}
	a, b, c := lethalProjectile(at), lethalProjectile(at), lethalProjectile(at)
	b.MarkDestroyed()
	items := []*object.Projectile{a, b, c}

	kept := compact(items)
	if len(kept) != 2 || kept[0] != a || kept[1] != c {
		t.Fatalf("kept = %v, want [a c]", kept)
	}
	if items[2] != nil {
		t.Fatal("freed tail still references a projectile")
	}
}

func TestEnemyUnderTwoOrbitersHitOnce(t *testing.T) {
	w := newTestWorld(t)
	pos := offset(w.Player.Pos, 300, 0)
	g := guardianAround(t, w, pos, 2, 10)
	if len(g.Parts()) != 2 {
		t.Fatalf("orbiters = %d, want 2", len(g.Parts()))
	}
	e := w.SpawnEnemy(pos)
	for _, o := range g.Parts() {
		if !o.Bounds().Overlaps(e.Bounds()) {
			t.Fatal("orbiter does not overlap the enemy")
		}
	}

	w.RebuildIndex()
	w.ResolveCombat(0)

	if want := object.EnemyBaseHealth - object.GuardianDamage; e.Health != want {
		t.Fatalf("health = %g, want %g after a single skill hit", e.Health, want)
	}
}

func TestContactUsesStrongestEnemyDamage(t *testing.T) {
	w := newTestWorld(t)
	weak := w.SpawnEnemy(offset(w.Player.Pos, 10, 0))
	strong := w.SpawnEnemy(offset(w.Player.Pos, -10, 0))
	if weak.Damage != w.tuning.ContactDamageBase {
		t.Fatalf("spawned damage = %g, want tuning base %g", weak.Damage, w.tuning.ContactDamageBase)
	}
	strong.Damage = 12

	w.RebuildIndex()
	w.ResolveCombat(0)
	if want := object.PlayerBaseHealth - 14; w.Player.Health != want {
		t.Fatalf("health = %g, want %g", w.Player.Health, want)
	}
}
