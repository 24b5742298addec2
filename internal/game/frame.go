package game

import (
	"math"
	"time"

	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/object"
	"github.com/tomz197/survivors/internal/physics"
)

// Sprite is a visible actor in screen coordinates.
type Sprite struct {
	Kind object.Kind
	Rect physics.Rect // Relative to the camera's top-left corner
}

// HUD holds the scalar values shown during a run.
type HUD struct {
	HealthRatio float64
	ExpRatio    float64
	Level       int
	Elapsed     time.Duration
	Kills       int
	Currency    int // Earned this run
	Banked      int // Held in the profile
	Invincible  bool
}

// Offer is a level-up choice as shown to the player.
type Offer struct {
	Name        string
	Description string
}

// Frame is what the renderer consumes after each tick. Slices are reused
// by the next Tick.
type Frame struct {
	State   State
	Camera  physics.Vec2 // Top-left of the view in world coordinates
	Sprites []Sprite
	HUD     HUD
	Buttons []Button
	Offers  []Offer

	// World-space positions for the minimap.
	WorldSize physics.Vec2
	PlayerPos physics.Vec2
	EnemyPos  []physics.Vec2
}

// Frame returns the frame built by the last Tick.
func (g *Game) Frame() *Frame {
	return &g.frame
}

// Camera returns the top-left corner of a view centered on the player,
// clamped so the view stays inside the world.
func (w *World) Camera(viewW, viewH float64) physics.Vec2 {
	c := w.Player.Pos.Sub(physics.Vec2{X: viewW / 2, Y: viewH / 2})
	return c.Clamp(math.Max(w.tuning.WorldWidth-viewW, 0), math.Max(w.tuning.WorldHeight-viewH, 0))
}

func (g *Game) buildFrame() {
	f := &g.frame
	f.State = g.state
	f.Sprites = f.Sprites[:0]
	f.Offers = f.Offers[:0]
	f.EnemyPos = f.EnemyPos[:0]

	g.buttons = layout(g.menu(), g.buttons[:0])
	f.Buttons = g.buttons

	for _, u := range g.offers {
		f.Offers = append(f.Offers, Offer{Name: u.Name, Description: u.Description})
	}

	if g.state == StateStartMenu || g.state == StateShop || g.state == StateCredits {
		f.HUD = HUD{Banked: g.shop.Currency()}
		return
	}

	w := g.world
	p := w.Player
	f.HUD = HUD{
		HealthRatio: p.HealthRatio(),
		ExpRatio:    p.ExpRatio(),
		Level:       p.Level,
		Elapsed:     g.clock.Elapsed(),
		Kills:       w.Kills,
		Currency:    int(math.Floor(w.RunCurrency)),
		Banked:      g.shop.Currency(),
		Invincible:  p.Invincible,
	}

	f.Camera = w.Camera(config.ViewWidth, config.ViewHeight)
	view := physics.Rect{X: f.Camera.X, Y: f.Camera.Y, W: config.ViewWidth, H: config.ViewHeight}
	for _, pk := range w.Pickups {
		f.addVisible(pk, view)
	}
	f.WorldSize = physics.Vec2{X: w.tuning.WorldWidth, Y: w.tuning.WorldHeight}
	f.PlayerPos = p.Pos
	for _, e := range w.Enemies.Live() {
		f.EnemyPos = append(f.EnemyPos, e.Pos)
		f.addVisible(e, view)
	}
	for _, pr := range w.Projectiles {
		f.addVisible(pr, view)
	}
	for _, kind := range skillOrder {
		if s, ok := p.Skills[kind]; ok {
			for _, o := range s.Parts() {
				f.addVisible(o, view)
			}
		}
	}
	f.addVisible(p, view)
}

func (f *Frame) addVisible(v object.Visual, view physics.Rect) {
	b := v.Bounds()
	if !b.Overlaps(view) {
		return
	}
	b.X -= view.X
	b.Y -= view.Y
	f.Sprites = append(f.Sprites, Sprite{Kind: v.Kind(), Rect: b})
}
