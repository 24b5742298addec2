package game

import "github.com/tomz197/survivors/internal/physics"

// Steer moves every live enemy toward the player while pushing it away
// from neighbors closer than the steering radius. Enemies within the
// radius of the player hold still. Must run after RebuildIndex.
func (w *World) Steer() {
	radius := w.tuning.SteeringRadius
	attraction := w.tuning.SteeringAttraction
	target := w.Player.Pos

	for _, e := range w.Enemies.Live() {
		toPlayer := target.Sub(e.Pos)
		if toPlayer.Len() <= radius {
			continue
		}
		dir := toPlayer.Normalize()

		var sep physics.Vec2
		for _, n := range w.query(physics.RectAround(e.Pos, 2*radius, 2*radius)) {
			if n == e || !n.Live() {
				continue
			}
			if physics.Distance(e.Pos, n.Pos) < radius {
				sep = sep.Add(e.Pos.Sub(n.Pos))
			}
		}
		if !sep.IsZero() {
			dir = dir.Scale(attraction).Add(sep.Normalize().Scale(1 - attraction))
		}

		e.Pos = e.Pos.Add(dir.Normalize().Scale(e.Speed))
	}
}
