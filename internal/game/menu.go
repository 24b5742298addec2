package game

import (
	"fmt"

	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/physics"
)

// Menu layout in logical screen coordinates.
const (
	buttonWidth  = 420
	buttonHeight = 50
	buttonGap    = 16
	menuTop      = 260
)

// Button is a clickable menu entry.
type Button struct {
	Label   string
	Rect    physics.Rect
	Enabled bool
}

type menuItem struct {
	label   string
	enabled bool
	action  func()
}

// layout stacks items as centered buttons.
func layout(items []menuItem, dst []Button) []Button {
	x := (config.ViewWidth - buttonWidth) / 2.0
	for i, it := range items {
		y := menuTop + float64(i)*(buttonHeight+buttonGap)
		dst = append(dst, Button{
			Label:   it.label,
			Rect:    physics.Rect{X: x, Y: y, W: buttonWidth, H: buttonHeight},
			Enabled: it.enabled,
		})
	}
	return dst
}

// menu returns the actionable items for the current state.
func (g *Game) menu() []menuItem {
	switch g.state {
	case StateStartMenu:
		return []menuItem{
			{"Start", true, g.startRun},
			{"Shop", true, func() { g.goTo(StateShop) }},
			{"Credits", true, func() { g.goTo(StateCredits) }},
			{"Quit", true, g.quit},
		}
	case StateShop:
		items := make([]menuItem, 0, len(g.shop.Upgrades())+1)
		for _, u := range g.shop.Upgrades() {
			level := g.shop.Level(u.Key)
			label := fmt.Sprintf("%s  Lv %d/%d  MAX", u.Name, level, u.MaxLevel)
			enabled := level < u.MaxLevel
			if enabled {
				cost := u.Cost(level)
				label = fmt.Sprintf("%s  Lv %d/%d  %d", u.Name, level, u.MaxLevel, cost)
				enabled = cost <= g.shop.Currency()
			}
			key := u.Key
			items = append(items, menuItem{label, enabled, func() { g.purchase(key) }})
		}
		return append(items, menuItem{"Back", true, func() { g.goTo(StateStartMenu) }})
	case StateCredits:
		return []menuItem{{"Back", true, func() { g.goTo(StateStartMenu) }}}
	case StatePaused:
		return []menuItem{
			{"Resume", true, func() { g.goTo(StatePlaying) }},
			{"Main Menu", true, g.abandonRun},
		}
	case StateLevelUp:
		items := make([]menuItem, 0, len(g.offers))
		for i, u := range g.offers {
			idx := i
			items = append(items, menuItem{u.Name, true, func() { g.chooseUpgrade(idx) }})
		}
		return items
	case StateGameOver:
		return []menuItem{
			{"Play Again", true, g.startRun},
			{"Main Menu", true, func() { g.goTo(StateStartMenu) }},
		}
	}
	return nil
}

// activate runs menu item i if it exists and is enabled.
func (g *Game) activate(i int) {
	items := g.menu()
	if i < 0 || i >= len(items) || !items[i].enabled {
		return
	}
	items[i].action()
}

// click activates the button under pos, if any.
func (g *Game) click(pos physics.Vec2) {
	g.buttons = layout(g.menu(), g.buttons[:0])
	for i, b := range g.buttons {
		if b.Rect.ContainsPoint(pos) {
			g.activate(i)
			return
		}
	}
}
