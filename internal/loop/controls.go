package loop

import (
	"github.com/tomz197/survivors/internal/draw"
	"github.com/tomz197/survivors/internal/game"
	"github.com/tomz197/survivors/internal/input"
	"github.com/tomz197/survivors/internal/physics"
)

// controls maps terminal input to simulation input and keeps the menu cursor.
type controls struct {
	cursor int
	events []game.Event
}

// translate converts one frame of terminal input. prev is the frame shown
// to the player, so the cursor moves over the buttons they can see.
func (c *controls) translate(in input.Input, prev *game.Frame, canvas *draw.Canvas) game.Input {
	c.events = c.events[:0]
	buttons := len(prev.Buttons)
	if c.cursor >= buttons {
		c.cursor = 0
	}

	for _, k := range in.Keys {
		switch k.Key {
		case input.KeyPause:
			c.events = append(c.events, game.Event{Kind: game.EventPauseToggle})
		case input.KeyEscape:
			c.events = append(c.events, game.Event{Kind: game.EventBack})
		case input.KeyEnter, input.KeySpace:
			if buttons > 0 {
				c.events = append(c.events, game.Event{Kind: game.EventSelect, Index: c.cursor})
			}
		case input.KeyDigit:
			if k.Digit >= 1 {
				c.events = append(c.events, game.Event{Kind: game.EventSelect, Index: k.Digit - 1})
			}
		case input.KeyUp:
			if buttons > 0 {
				c.cursor = (c.cursor + buttons - 1) % buttons
			}
		case input.KeyDown:
			if buttons > 0 {
				c.cursor = (c.cursor + 1) % buttons
			}
		}
	}

	for _, click := range in.Clicks {
		x, y := canvas.TerminalToLogical(click.Col, click.Row)
		c.events = append(c.events, game.Event{Kind: game.EventClick, Pos: physics.Vec2{X: x, Y: y}})
	}

	var move physics.Vec2
	if in.Left {
		move.X--
	}
	if in.Right {
		move.X++
	}
	if in.Up {
		move.Y--
	}
	if in.Down {
		move.Y++
	}
	return game.Input{Move: move, Events: c.events}
}
