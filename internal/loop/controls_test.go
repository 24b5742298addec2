package loop

import (
	"testing"

	"github.com/tomz197/survivors/internal/draw"
	"github.com/tomz197/survivors/internal/game"
	"github.com/tomz197/survivors/internal/input"
	"github.com/tomz197/survivors/internal/physics"
)

func menuFrame(n int) *game.Frame {
	f := &game.Frame{State: game.StateStartMenu}
	for i := 0; i < n; i++ {
		f.Buttons = append(f.Buttons, game.Button{Label: "b", Enabled: true})
	}
	return f
}

func testCanvas() *draw.Canvas {
	return draw.NewScaledCanvas(128, 48, 1024, 768) // 1/8 scale on both axes
}

func TestTranslateMovement(t *testing.T) {
	var c controls
	got := c.translate(input.Input{Left: true, Down: true}, menuFrame(0), testCanvas())
	if got.Move != (physics.Vec2{X: -1, Y: 1}) {
		t.Fatalf("move = %+v, want (-1, 1)", got.Move)
	}

	got = c.translate(input.Input{Left: true, Right: true}, menuFrame(0), testCanvas())
	if !got.Move.IsZero() {
		t.Fatalf("opposite keys should cancel, got %+v", got.Move)
	}
}

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		name  string
		key   input.KeyPress
		want  game.EventKind
		index int
	}{
		{"pause", input.KeyPress{Key: input.KeyPause}, game.EventPauseToggle, 0},
		{"escape", input.KeyPress{Key: input.KeyEscape}, game.EventBack, 0},
		{"digit", input.KeyPress{Key: input.KeyDigit, Digit: 3}, game.EventSelect, 2},
		{"enter", input.KeyPress{Key: input.KeyEnter}, game.EventSelect, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c controls
			got := c.translate(input.Input{Keys: []input.KeyPress{tt.key}}, menuFrame(4), testCanvas())
			if len(got.Events) != 1 {
				t.Fatalf("events = %+v, want one", got.Events)
			}
			if got.Events[0].Kind != tt.want || got.Events[0].Index != tt.index {
				t.Fatalf("event = %+v, want kind %v index %d", got.Events[0], tt.want, tt.index)
			}
		})
	}
}

func TestTranslateDigitZeroIgnored(t *testing.T) {
	var c controls
	got := c.translate(input.Input{Keys: []input.KeyPress{{Key: input.KeyDigit, Digit: 0}}}, menuFrame(4), testCanvas())
	if len(got.Events) != 0 {
		t.Fatalf("events = %+v, want none", got.Events)
	}
}

func TestCursorWrapsAndSelects(t *testing.T) {
	var c controls
	up := input.Input{Keys: []input.KeyPress{{Key: input.KeyUp}}}
	c.translate(up, menuFrame(3), testCanvas())
	if c.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 after wrapping up", c.cursor)
	}

	down := input.Input{Keys: []input.KeyPress{{Key: input.KeyDown}, {Key: input.KeySpace}}}
	got := c.translate(down, menuFrame(3), testCanvas())
	if c.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after wrapping down", c.cursor)
	}
	if len(got.Events) != 1 || got.Events[0].Kind != game.EventSelect || got.Events[0].Index != 0 {
		t.Fatalf("events = %+v, want select 0", got.Events)
	}
}

func TestCursorResetWhenMenuShrinks(t *testing.T) {
	c := controls{cursor: 5}
	got := c.translate(input.Input{Keys: []input.KeyPress{{Key: input.KeyEnter}}}, menuFrame(2), testCanvas())
	if got.Events[0].Index != 0 {
		t.Fatalf("select index = %d, want 0", got.Events[0].Index)
	}
}

func TestEnterWithoutButtons(t *testing.T) {
	var c controls
	got := c.translate(input.Input{Keys: []input.KeyPress{{Key: input.KeyEnter}}}, menuFrame(0), testCanvas())
	if len(got.Events) != 0 {
		t.Fatalf("events = %+v, want none while playing", got.Events)
	}
}

func TestClickMapsToLogical(t *testing.T) {
	var c controls
	got := c.translate(input.Input{Clicks: []input.Click{{Col: 65, Row: 25}}}, menuFrame(0), testCanvas())
	if len(got.Events) != 1 || got.Events[0].Kind != game.EventClick {
		t.Fatalf("events = %+v, want one click", got.Events)
	}
	if p := got.Events[0].Pos; p.X != 512 || p.Y != 388 {
		t.Fatalf("click at %+v, want (512, 388)", p)
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(300, 100)
	if w != 256 || h != 96 || col != 22 || row != 2 {
		t.Fatalf("clampTermSize = %d %d %d %d", w, h, col, row)
	}
	w, h, col, row = clampTermSize(80, 24)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Fatalf("small terminal changed: %d %d %d %d", w, h, col, row)
	}
}
