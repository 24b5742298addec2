package loop

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/draw"
	"github.com/tomz197/survivors/internal/game"
	"github.com/tomz197/survivors/internal/object"
	"github.com/tomz197/survivors/internal/physics"
)

const (
	barWidth       = 20
	minimapWidth   = 20
	minimapSubRows = 12 // Two per terminal row
	blinkPeriod    = 100 * time.Millisecond
)

var titleArt = []string{
	` ___ _   _ _ ___   _____   _____  ___  ___ `,
	`/ __| | | | '_\ \ / /_ _\ \ / / _ \| _ \/ __|`,
	`\__ \ |_| | |  \ V / | | \ V / (_) |   /\__ \`,
	`|___/\___/|_|   \_/ |___| \_/ \___/|_|_\|___/`,
}

var gameOverArt = []string{
	`  ___   _   __  __ ___    _____   _____ ___ `,
	` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \`,
	`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   /`,
	` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\`,
}

var controlLines = []string{
	"WASD / HJKL / arrows   move",
	"P                      pause",
	"ESC                    back",
	"1-9, ENTER, click      choose",
	"Q                      quit",
}

var creditLines = []string{
	"Survive the horde. Level up. Spend your earnings.",
	"",
	"Design and code   the survivors contributors",
	"Terminal drawing  half-block canvas renderer",
	"Made with         wish, lipgloss and log by Charm",
}

// styles holds the lipgloss styles bound to one session's renderer.
type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	faint    lipgloss.Style
	button   lipgloss.Style
	selected lipgloss.Style
	disabled lipgloss.Style
	health   lipgloss.Style
	exp      lipgloss.Style
	warning  lipgloss.Style
	self     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		text:     r.NewStyle().Foreground(lipgloss.Color("252")),
		faint:    r.NewStyle().Foreground(lipgloss.Color("244")),
		button:   r.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		selected: r.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Bold(true),
		disabled: r.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")),
		health:   r.NewStyle().Foreground(lipgloss.Color("196")),
		exp:      r.NewStyle().Foreground(lipgloss.Color("39")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		self:     r.NewStyle().Foreground(lipgloss.Color("51")),
	}
}

// Renderer draws frames to a terminal. It owns the canvas and the output
// buffer so a session allocates nothing per frame in the steady state.
type Renderer struct {
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	w        io.Writer
	sizeFunc draw.TermSizeFunc
	styles   styles

	prevState  game.State
	prevWarn   bool
	firstFrame bool
	minimap    [minimapSubRows][minimapWidth]byte
}

// NewRenderer creates a renderer for w sized by sizeFunc.
func NewRenderer(w io.Writer, sizeFunc draw.TermSizeFunc) *Renderer {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(termenv.ANSI256)

	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Renderer{
		canvas:     canvas,
		cw:         draw.NewChunkWriter(w, offsetCol, offsetRow),
		w:          w,
		sizeFunc:   sizeFunc,
		styles:     newStyles(lr),
		firstFrame: true,
	}
}

// Resize follows terminal size changes, clamped to the largest render area.
func (r *Renderer) Resize() {
	termWidth, termHeight, err := r.sizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	if renderWidth != r.canvas.TerminalWidth() || renderHeight != r.canvas.TerminalHeight() ||
		offsetCol != r.canvas.OffsetCol() || offsetRow != r.canvas.OffsetRow() {
		draw.ClearScreen(r.w)
	}
	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// Draw renders f with the menu cursor on button cursor. A non-empty warning
// replaces the screen with an inactivity notice.
func (r *Renderer) Draw(f *game.Frame, cursor int, warning string) error {
	warn := warning != ""
	// Erase everything on state changes. Text overlays are not part of the
	// canvas and would otherwise linger.
	if r.firstFrame || f.State != r.prevState || warn != r.prevWarn {
		r.cw.WriteString("\033[H\033[2J")
		r.firstFrame = false
		r.prevState = f.State
		r.prevWarn = warn
	} else {
		r.cw.WriteString("\033[H\033[J")
	}

	r.canvas.Clear()
	if f.State.InRun() || f.State == game.StateGameOver {
		r.drawSprites(f)
	}
	r.canvas.Render(r.cw)

	if warn {
		r.drawInactivity(warning)
		return r.cw.Flush()
	}

	switch f.State {
	case game.StateStartMenu:
		r.drawStartMenu(f, cursor)
	case game.StateShop:
		r.drawShop(f, cursor)
	case game.StateCredits:
		r.drawCredits(f, cursor)
	case game.StatePlaying:
		r.drawHUD(f)
		r.drawMinimap(f)
	case game.StatePaused:
		r.drawHUD(f)
		r.drawBanner("P A U S E D")
		r.drawButtons(f.Buttons, cursor)
	case game.StateLevelUp:
		r.drawHUD(f)
		r.drawBanner(fmt.Sprintf("LEVEL %d - CHOOSE AN UPGRADE", f.HUD.Level))
		r.drawOffers(f, cursor)
	case game.StateGameOver:
		r.drawGameOver(f, cursor)
	}
	return r.cw.Flush()
}

func (r *Renderer) drawSprites(f *game.Frame) {
	c := r.canvas
	for _, s := range f.Sprites {
		b := s.Rect
		switch s.Kind {
		case object.KindPickup:
			p := c.BorrowPoints(4)
			center := b.Center()
			p[0] = draw.Point{X: center.X, Y: b.Y}
			p[1] = draw.Point{X: b.Right(), Y: center.Y}
			p[2] = draw.Point{X: center.X, Y: b.Bottom()}
			p[3] = draw.Point{X: b.X, Y: center.Y}
			c.DrawPolygon(p, true)
		case object.KindOrbiter:
			c.StrokeRect(b.X, b.Y, b.W, b.H)
		case object.KindPlayer:
			if f.HUD.Invincible && time.Now().UnixMilli()/blinkPeriod.Milliseconds()%2 == 0 {
				c.StrokeRect(b.X, b.Y, b.W, b.H)
				continue
			}
			c.FillRect(b.X, b.Y, b.W, b.H)
		default:
			c.FillRect(b.X, b.Y, b.W, b.H)
		}
	}
}

// centerCol returns the column that centers text of the given width.
func (r *Renderer) centerCol(width int) int {
	return max(1, (r.canvas.TerminalWidth()-width)/2+1)
}

func (r *Renderer) writeCentered(row int, style lipgloss.Style, s string) {
	r.cw.WriteAt(r.centerCol(lipgloss.Width(s)), row, style.Render(s))
}

func (r *Renderer) drawArt(art []string, row int) int {
	width := 0
	for _, line := range art {
		width = max(width, lipgloss.Width(line))
	}
	col := r.centerCol(width)
	for i, line := range art {
		r.cw.WriteAt(col, row+i, r.styles.title.Render(line))
	}
	return row + len(art)
}

func (r *Renderer) rowAt(y float64) int {
	_, row := r.canvas.LogicalToTerminal(0, y)
	return row
}

func (r *Renderer) drawBanner(text string) {
	r.writeCentered(r.rowAt(180), r.styles.title, text)
}

func (r *Renderer) drawButtons(buttons []game.Button, cursor int) {
	for i, b := range buttons {
		r.drawButton(i, b, i == cursor)
	}
}

func (r *Renderer) drawButton(i int, b game.Button, selected bool) {
	col, row := r.canvas.LogicalToTerminal(b.Rect.X, b.Rect.Center().Y)
	endCol, _ := r.canvas.LogicalToTerminal(b.Rect.Right(), b.Rect.Y)
	width := max(endCol-col, 1)

	style := r.styles.button
	switch {
	case !b.Enabled:
		style = r.styles.disabled
	case selected:
		style = r.styles.selected
	}
	label := fmt.Sprintf("%d. %s", i+1, b.Label)
	r.cw.WriteAt(col, row, style.Width(width).Align(lipgloss.Center).MaxWidth(width).Render(label))
}

func (r *Renderer) drawStartMenu(f *game.Frame, cursor int) {
	row := r.drawArt(titleArt, max(1, r.rowAt(60)))
	r.writeCentered(row+1, r.styles.faint, fmt.Sprintf("Banked: %d", f.HUD.Banked))
	r.drawButtons(f.Buttons, cursor)

	if len(f.Buttons) == 0 {
		return
	}
	last := f.Buttons[len(f.Buttons)-1].Rect
	row = r.rowAt(last.Bottom()) + 2
	for i, line := range controlLines {
		r.writeCentered(row+i, r.styles.faint, line)
	}
}

func (r *Renderer) drawShop(f *game.Frame, cursor int) {
	r.writeCentered(r.rowAt(120), r.styles.title, "S H O P")
	r.writeCentered(r.rowAt(180), r.styles.text, fmt.Sprintf("Currency: %d", f.HUD.Banked))
	r.drawButtons(f.Buttons, cursor)
}

func (r *Renderer) drawCredits(f *game.Frame, cursor int) {
	r.writeCentered(r.rowAt(60), r.styles.title, "C R E D I T S")
	row := r.rowAt(120)
	for i, line := range creditLines {
		r.writeCentered(row+i, r.styles.text, line)
	}
	r.drawButtons(f.Buttons, cursor)
}

func (r *Renderer) drawOffers(f *game.Frame, cursor int) {
	for i, b := range f.Buttons {
		r.drawButton(i, b, i == cursor)
		if i < len(f.Offers) && f.Offers[i].Description != "" {
			_, row := r.canvas.LogicalToTerminal(0, b.Rect.Bottom())
			r.writeCentered(row, r.styles.faint, f.Offers[i].Description)
		}
	}
}

func (r *Renderer) drawGameOver(f *game.Frame, cursor int) {
	row := r.drawArt(gameOverArt, max(1, r.rowAt(60)))
	h := f.HUD
	stats := fmt.Sprintf("Survived %s   Level %d   %d kills", game.FormatElapsed(h.Elapsed), h.Level, h.Kills)
	r.writeCentered(row+1, r.styles.text, stats)
	r.writeCentered(row+2, r.styles.text, fmt.Sprintf("+%d currency   %d banked", h.Currency, h.Banked))
	r.drawButtons(f.Buttons, cursor)
}

func (r *Renderer) drawInactivity(warning string) {
	center := r.canvas.TerminalHeight() / 2
	r.writeCentered(center-2, r.styles.warning, "INACTIVITY WARNING")
	r.writeCentered(center, r.styles.text, warning)
}

// bar renders a ratio as a fixed-width gauge.
func bar(style lipgloss.Style, ratio float64, width int) string {
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))
	return style.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

func (r *Renderer) drawHUD(f *game.Frame) {
	h := f.HUD
	termWidth := r.canvas.TerminalWidth()
	termHeight := r.canvas.TerminalHeight()

	left := "HP " + bar(r.styles.health, h.HealthRatio, barWidth) +
		fmt.Sprintf("  Lv %-3d ", h.Level) + bar(r.styles.exp, h.ExpRatio, barWidth)
	r.cw.WriteAt(2, 1, left)

	clock := game.FormatElapsed(h.Elapsed)
	r.writeCentered(1, r.styles.text, clock)

	right := fmt.Sprintf("Kills: %-5d Coins: %-5d", h.Kills, h.Currency)
	r.cw.WriteAt(max(1, termWidth-len(right)-1), 1, r.styles.text.Render(right))

	help := "P pause  ESC menu  Q quit"
	r.cw.WriteAt(2, termHeight, r.styles.faint.Render(help))
}

// drawMinimap draws an overview of the world in the bottom-right corner.
// Uses half-block characters for 2x vertical resolution. Self is bright cyan.
func (r *Renderer) drawMinimap(f *game.Frame) {
	termWidth := r.canvas.TerminalWidth()
	termHeight := r.canvas.TerminalHeight()
	height := minimapSubRows / 2
	startCol := termWidth - minimapWidth - 2
	startRow := termHeight - height - 2
	if startCol < 1 || startRow < 3 || f.WorldSize.X <= 0 || f.WorldSize.Y <= 0 {
		return // Not enough space
	}

	grid := &r.minimap
	*grid = [minimapSubRows][minimapWidth]byte{}
	mark := func(p physics.Vec2, v byte) {
		col := clampInt(int(p.X/f.WorldSize.X*minimapWidth), 0, minimapWidth-1)
		sub := clampInt(int(p.Y/f.WorldSize.Y*minimapSubRows), 0, minimapSubRows-1)
		if grid[sub][col] < v {
			grid[sub][col] = v
		}
	}
	for _, p := range f.EnemyPos {
		mark(p, 1)
	}
	mark(f.PlayerPos, 2)

	cw := r.cw
	cw.WriteAt(startCol, startRow, "┌"+strings.Repeat("─", minimapWidth)+"┐")
	var line strings.Builder
	for termRow := 0; termRow < height; termRow++ {
		line.Reset()
		for col := 0; col < minimapWidth; col++ {
			top := grid[termRow*2][col]
			bot := grid[termRow*2+1][col]
			var ch string
			switch {
			case top != 0 && bot != 0:
				ch = string(draw.BlockFull)
			case top != 0:
				ch = string(draw.BlockUpperHalf)
			case bot != 0:
				ch = string(draw.BlockLowerHalf)
			default:
				ch = " "
			}
			if top == 2 || bot == 2 {
				ch = r.styles.self.Render(ch)
			}
			line.WriteString(ch)
		}
		cw.WriteAt(startCol, startRow+1+termRow, "│"+line.String()+"│")
	}
	cw.WriteAt(startCol, startRow+1+height, "└"+strings.Repeat("─", minimapWidth)+"┘")
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
