// Package loop drives a game with the fixed-rate Input → Tick → Draw cycle
// on an ANSI terminal.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/survivors/internal/config"
	"github.com/tomz197/survivors/internal/draw"
	"github.com/tomz197/survivors/internal/game"
	"github.com/tomz197/survivors/internal/input"
)

// ErrInactive is returned when a session is dropped for inactivity.
var ErrInactive = errors.New("disconnected for inactivity")

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Nil reads the size of os.Stdout
	Logger       *log.Logger       // Nil discards
	Inactivity   bool              // Warn and then disconnect idle sessions
}

// Run plays g on the terminal behind r and w until the player quits, the
// input ends, ctx is canceled or the session idles out. The active run is
// always closed so its currency is banked.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, g *game.Game, opts Options) (err error) {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	stream := input.StartStream(r)
	renderer := NewRenderer(w, opts.TermSizeFunc)

	draw.HideCursor(w)
	draw.EnableMouse(w)
	draw.ClearScreen(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ShowCursor(w)
		draw.ClearScreen(w)
		err = errors.Join(err, g.Close())
	}()

	var ctl controls
	lastActive := time.Now()

	for {
		frameStart := time.Now()
		if ctx.Err() != nil {
			return nil
		}

		// ===== INPUT PHASE =====
		inp := input.ReadInput(stream)
		if inp.Quit || stream.Closed() {
			return nil
		}
		if len(inp.Pressed) > 0 {
			lastActive = frameStart
		}
		idle := frameStart.Sub(lastActive)
		if opts.Inactivity && idle > config.InactivityDisconnectUser*time.Second {
			opts.Logger.Info("session idle, disconnecting", "idle", idle.Round(time.Second))
			return ErrInactive
		}

		// ===== UPDATE PHASE =====
		renderer.Resize()
		before := g.State()
		g.Tick(ctl.translate(inp, g.Frame(), renderer.canvas))
		if g.Done() {
			return nil
		}
		if after := g.State(); after != before {
			ctl.cursor = 0
			if after == game.StatePlaying {
				input.ResetKeyInput(stream)
			}
		}

		// ===== DRAW PHASE =====
		warning := ""
		if opts.Inactivity && idle > config.InactivityWarnUser*time.Second {
			left := config.InactivityDisconnectUser*time.Second - idle
			warning = fmt.Sprintf("Idle - disconnecting in %ds, press any key", int(left.Seconds())+1)
		}
		if err := renderer.Draw(g.Frame(), ctl.cursor, warning); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}
}
