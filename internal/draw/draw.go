// Package draw renders half-block graphics and text to ANSI terminals.
package draw

import "io"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

const (
	seqClearScreen  = "\033[H\033[2J"
	seqEraseFrame   = "\033[H\033[J"
	seqHideCursor   = "\033[?25l"
	seqShowCursor   = "\033[?25h"
	seqEnableMouse  = "\033[?1000h\033[?1006h" // Press reporting, SGR encoding
	seqDisableMouse = "\033[?1006l\033[?1000l"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) { io.WriteString(w, seqClearScreen) }

// EraseFrame moves the cursor home and erases everything after it without
// resetting the scrollback.
func EraseFrame(w io.Writer) { io.WriteString(w, seqEraseFrame) }

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) { io.WriteString(w, seqHideCursor) }

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) { io.WriteString(w, seqShowCursor) }

// EnableMouse turns on SGR mouse press reporting.
func EnableMouse(w io.Writer) { io.WriteString(w, seqEnableMouse) }

// DisableMouse turns mouse reporting off again.
func DisableMouse(w io.Writer) { io.WriteString(w, seqDisableMouse) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
