// Package input turns a raw terminal byte stream into held keys and
// discrete key presses.
package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key release, so holding relies on autorepeat.
const keyHoldDuration = 120 * time.Millisecond

// Key identifies a discrete key press.
type Key int

const (
	KeyPause Key = iota + 1
	KeyEscape
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyDigit
)

// KeyPress is one discrete press seen this frame.
type KeyPress struct {
	Key   Key
	Digit int // Set for KeyDigit
}

// Click is a mouse button press at a 1-based terminal cell.
type Click struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Keys    []KeyPress // In arrival order
	Clicks  []Click
	Pressed []byte
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	closed  bool
	pending []byte // Unfinished escape sequence from the previous frame
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, time.Now())
}

// ResetKeyInput forgets held movement keys, e.g. when a menu closes.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// maxEscapeLen bounds how many bytes of an unfinished escape sequence are
// carried over to the next frame.
const maxEscapeLen = 32

// parse updates held key state from buf and collects discrete presses.
// An escape sequence cut off at the end of buf is kept and completed by the
// next call. A lone ESC counts as the Escape key once a frame passes with
// nothing following it.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	stale := false
	if len(s.pending) > 0 {
		stale = len(buf) == 0
		joined := make([]byte, 0, len(s.pending)+len(buf))
		buf = append(append(joined, s.pending...), buf...)
		s.pending = s.pending[:0]
	}
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&s.state, &in, b, now)
			continue
		}

		rest := buf[i:]
		if len(rest) == 1 {
			if stale {
				applyByte(&s.state, &in, b, now)
			} else {
				s.pending = append(s.pending, b)
			}
			break
		}
		if rest[1] != '[' {
			applyByte(&s.state, &in, b, now) // ESC followed by a plain key
			continue
		}

		n, complete := csiLen(rest)
		if !complete {
			if !stale && len(rest) <= maxEscapeLen {
				s.pending = append(s.pending, rest...)
			}
			break // A truncated sequence that never finished is dropped
		}
		if n > 2 {
			s.applyCSI(&in, rest[2:n-1], rest[n-1], now)
		}
		i += n - 1
	}

	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	return in
}

// csiLen returns the length of the control sequence "ESC [ params final" at
// the start of seq and whether its final byte has arrived. A byte outside
// the parameter range ends a malformed sequence just before it.
func csiLen(seq []byte) (int, bool) {
	for i := 2; i < len(seq); i++ {
		c := seq[i]
		switch {
		case c >= 0x40 && c <= 0x7e:
			return i + 1, true
		case c < 0x20 || c > 0x3f:
			return i, true
		}
	}
	return len(seq), false
}

// applyCSI handles arrow keys and SGR mouse reports. Other sequences are
// swallowed whole.
func (s *Stream) applyCSI(in *Input, params []byte, final byte, now time.Time) {
	if final < 0x40 {
		return // Malformed
	}
	switch final {
	case 'A':
		s.state.up = now
		in.Keys = append(in.Keys, KeyPress{Key: KeyUp})
	case 'B':
		s.state.down = now
		in.Keys = append(in.Keys, KeyPress{Key: KeyDown})
	case 'C':
		s.state.right = now
	case 'D':
		s.state.left = now
	case 'M', 'm':
		if len(params) > 0 && params[0] == '<' {
			if click, ok := parseMouse(params[1:], final); ok {
				in.Clicks = append(in.Clicks, click)
			}
		}
	}
}

// applyByte handles a single-byte key.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
		in.Keys = append(in.Keys, KeyPress{Key: KeyUp})
	case 's', 'S', 'j', 'J':
		state.down = now
		in.Keys = append(in.Keys, KeyPress{Key: KeyDown})
	case 'p', 'P':
		in.Keys = append(in.Keys, KeyPress{Key: KeyPause})
	case ' ':
		in.Keys = append(in.Keys, KeyPress{Key: KeySpace})
	case '\n', '\r':
		in.Keys = append(in.Keys, KeyPress{Key: KeyEnter})
	case '\x1b':
		in.Keys = append(in.Keys, KeyPress{Key: KeyEscape})
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Keys = append(in.Keys, KeyPress{Key: KeyDigit, Digit: int(b - '0')})
	}
}

// parseMouse decodes the "b;col;row" body of an SGR mouse report. Only
// left-button presses (final byte M) produce a click.
func parseMouse(body []byte, final byte) (Click, bool) {
	fields := bytes.Split(body, []byte{';'})
	if len(fields) != 3 || final != 'M' {
		return Click{}, false
	}
	var v [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return Click{}, false
		}
		v[i] = n
	}
	if v[0] != 0 {
		return Click{}, false
	}
	return Click{Col: v[1], Row: v[2]}, true
}
