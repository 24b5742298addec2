package input

import (
	"testing"
	"time"
)

func TestParseArrowsHoldAndRelease(t *testing.T) {
	s := &Stream{}
	now := time.Unix(100, 0)

	in := s.parse([]byte("\x1b[A\x1b[C"), now)
	if !in.Up || !in.Right || in.Left || in.Down {
		t.Fatalf("held keys = %+v", in)
	}
	if len(in.Keys) != 1 || in.Keys[0].Key != KeyUp {
		t.Fatalf("keys = %+v, want one KeyUp", in.Keys)
	}

	in = s.parse(nil, now.Add(keyHoldDuration/2))
	if !in.Up || !in.Right {
		t.Fatal("keys released before the hold duration")
	}
	in = s.parse(nil, now.Add(keyHoldDuration))
	if in.Up || in.Right {
		t.Fatal("keys still held after the hold duration")
	}
}

func TestParseDiscreteKeys(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte("p3\r \x1b"), time.Unix(0, 0))
	// The trailing ESC is only a key once nothing follows it
	in.Keys = append(in.Keys, s.parse(nil, time.Unix(0, 0)).Keys...)

	want := []KeyPress{
		{Key: KeyPause},
		{Key: KeyDigit, Digit: 3},
		{Key: KeyEnter},
		{Key: KeySpace},
		{Key: KeyEscape},
	}
	if len(in.Keys) != len(want) {
		t.Fatalf("keys = %+v, want %+v", in.Keys, want)
	}
	for i := range want {
		if in.Keys[i] != want[i] {
			t.Fatalf("key %d = %+v, want %+v", i, in.Keys[i], want[i])
		}
	}
}

func TestParseQuit(t *testing.T) {
	s := &Stream{}
	if in := s.parse([]byte("q"), time.Unix(0, 0)); !in.Quit {
		t.Fatal("q did not quit")
	}
}

func TestParseMouseClick(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte("\x1b[<0;12;7M\x1b[<0;12;7m"), time.Unix(0, 0))
	if len(in.Clicks) != 1 || in.Clicks[0] != (Click{Col: 12, Row: 7}) {
		t.Fatalf("clicks = %+v, want one press at 12,7", in.Clicks)
	}
	if len(in.Keys) != 0 {
		t.Fatalf("mouse report leaked keys: %+v", in.Keys)
	}
}

func TestParseMouseIgnoresOtherButtons(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte("\x1b[<2;5;5M"), time.Unix(0, 0))
	if len(in.Clicks) != 0 {
		t.Fatalf("right click reported: %+v", in.Clicks)
	}
}

func TestParseSplitMouseReport(t *testing.T) {
	s := &Stream{}
	now := time.Unix(0, 0)

	first := s.parse([]byte("\x1b[<0;"), now)
	second := s.parse([]byte("12;5M"), now)
	if len(first.Keys) != 0 || len(second.Keys) != 0 {
		t.Fatalf("split report produced keys: %+v then %+v", first.Keys, second.Keys)
	}
	if len(first.Clicks) != 0 || len(second.Clicks) != 1 || second.Clicks[0] != (Click{Col: 12, Row: 5}) {
		t.Fatalf("clicks = %+v then %+v, want one press at 12,5", first.Clicks, second.Clicks)
	}
}

func TestParseSplitArrow(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{"after ESC", []string{"\x1b", "[D"}},
		{"after bracket", []string{"\x1b[", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{}
			now := time.Unix(0, 0)
			var last Input
			for _, part := range tt.parts {
				last = s.parse([]byte(part), now)
				if len(last.Keys) != 0 || last.Right {
					t.Fatalf("part %q produced %+v", part, last)
				}
			}
			if !last.Left {
				t.Fatal("left arrow not held")
			}
		})
	}
}

func TestParseLoneEscapeAfterQuietFrame(t *testing.T) {
	s := &Stream{}
	now := time.Unix(0, 0)
	if in := s.parse([]byte("\x1b"), now); len(in.Keys) != 0 {
		t.Fatalf("ESC reported before the next frame: %+v", in.Keys)
	}
	in := s.parse(nil, now)
	if len(in.Keys) != 1 || in.Keys[0].Key != KeyEscape {
		t.Fatalf("keys = %+v, want KeyEscape", in.Keys)
	}
	if in = s.parse(nil, now); len(in.Keys) != 0 {
		t.Fatalf("ESC reported twice: %+v", in.Keys)
	}
}

func TestParseEscapeThenKey(t *testing.T) {
	s := &Stream{}
	s.parse([]byte("\x1b"), time.Unix(0, 0))
	in := s.parse([]byte("p"), time.Unix(0, 0))
	if len(in.Keys) != 2 || in.Keys[0].Key != KeyEscape || in.Keys[1].Key != KeyPause {
		t.Fatalf("keys = %+v, want Escape then Pause", in.Keys)
	}
}

func TestParseUnfinishedSequenceDropped(t *testing.T) {
	s := &Stream{}
	now := time.Unix(0, 0)
	s.parse([]byte("\x1b[<0;1"), now)
	in := s.parse(nil, now)
	if len(in.Keys) != 0 || len(in.Clicks) != 0 {
		t.Fatalf("stale fragment produced %+v", in)
	}
	if in = s.parse([]byte("1"), now); len(in.Keys) != 1 || in.Keys[0].Digit != 1 {
		t.Fatalf("input after the dropped fragment = %+v", in.Keys)
	}
}

func TestParseSwallowsUnknownSequences(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte("\x1b[5~\x1b[1;2A"), time.Unix(0, 0))
	if len(in.Keys) != 1 || in.Keys[0].Key != KeyUp {
		t.Fatalf("keys = %+v, want only KeyUp", in.Keys)
	}
}
