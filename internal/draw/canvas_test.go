package draw

import (
	"bytes"
	"strings"
	"testing"
)

func countPixels(c *Canvas) int {
	n := 0
	for _, p := range c.pixels {
		if p {
			n++
		}
	}
	return n
}

func TestFillRectCoversScaledArea(t *testing.T) {
	c := NewScaledCanvas(128, 48, 1024, 768) // 1/8 scale
	c.FillRect(80, 80, 32, 16)
	if got := countPixels(c); got != 4*2 {
		t.Fatalf("pixels = %d, want 8", got)
	}
	if !c.pixels[10*c.termWidth+10] || !c.pixels[11*c.termWidth+13] {
		t.Fatal("expected corners of the scaled rectangle to be set")
	}
}

func TestFillRectTinyStillVisible(t *testing.T) {
	c := NewScaledCanvas(128, 48, 1024, 768)
	c.FillRect(8, 8, 1, 1)
	if countPixels(c) != 1 {
		t.Fatalf("pixels = %d, want 1", countPixels(c))
	}
}

func TestStrokeRectLeavesInteriorEmpty(t *testing.T) {
	c := NewScaledCanvas(128, 48, 1024, 768)
	c.StrokeRect(80, 80, 80, 80)
	if c.pixels[15*c.termWidth+15] {
		t.Fatal("interior pixel set by outline")
	}
	if !c.pixels[10*c.termWidth+10] || !c.pixels[20*c.termWidth+20] {
		t.Fatal("outline corners missing")
	}
}

func TestDrawingClipsToCanvas(t *testing.T) {
	c := NewScaledCanvas(16, 8, 128, 128)
	c.FillRect(-100, -100, 1000, 1000)
	if got := countPixels(c); got != 16*16 {
		t.Fatalf("pixels = %d, want %d", got, 16*16)
	}
}

func TestTerminalToLogicalRoundTrips(t *testing.T) {
	c := NewScaledCanvas(128, 48, 1024, 768)
	x, y := c.TerminalToLogical(65, 25)
	if x != 512 || y != 388 {
		t.Fatalf("TerminalToLogical = (%g, %g), want (512, 388)", x, y)
	}
	if col, row := c.LogicalToTerminal(x, y); col != 65 || row != 25 {
		t.Fatalf("LogicalToTerminal = (%d, %d), want (65, 25)", col, row)
	}

	c.SetOffset(10, 2)
	x, y = c.TerminalToLogical(75, 27)
	if x != 512 || y != 388 {
		t.Fatalf("offset not removed: (%g, %g)", x, y)
	}
}

func TestRenderUsesHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4) // One logical unit per sub-pixel
	c.FillRect(0, 0, 1, 1) // Top half of cell (1,1)
	c.FillRect(1, 0, 1, 2) // Both halves of cell (2,1)
	c.FillRect(2, 3, 1, 1) // Bottom half of cell (3,2)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"\033[1;1H▀", "\033[1;2H█", "\033[2;3H▄"} {
		if !strings.Contains(s, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

type recordingWriter struct {
	writes []int
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return len(p), nil
}

func TestWriteChunksSplitsLargeFrames(t *testing.T) {
	var w recordingWriter
	if err := writeChunks(&w, strings.Repeat("x", 2*maxChunkSize+10)); err != nil {
		t.Fatal(err)
	}
	want := []int{maxChunkSize, maxChunkSize, 10}
	if len(w.writes) != len(want) {
		t.Fatalf("writes = %v, want %v", w.writes, want)
	}
	for i := range want {
		if w.writes[i] != want[i] {
			t.Fatalf("writes = %v, want %v", w.writes, want)
		}
	}
}

func TestRenderSkipsEmptyCanvas(t *testing.T) {
	c := NewScaledCanvas(8, 4, 8, 8)
	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("empty canvas wrote %q", out.String())
	}
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 1)
	cw.WriteAt(2, 5, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[6;5Hhi" {
		t.Fatalf("output = %q", got)
	}
}
