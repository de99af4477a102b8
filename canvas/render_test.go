package canvas

import (
	"bytes"
	"strings"
	"testing"
)

const (
	sgrRed   = "\x1b[0;38;2;205;0;0m"
	sgrBlue  = "\x1b[0;38;2;0;0;238m"
	sgrBlank = "\x1b[0m"
)

func renderString(t *testing.T, c *Canvas) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func TestRenderScenario(t *testing.T) {
	c := New(10, 3, 1, nil)
	c.SetString(0, 0, 0, "HELLO", Fg(Red))
	c.SetString(0, 2, 0, "XX", Fg(Blue))

	got := renderString(t, c)
	// "XX" occupies the flattened extent [4,8), so the red remainder is
	// the single "O" at offset 8: the stream repaints exactly what the
	// snapshot holds at each cell.
	want := "\x1b[1;1H" + sgrBlank +
		"\x1b[1;1H" + sgrRed + "HE" +
		"\x1b[1;5H" + sgrBlue + "XX" +
		"\x1b[1;9H" + sgrRed + "O" +
		"\x1b[4;1H"
	if got != want {
		t.Errorf("Frame stream mismatch:\nexpected %q\ngot      %q", want, got)
	}
}

func TestRenderEmptyFrame(t *testing.T) {
	c := New(10, 3, 2, nil)
	got := renderString(t, c)
	want := "\x1b[1;1H" + sgrBlank + "\x1b[4;1H"
	if got != want {
		t.Errorf("Expected bare cursor reset, got %q", got)
	}
}

func TestRenderDrainsSpans(t *testing.T) {
	c := New(10, 3, 2, nil)
	c.SetString(0, 0, 0, "HELLO", Fg(Red))
	c.SetString(1, 0, 1, "WORLD", Fg(Blue))
	renderString(t, c)

	for i := 0; i < c.Layers(); i++ {
		if n := len(c.Layer(i).Spans()); n != 0 {
			t.Errorf("Layer %d: expected drained span set, got %d spans", i, n)
		}
	}

	// A second flush with no writes is an empty frame
	got := renderString(t, c)
	if strings.Contains(got, "HELLO") || strings.Contains(got, "WORLD") {
		t.Errorf("Expected drained diff not to re-emit, got %q", got)
	}
}

func TestRenderLayerOrder(t *testing.T) {
	c := New(10, 3, 2, nil)
	c.SetChar(1, 0, 0, 'B', Fg(Blue))
	c.SetChar(0, 0, 0, 'A', Fg(Red))

	got := renderString(t, c)
	ia := strings.Index(got, sgrRed+"A")
	ib := strings.Index(got, sgrBlue+"B")
	if ia < 0 || ib < 0 {
		t.Fatalf("Expected both spans in stream, got %q", got)
	}
	if ia > ib {
		t.Errorf("Expected layer 0 emitted before layer 1 (later layer wins visually), got %q", got)
	}
}

func TestRenderWrapsAtRowBoundary(t *testing.T) {
	c := New(10, 3, 1, nil)
	// 8 runes at x=7: 3 fit on row 0, the rest continue on row 1
	c.SetString(0, 7, 0, "abcdefgh", Fg(Red))

	got := renderString(t, c)
	want := "\x1b[1;1H" + sgrBlank +
		"\x1b[1;15H" + sgrRed + "abc" +
		"\x1b[2;1H" + "defgh" +
		"\x1b[4;1H"
	if got != want {
		t.Errorf("Wrap stream mismatch:\nexpected %q\ngot      %q", want, got)
	}
}

func TestRenderExactRowFit(t *testing.T) {
	// Exactly filling the remaining columns must not emit an empty
	// continuation or duplicate characters
	c := New(10, 3, 1, nil)
	c.SetString(0, 7, 0, "abc", Fg(Red))

	got := renderString(t, c)
	want := "\x1b[1;1H" + sgrBlank +
		"\x1b[1;15H" + sgrRed + "abc" +
		"\x1b[4;1H"
	if got != want {
		t.Errorf("Exact-fit stream mismatch:\nexpected %q\ngot      %q", want, got)
	}
	if strings.Contains(got, "\x1b[2;1H") {
		t.Errorf("Expected no continuation move at exact row fit, got %q", got)
	}
}

func TestRenderClearStopsAtCanvasHeight(t *testing.T) {
	c := New(10, 3, 1, nil)
	c.ClearLayer(0)

	got := renderString(t, c)
	row := strings.Repeat(" ", 10)
	for line := 1; line <= 3; line++ {
		if !strings.Contains(got, row) {
			t.Fatalf("Expected blank rows in stream, got %q", got)
		}
		_ = line
	}
	// The park move targets row 4; the span itself must not reach it
	if n := strings.Count(got, "\x1b[4;1H"); n != 1 {
		t.Errorf("Expected exactly one row-4 move (cursor park), got %d in %q", n, got)
	}
	if strings.Count(got, row) != 3 {
		t.Errorf("Expected 3 blank rows, got %d", strings.Count(got, row))
	}
}

func TestRender256ColorMode(t *testing.T) {
	c := New(10, 3, 1, nil)
	c.SetColorMode(ColorMode256)
	c.SetChar(0, 0, 0, 'A', Fg(RGB{255, 0, 0}))

	got := renderString(t, c)
	if !strings.Contains(got, "\x1b[0;38;5;196m") {
		t.Errorf("Expected 256-color red (196), got %q", got)
	}
}

func TestRenderBackgroundAndAttrs(t *testing.T) {
	c := New(10, 3, 1, nil)
	c.SetChar(0, 0, 0, 'A', Fg(Red).Bg(Black).Bright())

	got := renderString(t, c)
	if !strings.Contains(got, "\x1b[0;1;38;2;205;0;0;48;2;0;0;0m") {
		t.Errorf("Expected bold fg+bg SGR token, got %q", got)
	}
}

func TestRenderBlank(t *testing.T) {
	c := New(4, 2, 1, nil)
	var buf bytes.Buffer
	if err := c.RenderBlank(&buf); err != nil {
		t.Fatalf("RenderBlank failed: %v", err)
	}
	got := buf.String()
	if strings.Count(got, strings.Repeat(" ", 8)) != 2 {
		t.Errorf("Expected 2 rows of 8 blank columns, got %q", got)
	}
}

func TestAppendInt(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"}, {7, "7"}, {42, "42"}, {255, "255"}, {1024, "1024"}, {-3, "0"},
	}
	for _, tc := range cases {
		if got := string(appendInt(nil, tc.n)); got != tc.want {
			t.Errorf("appendInt(%d): expected %q, got %q", tc.n, tc.want, got)
		}
	}
}
