package canvas

import (
	"math/rand"
	"testing"
)

// checkInvariants verifies the pending set is sorted, non-overlapping and
// free of empty spans
func checkInvariants(t *testing.T, l *Layer) {
	t.Helper()
	spans := l.Spans()
	for i, sp := range spans {
		if len(sp.Text) == 0 {
			t.Errorf("Span %d is empty (start %d)", i, sp.Start)
		}
		if sp.Start < 0 || sp.End() > l.Capacity() {
			t.Errorf("Span %d extent [%d,%d) outside capacity %d", i, sp.Start, sp.End(), l.Capacity())
		}
		if i == 0 {
			continue
		}
		prev := spans[i-1]
		if prev.Start >= sp.Start {
			t.Errorf("Spans %d and %d out of order: starts %d, %d", i-1, i, prev.Start, sp.Start)
		}
		if prev.End() > sp.Start {
			t.Errorf("Spans %d and %d overlap: [%d,%d) and [%d,%d)", i-1, i, prev.Start, prev.End(), sp.Start, sp.End())
		}
	}
}

func TestSetCharNewSpan(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetChar(4, 'A', Fg(Red))

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 4 || string(spans[0].Text) != "A" {
		t.Errorf("Expected span \"A\" at 4, got %q at %d", string(spans[0].Text), spans[0].Start)
	}
	if got := l.cellAt(4); got.Rune != 'A' || got.Style != Fg(Red) {
		t.Errorf("Snapshot not updated: got %+v", got)
	}
}

func TestSetCharOutOfRange(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetChar(-2, 'A', Fg(Red))
	l.SetChar(l.Capacity(), 'A', Fg(Red))
	l.SetChar(l.Capacity()+100, 'A', Fg(Red))

	if len(l.Spans()) != 0 {
		t.Errorf("Expected no spans after out-of-range writes, got %d", len(l.Spans()))
	}
}

func TestSetCharAppendSameStyle(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetChar(0, 'A', Fg(Red))
	l.SetChar(2, 'B', Fg(Red))
	l.SetChar(4, 'C', Fg(Red))

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected adjacent same-style chars to extend one span, got %d spans", len(spans))
	}
	if string(spans[0].Text) != "ABC" {
		t.Errorf("Expected span text \"ABC\", got %q", string(spans[0].Text))
	}
	checkInvariants(t, l)
}

func TestSetCharOverwriteInPlace(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("ABC"), Fg(Red))
	l.SetChar(2, 'X', Fg(Red))

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if string(spans[0].Text) != "AXC" {
		t.Errorf("Expected span text \"AXC\", got %q", string(spans[0].Text))
	}
}

func TestSetCharSplitsDifferentStyle(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("ABC"), Fg(Red))
	l.SetChar(2, 'X', Fg(Blue))

	spans := l.Spans()
	if len(spans) != 3 {
		t.Fatalf("Expected 3 spans after split, got %d", len(spans))
	}
	want := []struct {
		start int
		text  string
		style Style
	}{
		{0, "A", Fg(Red)},
		{2, "X", Fg(Blue)},
		{4, "C", Fg(Red)},
	}
	for i, w := range want {
		sp := spans[i]
		if sp.Start != w.start || string(sp.Text) != w.text || sp.Style != w.style {
			t.Errorf("Span %d: expected %q at %d, got %q at %d", i, w.text, w.start, string(sp.Text), sp.Start)
		}
	}
	checkInvariants(t, l)
}

func TestSetCharSplitAtSpanEdge(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("ABC"), Fg(Red))
	l.SetChar(0, 'X', Fg(Blue))

	spans := l.Spans()
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans (empty remainder dropped), got %d", len(spans))
	}
	if string(spans[0].Text) != "X" || spans[0].Start != 0 {
		t.Errorf("Expected \"X\" at 0, got %q at %d", string(spans[0].Text), spans[0].Start)
	}
	if string(spans[1].Text) != "BC" || spans[1].Start != 2 {
		t.Errorf("Expected \"BC\" at 2, got %q at %d", string(spans[1].Text), spans[1].Start)
	}
	checkInvariants(t, l)
}

func TestSetStringCoalescesAdjacentSameStyle(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("AB"), Fg(Red))
	l.SetString(4, []rune("CD"), Fg(Red))

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected end-to-start same-style strings to coalesce into 1 span, got %d", len(spans))
	}
	if string(spans[0].Text) != "ABCD" || spans[0].Start != 0 {
		t.Errorf("Expected \"ABCD\" at 0, got %q at %d", string(spans[0].Text), spans[0].Start)
	}
}

func TestSetStringAdjacentDifferentStyleStaysSeparate(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("AB"), Fg(Red))
	l.SetString(4, []rune("CD"), Fg(Blue))

	if len(l.Spans()) != 2 {
		t.Fatalf("Expected 2 spans for adjacent different styles, got %d", len(l.Spans()))
	}
	checkInvariants(t, l)
}

func TestSetStringSplitsDifferentStyle(t *testing.T) {
	// BLUE "XX" splits RED "HELLO". In the flattened extent model "XX"
	// covers [4,8), both Ls, so only the "O" remainder survives; the
	// pending set must agree with what the snapshot shows at every cell.
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("HELLO"), Fg(Red))
	l.SetString(4, []rune("XX"), Fg(Blue))

	spans := l.Spans()
	if len(spans) != 3 {
		t.Fatalf("Expected 3 spans, got %d", len(spans))
	}
	want := []struct {
		start int
		text  string
		style Style
	}{
		{0, "HE", Fg(Red)},
		{4, "XX", Fg(Blue)},
		{8, "O", Fg(Red)},
	}
	for i, w := range want {
		sp := spans[i]
		if sp.Start != w.start || string(sp.Text) != w.text || sp.Style != w.style {
			t.Errorf("Span %d: expected %q at %d, got %q at %d", i, w.text, w.start, string(sp.Text), sp.Start)
		}
	}
	checkInvariants(t, l)
}

func TestSetStringSupersedesContained(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(4, []rune("AB"), Fg(Red))
	l.SetString(8, []rune("CD"), Fg(Blue))
	l.SetString(0, []rune("XXXXXXXXXX"), Fg(Yellow))

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected contained spans to be dropped, got %d spans", len(spans))
	}
	if string(spans[0].Text) != "XXXXXXXXXX" || spans[0].Style != Fg(Yellow) {
		t.Errorf("Expected the superseding span to survive alone, got %q", string(spans[0].Text))
	}
}

func TestSetStringMergesOverlapSameStyle(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("AAAA"), Fg(Red))
	l.SetString(4, []rune("BBBB"), Fg(Red))

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected overlapping same-style spans to merge, got %d", len(spans))
	}
	if string(spans[0].Text) != "AABBBB" {
		t.Errorf("Expected newer text to win in the overlap, got %q", string(spans[0].Text))
	}
}

func TestSetStringInsideLargerDifferentStyle(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("AAAAAA"), Fg(Red))
	l.SetString(4, []rune("B"), Fg(Blue))

	spans := l.Spans()
	if len(spans) != 3 {
		t.Fatalf("Expected both remainders kept, got %d spans", len(spans))
	}
	if string(spans[0].Text) != "AA" || string(spans[1].Text) != "B" || string(spans[2].Text) != "AAA" {
		t.Errorf("Unexpected remainders: %q %q %q",
			string(spans[0].Text), string(spans[1].Text), string(spans[2].Text))
	}
	if spans[2].Start != 6 {
		t.Errorf("Expected right remainder at 6, got %d", spans[2].Start)
	}
	checkInvariants(t, l)
}

func TestSetStringClipsToCapacity(t *testing.T) {
	l := newLayer(0, 10, 1)
	// Capacity 20; writing 4 runes at flattened 16 leaves room for 2
	l.SetString(16, []rune("ABCD"), Fg(Red))

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected 1 clipped span, got %d", len(spans))
	}
	if string(spans[0].Text) != "AB" {
		t.Errorf("Expected clipped text \"AB\", got %q", string(spans[0].Text))
	}
	if got := l.cellAt(18); got.Rune != 'B' {
		t.Errorf("Expected snapshot 'B' at 18, got %q", got.Rune)
	}

	// Fully out of range is a no-op
	l.SetString(l.Capacity(), []rune("XY"), Fg(Red))
	l.SetString(-2, []rune("XY"), Fg(Red))
	if len(l.Spans()) != 1 {
		t.Errorf("Expected out-of-range writes to be ignored, got %d spans", len(l.Spans()))
	}
}

func TestClearLeavesSingleSpan(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("HELLO"), Fg(Red))
	l.SetString(24, []rune("WORLD"), Fg(Blue))
	l.Clear()

	spans := l.Spans()
	if len(spans) != 1 {
		t.Fatalf("Expected clear to leave exactly 1 span, got %d", len(spans))
	}
	sp := spans[0]
	if sp.Start != 0 || sp.End() != l.Capacity() {
		t.Errorf("Expected full-capacity span, got [%d,%d)", sp.Start, sp.End())
	}
	if sp.Style != (Style{}) {
		t.Errorf("Expected blank style, got %+v", sp.Style)
	}
	for loc := 0; loc < l.Capacity(); loc += 2 {
		if got := l.cellAt(loc); got != BlankCell {
			t.Fatalf("Expected blank cell at %d, got %+v", loc, got)
		}
	}
}

func TestClearTwiceSameSnapshot(t *testing.T) {
	l := newLayer(0, 10, 3)
	l.SetString(0, []rune("HELLO"), Fg(Red))
	l.Clear()
	l.Clear()

	if len(l.Spans()) != 1 {
		t.Errorf("Expected repeated clear to keep a single span, got %d", len(l.Spans()))
	}
	for loc := 0; loc < l.Capacity(); loc += 2 {
		if got := l.cellAt(loc); got != BlankCell {
			t.Fatalf("Expected blank cell at %d, got %+v", loc, got)
		}
	}
}

// TestRandomizedWrites drives a layer with a random mix of writes and
// checks the span invariants plus snapshot fidelity against a plain dense
// reference after every operation.
func TestRandomizedWrites(t *testing.T) {
	const width, height = 20, 10
	rng := rand.New(rand.NewSource(1))
	styles := []Style{Fg(Red), Fg(Blue), Fg(Yellow).Bright(), {}}
	alphabet := []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	l := newLayer(0, width, height)
	ref := make([]Cell, l.Capacity())
	for i := range ref {
		ref[i] = BlankCell
	}

	for step := 0; step < 2000; step++ {
		style := styles[rng.Intn(len(styles))]
		loc := rng.Intn(l.Capacity()/2+8)*2 - 8 // occasionally out of range
		if rng.Intn(2) == 0 {
			r := alphabet[rng.Intn(len(alphabet))]
			l.SetChar(loc, r, style)
			if loc >= 0 && loc < l.Capacity() {
				ref[loc] = Cell{Rune: r, Style: style}
			}
		} else {
			n := 1 + rng.Intn(12)
			text := make([]rune, n)
			for i := range text {
				text[i] = alphabet[rng.Intn(len(alphabet))]
			}
			l.SetString(loc, text, style)
			if loc >= 0 && loc < l.Capacity() {
				for i, r := range text {
					if loc+2*i < l.Capacity() {
						ref[loc+2*i] = Cell{Rune: r, Style: style}
					}
				}
			}
		}

		checkInvariants(t, l)
		if t.Failed() {
			t.Fatalf("Invariant violated at step %d", step)
		}
	}

	for loc := 0; loc < l.Capacity(); loc += 2 {
		if got := l.cellAt(loc); got != ref[loc] {
			t.Errorf("Snapshot mismatch at %d: expected %+v, got %+v", loc, ref[loc], got)
		}
	}
}
