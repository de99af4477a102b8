package canvas

import "sort"

// Cell is one logical character cell: what the screen shows at a position
type Cell struct {
	Rune  rune
	Style Style
}

// BlankCell is the value of a never-written or cleared cell
var BlankCell = Cell{Rune: ' '}

// Layer is one independently-diffed paint surface. It keeps two views of
// the same writes: the sorted pending-span set (what changed since the
// last flush) and a dense snapshot (what the layer logically shows now).
// Every write operation updates both together.
type Layer struct {
	id       int
	width    int // flattened row width, 2 * canvas width
	height   int
	capacity int // flattened size, width * height

	pending []*Span
	cells   []Cell // indexed by flattened offset; cell starts are even
}

func newLayer(id, width, height int) *Layer {
	flat := width * 2
	l := &Layer{
		id:       id,
		width:    flat,
		height:   height,
		capacity: flat * height,
	}
	l.cells = make([]Cell, l.capacity)
	for i := range l.cells {
		l.cells[i] = BlankCell
	}
	return l
}

// Capacity returns the flattened size of the layer
func (l *Layer) Capacity() int {
	return l.capacity
}

// Spans returns the pending span set in sorted order.
// The slice is shared; callers must not mutate it.
func (l *Layer) Spans() []*Span {
	return l.pending
}

// cellAt reads the dense snapshot at a flattened offset
func (l *Layer) cellAt(loc int) Cell {
	if loc < 0 || loc >= l.capacity {
		return BlankCell
	}
	return l.cells[loc]
}

// searchSpan returns the index of the rightmost pending span whose Start
// is <= loc, or -1 when every span starts past loc
func (l *Layer) searchSpan(loc int) int {
	return sort.Search(len(l.pending), func(i int) bool {
		return l.pending[i].Start > loc
	}) - 1
}

// SetChar writes one double-width character cell at a flattened offset.
// Out-of-range offsets are silently clipped. The dense snapshot is updated
// unconditionally; the pending set is spliced to keep spans sorted,
// non-overlapping and style-pure.
func (l *Layer) SetChar(loc int, r rune, style Style) {
	if loc < 0 || loc >= l.capacity {
		return
	}
	l.cells[loc] = Cell{Rune: r, Style: style}

	i := l.searchSpan(loc)
	if i >= 0 {
		sp := l.pending[i]
		if sp.contains(loc) {
			if sp.Style == style {
				sp.Text[sp.index(loc)] = r
				return
			}
			// Different style inside an existing span: split it around loc
			before, after := sp.splitAround(loc)
			repl := make([]*Span, 0, 3)
			if before != nil {
				repl = append(repl, before)
			}
			repl = append(repl, &Span{Start: loc, Text: []rune{r}, Style: style})
			if after != nil {
				repl = append(repl, after)
			}
			l.pending = spliceSpans(l.pending, i, 1, repl...)
			return
		}
		if loc == sp.End() && sp.Style == style {
			// Append in place; the next span starts at loc+2 at the
			// earliest (starts are even and > loc), so no overlap.
			sp.Text = append(sp.Text, r)
			return
		}
	}
	l.pending = spliceSpans(l.pending, i+1, 0, &Span{Start: loc, Text: []rune{r}, Style: style})
}

// SetString writes a run of characters starting at a flattened offset as
// one batch. Characters past the layer capacity are dropped; a fully
// out-of-range start is a no-op.
//
// Overlap policy: spans fully inside the target extent are superseded and
// dropped; partially overlapping spans of the same style have their
// out-of-extent portion merged into the new span (coalescing, so touching
// same-style writes flush as one span); partially overlapping spans of a
// different style keep only their non-overlapping remainders.
func (l *Layer) SetString(loc int, text []rune, style Style) {
	if loc < 0 || loc >= l.capacity || len(text) == 0 {
		return
	}
	if maxRunes := (l.capacity - loc) / 2; len(text) > maxRunes {
		text = text[:maxRunes]
	}

	for i, r := range text {
		l.cells[loc+2*i] = Cell{Rune: r, Style: style}
	}

	ns := &Span{Start: loc, Text: cloneRunes(text), Style: style}
	out := make([]*Span, 0, len(l.pending)+2)
	inserted := false
	for _, sp := range l.pending {
		switch {
		case sp.End() < ns.Start || (sp.End() == ns.Start && sp.Style != ns.Style):
			// Entirely left (adjacency only counts for same-style merge)
			out = append(out, sp)
		case sp.Start > ns.End() || (sp.Start == ns.End() && sp.Style != ns.Style):
			// Entirely right; the new span slots in before it
			if !inserted {
				out = append(out, ns)
				inserted = true
			}
			out = append(out, sp)
		case sp.Style == ns.Style:
			// Same style, touching: coalesce the out-of-extent parts
			if sp.Start < ns.Start {
				ns.absorbLeft(sp)
			}
			if sp.End() > ns.End() {
				ns.absorbRight(sp)
			}
		default:
			// Different style, strictly overlapping: keep remainders only
			if left := sp.leftRemainder(ns.Start); left != nil {
				out = append(out, left)
			}
			if right := sp.rightRemainder(ns.End()); right != nil {
				if !inserted {
					out = append(out, ns)
					inserted = true
				}
				out = append(out, right)
			}
		}
	}
	if !inserted {
		out = append(out, ns)
	}
	l.pending = out
}

// Clear blanks the whole layer. Implemented as one full-capacity blank
// write so it rides the same span machinery: every pending span is
// superseded and exactly one blank span remains to flush.
func (l *Layer) Clear() {
	blank := make([]rune, l.capacity/2)
	for i := range blank {
		blank[i] = ' '
	}
	l.SetString(0, blank, Style{})
}

// drain discards the pending span set after a flush
func (l *Layer) drain() {
	l.pending = l.pending[:0]
}

// spliceSpans replaces pending[i:i+del] with the given spans
func spliceSpans(spans []*Span, i, del int, insert ...*Span) []*Span {
	tail := make([]*Span, len(spans[i+del:]))
	copy(tail, spans[i+del:])
	spans = append(spans[:i], insert...)
	return append(spans, tail...)
}
