package canvas

// Span is a pending run of same-styled characters at a flattened offset.
// Each logical character occupies two flattened units (the double-width
// cell convention), so a span's extent is [Start, Start+2*len(Text)).
//
// Within one layer the pending spans are kept sorted by Start and pairwise
// non-overlapping. Span starts are always even.
type Span struct {
	Start int
	Text  []rune
	Style Style
}

// End returns the exclusive flattened end of the span's extent
func (s *Span) End() int {
	return s.Start + 2*len(s.Text)
}

// index converts a flattened offset inside the span to a rune index
func (s *Span) index(loc int) int {
	return (loc - s.Start) / 2
}

// contains reports whether loc falls inside the span's extent
func (s *Span) contains(loc int) bool {
	return loc >= s.Start && loc < s.End()
}

// splitAround returns the before/after remainders of the span with the
// single cell at loc removed. Either remainder may be nil when empty.
func (s *Span) splitAround(loc int) (before, after *Span) {
	i := s.index(loc)
	if i > 0 {
		before = &Span{Start: s.Start, Text: cloneRunes(s.Text[:i]), Style: s.Style}
	}
	if i+1 < len(s.Text) {
		after = &Span{Start: loc + 2, Text: cloneRunes(s.Text[i+1:]), Style: s.Style}
	}
	return before, after
}

// leftRemainder returns the part of the span strictly before the flattened
// offset cut, or nil when there is none
func (s *Span) leftRemainder(cut int) *Span {
	if s.Start >= cut {
		return nil
	}
	return &Span{Start: s.Start, Text: cloneRunes(s.Text[:s.index(cut)]), Style: s.Style}
}

// rightRemainder returns the part of the span at or after the flattened
// offset cut, or nil when there is none
func (s *Span) rightRemainder(cut int) *Span {
	if s.End() <= cut {
		return nil
	}
	keep := (s.End() - cut) / 2
	return &Span{Start: cut, Text: cloneRunes(s.Text[len(s.Text)-keep:]), Style: s.Style}
}

// absorbLeft extends the span leftward with the out-of-extent prefix of an
// older same-styled span. other.Start must be < s.Start.
func (s *Span) absorbLeft(other *Span) {
	prefix := other.Text[:other.index(s.Start)]
	merged := make([]rune, 0, len(prefix)+len(s.Text))
	merged = append(merged, prefix...)
	merged = append(merged, s.Text...)
	s.Text = merged
	s.Start = other.Start
}

// absorbRight extends the span rightward with the out-of-extent suffix of
// an older same-styled span. other.End() must be > s.End().
func (s *Span) absorbRight(other *Span) {
	keep := (other.End() - s.End()) / 2
	s.Text = append(s.Text, other.Text[len(other.Text)-keep:]...)
}

func cloneRunes(r []rune) []rune {
	out := make([]rune, len(r))
	copy(out, r)
	return out
}
