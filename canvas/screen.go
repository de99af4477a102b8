package canvas

import "github.com/gdamore/tcell/v2"

// ScreenSink bridges a frame flush onto a tcell.Screen. It keeps the span
// buffer usable with a cell-grid backend (and with tcell's simulation
// screen in tests) without teaching the core anything about tcell.
type ScreenSink struct {
	screen tcell.Screen
}

// NewScreenSink wraps an initialized tcell screen
func NewScreenSink(s tcell.Screen) *ScreenSink {
	return &ScreenSink{screen: s}
}

// SetCell implements CellSink
func (s *ScreenSink) SetCell(x, y int, r rune, style Style) {
	s.screen.SetContent(x, y, r, nil, toTcellStyle(style))
}

// Show presents the accumulated frame
func (s *ScreenSink) Show() {
	s.screen.Show()
}

func toTcellStyle(st Style) tcell.Style {
	out := tcell.StyleDefault
	if st.HasFG {
		out = out.Foreground(tcell.NewRGBColor(int32(st.FG.R), int32(st.FG.G), int32(st.FG.B)))
	}
	if st.HasBG {
		out = out.Background(tcell.NewRGBColor(int32(st.BG.R), int32(st.BG.G), int32(st.BG.B)))
	}
	if st.Attr&AttrBold != 0 {
		out = out.Bold(true)
	}
	if st.Attr&AttrDim != 0 {
		out = out.Dim(true)
	}
	if st.Attr&AttrItalic != 0 {
		out = out.Italic(true)
	}
	if st.Attr&AttrUnderline != 0 {
		out = out.Underline(true)
	}
	if st.Attr&AttrBlink != 0 {
		out = out.Blink(true)
	}
	if st.Attr&AttrReverse != 0 {
		out = out.Reverse(true)
	}
	return out
}
