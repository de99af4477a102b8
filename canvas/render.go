package canvas

import (
	"io"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi       = []byte("\x1b[")
	csiReset  = []byte("\x1b[0m")
	csiHome   = []byte("\x1b[1;1H")
	sgrFg256  = []byte("38;5;")
	sgrBg256  = []byte("48;5;")
	sgrFgRGB  = []byte("38;2;")
	sgrBgRGB  = []byte("48;2;")
	cellBlank = []byte("  ")
)

// attrCodes maps attribute bits to their SGR parameter, in emission order
var attrCodes = [...]struct {
	bit  Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
}

// appendInt writes an integer without allocation.
// Optimized for terminal values (0-255 common, 0-999 typical max).
func appendInt(b []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	switch {
	case n < 10:
		return append(b, byte(n)+'0')
	case n < 100:
		return append(b, byte(n/10)+'0', byte(n%10)+'0')
	case n < 1000:
		return append(b, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(b, buf[i:]...)
}

// appendMove emits a 1-based cursor position sequence
func appendMove(b []byte, row, col int) []byte {
	b = append(b, csi...)
	b = appendInt(b, row)
	b = append(b, ';')
	b = appendInt(b, col)
	return append(b, 'H')
}

// appendSGR emits the style as one SGR sequence: reset, attributes,
// foreground, background. The blank style emits a bare reset.
func (s Style) appendSGR(b []byte, mode ColorMode) []byte {
	b = append(b, csi...)
	b = append(b, '0')
	for _, a := range attrCodes {
		if s.Attr&a.bit != 0 {
			b = append(b, ';', a.code)
		}
	}
	if s.HasFG {
		b = s.FG.appendColor(b, sgrFg256, sgrFgRGB, mode)
	}
	if s.HasBG {
		b = s.BG.appendColor(b, sgrBg256, sgrBgRGB, mode)
	}
	return append(b, 'm')
}

func (c RGB) appendColor(b, prefix256, prefixRGB []byte, mode ColorMode) []byte {
	b = append(b, ';')
	if mode == ColorModeTrueColor {
		b = append(b, prefixRGB...)
		b = appendInt(b, int(c.R))
		b = append(b, ';')
		b = appendInt(b, int(c.G))
		b = append(b, ';')
		return appendInt(b, int(c.B))
	}
	b = append(b, prefix256...)
	return appendInt(b, int(rgb256(c)))
}

// emitSpans walks every layer bottom to top and yields each pending span
// split at row boundaries. col is the 0-based flattened column of the
// segment; first marks the segment that begins the span. Emission stops at
// the bottom of the canvas.
func (c *Canvas) emitSpans(emit func(line, col int, text []rune, style Style, first bool)) {
	flat := c.width * 2
	for _, layer := range c.layers {
		for _, sp := range layer.pending {
			line := sp.Start / flat
			col := sp.Start % flat
			text := sp.Text
			first := true
			for len(text) > 0 && line < c.height {
				n := (flat - col) / 2
				if n > len(text) {
					n = len(text)
				}
				emit(line, col, text[:n], sp.Style, first)
				text = text[n:]
				line++
				col = 0
				first = false
			}
		}
	}
}

// Render flushes every layer's pending diff as a single escape-coded
// stream: one cursor reset, then per span a cursor move, an SGR token and
// the literal text, with a fresh cursor move at each row wrap. The diff is
// drained and the edit counter reset; the whole frame goes out in one
// Write call.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.frame[:0]
	buf = append(buf, csiHome...)
	buf = append(buf, csiReset...)

	c.emitSpans(func(line, col int, text []rune, style Style, first bool) {
		buf = appendMove(buf, line+1, col+1)
		if first {
			buf = style.appendSGR(buf, c.colorMode)
		}
		for _, r := range text {
			buf = utf8.AppendRune(buf, r)
		}
	})

	buf = appendMove(buf, c.height+1, 1)
	c.frame = buf

	c.finishFrame()
	_, err := w.Write(buf)
	return err
}

// CellSink receives positioned styled cells, one logical character at a
// time. It exists so a frame can be replayed onto a non-ANSI output such
// as a cell-grid screen.
type CellSink interface {
	SetCell(x, y int, r rune, style Style)
}

// RenderTo flushes the frame onto a cell sink instead of an escape
// stream. Cursor advancement mirrors a terminal printing the span text:
// each rune moves the column by its display width.
func (c *Canvas) RenderTo(sink CellSink) {
	c.emitSpans(func(line, col int, text []rune, style Style, first bool) {
		for _, r := range text {
			sink.SetCell(col, line, r, style)
			col += runewidth.RuneWidth(r)
		}
	})
	c.finishFrame()
}

// finishFrame drains every layer's pending spans and resets the per-frame
// edit counter
func (c *Canvas) finishFrame() {
	for _, layer := range c.layers {
		layer.drain()
	}
	c.edits = 0
}

// RenderBlank writes a full blank grid, used to scrub the screen before
// the first frame
func (c *Canvas) RenderBlank(w io.Writer) error {
	buf := c.frame[:0]
	buf = append(buf, csiHome...)
	buf = append(buf, csiReset...)
	for y := 0; y < c.height; y++ {
		buf = appendMove(buf, y+1, 1)
		for x := 0; x < c.width; x++ {
			buf = append(buf, cellBlank...)
		}
	}
	buf = appendMove(buf, c.height+1, 1)
	c.frame = buf
	_, err := w.Write(buf)
	return err
}
