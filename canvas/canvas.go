package canvas

import "strings"

// MergeRule is reserved layer-compositing configuration. Rules are carried
// on the canvas for the scene layer to interpret; the buffer core ignores
// them.
type MergeRule struct {
	Name string
}

// Canvas is a fixed-size character grid split into independently-diffed
// layers. Layers composite bottom to top: a later layer's spans are
// emitted after an earlier layer's and visually win on a terminal.
//
// All operations are single-threaded by contract: one writer, one flusher,
// driven by the frame loop.
type Canvas struct {
	width  int
	height int
	layers []*Layer
	rules  []MergeRule

	colorMode ColorMode
	edits     int

	frame []byte // reusable per-frame output buffer
}

// New creates a canvas of width x height cells with the given number of
// layers. Dimensions and layer count are fixed for the canvas lifetime.
func New(width, height, layerCount int, rules []MergeRule) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if layerCount < 1 {
		layerCount = 1
	}
	c := &Canvas{
		width:     width,
		height:    height,
		rules:     rules,
		colorMode: ColorModeTrueColor,
	}
	c.layers = make([]*Layer, layerCount)
	for i := range c.layers {
		c.layers[i] = newLayer(i, width, height)
	}
	return c
}

// SetColorMode selects the escape encoding used by Render
func (c *Canvas) SetColorMode(mode ColorMode) {
	c.colorMode = mode
}

// Width returns the canvas width in cells
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells
func (c *Canvas) Height() int {
	return c.height
}

// Layers returns the number of layers
func (c *Canvas) Layers() int {
	return len(c.layers)
}

// EditsThisFrame returns the number of write calls since the last flush
func (c *Canvas) EditsThisFrame() int {
	return c.edits
}

// loc maps a cell position to the flattened coordinate space.
// Each cell occupies two flattened units, so rows are 2*width wide.
func (c *Canvas) loc(x, y int) int {
	return x*2 + y*c.width*2
}

// SetChar writes one character cell. Invalid layer indices and
// out-of-range positions are silently ignored.
func (c *Canvas) SetChar(layer, x, y int, r rune, style Style) {
	if layer < 0 || layer >= len(c.layers) {
		return
	}
	c.layers[layer].SetChar(c.loc(x, y), r, style)
	c.edits++
}

// SetString writes a run of characters starting at (x, y), clipped to the
// layer capacity.
func (c *Canvas) SetString(layer, x, y int, s string, style Style) {
	if layer < 0 || layer >= len(c.layers) {
		return
	}
	c.layers[layer].SetString(c.loc(x, y), []rune(s), style)
	c.edits++
}

// SetMultilineString splits text on line breaks and writes one string per
// row, stopping at the bottom of the canvas.
func (c *Canvas) SetMultilineString(layer, x, y int, text string, style Style) {
	for i, line := range strings.Split(text, "\n") {
		if y+i >= c.height {
			break
		}
		c.SetString(layer, x, y+i, line, style)
	}
}

// GetChar reads the authoritative current contents of a cell from the
// layer's dense snapshot. Pending spans are never consulted. Out-of-range
// reads return the blank cell.
func (c *Canvas) GetChar(layer, x, y int) Cell {
	if layer < 0 || layer >= len(c.layers) ||
		x < 0 || x >= c.width || y < 0 || y >= c.height {
		return BlankCell
	}
	return c.layers[layer].cellAt(c.loc(x, y))
}

// FillRect fills a w x h rectangle with one character
func (c *Canvas) FillRect(layer, x, y, w, h int, r rune, style Style) {
	for dy := 0; dy < h; dy++ {
		if y+dy >= c.height {
			break
		}
		for dx := 0; dx < w; dx++ {
			if x+dx >= c.width {
				break
			}
			c.SetChar(layer, x+dx, y+dy, r, style)
		}
	}
}

// DrawBorder draws a rectangle outline. border holds eight runes:
// top-left, top, top-right, left, right, bottom-left, bottom, bottom-right.
// Shorter strings repeat their first rune for every edge.
func (c *Canvas) DrawBorder(layer, x, y, w, h int, border string, style Style) {
	chars := []rune(border)
	var tl, t, tr, lt, rt, bl, b, br rune
	if len(chars) == 8 {
		tl, t, tr, lt, rt, bl, b, br = chars[0], chars[1], chars[2], chars[3], chars[4], chars[5], chars[6], chars[7]
	} else {
		fill := '#'
		if len(chars) > 0 {
			fill = chars[0]
		}
		tl, t, tr, lt, rt, bl, b, br = fill, fill, fill, fill, fill, fill, fill, fill
	}

	for dx := 0; dx < w; dx++ {
		top, bottom := t, b
		switch dx {
		case 0:
			top, bottom = tl, bl
		case w - 1:
			top, bottom = tr, br
		}
		c.SetChar(layer, x+dx, y, top, style)
		c.SetChar(layer, x+dx, y+h-1, bottom, style)
	}
	for dy := 1; dy < h-1; dy++ {
		c.SetChar(layer, x, y+dy, lt, style)
		c.SetChar(layer, x+w-1, y+dy, rt, style)
	}
}

// ClearLayer blanks one layer
func (c *Canvas) ClearLayer(layer int) {
	if layer < 0 || layer >= len(c.layers) {
		return
	}
	c.layers[layer].Clear()
	c.edits++
}

// ClearAll blanks every layer
func (c *Canvas) ClearAll() {
	for i := range c.layers {
		c.layers[i].Clear()
		c.edits++
	}
}

// Layer exposes a layer for inspection. Returns nil for invalid indices.
func (c *Canvas) Layer(i int) *Layer {
	if i < 0 || i >= len(c.layers) {
		return nil
	}
	return c.layers[i]
}
