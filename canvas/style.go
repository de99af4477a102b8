package canvas

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Attr is a bitmask of SGR text attributes
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
)

// Style is the opaque color/style tag carried by spans and cells.
// The buffer core only ever compares styles for equality; interpretation
// happens at emission time (SGR encoding or a CellSink adapter).
// The zero value is the blank style: terminal default colors, no attributes.
type Style struct {
	FG, BG RGB
	Attr   Attr
	HasFG  bool
	HasBG  bool
}

// Fg returns a style with the given foreground color
func Fg(c RGB) Style {
	return Style{FG: c, HasFG: true}
}

// Bg returns a copy of the style with the given background color
func (s Style) Bg(c RGB) Style {
	s.BG = c
	s.HasBG = true
	return s
}

// With returns a copy of the style with the given attributes added
func (s Style) With(a Attr) Style {
	s.Attr |= a
	return s
}

// Bright returns a copy of the style with the bold attribute set
func (s Style) Bright() Style {
	return s.With(AttrBold)
}

// Dim returns a copy of the style with the dim attribute set
func (s Style) Dim() Style {
	return s.With(AttrDim)
}

// Standard palette, xterm defaults.
// Bright rendition comes from AttrBold rather than separate color values,
// matching how the bright+color pairs of the legacy escape palette behave.
var (
	Black   = RGB{0, 0, 0}
	Red     = RGB{205, 0, 0}
	Green   = RGB{0, 205, 0}
	Yellow  = RGB{205, 205, 0}
	Blue    = RGB{0, 0, 238}
	Magenta = RGB{205, 0, 205}
	Cyan    = RGB{0, 205, 205}
	White   = RGB{229, 229, 229}
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// Color cube values for the 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to the nearest cube level, pre-computed at init
var cubeIndex [256]uint8

// grayscaleStart is the first grayscale index (232-255 = 24 shades)
const grayscaleStart = 232

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := absInt(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := absInt(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// rgb256 converts a 24-bit color to the nearest xterm-256 index.
// Grayscale ramp wins over the color cube when the channels are close
// together, it has finer steps there.
func rgb256(c RGB) uint8 {
	ci, gi, bi := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]
	cubeR, cubeG, cubeB := cubeValues[ci], cubeValues[gi], cubeValues[bi]
	cubeDist := colorDist(c, RGB{cubeR, cubeG, cubeB})

	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	grayIdx := 0
	if gray > 8 {
		grayIdx = (gray - 8) / 10
		if grayIdx > 23 {
			grayIdx = 23
		}
	}
	grayLevel := uint8(8 + grayIdx*10)
	grayDist := colorDist(c, RGB{grayLevel, grayLevel, grayLevel})

	if grayDist < cubeDist {
		return uint8(grayscaleStart + grayIdx)
	}
	return uint8(16 + 36*int(ci) + 6*int(gi) + int(bi))
}

func colorDist(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
