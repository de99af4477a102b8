package effects

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/n3xta/heat-abnormal-terminal-animation/canvas"
)

func toColorful(c canvas.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func toRGB(c colorful.Color) canvas.RGB {
	c = c.Clamped()
	return canvas.RGB{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
	}
}

// Brighten blends a color toward white in Luv space; amount 0 keeps the
// color, 1 reaches white
func Brighten(c canvas.RGB, amount float64) canvas.RGB {
	return toRGB(toColorful(c).BlendLuv(colorful.Color{R: 1, G: 1, B: 1}, amount))
}

// Darken blends a color toward black in Luv space
func Darken(c canvas.RGB, amount float64) canvas.RGB {
	return toRGB(toColorful(c).BlendLuv(colorful.Color{}, amount))
}

// Ramp returns steps colors blending from one color to another,
// perceptually spaced. Used for trail and fade effects.
func Ramp(from, to canvas.RGB, steps int) []canvas.RGB {
	if steps < 2 {
		return []canvas.RGB{from}
	}
	out := make([]canvas.RGB, steps)
	a, b := toColorful(from), toColorful(to)
	for i := range out {
		out[i] = toRGB(a.BlendLuv(b, float64(i)/float64(steps-1)))
	}
	return out
}
