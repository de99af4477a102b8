// Package scenes defines the Heat Abnormal animation: the scene
// registry and the beat timeline that walks through the song's
// sections. Layer use is fixed per scene so swaps never leave stale
// content behind: 1 and 2 hold backgrounds and effects, 3 and 4 hold
// text.
package scenes

import (
	"math"

	"github.com/n3xta/heat-abnormal-terminal-animation/animator"
	"github.com/n3xta/heat-abnormal-terminal-animation/canvas"
	"github.com/n3xta/heat-abnormal-terminal-animation/effects"
)

// getStyle reads a style from a generator's store, falling back when
// absent
func getStyle(g *animator.Generator, key string, fallback canvas.Style) canvas.Style {
	if v, ok := g.Get(key).(canvas.Style); ok {
		return v
	}
	return fallback
}

// All builds every scene of the animation against the given canvas
func All(c *canvas.Canvas) []*animator.Scene {
	return []*animator.Scene{
		clearScene(c),
		oceanScene(c),
		textScene(c),
		breakdownScene(c),
		outroScene(c),
		debugScene(c),
	}
}

// clearScene blanks the whole canvas once when started
func clearScene(c *canvas.Canvas) *animator.Scene {
	return animator.NewScene("clear",
		animator.NewGenerator(0, animator.AtBeat(0), nil,
			func(g *animator.Generator, beat int) { c.ClearAll() },
			nil),
	)
}

// oceanScene draws drifting wave rows with a typewriter lyric overlay
func oceanScene(c *canvas.Canvas) *animator.Scene {
	pattern := func() string {
		out := make([]rune, c.Width()-1)
		for i := range out {
			out[i] = '~'
		}
		return string(out)
	}

	ocean := animator.NewGenerator(0, animator.EveryN(2),
		func(g *animator.Generator) {
			g.Set("ocean", pattern())
		},
		func(g *animator.Generator, beat int) {
			text := g.GetString("ocean", pattern())
			style := getStyle(g, "ocean_col", canvas.Fg(canvas.Blue))
			for y := c.Height() / 2; y < c.Height()-1; y++ {
				drift := int(math.Sin(float64(beat)*0.1+float64(y)*0.1) * 3)
				c.SetString(1, drift, y, text, style)
			}
			if n := g.GetInt("ocean_glitch", 0); n > 0 {
				effects.Glitch(c, 1, n, nil)
			}
		},
		func(g *animator.Generator, beat int) { c.ClearLayer(1) },
	)

	lyric := animator.NewGenerator(0, animator.Always(),
		func(g *animator.Generator) {
			g.Set("text", "", "offset", 0)
		},
		func(g *animator.Generator, beat int) {
			if g.GetString("text", "") != "" {
				effects.Typewriter(c, g, 2, 5, 5, canvas.Fg(canvas.White).Bright(), true, 4)
			}
		},
		func(g *animator.Generator, beat int) { c.ClearLayer(2) },
	)

	return animator.NewScene("ocean", ocean, lyric)
}

// textScene shows lyrics over a switchable background effect
func textScene(c *canvas.Canvas) *animator.Scene {
	background := animator.NewGenerator(0, animator.EveryN(1),
		func(g *animator.Generator) {
			g.Set("effect_type", "none", "intensity", 5)
		},
		func(g *animator.Generator, beat int) {
			intensity := g.GetInt("intensity", 5)
			switch g.GetString("effect_type", "none") {
			case "noise":
				effects.Noise(c, 1, intensity, nil, nil)
			case "glitch":
				effects.Glitch(c, 1, intensity, nil)
			case "wave":
				phase := float64(beat) * 0.2
				effects.Wave(c, 1, c.Height()/2, 5, 0.1, phase, '~', canvas.Fg(canvas.Cyan))
			}
		},
		func(g *animator.Generator, beat int) { c.ClearLayer(1) },
	)

	lyric := animator.NewGenerator(0, animator.Always(),
		func(g *animator.Generator) {
			g.Set("text", "", "offset", 0)
		},
		func(g *animator.Generator, beat int) {
			if g.GetString("text", "") != "" {
				effects.Typewriter(c, g, 3, 10, 10, canvas.Fg(canvas.Yellow).Bright(), true, 5)
			}
		},
		func(g *animator.Generator, beat int) { c.ClearLayer(3) },
	)

	return animator.NewScene("text", background, lyric)
}

// chaosPositions is where the breakdown text repeats across the screen
var chaosPositions = [][2]int{
	{10, 8}, {30, 12}, {15, 16}, {40, 6}, {25, 20},
}

var chaosColors = []canvas.RGB{
	canvas.Red, canvas.Yellow, canvas.Magenta, canvas.White,
}

// breakdownScene floods the canvas with corruption and repeating text
func breakdownScene(c *canvas.Canvas) *animator.Scene {
	corruption := animator.NewGenerator(0, animator.Always(),
		func(g *animator.Generator) {
			g.Set("intensity", 20)
		},
		func(g *animator.Generator, beat int) {
			intensity := g.GetInt("intensity", 20)
			effects.Glitch(c, 1, intensity, nil)
			effects.Noise(c, 2, intensity/2, nil, []canvas.Style{
				canvas.Fg(canvas.Red),
				canvas.Fg(canvas.Yellow),
				canvas.Fg(canvas.Magenta),
			})
			for i := 0; i < intensity; i++ {
				x := effects.Intn(c.Width())
				y := effects.Intn(c.Height())
				c.SetChar(1, x, y, '█', canvas.Fg(canvas.Red).Bright())
			}
		},
		func(g *animator.Generator, beat int) {
			c.ClearLayer(1)
			c.ClearLayer(2)
		},
	)

	chaos := animator.NewGenerator(0, animator.EveryN(1),
		func(g *animator.Generator) {
			g.Set("text", "現実じゃない", "color", canvas.Fg(canvas.Red).Bright())
		},
		func(g *animator.Generator, beat int) {
			text := g.GetString("text", "現実じゃない")
			for i, pos := range chaosPositions {
				if (beat+i)%4 != 0 { // Stagger the appearances
					continue
				}
				color := chaosColors[effects.Intn(len(chaosColors))]
				c.SetString(3, pos[0], pos[1], text, canvas.Fg(color).Bright())
			}
		},
		func(g *animator.Generator, beat int) { c.ClearLayer(3) },
	)

	return animator.NewScene("breakdown", corruption, chaos)
}

// outroScene climbs "すぐそこまで" up the screen, then pulses the final
// line in the center
func outroScene(c *canvas.Canvas) *animator.Scene {
	climbing := animator.NewGenerator(0, animator.Always(),
		func(g *animator.Generator) {
			g.Set("text", "すぐそこまで", "count", 0)
		},
		func(g *animator.Generator, beat int) {
			text := g.GetString("text", "すぐそこまで")
			count := g.GetInt("count", 0)

			shown := count
			if shown > 8 {
				shown = 8
			}
			for i := 0; i < shown; i++ {
				y := c.Height() - 2 - i*2
				x := 10 + (i%2)*20
				if y < 0 {
					continue
				}
				// Older lines go dim
				style := canvas.Fg(canvas.Cyan).Bright()
				if i < count-2 {
					style = canvas.Fg(canvas.Cyan).Dim()
				}
				c.SetString(3, x, y, text, style)
			}

			if beat%8 == 0 && count < 8 {
				g.Set("count", count+1)
			}
		},
		func(g *animator.Generator, beat int) { c.ClearLayer(3) },
	)

	final := animator.NewGenerator(100, animator.Always(),
		func(g *animator.Generator) {
			g.Set("text", "")
		},
		func(g *animator.Generator, beat int) {
			text := g.GetString("text", "")
			if text == "" {
				return
			}
			x := (c.Width() - len([]rune(text))) / 2
			y := c.Height() / 2
			effects.Pulse(c, 4, x, y, text, beat, canvas.White)
		},
		func(g *animator.Generator, beat int) { c.ClearLayer(4) },
	)

	return animator.NewScene("outro", climbing, final)
}

// debugScene overlays beat counters and frame timing
func debugScene(c *canvas.Canvas) *animator.Scene {
	return animator.NewScene("debug",
		animator.NewGenerator(0, animator.Always(),
			func(g *animator.Generator) {
				g.Set("frames", []float64{})
			},
			func(g *animator.Generator, beat int) {
				frames, _ := g.Get("frames").([]float64)
				effects.DebugInfo(c, g, beat, frames)
			},
			func(g *animator.Generator, beat int) { c.ClearLayer(4) },
		),
	)
}
