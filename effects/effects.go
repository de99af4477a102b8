// Package effects is the visual-effect library used by scene generators:
// typewriter text, noise, waves, glitches and the other building blocks of
// the animation. Effects only ever write through the canvas API; the span
// buffer handles the diffing.
package effects

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/n3xta/heat-abnormal-terminal-animation/animator"
	"github.com/n3xta/heat-abnormal-terminal-animation/canvas"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// Seed reseeds the shared random source, used by tests for determinism
func Seed(seed int64) {
	rng = rand.New(rand.NewSource(seed))
}

// Intn draws from the shared random source so scene code stays in step
// with the seeded effects
func Intn(n int) int {
	return rng.Intn(n)
}

// GlitchChars is the default character set for noise and glitch effects
const GlitchChars = "!@#$%^&*()_+-=[]{}|;':,.<>?/~`"

// clearPrefix marks a typewriter text as a region-clear command:
// [##CLEAR|width;height]
const clearPrefix = "[##CLEAR|"

// Typewriter reveals the generator's "text" one chunk per beat, keeping
// the character offset in the generator's "offset" key. A trailing
// underscore cursor follows the revealed text. speed is characters per
// beat. Text starting with the clear command blanks the given region
// instead.
func Typewriter(c *canvas.Canvas, g *animator.Generator, layer, x, y int, style canvas.Style, render bool, speed int) {
	text := g.GetString("text", "")
	offset := g.GetInt("offset", 0)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, clearPrefix) {
		w, h := parseClearBounds(text)
		if render {
			blank := strings.Repeat(" ", w)
			for dy := 0; dy < h; dy++ {
				c.SetString(layer, x, y+dy, blank, style)
			}
		}
		return
	}

	total := 0
	for lineNum, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		lineOffset := offset - total
		if lineOffset >= 0 && render {
			visible := runes
			cursor := ""
			if lineOffset < len(runes) {
				visible = runes[:lineOffset]
				cursor = "_"
			}
			shown := strings.NewReplacer("~", "", "@", "").Replace(string(visible)) + cursor
			c.SetString(layer, x, y+lineNum, shown, style)
		}
		total += len(runes) + 1 // +1 for the line break
	}

	g.Set("offset", offset+speed)
}

func parseClearBounds(text string) (w, h int) {
	spec := strings.TrimPrefix(text, clearPrefix)
	if i := strings.IndexByte(spec, ']'); i >= 0 {
		spec = spec[:i]
	}
	parts := strings.SplitN(spec, ";", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	w, _ = strconv.Atoi(parts[0])
	h, _ = strconv.Atoi(parts[1])
	return w, h
}

// Noise scatters random characters at random positions
func Noise(c *canvas.Canvas, layer, amount int, chars []rune, styles []canvas.Style) {
	if len(chars) == 0 {
		chars = []rune(GlitchChars)
	}
	if len(styles) == 0 {
		styles = []canvas.Style{canvas.Fg(canvas.White)}
	}
	for i := 0; i < amount; i++ {
		x := rng.Intn(c.Width())
		y := rng.Intn(c.Height())
		c.SetChar(layer, x, y, chars[rng.Intn(len(chars))], styles[rng.Intn(len(styles))])
	}
}

// glitchStyles are the corruption colors cycled by Glitch
var glitchStyles = []canvas.Style{
	canvas.Fg(canvas.Red).Bright(),
	canvas.Fg(canvas.Yellow).Bright(),
	canvas.Fg(canvas.Green).Bright(),
	canvas.Fg(canvas.Magenta).Bright(),
}

// Glitch corrupts random cells with bright noise characters
func Glitch(c *canvas.Canvas, layer, intensity int, chars []rune) {
	if len(chars) == 0 {
		chars = []rune(GlitchChars)
	}
	for i := 0; i < intensity; i++ {
		x := rng.Intn(c.Width())
		y := rng.Intn(c.Height())
		c.SetChar(layer, x, y, chars[rng.Intn(len(chars))], glitchStyles[rng.Intn(len(glitchStyles))])
	}
}

// Wave draws one sine wave across the canvas width
func Wave(c *canvas.Canvas, layer, baseY, amplitude int, frequency, phase float64, r rune, style canvas.Style) {
	for x := 0; x < c.Width(); x++ {
		y := baseY + int(float64(amplitude)*math.Sin(frequency*float64(x)+phase))
		if y >= 0 && y < c.Height() {
			c.SetChar(layer, x, y, r, style)
		}
	}
}

// Pulse draws text whose brightness follows the beat
func Pulse(c *canvas.Canvas, layer, x, y int, text string, beat int, color canvas.RGB) {
	style := canvas.Fg(color)
	if beat%2 == 0 {
		style = canvas.Fg(Brighten(color, 0.4))
	}
	c.SetString(layer, x, y, text, style)
}

// Scramble draws text with the unrevealed tail replaced by random
// characters; progress in [0,1] controls how much is revealed
func Scramble(c *canvas.Canvas, layer, x, y int, text string, scrambleChars []rune, progress float64, style canvas.Style) {
	if len(scrambleChars) == 0 {
		scrambleChars = []rune(GlitchChars)
	}
	runes := []rune(text)
	revealed := int(float64(len(runes)) * progress)
	out := make([]rune, len(runes))
	for i, r := range runes {
		if i < revealed {
			out[i] = r
		} else {
			out[i] = scrambleChars[rng.Intn(len(scrambleChars))]
		}
	}
	c.SetString(layer, x, y, string(out), style)
}

// LoadingBar draws a fill/empty progress bar of the given width
func LoadingBar(c *canvas.Canvas, layer, x, y, width int, progress float64, fill, empty rune, style canvas.Style) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(float64(width) * progress)
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = fill
		} else {
			bar[i] = empty
		}
	}
	c.SetString(layer, x, y, string(bar), style)
}

// rainChars is the half-width katakana set of the digital rain
var rainChars = []rune("ﾊﾐﾋｰｳｼﾅﾓﾆｻﾜﾂｵﾘｱﾎﾃﾏｹﾒｴｶｷﾑﾕﾗｾﾈｽﾀﾇﾍ")

// MatrixRain drops random characters down the given columns
func MatrixRain(c *canvas.Canvas, layer int, columns []int, chars []rune, style canvas.Style) {
	if len(chars) == 0 {
		chars = rainChars
	}
	for _, col := range columns {
		if col < 0 || col >= c.Width() {
			continue
		}
		for y := 0; y < c.Height(); y++ {
			if rng.Intn(100) < 15 {
				c.SetChar(layer, col, y, chars[rng.Intn(len(chars))], style)
			}
		}
	}
}

// FadeRegion probabilistically blanks cells of a rectangular region; step
// ranges over [0,steps) with later steps fading more. Driven per beat by
// the caller rather than sleeping between steps.
func FadeRegion(c *canvas.Canvas, layer, x0, y0, x1, y1, step, steps int, fade rune) {
	if steps < 1 {
		steps = 1
	}
	chance := (step + 1) * 100 / steps
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if rng.Intn(100) < chance {
				c.SetChar(layer, x, y, fade, canvas.Style{})
			}
		}
	}
}
