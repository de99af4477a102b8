package effects

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/n3xta/heat-abnormal-terminal-animation/animator"
	"github.com/n3xta/heat-abnormal-terminal-animation/canvas"
)

const debugColWidth = 17

// debugPalette is the 8-color strip shown twice, normal and bright
var debugPalette = []canvas.RGB{
	canvas.Black, canvas.Red, canvas.Green, canvas.Yellow,
	canvas.Blue, canvas.Magenta, canvas.Cyan, canvas.White,
}

// DebugInfo draws the diagnostics overlay: global and scene-local beat,
// active scenes with their running generator counts, writes this frame,
// frame rate and a color test strip. frameTimes holds recent frame
// timestamps in seconds for the fps estimate.
func DebugInfo(c *canvas.Canvas, g *animator.Generator, beat int, frameTimes []float64) {
	m := g.Manager()
	if m == nil {
		return
	}
	x := c.Width() - debugColWidth - 1
	if x < 0 {
		x = 0
	}

	localBeat := 0
	if g.Scene() != nil {
		localBeat = g.Scene().Beat()
	}
	bright := canvas.Fg(canvas.Yellow).Bright()
	c.SetString(0, x, 1, fmt.Sprintf("%4d g | %4d l", m.Beat(), localBeat), bright)

	sceneCount := 0
	for _, scene := range m.ActiveScenes() {
		if scene == nil || scene.Name() == "debug" {
			continue
		}
		running := 0
		for _, gen := range scene.Generators() {
			if gen.StartBeat <= beat {
				running++
			}
		}
		info := fmt.Sprintf("%s (%d)", scene.Name(), running)
		c.SetString(0, x, sceneCount+2, center(info, debugColWidth), canvas.Fg(canvas.Green))
		sceneCount++
	}
	for i := sceneCount; i < 6; i++ {
		c.SetString(0, x, i+2, strings.Repeat(" ", debugColWidth), canvas.Fg(canvas.Green))
	}

	c.SetString(0, x, 8, fmt.Sprintf("  %4d e/f", c.EditsThisFrame()), bright)

	fps := 0.0
	if len(frameTimes) > 1 {
		elapsed := frameTimes[len(frameTimes)-1] - frameTimes[0]
		if elapsed > 0 {
			fps = float64(len(frameTimes)-1) / elapsed
		}
	}
	c.SetString(0, x, 9, fmt.Sprintf(" %6.1f fps", fps), bright)

	for i := 0; i < 16; i++ {
		style := canvas.Fg(debugPalette[i%8])
		if i >= 8 {
			style = style.Bright()
		}
		c.SetChar(0, x+i%8, 11+i/8, '#', style)
	}
}

// center pads text to the given display width, splitting the slack
// between both sides. Overlong text is passed through unchanged.
func center(text string, width int) string {
	slack := width - runewidth.StringWidth(text)
	if slack <= 0 {
		return text
	}
	left := slack / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", slack-left)
}
