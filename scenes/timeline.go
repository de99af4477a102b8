package scenes

import (
	"github.com/n3xta/heat-abnormal-terminal-animation/animator"
	"github.com/n3xta/heat-abnormal-terminal-animation/canvas"
)

// Lyrics returns the song text by section
func Lyrics() map[string]string {
	return map[string]string{
		"intro": `泣いた細胞が海に戻る
世迷言がへばりつく
燕が描いた軌跡を
なぞるように灰色の雲が来ている`,

		"verse1": `編んだ名誉で明日を乞う
希望で手が汚れてる
あなたの澄んだ瞳の
色をした星に問いかけている`,

		"chorus": `手を取り合い 愛し合えたら
ついに叶わなかった夢を殺す
思考の成れ果て
その中枢には熱異常が起こっている`,

		"breakdown": `現実じゃない こんなの
現実じゃない こんなの
現実じゃない こんなの
現実じゃない こんなの`,

		"break": `耐えられないの`,

		"bridge": `とうに潰れていた喉
叫んだ音は既に列を成さないで
安楽椅子の上
腐りきった三日月が笑っている もう`,

		"breakdown2": `
すぐそこまで
すぐそこまで
すぐそこまで
すぐそこまで
すぐそこまで
すぐそこまで
すぐそこまで
すぐそこまで
`,

		"outro": `
なにかが来ている`,
	}
}

// Section starts on the beat grid. Lengths follow the song structure:
// four-beat lines in the verses and bridge, two-beat lines in the first
// breakdown, one-beat lines in the second.
const (
	introStart      = 0
	introLength     = 32
	verseStart      = introStart + introLength
	verseLength     = 32
	chorusStart     = verseStart + verseLength
	chorusLength    = 16
	breakdownStart  = chorusStart + chorusLength
	breakdownLength = 12
	breakStart      = breakdownStart + breakdownLength
	breakLength     = 4
	bridgeStart     = breakStart + breakLength
	bridgeLength    = 16
	breakdown2Start = bridgeStart + bridgeLength
	breakdown2Len   = 12
	outroStart      = breakdown2Start + breakdown2Len
	outroLength     = 4

	// EndBeat is where the animation swaps back to black
	EndBeat = outroStart + outroLength + 4
)

// Timeline returns the beat-indexed events that drive the song through
// its sections
func Timeline() []animator.Event {
	lyrics := Lyrics()

	return []animator.Event{
		{Beat: 0, Do: animator.SwapScene("clear", 0)},

		// Intro: ocean with the opening lines typed over it
		{Beat: introStart, Do: animator.SwapScene("ocean", 0)},
		{Beat: introStart, Do: func(m *animator.Manager) {
			m.SetGeneratorData("ocean", 1, "text", lyrics["intro"], "offset", 0)
		}},

		// Verse 1: lyric scene with a wave background
		{Beat: verseStart, Do: animator.SwapScene("text", 0)},
		{Beat: verseStart, Do: func(m *animator.Manager) {
			m.SetGeneratorData("text", 1, "text", lyrics["verse1"], "offset", 0)
			m.SetGeneratorData("text", 0, "effect_type", "wave", "intensity", 8)
		}},

		// Chorus: same scene, noisier background
		{Beat: chorusStart, Do: func(m *animator.Manager) {
			m.SetGeneratorData("text", 1, "text", lyrics["chorus"], "offset", 0)
			m.SetGeneratorData("text", 0, "effect_type", "noise", "intensity", 10)
		}},

		// Breakdown: full corruption
		{Beat: breakdownStart, Do: animator.SwapScene("breakdown", 0)},
		{Beat: breakdownStart, Do: func(m *animator.Manager) {
			m.SetGeneratorData("breakdown", 1, "text", lyrics["breakdown"])
			m.SetGeneratorData("breakdown", 0, "intensity", 30)
		}},

		// Break: one line over glitch
		{Beat: breakStart, Do: animator.SwapScene("text", 0)},
		{Beat: breakStart, Do: func(m *animator.Manager) {
			m.SetGeneratorData("text", 1, "text", lyrics["break"], "offset", 0)
			m.SetGeneratorData("text", 0, "effect_type", "glitch", "intensity", 15)
		}},

		// Bridge: back to the ocean, dimmed
		{Beat: bridgeStart, Do: animator.SwapScene("ocean", 0)},
		{Beat: bridgeStart, Do: func(m *animator.Manager) {
			m.SetGeneratorData("ocean", 1, "text", lyrics["bridge"], "offset", 0)
			m.SetGeneratorData("ocean", 0, "ocean_col", canvas.Fg(canvas.Cyan).Dim())
		}},

		// Breakdown 2: rapid text
		{Beat: breakdown2Start, Do: animator.SwapScene("breakdown", 0)},
		{Beat: breakdown2Start, Do: func(m *animator.Manager) {
			m.SetGeneratorData("breakdown", 1, "text", lyrics["breakdown2"])
			m.SetGeneratorData("breakdown", 0, "intensity", 40)
		}},

		// Outro: climbing text
		{Beat: outroStart, Do: animator.SwapScene("outro", 0)},
		{Beat: outroStart, Do: func(m *animator.Manager) {
			m.SetGeneratorData("outro", 1, "text", lyrics["outro"])
		}},

		{Beat: EndBeat, Do: animator.SwapScene("clear", 0)},
	}
}
