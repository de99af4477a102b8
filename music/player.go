// Package music drives beat timing for the animation, optionally locked
// to an audio track played through the speaker. A player without a
// loadable track degrades to a silent clock with identical beat math, so
// the frame loop never has to care whether audio is available.
package music

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	beepfx "github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
)

// speakerBufferLen is the speaker buffer length; short enough that pause
// feels immediate
const speakerBufferLen = time.Second / 10

// Player owns one audio track and the beat clock derived from it.
// The clock is pause-aware: paused time never advances beats.
type Player struct {
	path            string
	bpm             float64
	beatsPerMeasure int

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *beepfx.Volume

	silent  bool
	loadErr error

	now         func() time.Time // injected in tests
	playing     bool
	paused      bool
	startTime   time.Time
	pausedAt    time.Time
	totalPaused time.Duration

	lastBeat  int
	onBeat    func(beat int)
	onMeasure func(measure int)
}

// NewPlayer creates a player for the given track. A missing or
// undecodable file is not an error: the player runs silent and Err
// reports why. bpm must be positive.
func NewPlayer(path string, bpm float64, beatsPerMeasure int) *Player {
	if bpm <= 0 {
		bpm = 120
	}
	if beatsPerMeasure < 1 {
		beatsPerMeasure = 4
	}
	p := &Player{
		path:            path,
		bpm:             bpm,
		beatsPerMeasure: beatsPerMeasure,
		now:             time.Now,
		lastBeat:        -1,
	}
	if err := p.load(); err != nil {
		p.silent = true
		p.loadErr = err
	}
	return p
}

func (p *Player) load() error {
	if p.path == "" {
		return errors.New("no audio file configured")
	}
	f, err := os.Open(p.path)
	if err != nil {
		return errors.Wrap(err, "open audio file")
	}

	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".mp3":
		p.streamer, p.format, err = mp3.Decode(f)
	case ".wav":
		p.streamer, p.format, err = wav.Decode(f)
	default:
		f.Close()
		return errors.Errorf("unsupported audio format %q", filepath.Ext(p.path))
	}
	if err != nil {
		f.Close()
		return errors.Wrap(err, "decode audio file")
	}

	if err := speaker.Init(p.format.SampleRate, p.format.SampleRate.N(speakerBufferLen)); err != nil {
		p.streamer.Close()
		p.streamer = nil
		return errors.Wrap(err, "init speaker")
	}
	return nil
}

// Err reports why the player is silent, nil when audio loaded fine
func (p *Player) Err() error {
	return p.loadErr
}

// Silent reports whether the player is running without audio output
func (p *Player) Silent() bool {
	return p.silent
}

// BPM returns the configured tempo
func (p *Player) BPM() float64 {
	return p.bpm
}

// BeatDuration returns the length of one beat
func (p *Player) BeatDuration() time.Duration {
	return time.Duration(60 / p.bpm * float64(time.Second))
}

// Play starts playback (and the beat clock) at the given offset in
// seconds into the track
func (p *Player) Play(offsetSec float64) {
	offset := time.Duration(offsetSec * float64(time.Second))
	if !p.silent {
		if offsetSec > 0 {
			speaker.Lock()
			p.streamer.Seek(p.format.SampleRate.N(offset))
			speaker.Unlock()
		}
		p.volume = &beepfx.Volume{Streamer: p.streamer, Base: 2}
		p.ctrl = &beep.Ctrl{Streamer: p.volume}
		speaker.Play(p.ctrl)
	}
	p.startTime = p.now().Add(-offset)
	p.totalPaused = 0
	p.paused = false
	p.playing = true
}

// Pause freezes playback and the beat clock
func (p *Player) Pause() {
	if !p.playing || p.paused {
		return
	}
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
	}
	p.pausedAt = p.now()
	p.paused = true
}

// Resume continues after a pause; the paused interval is excluded from
// the beat clock
func (p *Player) Resume() {
	if !p.playing || !p.paused {
		return
	}
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}
	p.totalPaused += p.now().Sub(p.pausedAt)
	p.paused = false
}

// Paused reports whether playback is paused
func (p *Player) Paused() bool {
	return p.paused
}

// Stop ends playback and resets the clock
func (p *Player) Stop() {
	if p.ctrl != nil {
		speaker.Clear()
	}
	p.playing = false
	p.paused = false
	p.lastBeat = -1
}

// Seek moves playback (and the clock) to a position in seconds
func (p *Player) Seek(positionSec float64) {
	offset := time.Duration(positionSec * float64(time.Second))
	if p.streamer != nil {
		speaker.Lock()
		p.streamer.Seek(p.format.SampleRate.N(offset))
		speaker.Unlock()
	}
	p.startTime = p.now().Add(-offset)
	p.totalPaused = 0
	if p.paused {
		p.pausedAt = p.now()
	}
}

// CurrentTime returns the playback position of the beat clock
func (p *Player) CurrentTime() time.Duration {
	if !p.playing {
		return 0
	}
	if p.paused {
		return p.pausedAt.Sub(p.startTime) - p.totalPaused
	}
	return p.now().Sub(p.startTime) - p.totalPaused
}

// CurrentBeat returns the beat number at the clock position
func (p *Player) CurrentBeat() int {
	if !p.playing {
		return 0
	}
	return int(p.CurrentTime().Seconds() / p.BeatDuration().Seconds())
}

// CurrentMeasure returns the measure number at the clock position
func (p *Player) CurrentMeasure() int {
	return p.CurrentBeat() / p.beatsPerMeasure
}

// BeatProgress returns the position inside the current beat, in [0,1)
func (p *Player) BeatProgress() float64 {
	if !p.playing {
		return 0
	}
	beat := p.BeatDuration().Seconds()
	t := p.CurrentTime().Seconds()
	return (t - float64(int(t/beat))*beat) / beat
}

// MeasureProgress returns the position inside the current measure, in [0,1)
func (p *Player) MeasureProgress() float64 {
	if !p.playing {
		return 0
	}
	measure := p.BeatDuration().Seconds() * float64(p.beatsPerMeasure)
	t := p.CurrentTime().Seconds()
	return (t - float64(int(t/measure))*measure) / measure
}

// Duration returns the track length, zero when silent
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Finished reports whether the clock has run past the end of the track.
// A silent player never finishes on its own.
func (p *Player) Finished() bool {
	if p.silent || !p.playing {
		return false
	}
	return p.CurrentTime() >= p.Duration()
}

// OnBeat registers a callback fired by Update on every beat change
func (p *Player) OnBeat(fn func(beat int)) {
	p.onBeat = fn
}

// OnMeasure registers a callback fired by Update at measure starts
func (p *Player) OnMeasure(fn func(measure int)) {
	p.onMeasure = fn
}

// Update fires due beat/measure callbacks. Call once per frame.
func (p *Player) Update() {
	if !p.playing || p.paused {
		return
	}
	beat := p.CurrentBeat()
	if beat == p.lastBeat {
		return
	}
	p.lastBeat = beat
	if p.onBeat != nil {
		p.onBeat(beat)
	}
	if beat%p.beatsPerMeasure == 0 && p.onMeasure != nil {
		p.onMeasure(beat / p.beatsPerMeasure)
	}
}

// Close releases the audio stream
func (p *Player) Close() {
	p.Stop()
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
}
