package music

import "time"

// Synchronizer maps the player's clock onto the animation's beat grid.
// The animation may run at a different BPM than the track, and both a
// beat offset and a time offset are available for lining the two up.
type Synchronizer struct {
	player       *Player
	animationBPM float64
	beatOffset   int
	timeOffset   time.Duration
}

// NewSynchronizer creates a synchronizer; animationBPM <= 0 inherits the
// player's tempo
func NewSynchronizer(p *Player, animationBPM float64) *Synchronizer {
	if animationBPM <= 0 {
		animationBPM = p.BPM()
	}
	return &Synchronizer{player: p, animationBPM: animationBPM}
}

// SetBeatOffset shifts the animation beat grid by whole beats
func (s *Synchronizer) SetBeatOffset(offset int) {
	s.beatOffset = offset
}

// SetTimeOffset shifts the animation beat grid in time
func (s *Synchronizer) SetTimeOffset(offset time.Duration) {
	s.timeOffset = offset
}

// beatDuration is the animation beat length
func (s *Synchronizer) beatDuration() time.Duration {
	return time.Duration(60 / s.animationBPM * float64(time.Second))
}

// Beat returns the current animation beat, never negative
func (s *Synchronizer) Beat() int {
	t := s.player.CurrentTime() + s.timeOffset
	beat := int(t.Seconds()/s.beatDuration().Seconds()) + s.beatOffset
	if beat < 0 {
		return 0
	}
	return beat
}

// ShouldAdvance reports whether the animation is behind the clock
func (s *Synchronizer) ShouldAdvance(lastBeat int) bool {
	return s.Beat() != lastBeat
}

// Progress returns the position inside the current animation beat, in [0,1)
func (s *Synchronizer) Progress() float64 {
	beat := s.beatDuration().Seconds()
	t := (s.player.CurrentTime() + s.timeOffset).Seconds()
	return (t - float64(int(t/beat))*beat) / beat
}
