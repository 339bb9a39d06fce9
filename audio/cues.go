// Package audio plays short tones that follow the search: a tick per step and a closing chime or buzz
package audio

import (
	"context"
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/maze-bfs/engine"
	"github.com/lixenwraith/maze-bfs/maze"
)

// SampleRate is the output rate for every cue
const SampleRate = beep.SampleRate(44100)

// Cue timings
const (
	tickDuration  = 30 * time.Millisecond
	tickAttack    = 2 * time.Millisecond
	tickRelease   = 20 * time.Millisecond
	chimeDuration = 400 * time.Millisecond
	chimeAttack   = 5 * time.Millisecond
	chimeRelease  = 300 * time.Millisecond
	buzzDuration  = 250 * time.Millisecond
	buzzAttack    = 5 * time.Millisecond
	buzzRelease   = 100 * time.Millisecond
)

// Tick pitch climbs a semitone per two path cells, capped at two octaves
const (
	tickBaseFreq   = 440.0
	tickMaxOctaves = 2.0
)

// Player plays a finite stream without blocking
type Player interface {
	Play(s beep.Streamer)
}

// Cues turns search frames into tones
// It implements engine.Renderer and engine.Finisher
type Cues struct {
	player Player
	volume float64
	ticks  bool
}

// CueOption configures Cues
type CueOption func(*Cues)

// WithVolume sets the linear output volume in [0, 1]
func WithVolume(v float64) CueOption {
	return func(c *Cues) { c.volume = math.Max(0, math.Min(1, v)) }
}

// WithTicks toggles the per-step tick
func WithTicks(on bool) CueOption {
	return func(c *Cues) { c.ticks = on }
}

// NewCues creates a cue source that plays through p
func NewCues(p Player, opts ...CueOption) *Cues {
	c := &Cues{player: p, volume: 0.5, ticks: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render plays a tick whose pitch follows the current path depth
func (c *Cues) Render(_ context.Context, _ *maze.Grid, f engine.Frame) error {
	if !c.ticks || c.player == nil {
		return nil
	}
	c.player.Play(c.Tick(len(f.Path) - 1))
	return nil
}

// Finish plays a chime when a path was found and a buzz otherwise
func (c *Cues) Finish(_ context.Context, _ *maze.Grid, r engine.Result) error {
	if c.player == nil {
		return nil
	}
	if r.State == engine.Found {
		c.player.Play(c.Chime())
	} else {
		c.player.Play(c.Buzz())
	}
	return nil
}

// Tick builds the step tone for a path of depth moves
func (c *Cues) Tick(depth int) beep.Streamer {
	if depth < 0 {
		depth = 0
	}
	octaves := math.Min(float64(depth)/24, tickMaxOctaves)
	tick := Tone{
		Wave:    Sine,
		Freq:    tickBaseFreq * math.Pow(2, octaves),
		Length:  tickDuration,
		Attack:  tickAttack,
		Release: tickRelease,
	}
	return withVolume(tick.Streamer(SampleRate), c.volume*0.4)
}

// Chime builds a two-note rising chime; the second note starts halfway through the first
func (c *Cues) Chime() beep.Streamer {
	low := Tone{Wave: Sine, Freq: 659.25, Length: chimeDuration, Attack: chimeAttack, Release: chimeRelease}
	high := low
	high.Freq = 987.77

	half := SampleRate.N(chimeDuration / 2)
	seq := beep.Seq(beep.Take(half, low.Streamer(SampleRate)), high.Streamer(SampleRate))
	return withVolume(seq, c.volume*0.7)
}

// Buzz builds a low saw buzz
func (c *Cues) Buzz() beep.Streamer {
	buzz := Tone{Wave: Saw, Freq: 110, Length: buzzDuration, Attack: buzzAttack, Release: buzzRelease}
	return withVolume(buzz.Streamer(SampleRate), c.volume*0.6)
}
