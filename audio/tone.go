package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
)

// at returns the wave value in [-1, 1] at phase in [0, 1)
func (w Wave) at(phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Saw:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Tone describes a single shaped note: pitch, length and linear attack and release ramps
type Tone struct {
	Wave    Wave
	Freq    float64
	Length  time.Duration
	Attack  time.Duration
	Release time.Duration
}

// Streamer renders the tone at rate; the stream ends after Length
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	return &toneStreamer{
		wave:    t.Wave,
		step:    t.Freq / float64(rate),
		total:   rate.N(t.Length),
		attack:  rate.N(t.Attack),
		release: rate.N(t.Release),
	}
}

type toneStreamer struct {
	wave    Wave
	step    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		v := s.wave.at(s.phase) * s.gain()
		samples[i][0], samples[i][1] = v, v

		s.phase += s.step
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }

// gain is the envelope level at the current sample
func (s *toneStreamer) gain() float64 {
	g := 1.0
	if s.attack > 0 && s.pos < s.attack {
		g = float64(s.pos) / float64(s.attack)
	}
	if left := s.total - s.pos; s.release > 0 && left < s.release {
		g = math.Min(g, float64(left)/float64(s.release))
	}
	return g
}

// withVolume scales s linearly by vol; zero or less is silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
