package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/starfall/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := sample(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sample evaluates one wave at phase in [0, 1).
func sample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over s.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear volume. math.Log2(0) is -Inf, so zero
// volume is mapped to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue timings
const (
	collectNote1    = 70 * time.Millisecond
	collectNote2    = 140 * time.Millisecond
	collectAttack   = 5 * time.Millisecond
	collectRelease  = 60 * time.Millisecond
	explosionLength = 600 * time.Millisecond
	explosionAttack = 10 * time.Millisecond
	themeNoteLength = 180 * time.Millisecond
)

// CollectSound is a rising two-note square chime.
func CollectSound(rate beep.SampleRate, vol float64) beep.Streamer {
	n1 := NewEnvelope(NewOscillator(987.77, collectNote1, WaveSquare, rate), collectNote1, collectAttack, collectRelease/2, rate)
	n2 := NewEnvelope(NewOscillator(1318.51, collectNote2, WaveSquare, rate), collectNote2, collectAttack, collectRelease, rate)
	return newVolume(beep.Seq(n1, n2), 0.25*vol)
}

// ExplosionSound is a noise burst over a low thump, both decaying.
func ExplosionSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, explosionLength, WaveNoise, rate), explosionLength, explosionAttack, explosionLength-explosionAttack, rate)
	thump := NewEnvelope(NewOscillator(55, explosionLength, WaveSine, rate), explosionLength, explosionAttack, explosionLength/2, rate)
	return newVolume(beep.Mix(newVolume(noise, 0.6), newVolume(thump, 0.8)), 0.5*vol)
}

// themeNotes is the arpeggio the theme cycles through (C major, two octaves).
var themeNotes = []float64{261.63, 329.63, 392.00, 523.25, 659.25, 523.25, 392.00, 329.63}

// ThemeGenerator streams the background theme forever.
type ThemeGenerator struct {
	rate    beep.SampleRate
	perNote int
	pos     int
	phase   float64
}

// NewThemeGenerator creates an endless arpeggio generator.
func NewThemeGenerator(rate beep.SampleRate) *ThemeGenerator {
	return &ThemeGenerator{rate: rate, perNote: rate.N(themeNoteLength)}
}

func (g *ThemeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (g.pos / g.perNote) % len(themeNotes)
		inNote := g.pos % g.perNote

		// Short decay per note so the arpeggio does not smear
		env := 1 - float64(inNote)/float64(g.perNote)
		val := 0.6 * env * sample(WaveSquare, g.phase)

		samples[i][0] = val
		samples[i][1] = val

		g.phase += themeNotes[note] / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *ThemeGenerator) Err() error { return nil }

// cueStreamer returns a one-shot streamer for a sound cue, or nil for cues
// that are not one-shots.
func cueStreamer(s core.Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	switch s {
	case core.SoundCollect:
		return CollectSound(rate, vol)
	case core.SoundExplosion:
		return ExplosionSound(rate, vol)
	default:
		return nil
	}
}
