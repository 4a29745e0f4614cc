// Package audio plays the game's sound cues through gopxl/beep.
// Every cue is fire-and-forget: a failed or missing device never affects play.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/starfall/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 100 * time.Millisecond
)

// Player plays sound cues.
type Player interface {
	Play(s core.Sound)
	StartMusic()
	Close()
}

// Config controls the speaker.
type Config struct {
	Volume float64 // Master volume, 0..1
	Music  bool    // Play the background theme
}

// DefaultConfig returns full volume with music on.
func DefaultConfig() Config {
	return Config{Volume: 1, Music: true}
}

// Silent is a Player that does nothing.
type Silent struct{}

func (Silent) Play(core.Sound) {}
func (Silent) StartMusic()     {}
func (Silent) Close()          {}

// Speaker plays cues on the default audio device.
type Speaker struct {
	mu     sync.Mutex
	cfg    Config
	mixer  *beep.Mixer
	theme  *beep.Ctrl
	closed bool
}

// New opens the audio device. When that fails, it logs a warning and returns
// a Silent player.
func New(cfg Config, logger *log.Logger) Player {
	if cfg.Volume <= 0 {
		return Silent{}
	}

	s := &Speaker{cfg: cfg, mixer: &beep.Mixer{}}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing without sound", "error", err)
		}
		return Silent{}
	}
	speaker.Play(s.mixer)
	return s
}

// Play mixes in a one-shot cue. Overlapping cues are allowed.
func (s *Speaker) Play(cue core.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	st := cueStreamer(cue, sampleRate, s.cfg.Volume)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// StartMusic starts the background theme once. Later calls resume it if it
// was paused.
func (s *Speaker) StartMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.cfg.Music {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if s.theme != nil {
		s.theme.Paused = false
		return
	}
	s.theme = &beep.Ctrl{Streamer: newVolume(NewThemeGenerator(sampleRate), 0.08*s.cfg.Volume)}
	s.mixer.Add(s.theme)
}

// Close stops every cue and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	speaker.Lock()
	if s.theme != nil {
		s.theme.Paused = true
	}
	s.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
}
