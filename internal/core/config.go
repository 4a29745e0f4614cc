package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Sound identifies a sound cue the host should play.
type Sound int

const (
	SoundNone Sound = iota
	SoundCollect
	SoundExplosion
	SoundTheme
)

// String returns the cue name used on the wire and in logs.
func (s Sound) String() string {
	switch s {
	case SoundCollect:
		return "collect"
	case SoundExplosion:
		return "explosion"
	case SoundTheme:
		return "theme"
	default:
		return "none"
	}
}

// EventKind classifies what happened during a tick.
type EventKind int

const (
	// EventSound asks the host to play Event.Sound. Fire-and-forget.
	EventSound EventKind = iota + 1

	// EventRespawn reports that the collectible pool was refilled and a new
	// obstacle was added.
	EventRespawn

	// EventRoundOver is emitted exactly once per world instance. The host
	// reveals its restart control after Event.Delay.
	EventRoundOver
)

// Event is a side effect a game hands to its host.
// Games stay pure; the platform owns speakers, timers and page controls.
type Event struct {
	Kind  EventKind
	Sound Sound
	Score int
	Delay time.Duration
}

// HasEvent reports whether the result contains an event of the given kind.
func (r StepResult) HasEvent(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
