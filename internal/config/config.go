// Package config provides YAML-based game configuration loading and
// difficulty management for Starfall.
package config

import (
	"errors"
	"fmt"
	"time"
)

// StarfallConfig contains all configuration for the Starfall game.
// Coordinates are world units (pixels of the original 800x540 stage);
// velocities are world units per second.
type StarfallConfig struct {
	World      StarfallWorld      `yaml:"world"`
	Player     StarfallPlayer     `yaml:"player"`
	Stars      StarfallStars      `yaml:"stars"`
	Bombs      StarfallBombs      `yaml:"bombs"`
	Platforms  []StarfallPlatform `yaml:"platforms"`
	Round      StarfallRound      `yaml:"round"`
	Difficulty DifficultyConfig   `yaml:"difficulty"`
}

// StarfallWorld defines the play area and global physics.
type StarfallWorld struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Gravity float64 `yaml:"gravity"`
}

// Midpoint returns the horizontal center of the world.
func (w StarfallWorld) Midpoint() float64 {
	return w.Width / 2
}

// StarfallPlayer defines the player body and movement.
type StarfallPlayer struct {
	X         float64 `yaml:"x"` // Spawn center
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	RunSpeed  float64 `yaml:"run_speed"`
	JumpSpeed float64 `yaml:"jump_speed"` // Magnitude of the upward impulse
	Bounce    float64 `yaml:"bounce"`
}

// StarfallStars defines the collectible pool.
type StarfallStars struct {
	Count     int     `yaml:"count"`
	StartX    float64 `yaml:"start_x"`
	StepX     float64 `yaml:"step_x"`
	OriginY   float64 `yaml:"origin_y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	BounceMin float64 `yaml:"bounce_min"`
	BounceMax float64 `yaml:"bounce_max"`
	Reward    int     `yaml:"reward"`
	Spin      float64 `yaml:"spin"` // Radians added per tick, cosmetic
}

// StarfallBombs defines obstacle spawning.
type StarfallBombs struct {
	SpawnY float64 `yaml:"spawn_y"`
	MinVX  int     `yaml:"min_vx"`
	MaxVX  int     `yaml:"max_vx"`
	VY     float64 `yaml:"vy"`
	Size   float64 `yaml:"size"`
	Bounce float64 `yaml:"bounce"`
}

// StarfallPlatform is a static platform. X/Y is the center; the body is
// Width*Scale by Height*Scale.
type StarfallPlatform struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

// Size returns the scaled platform dimensions. A zero scale means 1.
func (p StarfallPlatform) Size() (w, h float64) {
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	return p.Width * scale, p.Height * scale
}

// StarfallRound defines game-over timings.
type StarfallRound struct {
	FadeMS         int `yaml:"fade_ms"`
	RestartDelayMS int `yaml:"restart_delay_ms"`
}

// Fade returns the fade-out duration.
func (r StarfallRound) Fade() time.Duration {
	return time.Duration(r.FadeMS) * time.Millisecond
}

// RestartDelay returns how long after game over the restart control appears.
func (r StarfallRound) RestartDelay() time.Duration {
	return time.Duration(r.RestartDelayMS) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to bomb speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown values map to
// the empty preset, which keeps the config's own settings.
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks the invariants the game relies on.
func (c StarfallConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Stars.Count <= 0 {
		errs = append(errs, fmt.Errorf("stars.count must be positive, got %d", c.Stars.Count))
	}
	if c.Stars.Reward < 0 {
		errs = append(errs, fmt.Errorf("stars.reward must not be negative, got %d", c.Stars.Reward))
	}
	if c.Stars.BounceMin > c.Stars.BounceMax {
		errs = append(errs, fmt.Errorf("stars.bounce_min %v exceeds bounce_max %v", c.Stars.BounceMin, c.Stars.BounceMax))
	}
	if c.Bombs.MinVX > c.Bombs.MaxVX {
		errs = append(errs, fmt.Errorf("bombs.min_vx %d exceeds max_vx %d", c.Bombs.MinVX, c.Bombs.MaxVX))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid starfall config: %w", errors.Join(errs...))
	}
	return nil
}
