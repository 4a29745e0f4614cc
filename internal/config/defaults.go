package config

import (
	_ "embed"
)

//go:embed defaults/starfall.yaml
var defaultStarfallYAML []byte

// DefaultStarfallConfig returns the default Starfall configuration.
// It mirrors defaults/starfall.yaml and is used if the embedded file
// cannot be parsed.
func DefaultStarfallConfig() StarfallConfig {
	return StarfallConfig{
		World: StarfallWorld{
			Width:   800,
			Height:  540,
			Gravity: 300,
		},
		Player: StarfallPlayer{
			X:         100,
			Y:         450,
			Width:     32,
			Height:    48,
			RunSpeed:  160,
			JumpSpeed: 330,
			Bounce:    0.2,
		},
		Stars: StarfallStars{
			Count:     12,
			StartX:    12,
			StepX:     70,
			OriginY:   0,
			Width:     24,
			Height:    22,
			BounceMin: 0.4,
			BounceMax: 0.8,
			Reward:    10,
			Spin:      0.03,
		},
		Bombs: StarfallBombs{
			SpawnY: 16,
			MinVX:  -200,
			MaxVX:  200,
			VY:     20,
			Size:   14,
			Bounce: 1,
		},
		Platforms: []StarfallPlatform{
			{X: 400, Y: 568, Width: 400, Height: 32, Scale: 2}, // Ground
			{X: 600, Y: 400, Width: 400, Height: 32},
			{X: 50, Y: 250, Width: 400, Height: 32},
			{X: 750, Y: 220, Width: 400, Height: 32},
		},
		Round: StarfallRound{
			FadeMS:         1500,
			RestartDelayMS: 1800,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "starfall":
		return defaultStarfallYAML
	default:
		return nil
	}
}
