package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadStarfall loads Starfall configuration.
// Search order: customPath -> ~/.starfall/configs/starfall.yaml -> ./configs/starfall.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadStarfall(customPath string) (StarfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StarfallConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeStarfall(data)
		if err != nil {
			return StarfallConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("starfall.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeStarfall(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/starfall.yaml"); err == nil {
		if cfg, err := decodeStarfall(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeStarfall(defaultStarfallYAML)
	if err != nil {
		return DefaultStarfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeStarfall parses YAML over the hardcoded defaults and validates the result.
func decodeStarfall(data []byte) (StarfallConfig, error) {
	cfg := DefaultStarfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StarfallConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return StarfallConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".starfall", "configs", filename)
}

// ApplyStarfallPreset modifies the config based on a difficulty preset.
// Presets only touch progression and run speed; spawn rules are unchanged.
// The empty and normal presets keep the config as loaded.
func ApplyStarfallPreset(cfg *StarfallConfig, preset DifficultyPreset) {
	if preset == "" || preset == DifficultyNormal {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.RunSpeed *= 1.15
	case DifficultyHard:
		cfg.Player.RunSpeed *= 0.9
	}
}
