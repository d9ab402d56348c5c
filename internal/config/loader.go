package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadWalls loads Closing Walls configuration.
// Search order: customPath -> ~/.walls/configs/walls.yaml -> ./configs/walls.yaml -> embedded default
//
// Values missing from a file keep their defaults.
func LoadWalls(customPath string) (WallsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return WallsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseWalls(data)
		if err != nil {
			return WallsConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("walls.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseWalls(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/walls.yaml"); err == nil {
		if cfg, err := parseWalls(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseWalls(defaultWallsYAML)
	if err != nil {
		return DefaultWallsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadWallsPreset loads the config and applies a difficulty preset.
func LoadWallsPreset(customPath string, preset DifficultyPreset) (WallsConfig, error) {
	cfg, err := LoadWalls(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyWallsPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseWalls decodes YAML over the hardcoded defaults and validates the result.
func parseWalls(data []byte) (WallsConfig, error) {
	cfg := DefaultWallsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".walls", "configs", filename)
}
