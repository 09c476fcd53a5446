package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDodge loads Lane Dodge configuration.
// Search order: customPath -> ~/.dodge/configs/dodge.yaml -> ./configs/dodge.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadDodge(customPath string) (DodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultDodgeConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := DecodeDodge(data)
		if err != nil {
			return DefaultDodgeConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dodge.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := DecodeDodge(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "dodge.yaml")); err == nil {
		if cfg, err := DecodeDodge(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := DecodeDodge(defaultDodgeYAML)
	if err != nil {
		return DefaultDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// DecodeDodge parses YAML over the default config.
func DecodeDodge(data []byte) (DodgeConfig, error) {
	cfg := DefaultDodgeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MarshalDodge renders a config back to YAML.
func MarshalDodge(cfg DodgeConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dodge", "configs", filename)
}

// ApplyDodgePreset modifies the config based on a difficulty preset.
func ApplyDodgePreset(cfg *DodgeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.SpawnPeriod = 1.4
		cfg.Obstacles.MinSpeed = 150
		cfg.Obstacles.MaxSpeed = 350
	case DifficultyNormal:
		cfg.Obstacles.SpawnPeriod = 1.0
		cfg.Obstacles.MinSpeed = 200
		cfg.Obstacles.MaxSpeed = 500
	case DifficultyHard:
		cfg.Obstacles.SpawnPeriod = 0.6
		cfg.Obstacles.MinSpeed = 300
		cfg.Obstacles.MaxSpeed = 700
	}
}
