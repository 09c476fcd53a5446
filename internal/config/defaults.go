package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the default Lane Dodge configuration.
// It mirrors defaults/dodge.yaml and is used if the embedded file cannot be parsed.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		World: DodgeWorld{
			Height: 600,
		},
		Lanes: DodgeLanes{
			Count: 4,
		},
		Obstacles: DodgeObstacles{
			SpawnPeriod: 1.0,
			MinSpeed:    200,
			MaxSpeed:    500,
			CullMargin:  200,
		},
		Player: DodgePlayer{
			Hover:        100,
			SpriteHeight: 40,
		},
		Scoring: DodgeScoring{
			CloseCallThreshold:     40,
			CloseCallPoints:        5,
			CloseCallEdgeTriggered: false,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDodgeYAML
}
