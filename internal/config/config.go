// Package config provides YAML-based game configuration loading and
// difficulty presets for Lane Dodge.
package config

// DodgeConfig contains all configuration for the Lane Dodge game.
type DodgeConfig struct {
	World     DodgeWorld     `yaml:"world"`
	Lanes     DodgeLanes     `yaml:"lanes"`
	Obstacles DodgeObstacles `yaml:"obstacles"`
	Player    DodgePlayer    `yaml:"player"`
	Scoring   DodgeScoring   `yaml:"scoring"`
}

// DodgeWorld defines the vertical extent of the playfield in world units.
// Lanes split the screen width, so the world has no width of its own; the
// renderer scales height to terminal rows.
type DodgeWorld struct {
	Height float64 `yaml:"height"`
}

// DodgeLanes defines the lane layout.
type DodgeLanes struct {
	Count int `yaml:"count"`
}

// DodgeObstacles defines obstacle spawning and movement.
type DodgeObstacles struct {
	SpawnPeriod float64 `yaml:"spawn_period"` // Seconds between spawns
	MinSpeed    int     `yaml:"min_speed"`    // Units per second, inclusive
	MaxSpeed    int     `yaml:"max_speed"`    // Units per second, exclusive
	CullMargin  float64 `yaml:"cull_margin"`  // Distance past the world bottom before removal
}

// DodgePlayer defines the player sprite geometry.
type DodgePlayer struct {
	Hover        float64 `yaml:"hover"`         // Distance of the sprite above the world bottom
	SpriteHeight float64 `yaml:"sprite_height"` // Sprite height, also the obstacle height
}

// DodgeScoring defines close call detection and bonuses.
type DodgeScoring struct {
	CloseCallThreshold     float64 `yaml:"close_call_threshold"`
	CloseCallPoints        int     `yaml:"close_call_points"`
	CloseCallEdgeTriggered bool    `yaml:"close_call_edge_triggered"`
}

// DifficultyPreset represents a named difficulty level.
// Presets only pick constants; the spawn rate never changes during a run.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset maps a CLI value to a preset.
// Empty or unknown values return "" (keep the loaded config).
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
