package dodge

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// ErrInvalidConfig is returned when a configuration cannot drive a simulation.
var ErrInvalidConfig = errors.New("dodge: invalid config")

// Validate checks the parts of cfg the simulation depends on. Every float
// must be finite; NaN and Inf decode from YAML as .nan and .inf.
func Validate(cfg config.DodgeConfig) error {
	for _, f := range []struct {
		name     string
		v        float64
		positive bool
	}{
		{"world.height", cfg.World.Height, true},
		{"obstacles.spawn_period", cfg.Obstacles.SpawnPeriod, true},
		{"obstacles.cull_margin", cfg.Obstacles.CullMargin, false},
		{"player.hover", cfg.Player.Hover, false},
		{"player.sprite_height", cfg.Player.SpriteHeight, false},
		{"scoring.close_call_threshold", cfg.Scoring.CloseCallThreshold, false},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, f.v)
		}
		if f.positive && f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, f.name, f.v)
		}
		if f.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}

	switch {
	case cfg.Lanes.Count <= 0:
		return fmt.Errorf("%w: lanes.count must be positive, got %d", ErrInvalidConfig, cfg.Lanes.Count)
	case cfg.Obstacles.MinSpeed < 0:
		return fmt.Errorf("%w: obstacles.min_speed must not be negative, got %d", ErrInvalidConfig, cfg.Obstacles.MinSpeed)
	case cfg.Obstacles.MaxSpeed < cfg.Obstacles.MinSpeed:
		return fmt.Errorf("%w: obstacles.max_speed %d is below min_speed %d",
			ErrInvalidConfig, cfg.Obstacles.MaxSpeed, cfg.Obstacles.MinSpeed)
	case cfg.Scoring.CloseCallPoints < 0:
		return fmt.Errorf("%w: scoring.close_call_points must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simulation is the game state: player lane, live obstacles, score and the
// collision/close call/pause flags. It is driven by one AdvanceTime call per
// frame and is not safe for concurrent use.
type Simulation struct {
	cfg    config.DodgeConfig
	rng    Source
	logger *log.Logger

	hitBand  core.Span // Obstacle positions that overlap the player
	nearBand core.Span // hitBand padded by the close call threshold

	score      int
	playerLane int
	laneCount  int
	sinceSpawn float64 // Seconds since the last spawn
	obstacles  []Obstacle
	collision  bool
	closeCall  bool
	paused     bool
}

// NewSimulation validates cfg and returns a simulation in its reset state.
func NewSimulation(cfg config.DodgeConfig, rng Source, opts ...Option) (*Simulation, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	// The player sits hover units above the world bottom; an obstacle whose
	// top edge is within one sprite height of that line overlaps it.
	playerY := cfg.World.Height - cfg.Player.Hover
	hit := core.Span{
		Min: playerY - cfg.Player.SpriteHeight,
		Max: playerY + cfg.Player.SpriteHeight,
	}

	s := &Simulation{
		cfg:      cfg,
		rng:      rng,
		logger:   log.New(io.Discard),
		hitBand:  hit,
		nearBand: hit.Pad(cfg.Scoring.CloseCallThreshold),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s, nil
}

// MoveLeft moves the player one lane left. No-op at lane 0 or after a collision.
func (s *Simulation) MoveLeft() {
	if s.collision {
		return
	}
	s.playerLane = core.Clamp(s.playerLane-1, 0, s.laneCount-1)
}

// MoveRight moves the player one lane right. No-op at the last lane or after a collision.
func (s *Simulation) MoveRight() {
	if s.collision {
		return
	}
	s.playerLane = core.Clamp(s.playerLane+1, 0, s.laneCount-1)
}

// TogglePause flips the paused flag. Unlike movement it is allowed after a collision.
func (s *Simulation) TogglePause() {
	s.paused = !s.paused
}

// Reset starts a new run: score 0, player in the middle lane, no obstacles, flags cleared.
func (s *Simulation) Reset() {
	s.logger.Info("new game")
	s.score = 0
	s.laneCount = s.cfg.Lanes.Count
	s.playerLane = s.laneCount / 2
	s.sinceSpawn = 0
	s.obstacles = s.obstacles[:0]
	s.collision = false
	s.closeCall = false
	s.paused = false
}

// AdvanceTime moves the game forward by elapsedMS milliseconds: obstacles
// fall, off-screen ones are culled for one point each, at most one obstacle
// spawns, and collisions and close calls are detected. Nothing changes while
// paused or after a collision. Negative or non-finite input counts as 0.
func (s *Simulation) AdvanceTime(elapsedMS float64) {
	if s.collision || s.paused {
		return
	}
	if math.IsNaN(elapsedMS) || math.IsInf(elapsedMS, 0) || elapsedMS < 0 {
		elapsedMS = 0
	}

	s.updateObstacles(elapsedMS)
	s.detectCollision()
}

func (s *Simulation) updateObstacles(elapsedMS float64) {
	for i := range s.obstacles {
		s.obstacles[i].advance(elapsedMS)
	}

	// Cull everything past the bottom margin; each one is a point survived.
	limit := s.cfg.World.Height + s.cfg.Obstacles.CullMargin
	before := len(s.obstacles)
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Pos <= limit {
			kept = append(kept, o)
		}
	}
	s.obstacles = kept
	s.score += before - len(s.obstacles)

	// At most one spawn per frame, with no catch-up for missed periods.
	s.sinceSpawn += elapsedMS / 1000
	if s.sinceSpawn >= s.cfg.Obstacles.SpawnPeriod {
		s.spawn()
		s.sinceSpawn = 0
	}
}

func (s *Simulation) spawn() {
	speed := s.cfg.Obstacles.MinSpeed
	if span := s.cfg.Obstacles.MaxSpeed - s.cfg.Obstacles.MinSpeed; span > 0 {
		speed += s.rng.Intn(span)
	}
	o := Obstacle{
		Lane:  s.rng.Intn(s.laneCount),
		Speed: float64(speed),
	}
	s.obstacles = append(s.obstacles, o)
	s.logger.Debug("obstacle spawned", "lane", o.Lane, "speed", o.Speed)
}

func (s *Simulation) detectCollision() {
	var hit, near bool
	for _, o := range s.obstacles {
		if o.Lane != s.playerLane {
			continue
		}
		if s.nearBand.Contains(o.Pos) {
			near = true
			if s.hitBand.Contains(o.Pos) {
				hit = true
				break
			}
		}
	}

	wasClose := s.closeCall
	s.collision = hit
	s.closeCall = !hit && near

	if s.collision {
		s.logger.Info("collision", "lane", s.playerLane, "score", s.score)
		return
	}
	if s.closeCall && (!s.cfg.Scoring.CloseCallEdgeTriggered || !wasClose) {
		s.score += s.cfg.Scoring.CloseCallPoints
		s.logger.Debug("close call", "lane", s.playerLane, "score", s.score)
	}
}

// Score returns the current score.
func (s *Simulation) Score() int { return s.score }

// PlayerLane returns the player's lane index.
func (s *Simulation) PlayerLane() int { return s.playerLane }

// LaneCount returns the number of lanes.
func (s *Simulation) LaneCount() int { return s.laneCount }

// Collision reports whether the run has ended on an obstacle.
func (s *Simulation) Collision() bool { return s.collision }

// CloseCall reports whether the last advance found a near miss.
func (s *Simulation) CloseCall() bool { return s.closeCall }

// Paused reports whether the simulation is paused.
func (s *Simulation) Paused() bool { return s.paused }

// HitBand returns the obstacle positions that collide with the player.
func (s *Simulation) HitBand() core.Span { return s.hitBand }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.DodgeConfig { return s.cfg }

// Obstacles returns a copy of the live obstacles in spawn order.
func (s *Simulation) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}
