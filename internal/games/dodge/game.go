// Package dodge implements Lane Dodge: the player switches between lanes to
// avoid obstacles falling at random speeds. Score is one point per obstacle
// that leaves the screen plus a bonus for close calls.
package dodge

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// GameID is the registry identifier.
const GameID = "dodge"

// Visual characters for rendering
const (
	PlayerChar    = '█'
	ObstacleChar  = '▓'
	LaneChar      = '┊'
	CollisionFill = '░'
	spritePadding = 1 // Columns left empty on each side of a lane
)

// DefaultPalette is the palette used while the run is alive.
var DefaultPalette = core.Palette{
	Background: core.ColorDefault,
	Player:     core.ColorBrightCyan,
	Obstacle:   core.ColorBrightRed,
	Score:      core.ColorBrightYellow,
}

// Game adapts Simulation to the platform's frame loop and screen buffer.
type Game struct {
	sim     *Simulation
	cfg     config.DodgeConfig
	fixed   *config.DodgeConfig // Config to use instead of loading from disk
	runtime core.RuntimeConfig
	logger  *log.Logger
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	gameLogger       = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger sets the logger handed to games created afterwards.
func SetLogger(l *log.Logger) {
	if l != nil {
		gameLogger = l
	}
}

// LoadConfig resolves the effective configuration from the config path and
// difficulty preset set on the package.
func LoadConfig() (config.DodgeConfig, error) {
	cfg, err := config.LoadDodge(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		config.ApplyDodgePreset(&cfg, difficultyPreset)
	}
	return cfg, Validate(cfg)
}

// New creates a new Lane Dodge game that loads its config on Reset.
func New() *Game {
	return &Game{logger: gameLogger}
}

// NewWithConfig creates a game that always uses cfg. Used for replays.
func NewWithConfig(cfg config.DodgeConfig) *Game {
	return &Game{fixed: &cfg, logger: gameLogger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Dodge"
}

// Reset builds a fresh simulation seeded from runtime.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime

	var cfg config.DodgeConfig
	if g.fixed != nil {
		cfg = *g.fixed
	} else {
		loaded, err := LoadConfig()
		if err != nil {
			return fmt.Errorf("dodge: %w", err)
		}
		cfg = loaded
	}

	sim, err := NewSimulation(cfg, NewSource(runtime.Seed), WithLogger(g.logger))
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.sim = sim
	return nil
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.DodgeConfig {
	return g.cfg
}

// Simulation exposes the underlying simulation for read access.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Step applies the frame's input, then advances time once.
// Restart is applied first so moves in the same frame land in the new run.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.sim.Reset()
	}
	if in.Has(core.ActionLeft) {
		g.sim.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.sim.MoveRight()
	}
	if in.Has(core.ActionPause) {
		g.sim.TogglePause()
	}

	g.sim.AdvanceTime(float64(elapsed) / float64(time.Millisecond))

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.sim.Score(),
		GameOver:  g.sim.Collision(),
		Paused:    g.sim.Paused(),
		CloseCall: g.sim.CloseCall(),
	}
}

// Render draws the playfield. Row 0 holds the HUD; the remaining rows show
// the world scaled to fit.
func (g *Game) Render(dst *core.Screen) {
	if g.sim == nil || dst.Height() < 2 || dst.Width() < 1 {
		return
	}

	palette := DefaultPalette
	if g.sim.Collision() {
		palette = palette.Inverted()
		dst.FillColor(CollisionFill, palette.Background)
	} else {
		dst.Clear()
	}

	lanes := g.sim.LaneCount()
	laneW := dst.Width() / lanes
	field := dst.Height() - 1

	// Lane separators
	if !g.sim.Collision() {
		for lane := 1; lane < lanes; lane++ {
			dst.DrawVLine(lane*laneW, 1, field, LaneChar, core.ColorGray)
		}
	}

	for _, o := range g.sim.obstacles {
		dst.DrawRectColor(g.spriteRect(o.Lane, o.Pos, laneW, field), ObstacleChar, palette.Obstacle)
	}

	playerY := g.cfg.World.Height - g.cfg.Player.Hover
	dst.DrawRectColor(g.spriteRect(g.sim.PlayerLane(), playerY, laneW, field), PlayerChar, palette.Player)

	// HUD
	dst.DrawRectColor(core.NewRect(0, 0, dst.Width(), 1), ' ', core.ColorDefault)
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", g.sim.Score()), palette.Score)
	if g.sim.CloseCall() {
		msg := " CLOSE CALL! "
		dst.DrawTextColor(dst.Width()-len(msg)-2, 0, msg, core.ColorBrightYellow)
	}

	if g.sim.Paused() {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.sim.Collision() {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.sim.Score()))
	}
}

// spriteRect maps a lane and world position to screen cells below the HUD row.
func (g *Game) spriteRect(lane int, pos float64, laneW, field int) core.Rect {
	scale := float64(field) / g.cfg.World.Height
	y := 1 + int(pos*scale)
	h := core.Max(1, int(g.cfg.Player.SpriteHeight*scale+0.5))

	x := lane*laneW + spritePadding
	w := core.Max(1, laneW-2*spritePadding)
	return core.NewRect(x, y, w, h)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRectColor(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, title)
	dst.DrawTextCentered(box.Y+3, subtitle)
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
