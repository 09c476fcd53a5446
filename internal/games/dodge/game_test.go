package dodge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.DefaultDodgeConfig())
	if err := g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 21, TickRate: 60, Seed: 1}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameStepMapsActions(t *testing.T) {
	g := newTestGame(t)

	g.Step(frame(core.ActionLeft), 0)
	if g.Simulation().PlayerLane() != 1 {
		t.Errorf("PlayerLane() = %d after Left, expected 1", g.Simulation().PlayerLane())
	}

	g.Step(frame(core.ActionRight, core.ActionRight), 0)
	if g.Simulation().PlayerLane() != 2 {
		t.Errorf("PlayerLane() = %d after Right, expected 2 (one move per action per frame)", g.Simulation().PlayerLane())
	}

	res := g.Step(frame(core.ActionPause), 16*time.Millisecond)
	if !res.State.Paused {
		t.Error("Pause action should pause the game")
	}
}

func TestGameStepConvertsElapsedToMilliseconds(t *testing.T) {
	g := newTestGame(t)
	g.sim.obstacles = append(g.sim.obstacles, Obstacle{Lane: 0, Speed: 300, Pos: 0})

	g.Step(core.NewInputFrame(), 100*time.Millisecond)

	if got := g.sim.Obstacles()[0].Pos; got != 30 {
		t.Errorf("Pos = %v after 100ms at 300/s, expected 30", got)
	}
}

func TestGameStateReflectsSimulation(t *testing.T) {
	g := newTestGame(t)
	g.sim.obstacles = append(g.sim.obstacles, Obstacle{Lane: 2, Pos: 500})

	res := g.Step(core.NewInputFrame(), 0)

	if !res.State.GameOver {
		t.Error("collision should report GameOver")
	}
	if res.State != g.State() {
		t.Errorf("StepResult state %+v differs from State() %+v", res.State, g.State())
	}
}

func TestGameRestartStartsNewRun(t *testing.T) {
	g := newTestGame(t)
	g.sim.obstacles = append(g.sim.obstacles, Obstacle{Lane: 2, Pos: 500})
	g.Step(core.NewInputFrame(), 0)

	res := g.Step(frame(core.ActionRestart, core.ActionLeft), 0)

	if res.State.GameOver {
		t.Error("restart should clear the collision")
	}
	if g.Simulation().PlayerLane() != 1 {
		t.Errorf("move in the restart frame should apply to the new run, lane = %d", g.Simulation().PlayerLane())
	}
}

func TestGameResetRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	cfg.Lanes.Count = 0
	g := NewWithConfig(cfg)

	if err := g.Reset(core.DefaultConfig()); err == nil {
		t.Error("Reset() should fail for zero lanes")
	}
}

func TestLoadConfigFromPathAndPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dodge.yaml")
	if err := os.WriteFile(path, []byte("lanes:\n  count: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	SetConfigPath(path)
	SetDifficultyPreset("hard")
	defer func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	}()

	g := New()
	if err := g.Reset(core.DefaultConfig()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if g.Simulation().LaneCount() != 5 {
		t.Errorf("LaneCount() = %d, expected 5 from file", g.Simulation().LaneCount())
	}
	if g.Config().Obstacles.SpawnPeriod != 0.6 {
		t.Errorf("SpawnPeriod = %v, expected hard preset 0.6", g.Config().Obstacles.SpawnPeriod)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() core.GameState {
		g := newTestGame(t)
		var state core.GameState
		for i := 0; i < 400; i++ {
			in := core.NewInputFrame()
			switch i % 40 {
			case 5:
				in.Set(core.ActionLeft)
			case 25:
				in.Set(core.ActionRight)
			}
			state = g.Step(in, 16*time.Millisecond).State
		}
		return state
	}

	if s1, s2 := run(), run(); s1 != s2 {
		t.Errorf("Determinism failed: %+v vs %+v", s1, s2)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	g.sim.obstacles = append(g.sim.obstacles, Obstacle{Lane: 0, Pos: 0})

	screen := core.NewScreen(40, 21)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row should show the score, got %q", screen.Row(0))
	}

	// 20 field rows for 600 units: player top at (600-100)/30 = row 1+16.
	// Lane 2 of 4 on 40 columns starts at x=20, plus padding.
	if c := screen.GetCell(21, 17); c.Rune != PlayerChar || c.Color != DefaultPalette.Player {
		t.Errorf("expected player at (21, 17), got %+v", c)
	}
	if c := screen.GetCell(1, 1); c.Rune != ObstacleChar || c.Color != DefaultPalette.Obstacle {
		t.Errorf("expected obstacle at (1, 1), got %+v", c)
	}
	if c := screen.GetCell(10, 5); c.Rune != LaneChar {
		t.Errorf("expected lane separator at (10, 5), got %+v", c)
	}
}

func TestGameRenderCollisionInvertsPalette(t *testing.T) {
	g := newTestGame(t)
	g.sim.obstacles = append(g.sim.obstacles, Obstacle{Lane: 2, Pos: 500})
	g.Step(core.NewInputFrame(), 0)

	screen := core.NewScreen(40, 21)
	g.Render(screen)

	if c := screen.GetCell(5, 3); c.Rune != CollisionFill || c.Color != DefaultPalette.Obstacle {
		t.Errorf("background should be filled with the obstacle color, got %+v", c)
	}
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over message should be drawn")
	}
}

func TestGameRenderPaused(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionPause), 0)

	screen := core.NewScreen(40, 21)
	g.Render(screen)

	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause message should be drawn")
	}
}
