package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/games/dodge"
	"github.com/vovakirdan/lane-dodge/internal/journal"
	"github.com/vovakirdan/lane-dodge/internal/platform/tui"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without an argument Lane Dodge is started.

Controls:
  Left/A/H    - Move one lane left
  Right/D/L   - Move one lane right
  P/Esc       - Pause
  R           - Restart
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower spawns and obstacles
  normal - The default values
  hard   - Faster spawns and obstacles

Every run is recorded to the journal unless --no-journal is set.

Examples:
  dodge play
  dodge play --difficulty easy
  dodge play --seed 42
  dodge play --config ./my-dodge.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// configureGames hands the config flags and logger to the game packages.
func configureGames() {
	dodge.SetConfigPath(flagConfig)
	dodge.SetDifficultyPreset(flagDifficulty)
	dodge.SetLogger(logger.WithPrefix("dodge/game"))
}

// terminalSize returns the size of stdout, or 80x24 if it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// openJournal opens the run journal unless disabled. A journal that cannot
// be opened is logged and skipped; the game still works.
func openJournal() *journal.Store {
	if flagNoJournal {
		return nil
	}
	store, err := journal.Open(flagJournal)
	if err != nil {
		logger.Warn("could not open run journal", "path", flagJournal, "error", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := dodge.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'dodge list' to see available games)", gameID)
	}

	configureGames()
	if _, err := dodge.LoadConfig(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openJournal()
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "game", gameID, "fps", cfg.TickRate, "seed", cfg.Seed, "journal", store != nil)
	state, err := tui.Run(game, cfg, tui.Options{Store: store, Logger: logger})
	if err != nil {
		if errors.Is(err, dodge.ErrInvalidConfig) {
			return fmt.Errorf("config: %w", err)
		}
		return fmt.Errorf("running game: %w", err)
	}

	logger.Info("exiting normally", "score", state.Score)
	return nil
}
