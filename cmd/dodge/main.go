// dodge is a lane-dodging arcade game for the terminal.
//
// Usage:
//
//	dodge                    - Play Lane Dodge (same as "dodge play")
//	dodge play [game]        - Play a game
//	dodge list               - List available games
//	dodge runs               - Browse recorded runs
//	dodge replay <run-id>    - Re-run a recorded run and check its score
//	dodge config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--journal <path>    - Set journal database path (default: ~/.dodge/journal.db)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Log destination while the game owns the screen
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/lane-dodge/internal/games/dodge"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitPanic = 2
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagJournal    string
	flagNoJournal  bool
	flagLogLevel   string
	flagLogFile    string
)

// logger is configured in PersistentPreRunE; stderr until then.
var logger = newLogger(os.Stderr, log.InfoLevel)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log(log.FatalLevel, "unhandled fault", "panic", r)
			code = exitPanic
		}
	}()

	defer closeLogFile()

	err := rootCmd.Execute()
	code = exitCode(err)
	switch code {
	case exitPanic:
		logger.Log(log.FatalLevel, "unhandled fault", "error", err)
	case exitError:
		fmt.Fprintln(os.Stderr, err)
	}
	return code
}

// exitCode maps a command error to the process exit status. Bubble Tea
// recovers panics raised in Update or View and reports them as
// tea.ErrProgramPanic, so those count as faults too.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, tea.ErrProgramPanic):
		return exitPanic
	default:
		return exitError
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodge",
	Short: "Lane Dodge - dodge falling obstacles in your terminal",
	Long: `Lane Dodge is a terminal arcade game: switch lanes to avoid obstacles
falling at random speeds. Every obstacle you survive scores a point and
near misses score a bonus.

Running dodge without a command starts a game.

Available commands:
  play     - Play a game (default)
  list     - Show all available games
  runs     - Browse recorded runs
  replay   - Re-run a recorded run
  config   - Print the effective configuration

Examples:
  dodge
  dodge play --difficulty hard
  dodge play --seed 42 --config ./my-dodge.yaml
  dodge runs
  dodge replay 3f2a9c1e --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, nil)
	},
}

func init() {
	rootCmd.PersistentPreRunE = setupLogging

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "~/.dodge/journal.db", "Path to the run journal database")
	rootCmd.PersistentFlags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.dodge/dodge.log", "Log file used while the game owns the screen")

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dodge",
		Level:           level,
	})
}

var logFile *os.File

// setupLogging builds the process logger. Commands that take over the
// terminal log to --log-file; the rest log to stderr.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	if !ownsScreen(cmd) {
		logger = newLogger(os.Stderr, level)
		return nil
	}

	path, err := expandHome(flagLogFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = newLogger(f, level)
	return nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// ownsScreen reports whether cmd runs a full-screen program.
func ownsScreen(cmd *cobra.Command) bool {
	switch cmd {
	case rootCmd, playCmd:
		return true
	case runsCmd:
		return !flagRunsPlain
	case replayCmd:
		return flagReplayWatch
	}
	return false
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
