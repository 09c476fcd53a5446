package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/journal"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// configured is implemented by games that expose their effective config so
// it can be journaled with the run.
type configured interface {
	Config() config.DodgeConfig
}

// Options holds the optional collaborators of a Model.
type Options struct {
	Store    *journal.Store   // Run journal; nil disables recording
	Logger   *log.Logger      // Defaults to a discarding logger
	Playback []journal.Frame  // Recorded frames to play instead of reading keys
	Clock    func() time.Time // Defaults to time.Now; used for seeds and screenshots
}

// Model is the Bubble Tea model driving one game. Every tick measures the
// real time since the previous tick and calls Step exactly once.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *journal.Store
	recorder   *journal.Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	fixedSeed  bool
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	clock      func() time.Time
	playback   []journal.Frame
	played     int
	quitting   bool
}

// NewModel resets game and, when a store is given, begins a journaled run.
// A zero seed is replaced with a time-based one.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	fixedSeed := cfg.Seed != 0
	if !fixedSeed {
		cfg.Seed = opts.Clock().UnixNano()
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		logger:     opts.Logger,
		config:     cfg,
		fixedSeed:  fixedSeed,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		clock:      opts.Clock,
		playback:   opts.Playback,
	}
	// Playback never writes to the journal.
	if opts.Playback == nil {
		m.store = opts.Store
	}

	if err := m.startRun(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// playfieldHeight leaves the last terminal row for the help footer.
func playfieldHeight(termH int) int {
	return core.Max(1, termH-1)
}

// startRun resets the game with the current seed and opens a journal run.
func (m *Model) startRun() error {
	if err := m.game.Reset(m.config); err != nil {
		return fmt.Errorf("tui: reset %s: %w", m.game.ID(), err)
	}
	m.gameState = m.game.State()
	m.lastTick = time.Time{}

	m.recorder = nil
	if m.store == nil {
		return nil
	}

	var cfg config.DodgeConfig
	if c, ok := m.game.(configured); ok {
		cfg = c.Config()
	}
	rec, err := journal.NewRecorder(m.store, m.game.ID(), m.config.Seed, cfg)
	if err != nil {
		m.logger.Warn("journal disabled", "error", err)
		return nil
	}
	m.recorder = rec
	m.logger.Debug("recording run", "run", rec.RunID(), "seed", m.config.Seed)
	return nil
}

// finishRun closes the journaled run with the current score.
func (m *Model) finishRun() {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Finish(m.gameState.Score); err != nil {
		m.logger.Warn("could not finish journal run", "run", m.recorder.RunID(), "error", err)
	}
	m.recorder = nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	if m.playback != nil && m.played < len(m.playback) {
		return tickAfter(m.playback[m.played].Elapsed)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, isQuit := m.keys.MapKey(msg); isQuit {
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Recorded input drives playback.
	if m.playback != nil {
		return m, nil
	}

	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize processes window resize events. The world is scaled to the
// screen when rendering, so the run continues unchanged.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.playback != nil {
		return m.handlePlaybackTick()
	}

	var elapsed time.Duration
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	// Restart starts a new journaled run with a fresh seed instead of going
	// through Step, so every journal entry covers exactly one run.
	if m.inputFrame.Has(core.ActionRestart) {
		m.finishRun()
		if !m.fixedSeed {
			m.config.Seed = m.clock().UnixNano()
		}
		if err := m.startRun(); err != nil {
			m.logger.Error("restart failed", "error", err)
			m.quitting = true
			return m, tea.Quit
		}
		m.inputFrame.Clear()
		return m, m.nextTick()
	}

	if m.recorder != nil {
		if err := m.recorder.Record(m.inputFrame, elapsed); err != nil {
			m.logger.Warn("journal disabled", "error", err)
			m.recorder = nil
		}
	}

	wasOver := m.gameState.GameOver
	m.gameState = m.game.Step(m.inputFrame, elapsed).State
	if m.gameState.GameOver && !wasOver {
		m.logger.Info("game over", "score", m.gameState.Score)
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, m.nextTick()
}

// handlePlaybackTick feeds the next recorded frame with its recorded elapsed
// time, so playback matches the journal regardless of real timing.
func (m Model) handlePlaybackTick() (tea.Model, tea.Cmd) {
	if m.played >= len(m.playback) {
		return m, nil
	}
	f := m.playback[m.played]
	m.played++
	m.gameState = m.game.Step(f.Input, f.Elapsed).State
	return m, m.nextTick()
}

// State returns the state after the last frame.
func (m Model) State() core.GameState {
	return m.gameState
}

// PlaybackDone reports whether every recorded frame has been played.
func (m Model) PlaybackDone() bool {
	return m.playback != nil && m.played >= len(m.playback)
}

// RunID returns the journal ID of the run being recorded, if any.
func (m Model) RunID() (string, bool) {
	if m.recorder == nil {
		return "", false
	}
	return m.recorder.RunID().String(), true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".dodge", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := m.clock().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

var (
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	playbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := footerStyle.Render(m.help.View(m.keys))
	if m.playback != nil {
		status := fmt.Sprintf("REPLAY %d/%d", m.played, len(m.playback))
		footer = playbackStyle.Render(status) + footerStyle.Render("  q quit")
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program for game and returns the state after
// the last frame.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (core.GameState, error) {
	m, err := runProgram(game, cfg, opts)
	if err != nil {
		return core.GameState{}, err
	}
	return m.State(), nil
}

// RunPlayback plays opts.Playback on screen and also reports whether every
// frame was played before the user quit.
func RunPlayback(game registry.Game, cfg core.RuntimeConfig, opts Options) (core.GameState, bool, error) {
	m, err := runProgram(game, cfg, opts)
	if err != nil {
		return core.GameState{}, false, err
	}
	return m.State(), m.PlaybackDone(), nil
}

func runProgram(game registry.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	model, err := NewModel(game, cfg, opts)
	if err != nil {
		return Model{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		model.finishRun()
		return Model{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return model, nil
	}
	m.finishRun()
	return m, nil
}
