package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

// Restart control label, drawn in the pop region under the game over box.
const restartLabel = "[ Play again ]  Enter/R"

// generations hands out game instance numbers. They are unique across
// models so a reveal timer from a finished model never matches a new one.
var generations atomic.Int64

// Model is the Bubble Tea model for running a game.
type Model struct {
	gameID     string
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sound      audio.Player
	config     core.RuntimeConfig
	player     string
	keyMapper  *KeyMapper
	held       heldKeys
	pending    core.InputFrame // One-shot actions for the next tick
	gameState  core.GameState
	generation int64 // New value on every full reload
	showPop    bool  // Restart control visible
	scoreSaved bool  // Whether score has been saved for current game over
	embedded   bool  // Hosted inside a session; B goes back to its menu
	quitting   bool
	backToMenu bool
	err        error
}

// NewModel loads the game and creates a Bubble Tea model for it.
func NewModel(gameID string, store *storage.Store, sound audio.Player, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if sound == nil {
		sound = audio.Silent{}
	}

	game, err := registry.Load(gameID, cfg)
	if err != nil {
		return Model{}, err
	}

	return Model{
		gameID:     gameID,
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		sound:      sound,
		config:     cfg,
		player:     currentUser(),
		keyMapper:  NewKeyMapper(),
		held:       newHeldKeys(),
		pending:    core.NewInputFrame(),
		gameState:  game.State(),
		generation: generations.Add(1),
	}, nil
}

// WithPlayer sets the name scores are saved under.
func (m Model) WithPlayer(name string) Model {
	if name != "" {
		m.player = name
	}
	return m
}

// Embedded marks the model as hosted inside a session, so B returns to the
// session's menu instead of doing nothing.
func (m Model) Embedded() Model {
	m.embedded = true
	return m
}

// Init starts the music and the tick loop.
func (m Model) Init() tea.Cmd {
	m.sound.StartMusic()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is resolution independent; only the buffer changes
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case RevealRestartMsg:
		if msg.Generation == m.generation {
			m.showPop = true
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case isHeldAction(action):
		m.held.press(action, time.Now())

	case action == core.ActionPause:
		m.pending.Set(core.ActionPause)

	case action == core.ActionConfirm, action == core.ActionRestart:
		if m.showPop {
			m.reload()
		}

	case action == core.ActionBack:
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
	}

	return m, nil
}

// handleTick runs one simulation step and plays its side effects.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	in := m.held.frame(now)
	if m.pending.Has(core.ActionPause) {
		in.Set(core.ActionPause)
	}
	m.pending.Clear()

	result := m.game.Step(in)
	m.gameState = result.State

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	for _, e := range result.Events {
		switch e.Kind {
		case core.EventSound:
			m.sound.Play(e.Sound)
		case core.EventRoundOver:
			m.saveScore(e.Score)
			cmds = append(cmds, revealAfter(e.Delay, m.generation))
		}
	}

	return m, tea.Batch(cmds...)
}

// saveScore records the round's score once.
func (m *Model) saveScore(score int) {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.game.ID(), m.player, score)
}

// reload replaces the game with a fresh instance from the registry.
// Nothing from the previous round survives.
func (m *Model) reload() {
	m.config.Seed = time.Now().UnixNano()
	game, err := registry.Load(m.gameID, m.config)
	if err != nil {
		m.err = err
		return
	}

	m.game = game
	m.generation = generations.Add(1)
	m.gameState = game.State()
	m.showPop = false
	m.scoreSaved = false
	m.held.release()
	m.pending.Clear()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".starfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.showPop {
		drawPop(m.screen, restartLabel)
	}
	if m.err != nil {
		m.screen.DrawTextColor(0, m.screen.Height()-1, "reload failed: "+m.err.Error(), core.ColorRed)
	}

	return RenderScreen(m.screen)
}

// drawPop draws the restart control in the pop region, two rows under the
// centered game over box.
func drawPop(s *core.Screen, label string) {
	y := (s.Height()-5)/2 + 6
	if y >= s.Height() {
		y = s.Height() - 1
	}
	x := (s.Width() - len([]rune(label))) / 2
	s.DrawTextColor(x, y, label, core.ColorBrightGreen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// currentUser returns the local login name for score records.
func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// Run starts the Bubble Tea program for the given game.
func Run(gameID string, store *storage.Store, sound audio.Player, cfg core.RuntimeConfig) error {
	model, err := NewModel(gameID, store, sound, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
