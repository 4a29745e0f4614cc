package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starfall/internal/core"
	_ "github.com/vovakirdan/starfall/internal/games/starfall"
	"github.com/vovakirdan/starfall/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel("starfall", nil, nil, testConfig())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestNewModelUnknownGame(t *testing.T) {
	if _, err := NewModel("nope", nil, nil, testConfig()); err == nil {
		t.Fatal("expected error for unknown game")
	}
}

func TestNewModelDefaultsTickRate(t *testing.T) {
	for _, rate := range []int{0, -5} {
		cfg := testConfig()
		cfg.TickRate = rate
		m, err := NewModel("starfall", nil, nil, cfg)
		if err != nil {
			t.Fatalf("NewModel() error = %v", err)
		}
		if m.config.TickRate != core.DefaultConfig().TickRate {
			t.Errorf("tick rate %d became %d, expected the default", rate, m.config.TickRate)
		}
		if m.Init() == nil {
			t.Error("Init() should schedule a tick")
		}
	}
}

func TestRevealIgnoresOtherGenerations(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, RevealRestartMsg{Generation: m.generation - 1})
	if m.showPop {
		t.Fatal("a reveal from an older game must not show the control")
	}

	m = update(t, m, RevealRestartMsg{Generation: m.generation})
	if !m.showPop {
		t.Fatal("reveal for the current game should show the control")
	}
	if !strings.Contains(m.View(), "Play again") {
		t.Error("view should draw the restart control")
	}
}

func TestRestartNeedsRevealedControl(t *testing.T) {
	m := newTestModel(t)
	gen := m.generation
	game := m.game

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.generation != gen || m.game != game {
		t.Fatal("enter before the reveal must not reload")
	}

	m = update(t, m, RevealRestartMsg{Generation: gen})
	m = update(t, m, runeKey("r"))
	if m.generation == gen {
		t.Error("reload should start a new generation")
	}
	if m.game == game {
		t.Error("reload should build a fresh game instance")
	}
	if m.showPop || m.scoreSaved {
		t.Error("reload should reset host state")
	}

	// The old game's timer can no longer reveal anything
	m = update(t, m, RevealRestartMsg{Generation: gen})
	if m.showPop {
		t.Error("stale reveal shown after reload")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	m, err := NewModel("starfall", store, nil, testConfig())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	m = m.WithPlayer("tester")

	m.saveScore(40)
	m.saveScore(40)

	scores, err := store.AllScores("starfall")
	if err != nil {
		t.Fatalf("AllScores() error = %v", err)
	}
	if len(scores) != 1 || scores[0].Player != "tester" || scores[0].Score != 40 {
		t.Errorf("saved %+v, expected one 40 point score for tester", scores)
	}
}

func TestBackOnlyWhenEmbedded(t *testing.T) {
	m := newTestModel(t)
	m.gameState.GameOver = true

	if m = update(t, m, runeKey("b")); m.BackToMenu() {
		t.Error("standalone model should ignore back")
	}

	m = m.Embedded()
	if m = update(t, m, runeKey("b")); !m.BackToMenu() {
		t.Error("embedded model should go back when the round is over")
	}
}

func TestResizeKeepsWorld(t *testing.T) {
	m := newTestModel(t)
	game := m.game

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.game != game {
		t.Error("resize must not rebuild the world")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestDrawPop(t *testing.T) {
	s := core.NewScreen(80, 24)
	drawPop(s, restartLabel)

	row := s.Row((24-5)/2 + 6)
	if !strings.Contains(row, restartLabel) {
		t.Errorf("pop row = %q", row)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawTextColor(2, 1, "star", core.ColorBrightYellow)

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("rendered %d line breaks, expected 2", got)
	}
	if !strings.Contains(out, "star") {
		t.Error("rendered output lost the text")
	}
}
