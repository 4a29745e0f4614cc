package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/starfall/internal/core"
)

// stubGame records the lifecycle calls a host makes.
type stubGame struct {
	id         string
	preloadErr error
	calls      []string
}

func (g *stubGame) ID() string    { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }

func (g *stubGame) Preload() error {
	g.calls = append(g.calls, "preload")
	return g.preloadErr
}

func (g *stubGame) Create(core.RuntimeConfig) {
	g.calls = append(g.calls, "create")
}

func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestLoadRunsPreloadThenCreate(t *testing.T) {
	Register("stub_ok", func() Game { return &stubGame{id: "stub_ok"} })

	g, err := Load("stub_ok", core.DefaultConfig())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	calls := g.(*stubGame).calls
	if len(calls) != 2 || calls[0] != "preload" || calls[1] != "create" {
		t.Errorf("lifecycle = %v, expected [preload create]", calls)
	}

	// Every load is a fresh instance
	g2, err := Load("stub_ok", core.DefaultConfig())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g == g2 {
		t.Error("Load should never reuse an instance")
	}
}

func TestLoadPreloadFailure(t *testing.T) {
	boom := errors.New("boom")
	Register("stub_fail", func() Game { return &stubGame{id: "stub_fail", preloadErr: boom} })

	if _, err := Load("stub_fail", core.DefaultConfig()); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, expected to wrap %v", err, boom)
	}
}

func TestUnknownGame(t *testing.T) {
	if _, err := Load("missing", core.DefaultConfig()); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("missing") {
		t.Error("Exists(missing) = true")
	}
	if got := TitleOf("missing"); got != "missing" {
		t.Errorf("TitleOf(missing) = %q", got)
	}
}

func TestRegisterListsAndTitles(t *testing.T) {
	Register("stub_list", func() Game { return &stubGame{id: "stub_list"} })

	if got := TitleOf("stub_list"); got != "Stub stub_list" {
		t.Errorf("TitleOf() = %q", got)
	}

	found := false
	games := List()
	for i, g := range games {
		if g.ID == "stub_list" {
			found = true
		}
		if i > 0 && games[i-1].ID > g.ID {
			t.Error("List should be sorted by ID")
		}
	}
	if !found {
		t.Error("registered game missing from List")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_list", func() Game { return &stubGame{id: "stub_list"} })
}
