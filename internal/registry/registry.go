// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the hosts
// (terminal, SSH, browser) to instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/starfall/internal/core"
)

// Game is the scene lifecycle every game implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, audio and rendering.
//
// A host calls Preload once, then Create once, then Step at a fixed rate.
// A game instance is never reused: restarting means creating a new instance.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "starfall").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Preload prepares configuration and assets. It must succeed before
	// Create is called.
	Preload() error

	// Create builds the world. The RuntimeConfig provides tick rate and RNG seed.
	Create(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is a polled snapshot of held actions.
	// Returns the result of this tick including current game state and events.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// Load creates a game by ID and runs its Preload and Create hooks.
// This is the full reload path used by every host.
func Load(id string, cfg core.RuntimeConfig) (Game, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	if err := g.Preload(); err != nil {
		return nil, fmt.Errorf("registry: preload %q: %w", id, err)
	}
	g.Create(cfg)
	return g, nil
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// TitleOf returns the display title of a registered game, or id itself
// when the game is unknown.
func TitleOf(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
