// Package starfall implements a single-screen platformer: run and jump
// across ledges collecting falling stars while dodging bouncing bombs.
// Every cleared wave of stars refills the pool and adds one more bomb.
package starfall

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
)

// ID is the registry key and score table game ID.
const ID = "starfall"

// Game implements the Starfall scene: Preload, Create, then Step per tick.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.StarfallConfig
	sprites    config.SpriteSheet
	preloaded  bool
	loadErr    error // Why Create fell back to built-in settings
	difficulty *config.DifficultyManager

	world     *World
	round     *Round
	spawner   *Spawner
	reactions Reactions

	events    []core.Event // Side effects of the current tick
	paused    bool
	tickCount int
	dt        float64 // Seconds per tick
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// New creates a new Starfall game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Starfall"
}

// Preload loads the configuration and the sprite sheet.
func (g *Game) Preload() error {
	cfg, err := config.LoadStarfall(configPath)
	if err != nil {
		return fmt.Errorf("starfall: %w", err)
	}
	config.ApplyStarfallPreset(&cfg, difficultyPreset)

	sprites, err := config.LoadSprites("dude", "star", "bomb", "ground")
	if err != nil {
		return fmt.Errorf("starfall: %w", err)
	}

	g.cfg = cfg
	g.sprites = sprites
	g.preloaded = true
	g.loadErr = nil
	return nil
}

// Create builds a fresh world: platforms, player, twelve stars, no bombs.
func (g *Game) Create(runtime core.RuntimeConfig) {
	if !g.preloaded {
		if err := g.Preload(); err != nil {
			// Fall back to built-in settings so a host can still run
			g.cfg = config.DefaultStarfallConfig()
			sprites, serr := config.LoadSprites()
			g.sprites = sprites
			g.loadErr = errors.Join(err, serr)
			g.preloaded = true
		}
	}

	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.dt = 1 / float64(runtime.TickRate)

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.world = NewWorld(g.cfg, rng)
	g.round = NewRound()
	g.spawner = NewSpawner(rng, &g.cfg, g.difficulty)
	g.reactions = &rules{
		world:   g.world,
		spawner: g.spawner,
		cfg:     &g.cfg,
		rate:    runtime.TickRate,
		ticks:   func() int { return g.tickCount },
		emit:    g.emit,
	}

	g.events = nil
	g.paused = false
	g.tickCount = 0
}

// LoadError returns the error that made Create fall back to the built-in
// config, or nil when the configured files loaded.
func (g *Game) LoadError() error {
	return g.loadErr
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	// A finished round only plays out its fade
	if g.round.Over() {
		g.world.Camera.Advance()
		return g.result()
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.tickCount++

	applyInput(g.round, g.world, in, g.cfg.Player)
	spinStars(g.world, g.cfg.Stars.Spin)

	g.world.Physics.Step(g.world, g.dt)
	g.world.Player.Anim.Advance(g.dt)

	g.checkOverlaps()

	return g.result()
}

// checkOverlaps fires reactions for stars and bombs touching the player.
func (g *Game) checkOverlaps() {
	player := &g.world.Player.Body

	stars := g.world.Physics.Touching(player, tagStar)
	for _, s := range g.world.Stars {
		if s.Active && stars[&s.Body] {
			g.reactions.OnCollect(g.round, s)
		}
	}

	bombs := g.world.Physics.Touching(player, tagBomb)
	for _, b := range g.world.Bombs {
		if bombs[&b.Body] {
			g.reactions.OnObstacleContact(g.round, b)
			break
		}
	}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.round.Score(),
		GameOver: g.round.Over(),
		Paused:   g.paused,
	}
}

// ScoreText returns the HUD score label.
func (g *Game) ScoreText() string {
	if g.world == nil {
		return NewRound().ScoreText()
	}
	return g.world.HUD.ScoreText
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
