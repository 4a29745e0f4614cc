package starfall

import (
	"math/rand"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
)

// Body is a physics body. X/Y is the center, as on the original stage.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64

	BounceX, BounceY   float64
	AllowGravity       bool
	CollideWorldBounds bool

	// TouchingDown is set by the last physics step when the body rests on a
	// platform or the world floor.
	TouchingDown bool

	// Enabled bodies are simulated and drawn.
	Enabled bool
}

// Box returns the body's bounding box in world units.
func (b *Body) Box() core.Box {
	return core.BoxAround(b.X, b.Y, b.W, b.H)
}

// Bottom returns the body's bottom edge.
func (b *Body) Bottom() float64 {
	return b.Y + b.H/2
}

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// Player is the single player entity.
type Player struct {
	Body
	Anim *Animator
	Tint core.Color // ColorDefault means untinted
}

// Star is a collectible.
type Star struct {
	Body
	Active   bool
	OriginX  float64 // Column the star returns to on refill
	Rotation float64 // Radians, cosmetic
}

// Disable removes the star from the simulation and hides it.
func (s *Star) Disable() {
	s.Active = false
	s.Enabled = false
	s.SetVelocity(0, 0)
}

// Enable puts the star back at (x, y) at rest.
func (s *Star) Enable(x, y float64) {
	s.X = x
	s.Y = y
	s.SetVelocity(0, 0)
	s.TouchingDown = false
	s.Active = true
	s.Enabled = true
}

// Bomb is an obstacle. Bombs are never removed during a round.
type Bomb struct {
	Body
	SpawnX float64
}

// HUD holds text drawn over the stage.
type HUD struct {
	ScoreText string
}

// Camera owns the game-over fade.
type Camera struct {
	fadeTotal   int // Ticks
	fadeElapsed int
	fading      bool
}

// Fade starts a fade-out over the given number of ticks.
func (c *Camera) Fade(ticks int) {
	if ticks < 1 {
		ticks = 1
	}
	c.fadeTotal = ticks
	c.fadeElapsed = 0
	c.fading = true
}

// Advance moves the fade forward by one tick.
func (c *Camera) Advance() {
	if c.fading && c.fadeElapsed < c.fadeTotal {
		c.fadeElapsed++
	}
}

// FadeProgress returns 0 before a fade starts and 1 once it is complete.
func (c *Camera) FadeProgress() float64 {
	if !c.fading {
		return 0
	}
	return float64(c.fadeElapsed) / float64(c.fadeTotal)
}

// World owns every entity of one world instance.
type World struct {
	Width, Height float64
	Player        *Player
	Stars         []*Star
	Bombs         []*Bomb
	Platforms     []core.Box
	Physics       *Physics
	HUD           HUD
	Camera        Camera
}

// NewWorld builds the static scenery, the player, the full star pool and
// an empty bomb pool.
func NewWorld(cfg config.StarfallConfig, rng *rand.Rand) *World {
	w := &World{
		Width:  cfg.World.Width,
		Height: cfg.World.Height,
	}

	for _, p := range cfg.Platforms {
		pw, ph := p.Size()
		w.Platforms = append(w.Platforms, core.BoxAround(p.X, p.Y, pw, ph))
	}
	w.Physics = NewPhysics(cfg.World, w.Platforms)

	w.Player = &Player{
		Body: Body{
			X:                  cfg.Player.X,
			Y:                  cfg.Player.Y,
			W:                  cfg.Player.Width,
			H:                  cfg.Player.Height,
			BounceX:            cfg.Player.Bounce,
			BounceY:            cfg.Player.Bounce,
			AllowGravity:       true,
			CollideWorldBounds: true,
			Enabled:            true,
		},
		Anim: NewAnimator(playerAnimations()),
	}
	w.Player.Anim.Play(AnimTurn, false)

	w.Stars = make([]*Star, cfg.Stars.Count)
	for i := range w.Stars {
		x := cfg.Stars.StartX + float64(i)*cfg.Stars.StepX
		s := &Star{
			Body: Body{
				W:            cfg.Stars.Width,
				H:            cfg.Stars.Height,
				BounceY:      floatBetween(rng, cfg.Stars.BounceMin, cfg.Stars.BounceMax),
				AllowGravity: true,
			},
			OriginX: x,
		}
		s.Enable(x, cfg.Stars.OriginY)
		w.Stars[i] = s
	}

	w.HUD.ScoreText = "Score: 0"
	return w
}

// CountActiveStars returns the number of stars still to collect.
func (w *World) CountActiveStars() int {
	n := 0
	for _, s := range w.Stars {
		if s.Active {
			n++
		}
	}
	return n
}

// newBomb creates an obstacle at (x, y) moving at (vx, cfg.VY) without gravity.
func newBomb(x, y, vx float64, cfg config.StarfallBombs) *Bomb {
	return &Bomb{
		Body: Body{
			X:                  x,
			Y:                  y,
			W:                  cfg.Size,
			H:                  cfg.Size,
			VX:                 vx,
			VY:                 cfg.VY,
			BounceX:            cfg.Bounce,
			BounceY:            cfg.Bounce,
			AllowGravity:       false,
			CollideWorldBounds: true,
			Enabled:            true,
		},
		SpawnX: x,
	}
}

// floatBetween returns a uniform float in [lo, hi).
func floatBetween(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
