package starfall

import (
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
)

// Reactions handles the two collision outcomes of a round.
// One implementation is installed per world, when the world is created.
type Reactions interface {
	OnCollect(round *Round, star *Star)
	OnObstacleContact(round *Round, bomb *Bomb)
}

// rules is the stock Reactions: collect for points, die on contact.
type rules struct {
	world   *World
	spawner *Spawner
	cfg     *config.StarfallConfig
	rate    int // Ticks per second
	ticks   func() int
	emit    func(core.Event)
}

// OnCollect deactivates the star, rewards the player and refills the pool
// with a new bomb once the last star is gone.
func (r *rules) OnCollect(round *Round, star *Star) {
	if !star.Active || round.Over() {
		return
	}

	star.Disable()
	round.Reward(r.cfg.Stars.Reward)
	r.world.HUD.ScoreText = round.ScoreText()
	r.emit(core.Event{Kind: core.EventSound, Sound: core.SoundCollect})

	if r.world.CountActiveStars() == 0 {
		r.spawner.Respawn(r.world, round.Score(), r.ticks())
		r.emit(core.Event{Kind: core.EventRespawn, Score: round.Score()})
	}
}

// OnObstacleContact ends the round. Only the first contact has any effect.
func (r *rules) OnObstacleContact(round *Round, _ *Bomb) {
	if !round.End() {
		return
	}

	r.world.Physics.Pause()
	r.emit(core.Event{Kind: core.EventSound, Sound: core.SoundExplosion})

	p := r.world.Player
	p.Tint = core.ColorRed
	p.Anim.Play(AnimTurn, false)

	r.world.Camera.Fade(r.fadeTicks())
	r.emit(core.Event{
		Kind:  core.EventRoundOver,
		Score: round.Score(),
		Delay: r.cfg.Round.RestartDelay(),
	})
}

// fadeTicks converts the fade duration to simulation ticks.
func (r *rules) fadeTicks() int {
	return r.cfg.Round.FadeMS * r.rate / 1000
}
