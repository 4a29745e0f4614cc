package starfall

import (
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
)

// applyInput maps held directions to player velocity and animation.
// It does nothing once the round is over.
func applyInput(round *Round, w *World, in core.InputFrame, cfg config.StarfallPlayer) {
	if round.Over() {
		return
	}

	p := w.Player
	switch {
	case in.Has(core.ActionLeft):
		p.VX = -cfg.RunSpeed
		p.Anim.Play(AnimLeft, true)
	case in.Has(core.ActionRight):
		p.VX = cfg.RunSpeed
		p.Anim.Play(AnimRight, true)
	default:
		p.VX = 0
		p.Anim.Play(AnimTurn, false)
	}

	// Jump only from the ground
	if in.Has(core.ActionUp) && p.TouchingDown {
		p.VY = -cfg.JumpSpeed
	}
}

// spinStars rotates every active star. Purely cosmetic.
func spinStars(w *World, spin float64) {
	for _, s := range w.Stars {
		if s.Active {
			s.Rotation += spin
		}
	}
}
