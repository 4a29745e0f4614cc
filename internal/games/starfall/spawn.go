package starfall

import (
	"math/rand"

	"github.com/vovakirdan/starfall/internal/config"
)

// Spawner refills the star pool and places new bombs.
type Spawner struct {
	rng        *rand.Rand
	cfg        *config.StarfallConfig
	difficulty *config.DifficultyManager
}

// NewSpawner creates a spawner using rng for every random draw.
func NewSpawner(rng *rand.Rand, cfg *config.StarfallConfig, difficulty *config.DifficultyManager) *Spawner {
	return &Spawner{rng: rng, cfg: cfg, difficulty: difficulty}
}

// Between returns a uniform integer in [min, max], both inclusive.
func (s *Spawner) Between(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + s.rng.Intn(max-min+1)
}

// SpawnX picks a bomb x on the half of the world away from the player.
func (s *Spawner) SpawnX(playerX float64) float64 {
	mid := int(s.cfg.World.Midpoint())
	width := int(s.cfg.World.Width)
	if playerX < float64(mid) {
		return float64(s.Between(mid, width))
	}
	return float64(s.Between(0, mid))
}

// Respawn re-enables every star at its column and adds one bomb.
// score and ticks feed the difficulty curve for the bomb's speed.
func (s *Spawner) Respawn(w *World, score, ticks int) *Bomb {
	for _, star := range w.Stars {
		star.Enable(star.OriginX, s.cfg.Stars.OriginY)
	}

	x := s.SpawnX(w.Player.X)
	lo, hi := s.difficulty.SpeedRange(s.cfg.Bombs.MinVX, s.cfg.Bombs.MaxVX, score, ticks)
	vx := float64(s.Between(lo, hi))

	bomb := newBomb(x, s.cfg.Bombs.SpawnY, vx, s.cfg.Bombs)
	w.Bombs = append(w.Bombs, bomb)
	return bomb
}
