package starfall

// BombState is the position and velocity of one bomb.
type BombState struct {
	X, Y   float64
	VX, VY float64
}

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick        int
	Score       int
	Phase       Phase
	PlayerX     float64
	PlayerY     float64
	PlayerVX    float64
	PlayerVY    float64
	Anim        string
	ActiveStars int
	Bombs       []BombState
	FadeDone    bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	if g.world == nil {
		return Snapshot{}
	}

	p := g.world.Player
	snap := Snapshot{
		Tick:        g.tickCount,
		Score:       g.round.Score(),
		Phase:       g.round.Phase(),
		PlayerX:     p.X,
		PlayerY:     p.Y,
		PlayerVX:    p.VX,
		PlayerVY:    p.VY,
		Anim:        p.Anim.Current(),
		ActiveStars: g.world.CountActiveStars(),
		FadeDone:    g.world.Camera.FadeProgress() >= 1,
	}
	for _, b := range g.world.Bombs {
		snap.Bombs = append(snap.Bombs, BombState{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY})
	}
	return snap
}
