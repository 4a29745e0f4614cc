package starfall

import "strconv"

// Phase is the round lifecycle. The only transition is Active -> Over.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseOver {
		return "over"
	}
	return "active"
}

// Round is the per-world score and lifecycle. It is owned by one Game and
// passed explicitly to the tick and reaction handlers.
type Round struct {
	score int
	phase Phase
}

// NewRound returns an active round with score 0.
func NewRound() *Round {
	return &Round{}
}

// Score returns the current score.
func (r *Round) Score() int {
	return r.score
}

// Phase returns the current phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// Active reports whether the round still accepts input and rewards.
func (r *Round) Active() bool {
	return r.phase == PhaseActive
}

// Over reports whether the round has ended.
func (r *Round) Over() bool {
	return r.phase == PhaseOver
}

// Reward adds points to the score. Ignored once the round is over.
func (r *Round) Reward(points int) {
	if r.Over() || points <= 0 {
		return
	}
	r.score += points
}

// End moves the round to Over. It returns true only for the call that
// performed the transition.
func (r *Round) End() bool {
	if r.Over() {
		return false
	}
	r.phase = PhaseOver
	return true
}

// ScoreText is the HUD label for the current score.
func (r *Round) ScoreText() string {
	return "Score: " + strconv.Itoa(r.score)
}
