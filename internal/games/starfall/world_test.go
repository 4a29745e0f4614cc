package starfall

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
)

func TestRoundTransitions(t *testing.T) {
	r := NewRound()
	if !r.Active() || r.Phase() != PhaseActive || r.ScoreText() != "Score: 0" {
		t.Fatalf("new round = %+v", r)
	}

	r.Reward(10)
	r.Reward(0)
	r.Reward(-5)
	if r.Score() != 10 {
		t.Errorf("score = %d, expected 10", r.Score())
	}

	if !r.End() {
		t.Error("first End() should report the transition")
	}
	if r.End() {
		t.Error("second End() should be a no-op")
	}
	if !r.Over() || r.Phase().String() != "over" {
		t.Errorf("phase = %v", r.Phase())
	}

	r.Reward(10)
	if r.Score() != 10 {
		t.Errorf("reward after End changed score to %d", r.Score())
	}
}

func TestSpawnSide(t *testing.T) {
	cfg := config.DefaultStarfallConfig()
	s := NewSpawner(rand.New(rand.NewSource(9)), &cfg, config.NewDifficultyManager(cfg.Difficulty))

	for i := 0; i < 500; i++ {
		if x := s.SpawnX(100); x < 400 || x > 800 {
			t.Fatalf("player left, spawn x = %v", x)
		}
		if x := s.SpawnX(399.9); x < 400 || x > 800 {
			t.Fatalf("player just left of middle, spawn x = %v", x)
		}
		if x := s.SpawnX(400); x < 0 || x > 400 {
			t.Fatalf("player at middle, spawn x = %v", x)
		}
		if x := s.SpawnX(700); x < 0 || x > 400 {
			t.Fatalf("player right, spawn x = %v", x)
		}
	}
}

func TestBetweenInclusive(t *testing.T) {
	cfg := config.DefaultStarfallConfig()
	s := NewSpawner(rand.New(rand.NewSource(1)), &cfg, config.NewDifficultyManager(cfg.Difficulty))

	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := s.Between(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("Between(-2, 2) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("Between(-2, 2) produced %v, expected all five values", seen)
	}
}

func TestBombBouncesOffWorldBounds(t *testing.T) {
	cfg := config.DefaultStarfallConfig()
	p := NewPhysics(cfg.World, nil)

	b := newBomb(10, 100, -200, cfg.Bombs)
	p.stepBody(&b.Body, tagBomb, 0.1)
	if b.VX != 200 {
		t.Errorf("vx after left wall = %v, expected 200", b.VX)
	}
	if b.Box().X < 0 {
		t.Errorf("bomb left the world: %+v", b.Box())
	}

	b = newBomb(400, 5, 0, cfg.Bombs)
	b.VY = -50
	p.stepBody(&b.Body, tagBomb, 0.1)
	if b.VY != 50 {
		t.Errorf("vy after ceiling = %v, expected 50", b.VY)
	}
}

func TestBodyLandsOnPlatform(t *testing.T) {
	cfg := config.DefaultStarfallConfig()
	ledge := core.BoxAround(400, 300, 400, 32)
	p := NewPhysics(cfg.World, []core.Box{ledge})

	b := &Body{X: 400, Y: 250, W: 20, H: 20, AllowGravity: true, BounceY: 0.5, Enabled: true}
	for i := 0; i < 300; i++ {
		p.stepBody(b, tagStar, 1.0/60)
	}
	if !b.TouchingDown {
		t.Fatal("body should rest on the ledge")
	}
	if b.Bottom() != ledge.Y {
		t.Errorf("body bottom = %v, expected ledge top %v", b.Bottom(), ledge.Y)
	}
	if b.VY != 0 {
		t.Errorf("resting vy = %v", b.VY)
	}

	// Paused physics moves nothing
	w := &World{Player: &Player{Body: Body{X: 1, Y: 1, VX: 50, Enabled: true}}}
	p.Pause()
	p.Step(w, 1)
	if w.Player.X != 1 {
		t.Error("paused physics moved a body")
	}
}

func TestBodyRestsOnCellAlignedLedge(t *testing.T) {
	cfg := config.DefaultStarfallConfig()
	ledge := core.Box{X: 96, Y: 320, W: 160, H: 32}
	p := NewPhysics(cfg.World, []core.Box{ledge})

	b := &Body{X: 176, Y: 280, W: 32, H: 48, AllowGravity: true, Enabled: true}
	for i := 0; i < 600; i++ {
		p.stepBody(b, tagPlayer, 1.0/60)
		if b.Bottom() > ledge.Y {
			t.Fatalf("tick %d: body sank into the ledge, bottom = %v", i, b.Bottom())
		}
	}
	if !b.TouchingDown || b.Bottom() != ledge.Y {
		t.Errorf("body bottom = %v touching = %v, expected resting on %v", b.Bottom(), b.TouchingDown, ledge.Y)
	}
}

func TestTouchingMatchesBoxes(t *testing.T) {
	cfg := config.DefaultStarfallConfig()
	p := NewPhysics(cfg.World, nil)

	player := &Body{X: 100, Y: 100, W: 32, H: 48, Enabled: true}
	overlap := &Body{X: 120, Y: 100, W: 24, H: 22, Enabled: true}
	adjacent := &Body{X: 128, Y: 100, W: 24, H: 22, Enabled: true} // Shares the player's right edge
	hidden := &Body{X: 100, Y: 100, W: 24, H: 22}

	p.stepBody(overlap, tagStar, 0)
	p.stepBody(adjacent, tagStar, 0)
	p.stepBody(hidden, tagStar, 0)

	hits := p.Touching(player, tagStar)
	if !hits[overlap] {
		t.Error("overlapping star not reported")
	}
	if hits[adjacent] {
		t.Error("edge contact reported as overlap")
	}
	if hits[hidden] {
		t.Error("disabled star reported")
	}
	if len(p.Touching(player, tagBomb)) != 0 {
		t.Error("no bombs exist, expected no bomb hits")
	}

	// Disabling a body takes it out of the space on its next step
	overlap.Enabled = false
	p.stepBody(overlap, tagStar, 0)
	if hits := p.Touching(player, tagStar); len(hits) != 0 {
		t.Errorf("hits after disable = %v", hits)
	}
}

func TestAnimatorLoops(t *testing.T) {
	a := NewAnimator(playerAnimations())
	a.Play(AnimLeft, false)

	frames := []int{a.Frame()}
	for i := 0; i < 5; i++ {
		a.Advance(0.1)
		frames = append(frames, a.Frame())
	}
	want := []int{0, 1, 2, 3, 0, 1}
	for i := range want {
		if frames[i] != want[i] {
			t.Fatalf("frames = %v, expected %v", frames, want)
		}
	}

	// Replaying with ignoreIfPlaying keeps the position
	a.Play(AnimLeft, true)
	if a.Frame() != 1 {
		t.Errorf("frame = %d after ignored replay, expected 1", a.Frame())
	}

	a.Play(AnimRight, true)
	if a.Frame() != 5 {
		t.Errorf("right starts at %d, expected 5", a.Frame())
	}
}
