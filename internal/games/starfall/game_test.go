package starfall

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/starfall/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	if err := g.Preload(); err != nil {
		t.Fatalf("Preload() failed: %v", err)
	}
	g.Create(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestCreateFallsBackWithLoadError(t *testing.T) {
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	defer SetConfigPath("")

	g := New()
	g.Create(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if g.LoadError() == nil {
		t.Fatal("expected the missing config to be reported")
	}
	if got := g.world.CountActiveStars(); got != 12 {
		t.Errorf("fallback world has %d stars, expected 12", got)
	}
	if len(g.sprites) == 0 {
		t.Error("fallback should still load the built-in sprites")
	}

	if err := newTestGame(t, 1).LoadError(); err != nil {
		t.Errorf("LoadError() after Preload = %v", err)
	}
}

func TestCreateInitialWorld(t *testing.T) {
	g := newTestGame(t, 1)

	if g.round.Score() != 0 || !g.round.Active() {
		t.Fatalf("new round = score %d phase %v", g.round.Score(), g.round.Phase())
	}
	if got := g.world.CountActiveStars(); got != 12 {
		t.Errorf("active stars = %d, expected 12", got)
	}
	for i, s := range g.world.Stars {
		if want := 12 + 70*float64(i); s.X != want || s.Y != 0 {
			t.Errorf("star %d at (%v,%v), expected (%v,0)", i, s.X, s.Y, want)
		}
		if s.BounceY < 0.4 || s.BounceY >= 0.8 {
			t.Errorf("star %d bounce %v out of [0.4, 0.8)", i, s.BounceY)
		}
	}
	if len(g.world.Bombs) != 0 {
		t.Errorf("bombs = %d, expected 0", len(g.world.Bombs))
	}
	if len(g.world.Platforms) != 4 {
		t.Errorf("platforms = %d, expected 4", len(g.world.Platforms))
	}
	if g.ScoreText() != "Score: 0" {
		t.Errorf("ScoreText() = %q", g.ScoreText())
	}
	if g.world.Player.X != 100 || g.world.Player.Y != 450 {
		t.Errorf("player at (%v,%v), expected (100,450)", g.world.Player.X, g.world.Player.Y)
	}
}

func TestCollectRewardsOnce(t *testing.T) {
	g := newTestGame(t, 1)
	star := g.world.Stars[3]

	g.reactions.OnCollect(g.round, star)

	if g.round.Score() != 10 {
		t.Errorf("score = %d, expected 10", g.round.Score())
	}
	if star.Active || star.Enabled {
		t.Error("collected star should be inactive and hidden")
	}
	if g.ScoreText() != "Score: 10" {
		t.Errorf("ScoreText() = %q, expected Score: 10", g.ScoreText())
	}
	if len(g.events) != 1 || g.events[0].Sound != core.SoundCollect {
		t.Errorf("events = %+v, expected one collect sound", g.events)
	}

	// Collecting an inactive star is a no-op
	g.reactions.OnCollect(g.round, star)
	if g.round.Score() != 10 {
		t.Errorf("second collect changed score to %d", g.round.Score())
	}
	if len(g.events) != 1 {
		t.Errorf("second collect emitted events: %+v", g.events)
	}
}

func TestLastStarRefillsAndSpawnsBomb(t *testing.T) {
	g := newTestGame(t, 7)

	for i, s := range g.world.Stars {
		g.reactions.OnCollect(g.round, s)
		if i < 11 && len(g.world.Bombs) != 0 {
			t.Fatalf("bomb spawned after %d stars", i+1)
		}
	}

	if g.round.Score() != 120 {
		t.Errorf("score = %d, expected 120", g.round.Score())
	}
	if g.ScoreText() != "Score: 120" {
		t.Errorf("ScoreText() = %q", g.ScoreText())
	}
	if got := g.world.CountActiveStars(); got != 12 {
		t.Errorf("active stars after refill = %d, expected 12", got)
	}
	for i, s := range g.world.Stars {
		if s.X != s.OriginX || s.Y != g.cfg.Stars.OriginY {
			t.Errorf("star %d refilled at (%v,%v)", i, s.X, s.Y)
		}
	}
	if len(g.world.Bombs) != 1 {
		t.Fatalf("bombs = %d, expected 1", len(g.world.Bombs))
	}
	if n := countEvents(g.events, core.EventRespawn); n != 1 {
		t.Errorf("respawn events = %d, expected 1", n)
	}

	b := g.world.Bombs[0]
	if b.Y != 16 || b.VY != 20 {
		t.Errorf("bomb at y=%v vy=%v, expected y=16 vy=20", b.Y, b.VY)
	}
	if b.VX < -200 || b.VX > 200 || b.VX != math.Trunc(b.VX) {
		t.Errorf("bomb vx = %v, expected integer in [-200, 200]", b.VX)
	}
	// Player starts at x=100, so the bomb comes from the right half
	if b.SpawnX < 400 || b.SpawnX > 800 {
		t.Errorf("bomb spawn x = %v, expected [400, 800]", b.SpawnX)
	}
	if b.AllowGravity || b.BounceX != 1 || b.BounceY != 1 || !b.CollideWorldBounds {
		t.Errorf("bomb body = %+v", b.Body)
	}
}

func TestBombsAccumulate(t *testing.T) {
	g := newTestGame(t, 3)

	for wave := 1; wave <= 3; wave++ {
		for _, s := range g.world.Stars {
			g.reactions.OnCollect(g.round, s)
		}
		if len(g.world.Bombs) != wave {
			t.Errorf("after wave %d bombs = %d", wave, len(g.world.Bombs))
		}
	}
	if g.round.Score() != 360 {
		t.Errorf("score = %d, expected 360", g.round.Score())
	}
}

func TestStepReactsToOverlaps(t *testing.T) {
	g := newTestGame(t, 5)
	player := g.world.Player

	// A star dropped onto the player is collected by the next tick
	star := g.world.Stars[6]
	star.X, star.Y = player.X, player.Y
	g.Step(core.NewInputFrame())
	if star.Active || g.round.Score() != 10 {
		t.Fatalf("star active = %v score = %d, expected collected", star.Active, g.round.Score())
	}

	// A star just beside the player is not
	other := g.world.Stars[0]
	other.X = player.X + player.W/2 + other.W/2 + 2
	other.Y = player.Y
	g.Step(core.NewInputFrame())
	if !other.Active {
		t.Error("a star beside the player was collected")
	}

	for _, s := range g.world.Stars {
		g.reactions.OnCollect(g.round, s)
	}
	bomb := g.world.Bombs[0]
	bomb.X, bomb.Y = player.X, player.Y
	bomb.SetVelocity(0, 0)
	g.Step(core.NewInputFrame())
	if !g.round.Over() {
		t.Error("touching a bomb should end the round")
	}
}

func TestObstacleContactEndsRoundOnce(t *testing.T) {
	g := newTestGame(t, 1)
	for _, s := range g.world.Stars {
		g.reactions.OnCollect(g.round, s)
	}
	bomb := g.world.Bombs[0]
	g.events = nil

	g.reactions.OnObstacleContact(g.round, bomb)

	if !g.round.Over() {
		t.Fatal("round should be over")
	}
	if !g.world.Physics.Paused() {
		t.Error("physics should be paused")
	}
	if g.world.Player.Tint != core.ColorRed {
		t.Errorf("player tint = %v, expected red", g.world.Player.Tint)
	}
	if g.world.Player.Anim.Current() != AnimTurn {
		t.Errorf("player anim = %q, expected turn", g.world.Player.Anim.Current())
	}
	if len(g.events) != 2 {
		t.Fatalf("events = %+v, expected explosion and round over", g.events)
	}
	if g.events[0].Kind != core.EventSound || g.events[0].Sound != core.SoundExplosion {
		t.Errorf("first event = %+v, expected explosion sound", g.events[0])
	}
	over := g.events[1]
	if over.Kind != core.EventRoundOver || over.Delay != 1800*time.Millisecond || over.Score != 120 {
		t.Errorf("round over event = %+v", over)
	}

	// A second contact must not fire again
	g.reactions.OnObstacleContact(g.round, bomb)
	if len(g.events) != 2 {
		t.Errorf("second contact emitted events: %+v", g.events[2:])
	}
	if g.round.Score() != 120 {
		t.Errorf("score changed to %d", g.round.Score())
	}
}

func TestStepIsNoOpWhenOver(t *testing.T) {
	g := newTestGame(t, 1)
	g.reactions.OnObstacleContact(g.round, &Bomb{})

	before := g.Snapshot()

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	in.Set(core.ActionUp)
	for i := 0; i < 30; i++ {
		res := g.Step(in)
		if len(res.Events) != 0 {
			t.Fatalf("tick %d emitted %+v after game over", i, res.Events)
		}
		if !res.State.GameOver {
			t.Fatal("state should report game over")
		}
	}

	after := g.Snapshot()
	if after.PlayerX != before.PlayerX || after.PlayerY != before.PlayerY ||
		after.PlayerVX != before.PlayerVX || after.Anim != before.Anim || after.Tick != before.Tick {
		t.Errorf("world changed after game over: %+v -> %+v", before, after)
	}

	// Collecting after the round is over changes nothing
	g.reactions.OnCollect(g.round, g.world.Stars[0])
	if g.round.Score() != 0 || !g.world.Stars[0].Active {
		t.Error("collect after game over should be ignored")
	}
}

func TestFadeCompletesAfterFadeDuration(t *testing.T) {
	g := newTestGame(t, 1)
	g.reactions.OnObstacleContact(g.round, &Bomb{})

	in := core.NewInputFrame()
	for i := 0; i < 89; i++ {
		g.Step(in)
	}
	if g.Snapshot().FadeDone {
		t.Error("fade should not be done before 1.5s")
	}
	g.Step(in)
	if !g.Snapshot().FadeDone {
		t.Errorf("fade progress = %v after 1.5s, expected 1", g.world.Camera.FadeProgress())
	}
}

func TestPlayerFallsLandsAndJumps(t *testing.T) {
	g := newTestGame(t, 1)
	in := core.NewInputFrame()

	for i := 0; i < 120; i++ {
		g.Step(in)
	}

	p := g.world.Player
	if !p.TouchingDown {
		t.Fatal("player should rest on the ground")
	}
	if math.Abs(p.Bottom()-536) > 1e-9 {
		t.Errorf("player bottom = %v, expected 536 (ground top)", p.Bottom())
	}
	restY := p.Y

	in.Set(core.ActionUp)
	g.Step(in)
	if p.VY >= 0 || p.Y >= restY {
		t.Errorf("jump from ground: vy=%v y=%v", p.VY, p.Y)
	}

	// No double jump while airborne
	vy := p.VY
	g.Step(in)
	if p.VY < vy {
		t.Errorf("airborne jump changed vy from %v to %v", vy, p.VY)
	}
}

func TestHorizontalMovement(t *testing.T) {
	g := newTestGame(t, 1)
	p := g.world.Player

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)
	if p.VX != -160 || p.Anim.Current() != AnimLeft {
		t.Errorf("left: vx=%v anim=%q", p.VX, p.Anim.Current())
	}

	in.Clear()
	in.Set(core.ActionRight)
	g.Step(in)
	if p.VX != 160 || p.Anim.Current() != AnimRight {
		t.Errorf("right: vx=%v anim=%q", p.VX, p.Anim.Current())
	}

	in.Clear()
	g.Step(in)
	if p.VX != 0 || p.Anim.Current() != AnimTurn || p.Anim.Frame() != 4 {
		t.Errorf("idle: vx=%v anim=%q frame=%d", p.VX, p.Anim.Current(), p.Anim.Frame())
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newTestGame(t, 1)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	res := g.Step(in)
	if !res.State.Paused {
		t.Fatal("pause toggle should pause")
	}

	before := g.Snapshot()
	in.Clear()
	in.Set(core.ActionRight)
	for i := 0; i < 10; i++ {
		g.Step(in)
	}
	after := g.Snapshot()
	if after.PlayerX != before.PlayerX || after.Tick != before.Tick {
		t.Error("world moved while paused")
	}

	in.Clear()
	in.Set(core.ActionPause)
	if g.Step(in).State.Paused {
		t.Error("second toggle should resume")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	in := core.NewInputFrame()
	for i := 0; i < 400; i++ {
		in.Clear()
		switch {
		case i%90 < 40:
			in.Set(core.ActionRight)
		case i%90 < 70:
			in.Set(core.ActionLeft)
		}
		if i%50 == 0 {
			in.Set(core.ActionUp)
		}
		// Force a few waves so bombs are in play
		if i == 10 || i == 150 {
			for _, s := range g1.world.Stars {
				g1.reactions.OnCollect(g1.round, s)
			}
			for _, s := range g2.world.Stars {
				g2.reactions.OnCollect(g2.round, s)
			}
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Score != s2.Score || s1.Phase != s2.Phase {
		t.Errorf("state mismatch: %+v vs %+v", s1, s2)
	}
	if s1.PlayerX != s2.PlayerX || s1.PlayerY != s2.PlayerY {
		t.Errorf("player mismatch: (%v,%v) vs (%v,%v)", s1.PlayerX, s1.PlayerY, s2.PlayerX, s2.PlayerY)
	}
	if len(s1.Bombs) != len(s2.Bombs) {
		t.Fatalf("bomb count mismatch: %d vs %d", len(s1.Bombs), len(s2.Bombs))
	}
	for i := range s1.Bombs {
		if s1.Bombs[i] != s2.Bombs[i] {
			t.Errorf("bomb %d mismatch: %+v vs %+v", i, s1.Bombs[i], s2.Bombs[i])
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("HUD should show the score")
	}
	if !strings.Contains(out, "▓") {
		t.Error("platforms should be drawn")
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("GAME OVER shown during play")
	}

	g.reactions.OnObstacleContact(g.round, &Bomb{})
	g.Render(screen)
	if cell := findRune(screen, '/'); cell.Color != core.ColorRed {
		t.Errorf("player color after contact = %v, expected red", cell.Color)
	}

	for i := 0; i < 90; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	out = screen.String()
	if !strings.Contains(out, "GAME OVER") {
		t.Error("GAME OVER box missing")
	}
	if strings.Contains(out, "▓") {
		t.Error("stage should be faded out")
	}

	// Tiny screens must not panic
	g.Render(core.NewScreen(3, 2))
}

func findRune(s *core.Screen, r rune) core.Cell {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune == r {
				return c
			}
		}
	}
	return core.Cell{}
}
