package starfall

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
)

// restSpeed is the rebound speed (units/s) below which a gravity body stops
// bouncing and settles.
const restSpeed = 12.0

// Collision tags in the space.
const (
	tagPlatform = "platform"
	tagPlayer   = "player"
	tagStar     = "star"
	tagBomb     = "bomb"
)

const (
	cellSize = 16
	// Space objects are registered this much larger than their body so the
	// cell query never misses a resting contact. Exact overlap is decided on
	// the body boxes.
	queryMargin = 1.0
)

// Physics is a small arcade integrator: gravity, one axis at a time,
// static platforms and world bounds. Broad-phase lookups go through a
// resolv space shared by platforms and bodies.
type Physics struct {
	width, height float64
	gravity       float64
	platforms     []core.Box
	paused        bool

	space   *resolv.Space
	objects map[*Body]*resolv.Object
}

// NewPhysics creates an integrator for the given world and static platforms.
func NewPhysics(world config.StarfallWorld, platforms []core.Box) *Physics {
	p := &Physics{
		width:     world.Width,
		height:    world.Height,
		gravity:   world.Gravity,
		platforms: platforms,
		space: resolv.NewSpace(
			int(math.Ceil(world.Width))+cellSize,
			int(math.Ceil(world.Height))+cellSize,
			cellSize, cellSize,
		),
		objects: make(map[*Body]*resolv.Object),
	}
	for i, pl := range platforms {
		obj := resolv.NewObject(pl.X-queryMargin, pl.Y-queryMargin, pl.W+2*queryMargin, pl.H+2*queryMargin, tagPlatform)
		obj.Data = i
		p.space.Add(obj)
	}
	return p
}

// Pause freezes every body. There is no resume within a world instance.
func (p *Physics) Pause() {
	p.paused = true
}

// Paused reports whether the simulation is frozen.
func (p *Physics) Paused() bool {
	return p.paused
}

// Step advances every enabled body in the world by dt seconds.
func (p *Physics) Step(w *World, dt float64) {
	if p.paused {
		return
	}
	p.stepBody(&w.Player.Body, tagPlayer, dt)
	for _, s := range w.Stars {
		p.stepBody(&s.Body, tagStar, dt)
	}
	for _, b := range w.Bombs {
		p.stepBody(&b.Body, tagBomb, dt)
	}
}

// Touching returns the enabled bodies with the given tag whose boxes
// overlap b.
func (p *Physics) Touching(b *Body, tag string) map[*Body]bool {
	obj := p.sync(b, tagPlayer)
	hits := map[*Body]bool{}
	c := obj.Check(0, 0, tag)
	if c == nil {
		return hits
	}
	box := b.Box()
	for _, o := range c.Objects {
		other, ok := o.Data.(*Body)
		if !ok || other == b || !other.Enabled {
			continue
		}
		if box.Intersects(other.Box()) {
			hits[other] = true
		}
	}
	return hits
}

// sync registers b in the space on first use and moves its object to the
// body's current position. Disabled bodies leave the space.
func (p *Physics) sync(b *Body, tag string) *resolv.Object {
	obj, ok := p.objects[b]
	if !ok {
		obj = resolv.NewObject(0, 0, b.W+2*queryMargin, b.H+2*queryMargin, tag)
		obj.Data = b
		p.objects[b] = obj
	}
	if !b.Enabled {
		if obj.Space != nil {
			p.space.Remove(obj)
		}
		return obj
	}
	if obj.Space == nil {
		p.space.Add(obj)
	}
	obj.X = b.X - b.W/2 - queryMargin
	obj.Y = b.Y - b.H/2 - queryMargin
	obj.Update()
	return obj
}

// platformHits returns the indexes of platforms overlapping b, in
// platform order.
func (p *Physics) platformHits(b *Body, tag string) []int {
	c := p.sync(b, tag).Check(0, 0, tagPlatform)
	if c == nil {
		return nil
	}
	near := make(map[int]bool, len(c.Objects))
	for _, o := range c.Objects {
		if i, ok := o.Data.(int); ok {
			near[i] = true
		}
	}
	var hits []int
	box := b.Box()
	for i, pl := range p.platforms {
		if near[i] && box.Intersects(pl) {
			hits = append(hits, i)
		}
	}
	return hits
}

func (p *Physics) stepBody(b *Body, tag string, dt float64) {
	if !b.Enabled {
		p.sync(b, tag)
		return
	}

	b.TouchingDown = false
	if b.AllowGravity {
		b.VY += p.gravity * dt
	}

	// Horizontal pass
	b.X += b.VX * dt
	for _, i := range p.platformHits(b, tag) {
		pl := p.platforms[i]
		if !b.Box().Intersects(pl) {
			continue
		}
		if b.VX > 0 {
			b.X = pl.X - b.W/2
		} else if b.VX < 0 {
			b.X = pl.Right() + b.W/2
		}
		b.VX = p.rebound(b, b.VX, b.BounceX)
	}

	// Vertical pass
	b.Y += b.VY * dt
	for _, i := range p.platformHits(b, tag) {
		pl := p.platforms[i]
		if !b.Box().Intersects(pl) {
			continue
		}
		if b.VY > 0 {
			b.Y = pl.Y - b.H/2
			b.TouchingDown = true
		} else if b.VY < 0 {
			b.Y = pl.Bottom() + b.H/2
		}
		b.VY = p.rebound(b, b.VY, b.BounceY)
	}

	if b.CollideWorldBounds {
		p.clampToBounds(b)
	}
	p.sync(b, tag)
}

func (p *Physics) clampToBounds(b *Body) {
	if x := core.ClampF(b.X, b.W/2, p.width-b.W/2); x != b.X {
		if (x > b.X && b.VX < 0) || (x < b.X && b.VX > 0) {
			b.VX = p.rebound(b, b.VX, b.BounceX)
		}
		b.X = x
	}
	if y := core.ClampF(b.Y, b.H/2, p.height-b.H/2); y != b.Y {
		if y < b.Y {
			// Pushed up off the floor
			if b.VY > 0 {
				b.VY = p.rebound(b, b.VY, b.BounceY)
			}
			b.TouchingDown = true
		} else if b.VY < 0 {
			b.VY = p.rebound(b, b.VY, b.BounceY)
		}
		b.Y = y
	}
}

// rebound reflects v by the bounce factor. Gravity bodies settle once the
// rebound is too small to matter; obstacles keep their speed.
func (p *Physics) rebound(b *Body, v, bounce float64) float64 {
	r := -v * bounce
	if b.AllowGravity && math.Abs(r) < restSpeed {
		return 0
	}
	return r
}
