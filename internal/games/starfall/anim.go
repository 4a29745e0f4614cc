package starfall

// Player animation keys.
const (
	AnimLeft  = "left"
	AnimTurn  = "turn"
	AnimRight = "right"
)

// Animation is a named frame sequence into a sprite.
type Animation struct {
	Frames    []int
	FrameRate float64 // Frames per second
	Repeat    bool
}

// playerAnimations returns the three player animations over the 9-frame
// player sprite: running left, facing the camera, running right.
func playerAnimations() map[string]Animation {
	return map[string]Animation{
		AnimLeft:  {Frames: []int{0, 1, 2, 3}, FrameRate: 10, Repeat: true},
		AnimTurn:  {Frames: []int{4}, FrameRate: 20},
		AnimRight: {Frames: []int{5, 6, 7, 8}, FrameRate: 10, Repeat: true},
	}
}

// Animator plays one animation at a time.
type Animator struct {
	anims   map[string]Animation
	current string
	index   int
	elapsed float64
}

// NewAnimator creates an animator over the given animations.
func NewAnimator(anims map[string]Animation) *Animator {
	return &Animator{anims: anims}
}

// Play switches to the named animation. With ignoreIfPlaying set, playing
// the current animation again keeps its position.
func (a *Animator) Play(key string, ignoreIfPlaying bool) {
	if _, ok := a.anims[key]; !ok {
		return
	}
	if ignoreIfPlaying && a.current == key {
		return
	}
	a.current = key
	a.index = 0
	a.elapsed = 0
}

// Current returns the key of the playing animation.
func (a *Animator) Current() string {
	return a.current
}

// Advance moves the animation forward by dt seconds.
func (a *Animator) Advance(dt float64) {
	anim, ok := a.anims[a.current]
	if !ok || len(anim.Frames) < 2 || anim.FrameRate <= 0 {
		return
	}

	a.elapsed += dt
	step := 1 / anim.FrameRate
	for a.elapsed >= step {
		a.elapsed -= step
		if a.index < len(anim.Frames)-1 {
			a.index++
		} else if anim.Repeat {
			a.index = 0
		}
	}
}

// Frame returns the sprite frame to draw.
func (a *Animator) Frame() int {
	anim, ok := a.anims[a.current]
	if !ok || len(anim.Frames) == 0 {
		return 0
	}
	return anim.Frames[a.index]
}
