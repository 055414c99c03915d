package pokeclock

// This file contains the timed sprite animations that decorate the clock.
//
// An Animation plays a set of sprite frames for a fixed duration while
// moving the sprite across the display, a Chain plays a list of animations
// one after another with the next one being started as soon as the current
// one completes

import (
	"time"

	"github.com/tanema/gween/ease"

	"github.com/xyzrian/PokeClock/model"
)

// Kind selects the motion used by an animation
type Kind int

const (
	// HorizontalSlide moves the sprite across the full width of the display
	HorizontalSlide Kind = iota
	// ThreePhaseSlide slides the sprite in from the right edge, holds it
	// there and then slides it back out again
	ThreePhaseSlide
)

// Direction of travel for a HorizontalSlide
type Direction int

const (
	Left Direction = iota
	Right
)

// Animation is the playback state of one animated sprite
type Animation struct {
	Name     string
	Frames   model.FrameSet
	Kind     Kind
	Duration time.Duration
	FPS      float64

	Direction Direction // HorizontalSlide only
	Y         int       // HorizontalSlide only, top row of the sprite

	Slide time.Duration // ThreePhaseSlide only, time taken to slide in or out
	Hold  time.Duration // ThreePhaseSlide only, time spent at rest

	// Ease reshapes the progress of each slide, nil moves at a constant speed
	Ease ease.TweenFunc

	started time.Time
	active  bool
}

// NewHorizontal creates an animation that slides across the display at row y
func NewHorizontal(name string, frames model.FrameSet, dir Direction, duration time.Duration, fps float64, y int) *Animation {
	return &Animation{
		Name:      name,
		Frames:    frames,
		Kind:      HorizontalSlide,
		Duration:  duration,
		FPS:       fps,
		Direction: dir,
		Y:         y,
	}
}

// NewThreePhase creates an animation that peeks in from the right hand edge,
// vertically centered
func NewThreePhase(name string, frames model.FrameSet, slide time.Duration, hold time.Duration, fps float64) *Animation {
	return &Animation{
		Name:     name,
		Frames:   frames,
		Kind:     ThreePhaseSlide,
		Duration: 2*slide + hold,
		FPS:      fps,
		Slide:    slide,
		Hold:     hold,
	}
}

// Start begins playback from the first frame at now. Animations without
// any frames cannot be started
func (a *Animation) Start(now time.Time) {
	if len(a.Frames) == 0 {
		return
	}
	a.started = now
	a.active = true
}

// Reset stops playback and forgets the start time
func (a *Animation) Reset() {
	a.started = time.Time{}
	a.active = false
}

func (a *Animation) Active() bool  { return a.active }
func (a *Animation) Started() bool { return !a.started.IsZero() }

// UpdateAndDraw draws the frame appropriate for now. It returns false when
// nothing was drawn, which includes the tick on which the animation runs
// past its duration and resets itself
func (a *Animation) UpdateAndDraw(canvas model.Canvas, now time.Time) bool {
	if !a.active || a.started.IsZero() || len(a.Frames) == 0 {
		return false
	}

	elapsed := now.Sub(a.started)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= a.Duration {
		a.Reset()
		return false
	}

	var x, y int
	switch a.Kind {
	case ThreePhaseSlide:
		x, y = a.threePhase(canvas, elapsed)
	default:
		x, y = a.horizontal(canvas, elapsed)
	}

	DrawSprite(canvas, a.frame(elapsed), x, y)
	return true
}

// frame cycles through the frames at the animations frame rate for as long
// as it plays
func (a *Animation) frame(elapsed time.Duration) *model.Sprite {
	idx := int(elapsed.Seconds()*a.FPS) % len(a.Frames)
	return a.Frames[idx]
}

// progress is the fraction of a slide lasting over that has completed after
// elapsed
func (a *Animation) progress(elapsed time.Duration, over time.Duration) float64 {
	p := elapsed.Seconds() / over.Seconds()
	if a.Ease != nil {
		p = float64(a.Ease(float32(p), 0, 1, 1))
	}
	return p
}

// lerp interpolates between two pixel positions, truncating toward zero
func lerp(from, to int, p float64) int {
	return int(float64(from) + float64(to-from)*p)
}

func (a *Animation) horizontal(canvas model.Canvas, elapsed time.Duration) (x int, y int) {
	from, to := canvas.Width(), -a.Frames.Width()
	if a.Direction == Right {
		from, to = to, from
	}
	return lerp(from, to, a.progress(elapsed, a.Duration)), a.Y
}

func (a *Animation) threePhase(canvas model.Canvas, elapsed time.Duration) (x int, y int) {
	offscreen := canvas.Width()
	rest := canvas.Width() - a.Frames.Width()
	y = centered(canvas.Height(), a.Frames.Height())

	switch {
	case elapsed < a.Slide:
		return lerp(offscreen, rest, a.progress(elapsed, a.Slide)), y
	case elapsed < a.Slide+a.Hold:
		return rest, y
	default:
		out := elapsed - a.Slide - a.Hold
		return lerp(rest, offscreen, a.progress(out, a.Slide)), y
	}
}

// Chain plays its animations in order, only one of which is ever active
type Chain struct {
	members []*Animation
	cursor  int
}

// NewChain creates a chain that will play members in the order given
func NewChain(members ...*Animation) *Chain {
	return &Chain{members: members}
}

// UpdateAndDraw advances the chain to now. When the current animation
// completes the next one is started and drawn within the same call so that
// there is no blank tick between them. Returns false once the chain has
// been played through
func (c *Chain) UpdateAndDraw(canvas model.Canvas, now time.Time) bool {
	for c.cursor < len(c.members) {
		anim := c.members[c.cursor]
		if !anim.Active() {
			anim.Start(now)
		}
		if anim.UpdateAndDraw(canvas, now) {
			return true
		}
		c.cursor++
	}
	return false
}

// Reset stops every animation and rewinds the chain to its first member
func (c *Chain) Reset() {
	for _, anim := range c.members {
		anim.Reset()
	}
	c.cursor = 0
}

func (c *Chain) Cursor() int           { return c.cursor }
func (c *Chain) Exhausted() bool       { return c.cursor >= len(c.members) }
func (c *Chain) Members() []*Animation { return c.members }
