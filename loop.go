package pokeclock

// This file contains the frame loop. Once per tick the sky, celestial
// bodies, scenery and time are drawn for the current time of day, the
// decorative animations are advanced and the frame is handed to the display

import (
	"fmt"
	"os"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/mgutz/logxi"

	"github.com/xyzrian/PokeClock/model"
)

var logger = logxi.New("pokeclock")

// Scene is everything the loop draws from, it is built once at startup and
// never changes
type Scene struct {
	Config   Config
	Palette  Palette
	Location *time.Location
	Observer Observer
	Sun      SunSource
	Font     *Font

	SunImage    *model.Sprite
	MoonImage   *model.Sprite
	TreesImage  *model.Sprite
	RocksImage  *model.Sprite
	CloudsImage *model.Sprite

	// Templates for the animations, the loop plays copies of these
	Day   []*Animation
	Night []*Animation
}

// NewScene loads the font and artwork named by cfg. Only a missing font is
// an error, missing artwork leaves the matching layer empty
func NewScene(cfg Config) (scene *Scene, err errors.Error) {
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	loc, errGo := time.LoadLocation(cfg.Location.Timezone)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("timezone", cfg.Location.Timezone).With("stack", stack.Trace().TrimRuntime())
	}

	palette, err := cfg.LoadPalette()
	if err != nil {
		return nil, err
	}

	fnt, err := LoadFont(cfg.Asset(cfg.Font.Path), cfg.Font.Size)
	if err != nil {
		return nil, err
	}

	scene = &Scene{
		Config:   cfg,
		Palette:  palette,
		Location: loc,
		Observer: Observer{Latitude: cfg.Location.Latitude, Longitude: cfg.Location.Longitude},
		Sun:      NewSunriseSource(),
		Font:     fnt,

		SunImage:    LoadStaticImage(cfg.Asset(cfg.Images.Sun)),
		MoonImage:   LoadStaticImage(cfg.Asset(cfg.Images.Moon)),
		TreesImage:  LoadStaticImage(cfg.Asset(cfg.Images.Trees)),
		RocksImage:  LoadStaticImage(cfg.Asset(cfg.Images.Rocks)),
		CloudsImage: LoadStaticImage(cfg.Asset(cfg.Images.Clouds)),
	}

	for _, ac := range cfg.Day {
		scene.Day = append(scene.Day, ac.NewAnimation(LoadAnimatedSprite(cfg.Asset(ac.Path), ac.Height)))
	}
	for _, ac := range cfg.Night {
		scene.Night = append(scene.Night, ac.NewAnimation(LoadAnimatedSprite(cfg.Asset(ac.Path), ac.Height)))
	}

	return scene, nil
}

func cloneAnimations(templates []*Animation) (anims []*Animation) {
	anims = make([]*Animation, 0, len(templates))
	for _, tmpl := range templates {
		anim := *tmpl
		anim.Reset()
		anims = append(anims, &anim)
	}
	return anims
}

// cloudDrift moves the clouds back and forth around their rest position
type cloudDrift struct {
	offset    float64
	direction float64
}

func (cd *cloudDrift) advance(driftRange, speed float64) {
	cd.offset += speed * cd.direction

	if cd.offset >= driftRange {
		cd.direction = -1
	} else if cd.offset <= -driftRange {
		cd.direction = 1
	}
}

// TickState reports what a single tick computed
type TickState struct {
	Sun   float64 // sun progress
	Moon  float64 // moon progress
	Reset bool    // the minute changed and the animations were restarted
}

// Loop owns all of the mutable state of the clock
type Loop struct {
	scene   *Scene
	display Display
	clock   Clock
	errorC  chan<- errors.Error

	frame  *model.Frame
	day    *Chain
	night  *Chain
	clouds cloudDrift

	prevMinute int
	seenMinute bool
}

// NewLoop prepares a loop drawing scene onto display. Problems that do not
// stop the clock are sent to errorC, when errorC is nil they are logged
func NewLoop(scene *Scene, display Display, clock Clock, errorC chan<- errors.Error) *Loop {
	return &Loop{
		scene:   scene,
		display: display,
		clock:   clock,
		errorC:  errorC,
		frame:   display.Canvas(),
		day:     NewChain(cloneAnimations(scene.Day)...),
		night:   NewChain(cloneAnimations(scene.Night)...),
		clouds:  cloudDrift{direction: 1},
	}
}

func (l *Loop) report(err errors.Error) {
	if l.errorC == nil {
		logger.Warn(err.Error())
		return
	}
	select {
	case l.errorC <- err:
	case <-time.After(20 * time.Millisecond):
		fmt.Fprintln(os.Stderr, err.Error())
	}
}

// layer draws one layer of the frame, a failure inside it only costs that
// layer for this tick
func (l *Loop) layer(name string, draw func()) {
	defer func() {
		if r := recover(); r != nil {
			l.report(errors.New(fmt.Sprint(r)).With("layer", name).With("stack", stack.Trace().TrimRuntime()))
		}
	}()
	draw()
}

// almanac looks up the sun times for now, a source that fails outright is
// treated the same as one without an answer
func (l *Loop) almanac(now time.Time) (alm Almanac) {
	l.layer("almanac", func() {
		alm = LookupAlmanac(l.scene.Sun, l.scene.Observer, now)
	})
	if alm.Sunrise.IsZero() {
		alm = LookupAlmanac(nil, l.scene.Observer, now)
	}
	return alm
}

// Tick renders and presents one frame. now is the time of day being shown,
// wall is the real time used to play the animations
func (l *Loop) Tick(now time.Time, wall time.Time) (state TickState) {
	alm := l.almanac(now)
	state.Sun = alm.SunProgress(now)
	state.Moon = MoonProgress(now, alm)

	cfg := &l.scene.Config
	canvas := l.frame
	canvas.Clear()

	l.layer("sky", func() {
		DrawSky(canvas, l.scene.Palette, state.Sun)
	})

	if img := l.scene.SunImage; state.Sun > 0.0 && img != nil {
		l.layer("sun", func() {
			DrawSprite(canvas, img, centered(canvas.Width(), img.Width()), VerticalPosition(img.Height(), canvas.Height(), state.Sun))
		})
	}

	if img := l.scene.MoonImage; cfg.Moon.Enabled && state.Moon > 0.0 && img != nil {
		l.layer("moon", func() {
			DrawSprite(canvas, img, centered(canvas.Width(), img.Width()), VerticalPosition(img.Height(), canvas.Height(), state.Moon))
		})
	}

	l.layer("ground", func() {
		if state.Sun > 0.0 {
			DrawSprite(canvas, l.scene.TreesImage, 0, 0)
		} else {
			DrawSprite(canvas, l.scene.RocksImage, 0, 0)
		}
	})

	cloudy := cfg.Clouds.Enabled && l.scene.CloudsImage != nil && state.Sun > 0.0
	if cloudy {
		l.layer("clouds", func() {
			DrawSprite(canvas, l.scene.CloudsImage, int(l.clouds.offset), 0)
		})
	}

	l.layer("time", func() {
		DrawOutlinedText(canvas, l.scene.Font, now.Format("15:04"), OutlineColor, TextColor)
	})

	if minute := now.Minute(); !l.seenMinute {
		l.prevMinute = minute
		l.seenMinute = true
	} else if minute != l.prevMinute {
		l.prevMinute = minute
		l.day.Reset()
		l.night.Reset()
		state.Reset = true
	}

	if state.Sun > 0.0 {
		l.layer("day animation", func() {
			l.day.UpdateAndDraw(canvas, wall)
		})
	} else {
		l.layer("night animation", func() {
			l.night.UpdateAndDraw(canvas, wall)
		})
	}

	next, dropped, err := presentTo(l.display, canvas)
	if err != nil {
		if dropped {
			err = err.With("layer", "present")
		}
		l.report(err)
	}
	if next != nil {
		l.frame = next
	}

	if cloudy {
		l.clouds.advance(cfg.Clouds.DriftRange, cfg.Clouds.DriftSpeed)
	}

	return state
}

// Run ticks at the configured frame rate until quitC is closed. A tick that
// overruns its time slot is followed immediately by the next one
func (l *Loop) Run(quitC <-chan struct{}) {
	frameTime := time.Duration(float64(time.Second) / l.scene.Config.TargetFPS)

	for {
		select {
		case <-quitC:
			return
		default:
		}

		start := time.Now()
		l.Tick(l.clock.Now(), start)

		if sleep := frameTime - time.Since(start); sleep > 0 {
			select {
			case <-time.After(sleep):
			case <-quitC:
				return
			}
		}
	}
}
