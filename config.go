package pokeclock

// This file contains the scene configuration. Every setting has a default
// so that the clock runs without any configuration file, a YAML scene file
// can override any of them

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"

	"github.com/xyzrian/PokeClock/model"
)

type LocationConfig struct {
	Name      string  `yaml:"name"`
	Timezone  string  `yaml:"timezone"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type MatrixConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Brightness int  `yaml:"brightness"` // percent
	Serpentine bool `yaml:"serpentine"`
}

type FontConfig struct {
	Path string  `yaml:"path"`
	Size float64 `yaml:"size"` // points, scalable fonts only
}

type ImagesConfig struct {
	Sun    string `yaml:"sun"`
	Moon   string `yaml:"moon"`
	Trees  string `yaml:"trees"`
	Rocks  string `yaml:"rocks"`
	Clouds string `yaml:"clouds"`
}

type CloudsConfig struct {
	Enabled    bool    `yaml:"enabled"`
	DriftRange float64 `yaml:"drift_range"` // pixels either side of the rest position
	DriftSpeed float64 `yaml:"drift_speed"` // pixels per frame
}

type MoonConfig struct {
	Enabled bool `yaml:"enabled"`
}

// PaletteConfig holds the sky keyframe colors as #rrggbb strings
type PaletteConfig struct {
	DaySky        string `yaml:"day_sky"`
	HorizonOrange string `yaml:"horizon_orange"`
	NightSky      string `yaml:"night_sky"`
	NightBottom   string `yaml:"night_bottom"`
}

// AnimationConfig describes one sprite animation, times are in seconds
type AnimationConfig struct {
	Name      string  `yaml:"name"`
	Path      string  `yaml:"path"`
	Height    int     `yaml:"height"`
	Kind      string  `yaml:"kind"`      // "horizontal" or "three-phase"
	Direction string  `yaml:"direction"` // "left" or "right", horizontal only
	Duration  float64 `yaml:"duration"`  // horizontal only
	FPS       float64 `yaml:"fps"`
	Y         int     `yaml:"y"`     // horizontal only
	Slide     float64 `yaml:"slide"` // three-phase only
	Hold      float64 `yaml:"hold"`  // three-phase only
	Ease      string  `yaml:"ease"`  // one of the easings below, empty or "linear" for constant speed
}

// easings are the slide shapes an animation may use
var easings = map[string]ease.TweenFunc{
	"linear":      nil,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-sine":     ease.InSine,
	"out-sine":    ease.OutSine,
	"in-out-sine": ease.InOutSine,
	"out-back":    ease.OutBack,
	"out-bounce":  ease.OutBounce,
}

type Config struct {
	Location  LocationConfig    `yaml:"location"`
	Matrix    MatrixConfig      `yaml:"matrix"`
	TargetFPS float64           `yaml:"target_fps"`
	AssetDir  string            `yaml:"asset_dir"`
	Font      FontConfig        `yaml:"font"`
	Images    ImagesConfig      `yaml:"images"`
	Clouds    CloudsConfig      `yaml:"clouds"`
	Moon      MoonConfig        `yaml:"moon"`
	Palette   PaletteConfig     `yaml:"palette"`
	Day       []AnimationConfig `yaml:"day"`
	Night     []AnimationConfig `yaml:"night"`
}

// DefaultConfig is a 64x32 panel in Vancouver with the stock artwork
func DefaultConfig() (cfg Config) {
	return Config{
		Location: LocationConfig{
			Name:      "Vancouver",
			Timezone:  "America/Vancouver",
			Latitude:  49.2827,
			Longitude: -123.1207,
		},
		Matrix: MatrixConfig{
			Width:      64,
			Height:     32,
			Brightness: 30,
		},
		TargetFPS: 60,
		AssetDir:  "assets",
		Font: FontConfig{
			Path: "fonts/6x10.bdf",
			Size: 8,
		},
		Images: ImagesConfig{
			Sun:    "led_images/sun_resized.png",
			Moon:   "led_images/moon_resized.png",
			Trees:  "led_images/trees_led.png",
			Rocks:  "led_images/rocks_led.png",
			Clouds: "led_images/clouds2.png",
		},
		Clouds: CloudsConfig{
			Enabled:    true,
			DriftRange: 5,
			DriftSpeed: 0.25,
		},
		Moon: MoonConfig{
			Enabled: true,
		},
		Palette: PaletteConfig{
			DaySky:        DefaultPalette.DaySky.String(),
			HorizonOrange: DefaultPalette.HorizonOrange.String(),
			NightSky:      DefaultPalette.NightSky.String(),
			NightBottom:   DefaultPalette.NightBottom.String(),
		},
		Day: []AnimationConfig{
			{Name: "ho-oh", Path: "led_images/ho-oh_short.gif", Height: 15, Kind: "horizontal", Direction: "left", Duration: 5, FPS: 6, Y: 1},
			{Name: "lugia", Path: "led_images/lugia_short.gif", Height: 15, Kind: "horizontal", Direction: "left", Duration: 5, FPS: 6, Y: 17},
			{Name: "trainer", Path: "led_images/red_pika_flipped.gif", Height: 14, Kind: "horizontal", Direction: "right", Duration: 7, FPS: 6, Y: 18},
			{Name: "ray", Path: "led_images/ray_led.gif", Height: 32, Kind: "horizontal", Direction: "left", Duration: 7, FPS: 6, Y: 0},
		},
		Night: []AnimationConfig{
			{Name: "haunter", Path: "led_images/haunter.gif", Height: 24, Kind: "three-phase", FPS: 8, Slide: 2, Hold: 3},
		},
	}
}

// LoadConfig reads a scene file, settings it does not mention keep their
// defaults. Relative paths inside the file are resolved against the files
// directory
func LoadConfig(path string) (cfg Config, err errors.Error) {
	cfg = DefaultConfig()

	data, errGo := os.ReadFile(path)
	if errGo != nil {
		return cfg, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	if errGo = yaml.Unmarshal(data, &cfg); errGo != nil {
		return cfg, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	if !filepath.IsAbs(cfg.AssetDir) {
		cfg.AssetDir = filepath.Join(filepath.Dir(path), cfg.AssetDir)
	}
	return cfg, cfg.Validate()
}

// Validate fills in zero values that would stop the clock running and
// rejects settings that make no sense
func (cfg *Config) Validate() (err errors.Error) {
	if cfg.Matrix.Width <= 0 || cfg.Matrix.Height <= 0 {
		return errors.New("matrix dimensions must be positive").With("width", cfg.Matrix.Width).
			With("height", cfg.Matrix.Height).With("stack", stack.Trace().TrimRuntime())
	}
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 60
	}
	if cfg.Matrix.Brightness <= 0 || cfg.Matrix.Brightness > 100 {
		cfg.Matrix.Brightness = 100
	}
	if len(cfg.Location.Timezone) == 0 {
		cfg.Location.Timezone = "Local"
	}
	for i := range cfg.Day {
		if err = cfg.Day[i].validate(); err != nil {
			return err
		}
	}
	for i := range cfg.Night {
		if err = cfg.Night[i].validate(); err != nil {
			return err
		}
	}
	return nil
}

func (ac *AnimationConfig) validate() (err errors.Error) {
	ac.Kind = strings.ToLower(ac.Kind)
	switch ac.Kind {
	case "", "horizontal":
		ac.Kind = "horizontal"
		if ac.Duration <= 0 {
			return errors.New("animation duration must be positive").With("animation", ac.Name).With("stack", stack.Trace().TrimRuntime())
		}
		switch strings.ToLower(ac.Direction) {
		case "", "left", "right":
		default:
			return errors.New("unknown animation direction").With("animation", ac.Name).
				With("direction", ac.Direction).With("stack", stack.Trace().TrimRuntime())
		}
	case "three-phase":
		if ac.Slide <= 0 {
			ac.Slide = 2
		}
		if ac.Hold < 0 {
			ac.Hold = 0
		}
	default:
		return errors.New("unknown animation kind").With("animation", ac.Name).
			With("kind", ac.Kind).With("stack", stack.Trace().TrimRuntime())
	}
	if ac.FPS <= 0 {
		ac.FPS = 6
	}
	ac.Ease = strings.ToLower(ac.Ease)
	if len(ac.Ease) == 0 {
		ac.Ease = "linear"
	}
	if _, isPresent := easings[ac.Ease]; !isPresent {
		return errors.New("unknown animation easing").With("animation", ac.Name).
			With("ease", ac.Ease).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// Asset resolves a path from the configuration against the asset directory
func (cfg *Config) Asset(path string) string {
	if len(path) == 0 || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.AssetDir, path)
}

// LoadPalette parses the configured sky colors
func (cfg *Config) LoadPalette() (p Palette, err errors.Error) {
	colors := []struct {
		hex string
		dst *model.Color
	}{
		{cfg.Palette.DaySky, &p.DaySky},
		{cfg.Palette.HorizonOrange, &p.HorizonOrange},
		{cfg.Palette.NightSky, &p.NightSky},
		{cfg.Palette.NightBottom, &p.NightBottom},
	}
	for _, c := range colors {
		if *c.dst, err = ParseHexColor(c.hex); err != nil {
			return DefaultPalette, err
		}
	}
	return p, nil
}

// NewAnimation builds the animation described by ac using frames
func (ac *AnimationConfig) NewAnimation(frames model.FrameSet) (anim *Animation) {
	if ac.Kind == "three-phase" {
		anim = NewThreePhase(ac.Name, frames, seconds(ac.Slide), seconds(ac.Hold), ac.FPS)
	} else {
		dir := Left
		if strings.EqualFold(ac.Direction, "right") {
			dir = Right
		}
		anim = NewHorizontal(ac.Name, frames, dir, seconds(ac.Duration), ac.FPS, ac.Y)
	}
	anim.Ease = easings[strings.ToLower(ac.Ease)]
	return anim
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
