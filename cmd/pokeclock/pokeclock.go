package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
	"github.com/karlmutch/errors"
	"github.com/mgutz/logxi"

	pokeclock "github.com/xyzrian/PokeClock"
	"github.com/xyzrian/PokeClock/version"
)

var (
	logger = logxi.New("pokeclock")

	verbose     = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	sceneFile   = flag.String("scene", "", "Optional YAML scene file overriding the default location, artwork and animations")
	displayType = flag.String("display", "opc", "Where frames are shown, a comma separated list of opc, term or none")
	opcServer   = flag.String("opc-server", "localhost:7890", "host:port of the fadecandy or other Open Pixel Control server")
	opcChannel  = flag.Uint("opc-channel", 0, "OPC channel the matrix is attached to, 0 broadcasts to all channels")
	serpentine  = flag.Bool("serpentine", false, "The matrix is wired with alternate rows running right to left")
	fps         = flag.Float64("fps", 0, "Override the target frame rate of the scene")
	brightness  = flag.Int("brightness", 0, "Override the scene brightness, in percent")
	fontPath    = flag.String("font", "", "Override the BDF or TrueType font used for the time")
	scale       = flag.Float64("scale", 1, "factor by which to accelerate the relative rate of the clock")
	startAt     = flag.String("start", "", "Time of day the clock starts at, either 15:04 or RFC3339, defaults to now")
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       sky clock → LED matrix (pokeclock)      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "pokeclock draws the sky, sun, moon and the time on an LED matrix, with a parade of sprites every minute")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}
}

func loadConfig() (cfg pokeclock.Config, err errors.Error) {
	cfg = pokeclock.DefaultConfig()
	if len(*sceneFile) != 0 {
		if cfg, err = pokeclock.LoadConfig(*sceneFile); err != nil {
			return cfg, err
		}
	}

	if *fps > 0 {
		cfg.TargetFPS = *fps
	}
	if *brightness > 0 {
		cfg.Matrix.Brightness = *brightness
	}
	if len(*fontPath) != 0 {
		cfg.Font.Path = *fontPath
	}
	if *serpentine {
		cfg.Matrix.Serpentine = true
	}
	return cfg, nil
}

// startTime interprets the -start option in the scenes location
func startTime(loc *time.Location) (start time.Time, err errors.Error) {
	now := time.Now().In(loc)
	if len(*startAt) == 0 {
		return now, nil
	}
	if t, errGo := time.ParseInLocation("15:04", *startAt, loc); errGo == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	t, errGo := time.Parse(time.RFC3339, *startAt)
	if errGo != nil {
		return now, errors.Wrap(errGo).With("start", *startAt).With("stack", stack.Trace().TrimRuntime())
	}
	return t.In(loc), nil
}

func newClock(loc *time.Location) (clock pokeclock.Clock, err errors.Error) {
	if len(*startAt) == 0 && *scale == 1 {
		return pokeclock.SystemClock{Location: loc}, nil
	}
	start, err := startTime(loc)
	if err != nil {
		return nil, err
	}
	return pokeclock.NewScaledClock(start, *scale), nil
}

// openDisplay opens one output device, the returned channel is closed if the
// device itself asks for the clock to stop
func openDisplay(kind string, cfg pokeclock.Config, errorC chan<- errors.Error) (display pokeclock.Display, doneC <-chan struct{}, err errors.Error) {
	switch kind {
	case "opc":
		opcCfg := pokeclock.OPCConfig{
			Server:     *opcServer,
			Channel:    uint8(*opcChannel),
			Brightness: cfg.Matrix.Brightness,
			Serpentine: cfg.Matrix.Serpentine,
		}
		d, err := pokeclock.NewOPCDisplay(opcCfg, cfg.Matrix.Width, cfg.Matrix.Height)
		if err != nil {
			// The server may well appear later, the display retries by itself
			select {
			case errorC <- err:
			case <-time.After(100 * time.Millisecond):
				fmt.Fprintln(os.Stderr, err.Error())
			}
		}
		return d, nil, nil
	case "term":
		d, err := pokeclock.NewTerminalDisplay(cfg.Matrix.Width, cfg.Matrix.Height, cfg.Matrix.Brightness)
		if err != nil {
			return nil, nil, err
		}
		return d, d.Done(), nil
	case "none":
		return pokeclock.NewMemoryDisplay(cfg.Matrix.Width, cfg.Matrix.Height), nil, nil
	}
	return nil, nil, errors.New("unknown display type").With("display", kind).With("stack", stack.Trace().TrimRuntime())
}

// newDisplay opens every device named by the display option, more than one
// device are fed the same frames through a mirror
func newDisplay(cfg pokeclock.Config, errorC chan<- errors.Error) (display pokeclock.Display, doneC <-chan struct{}, err errors.Error) {
	displays := []pokeclock.Display{}
	for _, kind := range strings.Split(*displayType, ",") {
		d, done, err := openDisplay(strings.TrimSpace(kind), cfg, errorC)
		if err != nil {
			for _, opened := range displays {
				opened.Close()
			}
			return nil, nil, err
		}
		if done != nil {
			doneC = done
		}
		displays = append(displays, d)
	}

	if len(displays) == 1 {
		return displays[0], doneC, nil
	}
	return pokeclock.NewMirror(cfg.Matrix.Width, cfg.Matrix.Height, displays...), doneC, nil
}

func run() (err errors.Error) {

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// A missing font is the one asset the clock cannot run without
	scene, err := pokeclock.NewScene(cfg)
	if err != nil {
		return err
	}

	clock, err := newClock(scene.Location)
	if err != nil {
		return err
	}

	quitC := make(chan struct{})
	errorC := make(chan errors.Error, 8)

	go runMonitoring(errorC, quitC)

	display, doneC, err := newDisplay(scene.Config, errorC)
	if err != nil {
		return err
	}
	defer display.Close()

	stopC := make(chan os.Signal, 1)
	signal.Notify(stopC, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-stopC:
		case <-doneC:
		}
		logger.Debug("stopping")
		close(quitC)
	}()

	logger.Info("starting", "location", scene.Config.Location.Name, "display", *displayType, "fps", scene.Config.TargetFPS)

	pokeclock.NewLoop(scene, display, clock, errorC).Run(quitC)

	return nil
}
