package pokeclock

// This file contains the display driver for LED matrices attached to
// fadecandy boards, or any other Open Pixel Control server.
//
// The whole frame is sent as a single OPC message on one channel, the
// server configuration maps the pixel indexes onto the physical strands

import (
	"bytes"
	"time"

	"github.com/cnf/structhash"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/kellydunn/go-opc"

	"github.com/xyzrian/PokeClock/model"
)

// OPCConfig describes how to reach the OPC server and how the matrix is wired
type OPCConfig struct {
	Server     string // host:port of the OPC server, fcserver listens on 7890
	Channel    uint8  // OPC channel, 0 broadcasts to every channel
	Brightness int    // Percentage of full brightness
	Serpentine bool   // Alternate rows run right to left
}

// opcState is hashed to detect frames that are identical to the last one
// sent
type opcState struct {
	Channel uint8
	Pixels  string
}

type OPCDisplay struct {
	cfg     OPCConfig
	width   int
	height  int
	buffers doubleBuffer

	oc          *opc.Client
	connected   bool
	lastAttempt time.Time
	last        []byte
}

// reconnectInterval limits how often a lost server is retried
const reconnectInterval = time.Second

// NewOPCDisplay creates a display sending frames to the OPC server. A server
// that cannot be reached is reported and retried when frames are presented
func NewOPCDisplay(cfg OPCConfig, width, height int) (d *OPCDisplay, err errors.Error) {
	d = &OPCDisplay{
		cfg:     cfg,
		width:   width,
		height:  height,
		buffers: newDoubleBuffer(width, height),
		oc:      opc.NewClient(),
	}
	return d, d.connect(time.Now())
}

func (d *OPCDisplay) connect(now time.Time) (err errors.Error) {
	d.lastAttempt = now
	if errGo := d.oc.Connect("tcp", d.cfg.Server); errGo != nil {
		d.connected = false
		return errors.Wrap(errGo).With("url", d.cfg.Server).With("stack", stack.Trace().TrimRuntime())
	}
	d.connected = true
	d.last = nil
	return nil
}

func (d *OPCDisplay) Canvas() *model.Frame {
	return d.buffers.back
}

// pixelIndex maps a matrix position onto the position along the LED strand
func (d *OPCDisplay) pixelIndex(x, y int) int {
	if d.cfg.Serpentine && y%2 == 1 {
		return y*d.width + (d.width - 1 - x)
	}
	return y*d.width + x
}

func (d *OPCDisplay) message(f *model.Frame) (m *opc.Message, state *opcState) {
	m = opc.NewMessage(d.cfg.Channel)
	m.SetLength(uint16(d.width * d.height * 3))

	pixels := make([]byte, 0, d.width*d.height*3)
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			c := dim(f.Pixel(x, y), d.cfg.Brightness)
			m.SetPixelColor(d.pixelIndex(x, y), c.R, c.G, c.B)
			pixels = append(pixels, c.R, c.G, c.B)
		}
	}
	return m, &opcState{Channel: d.cfg.Channel, Pixels: string(pixels)}
}

func (d *OPCDisplay) send(f *model.Frame) (err errors.Error) {
	m, state := d.message(f)

	hash := structhash.Md5(state, 1)
	if d.connected && bytes.Equal(d.last, hash) {
		return nil
	}

	if !d.connected {
		now := time.Now()
		if now.Sub(d.lastAttempt) < reconnectInterval {
			return nil
		}
		if err = d.connect(now); err != nil {
			return err
		}
	}

	if errGo := d.oc.Send(m); errGo != nil {
		d.connected = false
		return errors.Wrap(errGo).With("url", d.cfg.Server).With("stack", stack.Trace().TrimRuntime())
	}
	d.last = hash
	return nil
}

// Present sends f to the server, frames identical to the previous one are
// not resent
func (d *OPCDisplay) Present(f *model.Frame) (next *model.Frame, err errors.Error) {
	err = d.send(f)
	return d.buffers.swap(f), err
}

// Close turns off all of the LEDs
func (d *OPCDisplay) Close() {
	if !d.connected {
		return
	}
	if err := d.send(model.NewFrame(d.width, d.height)); err != nil {
		logger.Warn("could not blank the display", "error", err.Error())
	}
}
