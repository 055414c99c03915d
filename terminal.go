package pokeclock

// This file contains a display that previews the LED matrix inside a true
// color terminal. Each character cell shows two matrix rows using the upper
// half block glyph, the top pixel as the foreground color and the bottom
// pixel as the background color

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/xyzrian/PokeClock/model"
)

const upperHalfBlock = '▀'

type TerminalDisplay struct {
	screen     tcell.Screen
	width      int
	height     int
	brightness int
	buffers    doubleBuffer

	quitC    chan struct{}
	quitOnce sync.Once
}

// NewTerminalDisplay takes over the terminal. Pressing Esc, q or Ctrl-C
// closes the channel returned by Done
func NewTerminalDisplay(width, height, brightness int) (d *TerminalDisplay, err errors.Error) {
	screen, errGo := tcell.NewScreen()
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return newTerminalDisplay(screen, width, height, brightness)
}

func newTerminalDisplay(screen tcell.Screen, width, height, brightness int) (d *TerminalDisplay, err errors.Error) {
	if errGo := screen.Init(); errGo != nil {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	screen.HideCursor()
	screen.Clear()

	d = &TerminalDisplay{
		screen:     screen,
		width:      width,
		height:     height,
		brightness: brightness,
		buffers:    newDoubleBuffer(width, height),
		quitC:      make(chan struct{}),
	}

	go d.pollEvents()

	return d, nil
}

func (d *TerminalDisplay) pollEvents() {
	for {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			// The screen has been finalized
			return
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				d.quitOnce.Do(func() { close(d.quitC) })
			}
		}
	}
}

// Done is closed when the user asks to quit from the keyboard, the terminal
// is in raw mode so Ctrl-C does not raise a signal
func (d *TerminalDisplay) Done() <-chan struct{} {
	return d.quitC
}

func (d *TerminalDisplay) Canvas() *model.Frame {
	return d.buffers.back
}

func (d *TerminalDisplay) rgb(c model.Color) tcell.Color {
	c = dim(c, d.brightness)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (d *TerminalDisplay) Present(f *model.Frame) (next *model.Frame, err errors.Error) {
	for y := 0; y < d.height; y += 2 {
		for x := 0; x < d.width; x++ {
			style := tcell.StyleDefault.
				Foreground(d.rgb(f.Pixel(x, y))).
				Background(d.rgb(f.Pixel(x, y+1)))
			d.screen.SetContent(x, y/2, upperHalfBlock, nil, style)
		}
	}
	d.screen.Show()

	return d.buffers.swap(f), nil
}

// Close restores the terminal
func (d *TerminalDisplay) Close() {
	d.screen.Fini()
}
