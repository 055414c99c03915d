package pokeclock

// This file defines the contract between the frame loop and the device that
// shows the frames. Frames are double buffered, presenting a frame hands it
// over to the display which returns the frame that may be drawn on next

import (
	"fmt"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/xyzrian/PokeClock/model"
)

// Display is an output device for rendered frames
type Display interface {
	// Canvas returns the first writable frame
	Canvas() *model.Frame
	// Present shows f and returns the frame to draw the next tick on. f must
	// not be used by the caller after it has been presented
	Present(f *model.Frame) (next *model.Frame, err errors.Error)
	// Close blanks the device and releases it
	Close()
}

// presentTo shows f on d. A display that panics is reported through err with
// dropped set
func presentTo(d Display, f *model.Frame) (next *model.Frame, dropped bool, err errors.Error) {
	defer func() {
		if r := recover(); r != nil {
			dropped = true
			err = errors.New(fmt.Sprint(r)).With("stack", stack.Trace().TrimRuntime())
		}
	}()
	next, err = d.Present(f)
	return next, false, err
}

type doubleBuffer struct {
	front *model.Frame
	back  *model.Frame
}

func newDoubleBuffer(width, height int) doubleBuffer {
	return doubleBuffer{
		front: model.NewFrame(width, height),
		back:  model.NewFrame(width, height),
	}
}

// swap makes f the visible frame and returns the other buffer for writing
func (db *doubleBuffer) swap(f *model.Frame) (next *model.Frame) {
	if f != db.front {
		db.front, db.back = f, db.front
	}
	return db.back
}

// dim scales a color by a brightness percentage, in the way the LED panel
// drivers limit their output
func dim(c model.Color, brightness int) model.Color {
	if brightness >= 100 || brightness < 0 {
		return c
	}
	return model.Color{
		R: uint8(int(c.R) * brightness / 100),
		G: uint8(int(c.G) * brightness / 100),
		B: uint8(int(c.B) * brightness / 100),
	}
}

// MemoryDisplay keeps presented frames in memory, it is used when running
// without any hardware and for testing
type MemoryDisplay struct {
	buffers   doubleBuffer
	presented int
}

// NewMemoryDisplay creates an in memory display of the given size
func NewMemoryDisplay(width, height int) *MemoryDisplay {
	return &MemoryDisplay{
		buffers: newDoubleBuffer(width, height),
	}
}

func (d *MemoryDisplay) Canvas() *model.Frame {
	return d.buffers.back
}

func (d *MemoryDisplay) Present(f *model.Frame) (next *model.Frame, err errors.Error) {
	d.presented++
	return d.buffers.swap(f), nil
}

func (d *MemoryDisplay) Close() {}

// Last returns the most recently presented frame
func (d *MemoryDisplay) Last() *model.Frame {
	return d.buffers.front
}

// Presented is the number of frames shown so far
func (d *MemoryDisplay) Presented() int {
	return d.presented
}
