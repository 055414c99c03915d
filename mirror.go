package pokeclock

// This file implements a broadcast display that relays every presented frame
// to a set of other displays, for example the LED matrix along with a preview
// in the terminal. Displays that fail unrecoverably are groomed out of the set
// and the remaining ones carry on

import (
	"github.com/karlmutch/errors"

	"github.com/xyzrian/PokeClock/model"
)

type Mirror struct {
	buffers  doubleBuffer
	displays []Display
	canvases []*model.Frame // the frame each display will be handed next
}

// NewMirror creates a display of the given size that copies its frames to
// every one of displays
func NewMirror(width, height int, displays ...Display) *Mirror {
	m := &Mirror{
		buffers:  newDoubleBuffer(width, height),
		displays: displays,
		canvases: make([]*model.Frame, 0, len(displays)),
	}
	for _, d := range displays {
		m.canvases = append(m.canvases, d.Canvas())
	}
	return m
}

func (m *Mirror) Canvas() *model.Frame {
	return m.buffers.back
}

// Len is the number of displays still being fed
func (m *Mirror) Len() int {
	return len(m.displays)
}

// Present hands a copy of f to every display. The first error seen is
// returned, the other displays are still fed
func (m *Mirror) Present(f *model.Frame) (next *model.Frame, err errors.Error) {
	// Filtering without allocating, see https://github.com/golang/go/wiki/SliceTricks#filtering-without-allocating
	displays := m.displays[:0]
	canvases := m.canvases[:0]

	for i, d := range m.displays {
		canvas := m.canvases[i]
		canvas.CopyFrom(f)

		after, dropped, errPresent := presentTo(d, canvas)
		if errPresent != nil && err == nil {
			err = errPresent
		}
		if dropped {
			logger.Warn("display dropped", "index", i)
			continue
		}
		if after == nil {
			after = canvas
		}
		displays = append(displays, d)
		canvases = append(canvases, after)
	}
	m.displays = displays
	m.canvases = canvases

	return m.buffers.swap(f), err
}

func (m *Mirror) Close() {
	for _, d := range m.displays {
		d.Close()
	}
}
