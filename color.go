package pokeclock

// This file contains the color blending used to produce the sky and the
// parsing of colors supplied in the scene configuration

import (
	"math"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/xyzrian/PokeClock/model"
)

// Interpolate blends linearly between c1 and c2, f is expected to be within
// [0,1] but is not checked. Results outside of a channel range saturate
func Interpolate(c1, c2 model.Color, f float64) model.Color {
	return model.Color{
		R: lerpChannel(c1.R, c2.R, f),
		G: lerpChannel(c1.G, c2.G, f),
		B: lerpChannel(c1.B, c2.B, f),
	}
}

func lerpChannel(a, b uint8, f float64) uint8 {
	v := math.Trunc(float64(a) + (float64(b)-float64(a))*f)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// ParseHexColor accepts colors in the #rrggbb form used by the scene files
func ParseHexColor(hex string) (c model.Color, err errors.Error) {
	cf, errGo := colorful.Hex(hex)
	if errGo != nil {
		return c, errors.Wrap(errGo).With("color", hex).With("stack", stack.Trace().TrimRuntime())
	}
	c.R, c.G, c.B = cf.RGB255()
	return c, nil
}
