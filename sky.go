package pokeclock

import (
	"github.com/xyzrian/PokeClock/model"
)

// Palette holds the four keyframe colors of the sky gradient
type Palette struct {
	DaySky        model.Color
	HorizonOrange model.Color
	NightSky      model.Color
	NightBottom   model.Color
}

// DefaultPalette is a pale blue day fading to orange at the horizon, and a
// deep blue night lightening toward the ground
var DefaultPalette = Palette{
	DaySky:        model.Color{R: 135, G: 206, B: 235},
	HorizonOrange: model.Color{R: 255, G: 165, B: 79},
	NightSky:      model.Color{R: 25, G: 25, B: 60},
	NightBottom:   model.Color{R: 70, G: 130, B: 180},
}

// SkyRow returns the color of row y of a sky that is height rows tall for
// the day progress d
func (p Palette) SkyRow(y, height int, d float64) model.Color {
	denom := height - 1
	if denom < 1 {
		denom = 1
	}
	v := float64(y) / float64(denom)

	switch {
	case d > 0.0 && d < 1.0:
		top := Interpolate(p.NightSky, p.DaySky, d)
		bottom := Interpolate(p.NightBottom, p.HorizonOrange, d)
		return Interpolate(top, bottom, v)
	case d >= 1.0:
		return Interpolate(p.DaySky, p.HorizonOrange, v)
	default:
		return Interpolate(p.NightSky, p.NightBottom, v)
	}
}

// DrawSky paints the whole canvas with the vertical sky gradient for the
// day progress d
func DrawSky(canvas model.Canvas, p Palette, d float64) {
	height := canvas.Height()
	width := canvas.Width()

	rows := make([]model.Color, height)
	for y := range rows {
		rows[y] = p.SkyRow(y, height, d)
	}

	for y, c := range rows {
		for x := 0; x < width; x++ {
			canvas.SetPixel(x, y, c)
		}
	}
}
