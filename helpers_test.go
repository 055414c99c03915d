package pokeclock

import (
	"image"
	"image/color"
	"time"

	"github.com/karlmutch/errors"
	"golang.org/x/image/font/basicfont"

	"github.com/xyzrian/PokeClock/model"
)

// solidSprite creates a w x h sprite filled with a single color and alpha
func solidSprite(w, h int, c model.Color, alpha uint8) *model.Sprite {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha})
		}
	}
	return model.NewSprite(img)
}

// frameSet creates one opaque sprite per color, all w x h
func frameSet(w, h int, colors ...model.Color) (fs model.FrameSet) {
	for _, c := range colors {
		fs = append(fs, solidSprite(w, h, c, 0xff))
	}
	return fs
}

// fixedSun reports the same local clock times for every date
type fixedSun struct {
	riseHour, setHour int
	fail              bool
}

func (f *fixedSun) SunriseSunset(obs Observer, date time.Time) (rise time.Time, set time.Time, err errors.Error) {
	if f.fail {
		return rise, set, errors.New("no sun")
	}
	loc := date.Location()
	rise = time.Date(date.Year(), date.Month(), date.Day(), f.riseHour, 0, 0, 0, loc)
	set = time.Date(date.Year(), date.Month(), date.Day(), f.setHour, 0, 0, 0, loc)
	return rise, set, nil
}

func testFont() *Font {
	return NewFont(basicfont.Face7x13)
}

func snapshot(f *model.Frame) []uint8 {
	return append([]uint8(nil), f.Pix()...)
}

func equalPix(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
