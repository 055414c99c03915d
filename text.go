package pokeclock

// This file loads the font used for the time display and draws the time
// with a dark halo so that it can be read against any sky

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-stack/stack"
	"github.com/golang/freetype/truetype"
	"github.com/karlmutch/errors"
	"github.com/zachomedia/go-bdf"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/xyzrian/PokeClock/model"
)

var (
	// OutlineColor is drawn around every glyph of the time
	OutlineColor = model.Color{R: 40, G: 40, B: 40}
	// TextColor is used for the glyphs of the time
	TextColor = model.Color{R: 255, G: 255, B: 255}
)

// Font wraps the face used to render text onto the display
type Font struct {
	face font.Face
}

// NewFont wraps an already loaded face
func NewFont(face font.Face) *Font {
	return &Font{face: face}
}

// LoadFont loads a BDF bitmap font or a TrueType/OpenType font. size is
// only used for scalable fonts
func LoadFont(path string, size float64) (f *Font, err errors.Error) {
	data, errGo := os.ReadFile(path)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bdf":
		bf, errGo := bdf.Parse(data)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
		}
		return NewFont(bf.NewFace()), nil
	case ".ttf", ".otf":
		tt, errGo := truetype.Parse(data)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
		}
		return NewFont(truetype.NewFace(tt, &truetype.Options{Size: size, Hinting: font.HintingFull})), nil
	}
	return nil, errors.New("unsupported font format").With("path", path).With("stack", stack.Trace().TrimRuntime())
}

// Height is the line height of the font in pixels
func (f *Font) Height() int {
	return f.face.Metrics().Height.Ceil()
}

// Measure returns the advance width of s in pixels
func (f *Font) Measure(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// DrawText draws s with its baseline starting at x, y
func DrawText(canvas model.Canvas, f *Font, x, y int, c model.Color, s string) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// DrawOutlinedText centers s on the canvas, first stamping it in the
// outline color at every offset of a 3x3 neighbourhood and then drawing it
// in the main color on top
func DrawOutlinedText(canvas model.Canvas, f *Font, s string, outline model.Color, main model.Color) {
	x := centered(canvas.Width(), f.Measure(s))
	y := canvas.Height()/2 + f.Height()/2 - 1

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			DrawText(canvas, f, x+dx, y+dy, outline, s)
		}
	}
	DrawText(canvas, f, x, y, main, s)
}
