package model

import (
	"image"
)

// Sprite is a decoded image that is never modified after loading. A nil
// *Sprite stands for art that could not be found
type Sprite struct {
	img *image.NRGBA
}

// NewSprite wraps a decoded image, the caller must not modify img afterwards
func NewSprite(img *image.NRGBA) (sprite *Sprite) {
	if img == nil {
		return nil
	}
	// Normalize the origin so that pixel lookups can be done relative to 0,0
	if img.Rect.Min != (image.Point{}) {
		img = &image.NRGBA{
			Pix:    img.Pix,
			Stride: img.Stride,
			Rect:   image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()),
		}
	}
	return &Sprite{img: img}
}

func (s *Sprite) Width() int {
	if s == nil {
		return 0
	}
	return s.img.Rect.Dx()
}

func (s *Sprite) Height() int {
	if s == nil {
		return 0
	}
	return s.img.Rect.Dy()
}

// At returns the non premultiplied color and alpha of a pixel
func (s *Sprite) At(x, y int) (c Color, alpha uint8) {
	i := y*s.img.Stride + x*4
	p := s.img.Pix[i : i+4 : i+4]
	return Color{R: p[0], G: p[1], B: p[2]}, p[3]
}

// FrameSet is the ordered list of frames making up an animated sprite, all
// frames share the same height
type FrameSet []*Sprite

// Width is the width of the first frame, or 0 for an empty set
func (fs FrameSet) Width() int {
	if len(fs) == 0 {
		return 0
	}
	return fs[0].Width()
}

// Height is the height of the first frame, or 0 for an empty set
func (fs FrameSet) Height() int {
	if len(fs) == 0 {
		return 0
	}
	return fs[0].Height()
}
