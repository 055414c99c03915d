package model

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Canvas is the writable raster surface that all of the renderers paint on
type Canvas interface {
	draw.Image
	Width() int
	Height() int
	Clear()
	SetPixel(x, y int, c Color)
}

// Frame is an in memory Canvas. Writes outside of the frame are silently
// dropped
type Frame struct {
	rgba *image.RGBA
}

// NewFrame creates a black frame of the given dimensions
func NewFrame(width, height int) (f *Frame) {
	f = &Frame{
		rgba: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	f.Clear()
	return f
}

func (f *Frame) Width() int  { return f.rgba.Rect.Dx() }
func (f *Frame) Height() int { return f.rgba.Rect.Dy() }

func (f *Frame) ColorModel() color.Model { return color.RGBAModel }
func (f *Frame) Bounds() image.Rectangle { return f.rgba.Rect }

func (f *Frame) At(x, y int) color.Color { return f.rgba.At(x, y) }

// Set implements draw.Image, any alpha in c is discarded as the LEDs have
// none
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, FromColor(c))
}

// Clear blanks every pixel
func (f *Frame) Clear() {
	draw.Draw(f.rgba, f.rgba.Rect, image.Black, image.Point{}, draw.Src)
}

func (f *Frame) SetPixel(x, y int, c Color) {
	if !(image.Point{x, y}.In(f.rgba.Rect)) {
		return
	}
	i := f.rgba.PixOffset(x, y)
	p := f.rgba.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 0xff
}

// Pixel returns the color at x, y, black when outside the frame
func (f *Frame) Pixel(x, y int) (c Color) {
	if !(image.Point{x, y}.In(f.rgba.Rect)) {
		return Color{}
	}
	i := f.rgba.PixOffset(x, y)
	return Color{R: f.rgba.Pix[i], G: f.rgba.Pix[i+1], B: f.rgba.Pix[i+2]}
}

// CopyFrom replaces the contents of f with src, both frames must be the
// same size
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.rgba.Pix, src.rgba.Pix)
}

// Pix exposes the raw RGBA bytes, row major, for display drivers
func (f *Frame) Pix() []uint8 {
	return f.rgba.Pix
}
