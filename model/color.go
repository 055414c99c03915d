package model

// This module defines the implementation neutral pixel and image data
// structures shared by the renderers and the display drivers

import (
	"fmt"
	"image/color"
)

// Color is an 8 bit per channel RGB value as sent to the LEDs
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface so that a Color can be handed
// directly to the image/draw and font packages
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromColor converts any color.Color into an LED color, dropping alpha
func FromColor(c color.Color) Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return Color{R: rgba.R, G: rgba.G, B: rgba.B}
}
