package pokeclock

import (
	"github.com/xyzrian/PokeClock/model"
)

// AlphaThreshold is the alpha below which a sprite pixel is treated as
// fully transparent
const AlphaThreshold = 10

// DrawSprite copies the sprite onto the canvas with its top left corner at
// xOffset, yOffset. Pixels falling outside the canvas are dropped
func DrawSprite(canvas model.Canvas, sprite *model.Sprite, xOffset, yOffset int) {
	if sprite == nil {
		return
	}

	width, height := sprite.Width(), sprite.Height()

	xStart := max(0, -xOffset)
	xEnd := min(width, canvas.Width()-xOffset)
	yStart := max(0, -yOffset)
	yEnd := min(height, canvas.Height()-yOffset)

	for y := yStart; y < yEnd; y++ {
		for x := xStart; x < xEnd; x++ {
			c, alpha := sprite.At(x, y)
			if alpha < AlphaThreshold {
				continue
			}
			canvas.SetPixel(x+xOffset, y+yOffset, c)
		}
	}
}

// VerticalPosition gives the top row for a body of spriteHeight rows so that
// a progress of 0 sits it on the bottom edge and 1 on the top edge
func VerticalPosition(spriteHeight, canvasHeight int, progress float64) int {
	progress = max(0.0, min(1.0, progress))
	startTop := float64(canvasHeight - spriteHeight)
	return int(startTop + (0.0-startTop)*progress)
}

// centered is the offset placing inner in the middle of outer, rounding down
// so that an inner larger than outer overhangs the far edge by the extra pixel
func centered(outer, inner int) int {
	d := outer - inner
	if d < 0 && d%2 != 0 {
		return d/2 - 1
	}
	return d / 2
}
