package pokeclock

// This file loads the optional artwork. Missing or broken artwork is never
// an error, the layer using it is simply not drawn

import (
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"golang.org/x/image/draw"

	"github.com/xyzrian/PokeClock/model"
)

// LoadStaticImage returns the image at path, or nil if there is no usable
// image there
func LoadStaticImage(path string) (sprite *model.Sprite) {
	if len(path) == 0 {
		return nil
	}
	if _, errGo := os.Stat(path); errGo != nil {
		logger.Debug("image not present", "path", path)
		return nil
	}

	img, errGo := imaging.Open(path)
	if errGo != nil {
		err := errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
		logger.Warn("image could not be loaded", "error", err.Error())
		return nil
	}
	return model.NewSprite(imaging.Clone(img))
}

// LoadAnimatedSprite returns the frames of the animation at path each scaled
// to targetHeight rows while keeping their aspect ratio. An empty FrameSet is
// returned if the file is missing or cannot be decoded
func LoadAnimatedSprite(path string, targetHeight int) (frames model.FrameSet) {
	if len(path) == 0 {
		return nil
	}
	if _, errGo := os.Stat(path); errGo != nil {
		logger.Debug("animation not present", "path", path)
		return nil
	}

	decoded, err := decodeFrames(path)
	if err != nil {
		logger.Warn("animation could not be loaded", "error", err.Error())
		return nil
	}

	frames = make(model.FrameSet, 0, len(decoded))
	for _, img := range decoded {
		frames = append(frames, model.NewSprite(scaleToHeight(img, targetHeight)))
	}
	return frames
}

// decodeFrames returns the fully composited frames of a GIF, for any other
// image format the single image is returned as the only frame
func decodeFrames(path string) (frames []*image.NRGBA, err errors.Error) {
	if !strings.EqualFold(filepath.Ext(path), ".gif") {
		img, errGo := imaging.Open(path)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
		}
		return []*image.NRGBA{imaging.Clone(img)}, nil
	}

	file, errGo := os.Open(path)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	defer file.Close()

	anim, errGo := gif.DecodeAll(file)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}

	return compositeGIF(anim), nil
}

// compositeGIF plays the GIF frames onto a single canvas honoring each
// frames disposal method so that every returned frame is a complete picture
func compositeGIF(anim *gif.GIF) (frames []*image.NRGBA) {
	bounds := image.Rect(0, 0, anim.Config.Width, anim.Config.Height)
	if bounds.Empty() && len(anim.Image) != 0 {
		bounds = anim.Image[0].Bounds()
	}
	canvas := image.NewNRGBA(bounds)

	frames = make([]*image.NRGBA, 0, len(anim.Image))
	for i, frame := range anim.Image {
		disposal := byte(0)
		if i < len(anim.Disposal) {
			disposal = anim.Disposal[i]
		}

		var previous *image.NRGBA
		if disposal == gif.DisposalPrevious {
			previous = imaging.Clone(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames = append(frames, imaging.Clone(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			draw.Draw(canvas, canvas.Bounds(), previous, image.Point{}, draw.Src)
		}
	}
	return frames
}

// scaleToHeight resizes img to height rows using a Lanczos filter, images
// already at the right height are returned as is
func scaleToHeight(img *image.NRGBA, height int) *image.NRGBA {
	bounds := img.Bounds()
	if height <= 0 || bounds.Dy() == height || bounds.Dy() == 0 {
		return img
	}
	scale := float64(height) / float64(bounds.Dy())
	width := max(1, int(float64(bounds.Dx())*scale))
	return imaging.Resize(img, width, height, imaging.Lanczos)
}
