package imageobj

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/slide/model"
)

var (
	// ErrInvalidCrop is returned for crop rectangles outside [0, 1] or with
	// no area.
	ErrInvalidCrop = errors.New("imageobj: invalid crop")

	// ErrInvalidFit is returned for unknown fit modes.
	ErrInvalidFit = errors.New("imageobj: invalid fit")
)

// cropImage returns the part of img selected by crop, given as fractions of
// the image size. The zero Rect selects the whole image.
func cropImage(img image.Image, crop model.Rect) (image.Image, error) {
	if crop == (model.Rect{}) {
		return img, nil
	}
	if crop.Left < 0 || crop.Top < 0 || crop.Right > 1 || crop.Bottom > 1 ||
		crop.Left >= crop.Right || crop.Top >= crop.Bottom {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidCrop, crop)
	}
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r := image.Rect(
		b.Min.X+int(math.Round(crop.Left*w)),
		b.Min.Y+int(math.Round(crop.Top*h)),
		b.Min.X+int(math.Round(crop.Right*w)),
		b.Min.Y+int(math.Round(crop.Bottom*h)),
	)
	if r.Empty() {
		return nil, fmt.Errorf("%w: %+v selects no pixels", ErrInvalidCrop, crop)
	}
	return transform.Crop(img, r), nil
}

// fitImage scales img into a box of bw x bh pixels. It returns the scaled
// image, clipped to the box, and its offset inside the box.
// For FitNone the image keeps its natural size multiplied by scale.
func fitImage(img image.Image, fit model.Fit, bw, bh int, scale float64) (image.Image, image.Point, error) {
	sz := img.Bounds().Size()
	sw, sh := float64(sz.X), float64(sz.Y)
	// image and box aspect ratio
	iar := sw / sh
	bar := float64(bw) / float64(bh)

	var x, y float64
	switch fit {
	case "", model.FitFill:
		return transform.Resize(img, bw, bh, transform.Linear), image.Point{}, nil
	case model.FitContain:
		if iar >= bar {
			x, y = float64(bw), sh*float64(bw)/sw
		} else {
			x, y = sw*float64(bh)/sh, float64(bh)
		}
	case model.FitCover:
		if iar < bar {
			x, y = float64(bw), sh*float64(bw)/sw
		} else {
			x, y = sw*float64(bh)/sh, float64(bh)
		}
	case model.FitNone:
		x, y = sw*scale, sh*scale
	default:
		return nil, image.Point{}, fmt.Errorf("%w: %q", ErrInvalidFit, fit)
	}

	w, h := max(1, int(math.Round(x))), max(1, int(math.Round(y)))
	if w != sz.X || h != sz.Y {
		img = transform.Resize(img, w, h, transform.Linear)
	}

	// Center in the box, clipping what overflows.
	off := image.Pt((bw-w)/2, (bh-h)/2)
	if w > bw || h > bh {
		visible := image.Rect(max(0, -off.X), max(0, -off.Y), min(w, bw-off.X), min(h, bh-off.Y))
		visible = visible.Add(img.Bounds().Min)
		img = transform.Crop(img, visible)
		off = image.Pt(max(0, off.X), max(0, off.Y))
	}
	return img, off, nil
}
