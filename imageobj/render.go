package imageobj

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide"
	"github.com/gogpu/slide/internal/lru"
	"github.com/gogpu/slide/model"
)

// DefaultScaledCacheSize is the soft limit of scaled images kept by a
// Renderer.
const DefaultScaledCacheSize = 128

// ErrInvalidOpacity is returned for opacities outside [0, 1].
var ErrInvalidOpacity = errors.New("imageobj: invalid opacity")

// scaledKey identifies one cropped and fitted rendition of a source image.
type scaledKey struct {
	source string
	crop   model.Rect
	fit    model.Fit
	width  int
	height int
	scale  float64
}

type scaled struct {
	buf    *gg.ImageBuf
	offset image.Point
}

// Renderer draws *model.Image objects.
type Renderer struct {
	images slide.ImageProvider
	scaled *lru.Cache[scaledKey, scaled]
}

// New creates an image renderer resolving sources through images,
// usually a *Loader.
func New(images slide.ImageProvider) *Renderer {
	return &Renderer{
		images: images,
		scaled: lru.New[scaledKey, scaled](DefaultScaledCacheSize),
	}
}

// Register installs r in reg for model.KindImage.
func Register(reg *slide.Registry, r *Renderer) {
	reg.Register(model.KindImage, r)
}

// Fingerprint implements slide.ObjectRenderer.
// The source reference stands in for the image pixels.
func (r *Renderer) Fingerprint(res slide.Resolution, obj model.Object) slide.Fingerprint {
	o, ok := obj.(*model.Image)
	if !ok {
		return slide.Fingerprint{}
	}
	fp := slide.Fingerprint{
		o.Source,
		o.Crop.Left, o.Crop.Top, o.Crop.Right, o.Crop.Bottom,
		string(o.Fit),
		o.Opacity,
		res.Scale(),
	}
	return fp.AppendRect(res, o.Rect)
}

// Draw implements slide.ObjectRenderer.
func (r *Renderer) Draw(dc *gg.Context, res slide.Resolution, obj model.Object) error {
	o, ok := obj.(*model.Image)
	if !ok {
		return fmt.Errorf("%w: %T", slide.ErrUnexpectedObject, obj)
	}
	if o.Opacity < 0 || o.Opacity > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidOpacity, o.Opacity)
	}

	box := res.ToPixels(o.Rect)
	bw, bh := int(math.Round(box.Width())), int(math.Round(box.Height()))
	if bw <= 0 || bh <= 0 {
		return nil
	}

	key := scaledKey{
		source: o.Source,
		crop:   o.Crop,
		fit:    o.Fit,
		width:  bw,
		height: bh,
		scale:  res.Scale(),
	}
	s, err := r.scaled.GetOrCreate(key, func() (scaled, error) {
		return r.prepare(key)
	})
	if err != nil {
		return err
	}

	dc.DrawImageEx(s.buf, gg.DrawImageOptions{
		X:       math.Round(box.Left) + float64(s.offset.X),
		Y:       math.Round(box.Top) + float64(s.offset.Y),
		Opacity: o.Opacity,
	})
	return nil
}

func (r *Renderer) prepare(key scaledKey) (scaled, error) {
	img, err := r.images.Image(key.source)
	if err != nil {
		return scaled{}, err
	}
	img, err = cropImage(img, key.crop)
	if err != nil {
		return scaled{}, err
	}
	img, off, err := fitImage(img, key.fit, key.width, key.height, key.scale)
	if err != nil {
		return scaled{}, err
	}
	return scaled{buf: gg.ImageBufFromImage(img), offset: off}, nil
}

// ScaledStats returns statistics of the scaled image cache.
func (r *Renderer) ScaledStats() lru.Stats {
	return r.scaled.Stats()
}
