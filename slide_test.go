package slide

import (
	"image"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
)

const kindRect model.Kind = "rect"

// rectObject is a test object drawn as a filled rectangle.
type rectObject struct {
	model.Base
	Color string

	// fail makes the draw routine return it; panic makes it panic.
	fail  error
	panic bool
}

func (*rectObject) Kind() model.Kind { return kindRect }

func newRect(id string, left, top float64, color string) *rectObject {
	return &rectObject{
		Base:  model.Base{ObjectID: id, Rect: model.Rect{Left: left, Top: top, Right: left + 10, Bottom: top + 10}},
		Color: color,
	}
}

// countingRenderer draws rectObjects and counts draw calls per object ID.
type countingRenderer struct {
	draws map[string]int
}

func newCountingRenderer() *countingRenderer {
	return &countingRenderer{draws: make(map[string]int)}
}

func (c *countingRenderer) Draw(dc *gg.Context, res Resolution, obj model.Object) error {
	o, ok := obj.(*rectObject)
	if !ok {
		return unexpected(obj)
	}
	c.draws[o.ID()]++
	if o.panic {
		panic("boom")
	}
	if o.fail != nil {
		return o.fail
	}
	col, err := ParseColor(o.Color)
	if err != nil {
		return err
	}
	r := res.ToPixels(o.Rect)
	dc.SetColor(col.Color())
	dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	return dc.Fill()
}

func (c *countingRenderer) Fingerprint(res Resolution, obj model.Object) Fingerprint {
	o, ok := obj.(*rectObject)
	if !ok {
		return Fingerprint{}
	}
	fp := Fingerprint{o.Color}
	return fp.AppendRect(res, o.Rect)
}

func (c *countingRenderer) total() int {
	n := 0
	for _, v := range c.draws {
		n += v
	}
	return n
}

func (c *countingRenderer) reset() {
	clear(c.draws)
}

const kindFlaky model.Kind = "flaky"

// flakyObject is drawn like a rectObject by flakyRenderer, whose
// fingerprint routine always panics.
type flakyObject struct {
	rectObject
}

func (*flakyObject) Kind() model.Kind { return kindFlaky }

func newFlaky(id string) *flakyObject {
	return &flakyObject{rectObject: *newRect(id, 100, 60, "#00AA00")}
}

type flakyRenderer struct{}

func (flakyRenderer) Draw(dc *gg.Context, res Resolution, obj model.Object) error {
	r := res.ToPixels(obj.Bounds())
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	return dc.Fill()
}

func (flakyRenderer) Fingerprint(Resolution, model.Object) Fingerprint {
	panic("fingerprint boom")
}

// newTestRenderer returns a renderer with a counting renderer for kindRect
// and the default box renderer.
func newTestRenderer(opts ...Option) (*Renderer, *countingRenderer) {
	counter := newCountingRenderer()
	reg := NewRegistry()
	reg.Register(kindRect, counter)
	reg.Register(model.KindBox, BoxRenderer{})
	reg.Register(kindFlaky, flakyRenderer{})
	return New(append([]Option{WithRegistry(reg)}, opts...)...), counter
}

func presentation(w, h float64) *model.Presentation {
	return &model.Presentation{
		Resolution: model.Size{Width: w, Height: h},
		Theme: model.Theme{
			Background: model.Background{Type: model.BackgroundColor, Value: "#FFFFFF"},
		},
	}
}

// gridSlide returns a slide of n rectangles laid out on a grid.
func gridSlide(n int) *model.Slide {
	objects := make([]model.Object, n)
	for i := range n {
		objects[i] = newRect(string(rune('a'+i)), float64(10+(i%5)*20), float64(10+(i/5)*20), "#3366CC")
	}
	return model.NewSlide(objects...)
}

// samePixels reports whether two images have identical pixels.
func samePixels(t *testing.T, a, b image.Image) bool {
	t.Helper()
	if a.Bounds() != b.Bounds() {
		return false
	}
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}
