package slide

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
)

// BoxRenderer draws background-only boxes.
type BoxRenderer struct{}

// Draw implements ObjectRenderer.
func (BoxRenderer) Draw(dc *gg.Context, res Resolution, obj model.Object) error {
	box, ok := obj.(*model.Box)
	if !ok {
		return unexpected(obj)
	}
	fill, err := ParseColor(box.Fill)
	if err != nil {
		return err
	}
	r := res.ToPixels(box.Rect)
	dc.SetColor(fill.Color())
	if radius := box.CornerRadius * res.Scale(); radius > 0 {
		dc.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), radius)
	} else {
		dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	}
	return dc.Fill()
}

// Fingerprint implements ObjectRenderer.
func (BoxRenderer) Fingerprint(res Resolution, obj model.Object) Fingerprint {
	box, ok := obj.(*model.Box)
	if !ok {
		return Fingerprint{}
	}
	fp := Fingerprint{box.Fill, box.CornerRadius * res.Scale()}
	return fp.AppendRect(res, box.Rect)
}
