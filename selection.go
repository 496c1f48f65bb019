package slide

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
)

// GuideLines are alignment guides in slide-space coordinates: vertical
// lines at each X and horizontal lines at each Y.
type GuideLines struct {
	X []float64
	Y []float64
}

// SelectionOptions are the transient parts of the selection overlay. They
// are drawn fresh on every call and never cached.
type SelectionOptions struct {
	// Highlight is an object under the pointer. It is outlined unless it is
	// part of the selection.
	Highlight model.Object

	// HighlightAll outlines every text object outside the selection faintly.
	HighlightAll bool

	// Guides, if non-nil, are drawn across the whole target.
	Guides *GuideLines
}

// SelectionStyle controls the appearance of the selection overlay.
type SelectionStyle struct {
	Selection gg.RGBA
	Guides    gg.RGBA
	Shadow    gg.RGBA

	// Dash is the dash pattern of item and highlight outlines.
	Dash      []float64
	LineWidth float64
}

// DefaultSelectionStyle returns the editor's standard overlay style.
func DefaultSelectionStyle() SelectionStyle {
	return SelectionStyle{
		Selection: mustParseColor("#058CD8"),
		Guides:    mustParseColor("#F07427"),
		Shadow:    mustParseColor("#00000020"),
		Dash:      []float64{4, 4},
		LineWidth: 2,
	}
}

// SelectionStats counts composite reuse of a SelectionRenderer.
type SelectionStats struct {
	Hits   uint64
	Misses uint64
}

// SelectionRenderer draws the selection overlay: a dashed outline per
// selected object and a solid outline around their union.
//
// The outlines are rendered once into a composite and reused while the
// selection identity (target size, outer size, member IDs and their
// positions relative to the outer box) is unchanged. Dragging a selection therefore only
// blits the composite at the new origin. Only one selection is cached, the
// one drawn last.
type SelectionRenderer struct {
	style      SelectionStyle
	newSurface SurfaceFactory

	composite *gg.ImageBuf
	identity  Fingerprint
	stats     SelectionStats
}

// NewSelectionRenderer creates a selection renderer with the given style.
func NewSelectionRenderer(style SelectionStyle) *SelectionRenderer {
	return &SelectionRenderer{
		style:      style,
		newSurface: defaultSurface,
	}
}

// pixelRect is a rectangle in whole target pixels.
type pixelRect struct {
	left, top, right, bottom float64
}

func (r pixelRect) width() float64  { return r.right - r.left }
func (r pixelRect) height() float64 { return r.bottom - r.top }

// roundRect scales rect to pixels rounding half away from zero.
func roundRect(res Resolution, rect model.Rect) pixelRect {
	s := res.Scale()
	return pixelRect{
		left:   math.Round(rect.Left * s),
		top:    math.Round(rect.Top * s),
		right:  math.Round(rect.Right * s),
		bottom: math.Round(rect.Bottom * s),
	}
}

// Render draws the overlay for sel onto dc. objects is the full object list
// of the slide, used by HighlightAll.
//
// Guides and the highlight outline are always drawn. An empty selection, or
// one whose outer box has no area, draws nothing further and leaves the
// cached composite untouched.
func (r *SelectionRenderer) Render(dc *gg.Context, res Resolution, sel *model.Selection, objects []model.Object, opts SelectionOptions) {
	dc.Push()
	defer dc.Pop()

	if opts.Guides != nil {
		r.drawGuides(dc, res, opts.Guides)
	}

	if opts.Highlight != nil && (sel == nil || !sel.Contains(opts.Highlight)) {
		dc.SetColor(r.style.Selection.Color())
		dc.SetLineWidth(r.style.LineWidth)
		dc.SetDash(r.style.Dash...)
		hl := roundRect(res, opts.Highlight.Bounds())
		strokeRect(dc, hl.left, hl.top, hl.width(), hl.height())
	}

	if sel == nil || sel.IsEmpty() {
		return
	}
	outer := roundRect(res, sel.Bounds())
	w, h := outer.width(), outer.height()
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return
	}

	if opts.HighlightAll {
		dc.SetColor(r.style.Shadow.Color())
		dc.SetLineWidth(1)
		dc.ClearDash()
		for _, obj := range objects {
			if obj == nil || obj.Kind() != model.KindText || sel.Contains(obj) {
				continue
			}
			b := roundRect(res, obj.Bounds())
			strokeRect(dc, b.left+0.5, b.top+0.5, b.width(), b.height())
		}
	}

	identity := selectionIdentity(res, sel, outer)
	if r.composite == nil || !identity.Equal(r.identity) {
		r.composite = r.buildComposite(res, sel, outer)
		r.identity = identity
		r.stats.Misses++
	} else {
		r.stats.Hits++
	}
	dc.DrawImage(r.composite, outer.left-1, outer.top-1)
}

// buildComposite renders the selection outlines into a surface two pixels
// larger than the outer box, so the 2px outer stroke is not clipped.
func (r *SelectionRenderer) buildComposite(res Resolution, sel *model.Selection, outer pixelRect) *gg.ImageBuf {
	w, h := outer.width(), outer.height()
	surface := r.newSurface(int(w)+2, int(h)+2)
	defer func() { _ = surface.Close() }()

	surface.SetColor(r.style.Selection.Color())
	surface.SetLineWidth(r.style.LineWidth)

	surface.SetDash(r.style.Dash...)
	half := r.style.LineWidth / 2
	for _, item := range sel.Items() {
		b := roundRect(res, item.Bounds())
		strokeRect(surface, b.left-outer.left+half, b.top-outer.top+half, b.width(), b.height())
	}

	surface.ClearDash()
	strokeRect(surface, 1, 1, w, h)

	return gg.ImageBufFromImage(surface.Image())
}

func (r *SelectionRenderer) drawGuides(dc *gg.Context, res Resolution, g *GuideLines) {
	dc.SetColor(r.style.Guides.Color())
	dc.SetLineWidth(1)
	dc.ClearDash()

	s := res.Scale()
	width, height := float64(res.TargetWidth()), float64(res.TargetHeight())
	for _, x := range g.X {
		px := math.Floor(x*s) + 0.5
		dc.DrawLine(px, 0, px, height)
		_ = dc.Stroke()
	}
	for _, y := range g.Y {
		py := math.Floor(y*s) + 0.5
		dc.DrawLine(0, py, width, py)
		_ = dc.Stroke()
	}
}

// selectionIdentity returns the target size and the outer size followed by,
// for each item, its ID and its rounded box relative to the outer box.
func selectionIdentity(res Resolution, sel *model.Selection, outer pixelRect) Fingerprint {
	items := sel.Items()
	fp := make(Fingerprint, 0, 4+5*len(items))
	fp = append(fp, res.TargetWidth(), res.TargetHeight(), outer.width(), outer.height())
	for _, item := range items {
		b := roundRect(res, item.Bounds())
		fp = append(fp, item.ID(), b.left-outer.left, b.top-outer.top, b.width(), b.height())
	}
	return fp
}

// Reset drops the cached composite.
func (r *SelectionRenderer) Reset() {
	r.composite = nil
	r.identity = nil
}

// Stats returns how often the composite was reused.
func (r *SelectionRenderer) Stats() SelectionStats {
	return r.stats
}

func strokeRect(dc *gg.Context, x, y, w, h float64) {
	dc.DrawRectangle(x, y, w, h)
	_ = dc.Stroke()
}
