package textobj

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/slide"
	"github.com/gogpu/slide/internal/lru"
	"github.com/gogpu/slide/model"
	"golang.org/x/text/unicode/norm"
)

// DefaultLayoutCacheSize is the soft limit of the line layout cache.
const DefaultLayoutCacheSize = 512

// ErrInvalidStyle is returned for text styles that cannot be drawn.
var ErrInvalidStyle = errors.New("textobj: invalid text style")

// layoutKey identifies one wrapped layout. Face size and box width are in
// pixels, so a resolution change produces new keys.
type layoutKey struct {
	content string
	family  string
	weight  int
	size    float64
	width   float64
}

// Renderer draws *model.Text objects.
type Renderer struct {
	fonts   *FontLibrary
	layouts *lru.Cache[layoutKey, []string]
}

// New creates a text renderer using fonts.
func New(fonts *FontLibrary) *Renderer {
	return &Renderer{
		fonts:   fonts,
		layouts: lru.New[layoutKey, []string](DefaultLayoutCacheSize),
	}
}

// Register installs r in reg for model.KindText.
func Register(reg *slide.Registry, r *Renderer) {
	reg.Register(model.KindText, r)
}

// Fingerprint implements slide.ObjectRenderer. It covers the normalized
// content, every style property, the scale (font metrics depend on the
// pixel size) and the pixel box.
func (r *Renderer) Fingerprint(res slide.Resolution, obj model.Object) slide.Fingerprint {
	t, ok := obj.(*model.Text)
	if !ok {
		return slide.Fingerprint{}
	}
	st := t.Style
	fp := slide.Fingerprint{
		norm.NFC.String(t.Content),
		st.FontFamily,
		st.FontSize,
		st.FontWeight,
		st.Color,
		string(st.Align),
		st.LineHeight,
		res.Scale(),
	}
	return fp.AppendRect(res, t.Rect)
}

// Draw implements slide.ObjectRenderer. Lines are wrapped at word
// boundaries to the box width; lines starting below the box are dropped.
func (r *Renderer) Draw(dc *gg.Context, res slide.Resolution, obj model.Object) error {
	t, ok := obj.(*model.Text)
	if !ok {
		return fmt.Errorf("%w: %T", slide.ErrUnexpectedObject, obj)
	}
	st := t.Style
	if !(st.FontSize > 0) {
		return fmt.Errorf("%w: font size %v", ErrInvalidStyle, st.FontSize)
	}
	if st.LineHeight < 0 {
		return fmt.Errorf("%w: line height %v", ErrInvalidStyle, st.LineHeight)
	}
	col, err := slide.ParseColor(st.Color)
	if err != nil {
		return err
	}
	src, err := r.fonts.Source(st.FontFamily, st.FontWeight)
	if err != nil {
		return err
	}

	box := res.ToPixels(t.Rect)
	size := st.FontSize * res.Scale()
	if size <= 0 || box.Width() <= 0 {
		return nil
	}
	face := src.Face(size)

	content := norm.NFC.String(t.Content)
	lines, err := r.layouts.GetOrCreate(layoutKey{
		content: content,
		family:  familyKey(st.FontFamily),
		weight:  st.FontWeight,
		size:    size,
		width:   box.Width(),
	}, func() ([]string, error) {
		return wrap(content, face, box.Width()), nil
	})
	if err != nil {
		return err
	}

	metrics := face.Metrics()
	lineHeight := metrics.LineHeight()
	if st.LineHeight > 0 {
		lineHeight *= st.LineHeight
	}

	dc.SetFont(face)
	dc.SetColor(col.Color())
	top := box.Top
	for _, line := range lines {
		if top >= box.Bottom {
			break
		}
		if line != "" {
			dc.DrawString(line, alignX(st.Align, box, face.Advance(line)), top+metrics.Ascent)
		}
		top += lineHeight
	}
	return nil
}

func wrap(content string, face text.Face, width float64) []string {
	results := text.WrapText(content, face, width, text.WrapWordChar)
	lines := make([]string, len(results))
	for i, res := range results {
		lines[i] = res.Text
	}
	return lines
}

func alignX(align model.Align, box model.Rect, advance float64) float64 {
	switch align {
	case model.AlignCenter:
		return box.Left + (box.Width()-advance)/2
	case model.AlignRight:
		return box.Right - advance
	default:
		return box.Left
	}
}

// LayoutStats returns statistics of the line layout cache.
func (r *Renderer) LayoutStats() lru.Stats {
	return r.layouts.Stats()
}
