package slide

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundPainter paints the theme background of a slide.
// It runs before the object layer on every rendered frame.
type BackgroundPainter interface {
	PaintBackground(dc *gg.Context, res Resolution, bg model.Background) error
}

// BackgroundPainterFunc adapts a function to BackgroundPainter.
type BackgroundPainterFunc func(dc *gg.Context, res Resolution, bg model.Background) error

// PaintBackground implements BackgroundPainter.
func (f BackgroundPainterFunc) PaintBackground(dc *gg.Context, res Resolution, bg model.Background) error {
	return f(dc, res, bg)
}

// ImageProvider resolves image references to decoded images.
type ImageProvider interface {
	Image(ref string) (image.Image, error)
}

// defaultBackground is painted for an empty background.
var defaultBackground = gg.White

// gradientSteps is the number of interpolated stops inserted between two
// gradient stops. gg interpolates linearly in sRGB; the extra stops make
// the blend follow CIE Luv instead.
const gradientSteps = 8

// ThemePainter paints color, gradient and image backgrounds.
type ThemePainter struct {
	// Images resolves image backgrounds. Image backgrounds fail without it.
	Images ImageProvider
}

// PaintBackground implements BackgroundPainter.
func (p *ThemePainter) PaintBackground(dc *gg.Context, res Resolution, bg model.Background) error {
	w, h := float64(dc.Width()), float64(dc.Height())

	switch bg.Type {
	case "", model.BackgroundColor:
		c := defaultBackground
		if bg.Value != "" {
			var err error
			if c, err = ParseColor(bg.Value); err != nil {
				return err
			}
		}
		dc.ClearWithColor(c)
		return nil

	case model.BackgroundGradient:
		g, err := ParseGradient(bg.Value)
		if err != nil {
			return err
		}
		dc.ClearWithColor(gg.Transparent)
		dc.SetFillBrush(g.Brush(w, h))
		dc.DrawRectangle(0, 0, w, h)
		return dc.Fill()

	case model.BackgroundImage:
		if p.Images == nil {
			return fmt.Errorf("%w: no image provider for %q", ErrInvalidBackground, bg.Value)
		}
		img, err := p.Images.Image(bg.Value)
		if err != nil {
			return fmt.Errorf("slide: background image: %w", err)
		}
		dc.ClearWithColor(defaultBackground)
		dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
			DstWidth:      w,
			DstHeight:     h,
			Interpolation: gg.InterpBilinear,
		})
		return nil
	}
	return fmt.Errorf("%w: unknown type %q", ErrInvalidBackground, bg.Type)
}

// GradientStop is one color stop of a linear gradient.
type GradientStop struct {
	Offset float64
	Color  gg.RGBA
}

// Gradient is a parsed CSS-like linear gradient.
type Gradient struct {
	// Angle in degrees; 0 points up, 90 points right.
	Angle float64
	Stops []GradientStop
}

// ParseGradient parses a linear gradient body such as
// "135deg, #5EFCE8 10%, #736EFE 100%". The angle defaults to 180deg (top to
// bottom). Stops without a position are spread evenly.
func ParseGradient(s string) (Gradient, error) {
	g := Gradient{Angle: 180}
	parts := strings.Split(s, ",")
	if len(parts) > 0 {
		first := strings.TrimSpace(parts[0])
		if deg, ok := strings.CutSuffix(first, "deg"); ok {
			a, err := strconv.ParseFloat(strings.TrimSpace(deg), 64)
			if err != nil {
				return Gradient{}, fmt.Errorf("%w: gradient angle %q", ErrInvalidBackground, first)
			}
			g.Angle = a
			parts = parts[1:]
		}
	}
	if len(parts) < 2 {
		return Gradient{}, fmt.Errorf("%w: gradient %q needs at least two stops", ErrInvalidBackground, s)
	}

	positioned := make([]bool, len(parts))
	for i, part := range parts {
		fields := strings.Fields(part)
		if len(fields) == 0 || len(fields) > 2 {
			return Gradient{}, fmt.Errorf("%w: gradient stop %q", ErrInvalidBackground, part)
		}
		c, err := ParseColor(fields[0])
		if err != nil {
			return Gradient{}, err
		}
		stop := GradientStop{Color: c}
		if len(fields) == 2 {
			pct, ok := strings.CutSuffix(fields[1], "%")
			v, err := strconv.ParseFloat(pct, 64)
			if !ok || err != nil {
				return Gradient{}, fmt.Errorf("%w: gradient stop position %q", ErrInvalidBackground, fields[1])
			}
			stop.Offset = v / 100
			positioned[i] = true
		}
		g.Stops = append(g.Stops, stop)
	}

	last := len(g.Stops) - 1
	for i := range g.Stops {
		if !positioned[i] {
			g.Stops[i].Offset = float64(i) / float64(last)
		}
	}
	return g, nil
}

// Brush returns a gg brush painting g over a w x h box.
func (g Gradient) Brush(w, h float64) gg.Brush {
	rad := g.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2

	brush := gg.NewLinearGradientBrush(cx-dx*half, cy-dy*half, cx+dx*half, cy+dy*half)
	for i, stop := range g.Stops {
		brush.AddColorStop(stop.Offset, stop.Color)
		if i == len(g.Stops)-1 {
			break
		}
		next := g.Stops[i+1]
		a := colorful.Color{R: stop.Color.R, G: stop.Color.G, B: stop.Color.B}
		b := colorful.Color{R: next.Color.R, G: next.Color.G, B: next.Color.B}
		for step := 1; step < gradientSteps; step++ {
			t := float64(step) / gradientSteps
			c := a.BlendLuv(b, t).Clamped()
			brush.AddColorStop(stop.Offset+(next.Offset-stop.Offset)*t, gg.RGBA{
				R: c.R,
				G: c.G,
				B: c.B,
				A: stop.Color.A + (next.Color.A-stop.Color.A)*t,
			})
		}
	}
	return brush
}
