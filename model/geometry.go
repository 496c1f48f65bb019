package model

import "math"

// Size is a width/height pair in slide-space units.
type Size struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Rect is an axis-aligned box in slide-space units.
type Rect struct {
	Left   float64 `toml:"left" yaml:"left"`
	Top    float64 `toml:"top" yaml:"top"`
	Right  float64 `toml:"right" yaml:"right"`
	Bottom float64 `toml:"bottom" yaml:"bottom"`
}

// Width returns Right - Left.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns Bottom - Top.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// emptyRect is the identity element of Union. Its width and height are
// negative infinity.
func emptyRect() Rect {
	return Rect{
		Left:   math.Inf(1),
		Top:    math.Inf(1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(-1),
	}
}
