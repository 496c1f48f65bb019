package model

// Kind discriminates slide object variants. The renderer dispatches on it.
type Kind string

// Known object kinds.
const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindBox   Kind = "box"
)

// Object is a positioned visual element of a slide.
type Object interface {
	// ID returns the editor identifier of the object. It is used for
	// selection bookkeeping only and never affects pixels.
	ID() string

	// Kind returns the variant tag.
	Kind() Kind

	// Bounds returns the object box in slide-space units.
	Bounds() Rect
}

// Base carries the fields shared by every object variant.
type Base struct {
	ObjectID string `toml:"id" yaml:"id"`
	Rect
}

// ID implements Object.
func (b *Base) ID() string { return b.ObjectID }

// Bounds implements Object.
func (b *Base) Bounds() Rect { return b.Rect }

// Align is the horizontal alignment of text lines inside their box.
type Align string

// Text alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextStyle is the computed style of a text object.
type TextStyle struct {
	FontFamily string  `toml:"font_family" yaml:"font_family"`
	FontSize   float64 `toml:"font_size" yaml:"font_size"`
	FontWeight int     `toml:"font_weight" yaml:"font_weight"`
	Color      string  `toml:"color" yaml:"color"`
	Align      Align   `toml:"align" yaml:"align"`

	// LineHeight multiplies the natural line height of the font.
	// Zero means 1.
	LineHeight float64 `toml:"line_height" yaml:"line_height"`
}

// Text is a box of wrapped text.
type Text struct {
	Base
	Content string
	Style   TextStyle
}

// Kind implements Object.
func (*Text) Kind() Kind { return KindText }

// Fit controls how an image is scaled into its box.
type Fit string

// Image fits.
const (
	FitFill    Fit = "fill"
	FitContain Fit = "contain"
	FitCover   Fit = "cover"
	FitNone    Fit = "none"
)

// Image is a raster image placed in a box.
type Image struct {
	Base

	// Source is a reference resolved by the image loader, usually a path.
	Source string

	// Crop selects the visible part of the source image as fractions of its
	// size. The zero value means the whole image.
	Crop Rect

	Fit Fit

	// Opacity in [0, 1]. Zero means fully opaque.
	Opacity float64
}

// Kind implements Object.
func (*Image) Kind() Kind { return KindImage }

// Box is a background-only object: a filled, optionally rounded rectangle.
type Box struct {
	Base
	Fill         string
	CornerRadius float64
}

// Kind implements Object.
func (*Box) Kind() Kind { return KindBox }
