package model

// BackgroundType selects how a theme background is painted.
type BackgroundType string

// Background types.
const (
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
)

// Background describes the slide background of a theme.
//
// Value depends on Type:
//   - color: a hex color such as "#C9DCEB"
//   - gradient: a CSS-like linear gradient body such as
//     "135deg, #5EFCE8 10%, #736EFE 100%"
//   - image: an image reference resolved by the image provider
type Background struct {
	Type  BackgroundType `toml:"type" yaml:"type"`
	Value string         `toml:"value" yaml:"value"`
}

// Theme holds presentation-wide styling.
type Theme struct {
	Background Background `toml:"background" yaml:"background"`
}

// Presentation is a document snapshot.
type Presentation struct {
	// Resolution is the logical slide size. Object geometry is expressed in
	// these units.
	Resolution Size
	Theme      Theme
	Slides     []*Slide
}
