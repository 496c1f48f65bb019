package slide

import (
	"math"

	"github.com/gogpu/slide/model"
)

// resolutionScale is the width multiplier of a resolution ID. It is larger
// than any realistic surface height, so width*resolutionScale+height is
// unique for real surfaces.
const resolutionScale = 8192

// Resolution maps slide-space units to target pixels.
type Resolution struct {
	logical     model.Size
	targetWidth int
}

// NewResolution returns the resolution for rendering a presentation of the
// given logical size into a surface targetWidth pixels wide.
func NewResolution(logical model.Size, targetWidth int) Resolution {
	return Resolution{logical: logical, targetWidth: targetWidth}
}

// Scale returns the number of target pixels per logical unit.
// A zero logical width yields a zero scale.
func (r Resolution) Scale() float64 {
	if r.logical.Width <= 0 {
		return 0
	}
	return float64(r.targetWidth) / r.logical.Width
}

// TargetWidth returns the target width in pixels.
func (r Resolution) TargetWidth() int {
	return r.targetWidth
}

// TargetHeight returns the target height in pixels, keeping the logical
// aspect ratio.
func (r Resolution) TargetHeight() int {
	return int(math.Round(r.logical.Height * r.Scale()))
}

// Logical returns the logical slide size.
func (r Resolution) Logical() model.Size {
	return r.logical
}

// ToPixels converts a slide-space rectangle to pixel space.
func (r Resolution) ToPixels(rect model.Rect) model.Rect {
	s := r.Scale()
	return model.Rect{
		Left:   rect.Left * s,
		Top:    rect.Top * s,
		Right:  rect.Right * s,
		Bottom: rect.Bottom * s,
	}
}

// resolutionID encodes surface dimensions in a single integer so that a
// resolution change can be detected with one comparison.
func resolutionID(width, height int) int64 {
	return int64(width)*resolutionScale + int64(height)
}
