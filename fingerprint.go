package slide

import "github.com/gogpu/slide/model"

// Fingerprint is an ordered sequence of primitive values (bool, integers,
// float64, string) that fully determines the pixels of one object at one
// resolution. Producers must only append comparable primitives.
//
// An empty Fingerprint is valid: it marks an object without a renderer.
type Fingerprint []any

// Equal reports whether f and other have the same length and are
// element-wise identical. Floats are compared exactly.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// AppendRect appends the pixel-space geometry of rect to f.
func (f Fingerprint) AppendRect(res Resolution, rect model.Rect) Fingerprint {
	px := res.ToPixels(rect)
	return append(f, px.Left, px.Top, px.Right, px.Bottom)
}

// groupEqual reports whether two fingerprint groups are identical,
// stopping at the first mismatch.
func groupEqual(a, b []Fingerprint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
