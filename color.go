package slide

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a hex color: "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
// Unlike gg.Hex it reports malformed input instead of returning black.
func ParseColor(s string) (gg.RGBA, error) {
	orig := s
	s = strings.TrimSpace(s)

	alpha := 1.0
	if strings.HasPrefix(s, "#") && (len(s) == 5 || len(s) == 9) {
		n := (len(s) - 1) / 4
		a, err := strconv.ParseUint(s[len(s)-n:], 16, 8)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, orig)
		}
		if n == 1 {
			a *= 17
		}
		alpha = float64(a) / 255
		s = s[:len(s)-n]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("%w %q", ErrInvalidColor, orig)
	}
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// mustParseColor is ParseColor for package constants.
func mustParseColor(s string) gg.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
