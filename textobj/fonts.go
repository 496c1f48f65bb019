package textobj

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"
)

// DefaultFamily is the family the Go fonts are registered under. It is the
// fallback for unknown families.
const DefaultFamily = "Go"

// Font weights.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// ErrUnknownFamily is returned by Source when neither the requested family
// nor the fallback family is registered.
var ErrUnknownFamily = errors.New("textobj: unknown font family")

// FontLibrary maps font families and weights to font sources.
// FontLibrary is safe for concurrent use.
type FontLibrary struct {
	mu       sync.RWMutex
	families map[string]map[int]*text.FontSource
	fallback string
}

// NewFontLibrary creates a library with the Go fonts registered as
// DefaultFamily in normal and bold weight.
func NewFontLibrary() (*FontLibrary, error) {
	l := &FontLibrary{
		families: make(map[string]map[int]*text.FontSource),
		fallback: familyKey(DefaultFamily),
	}

	if err := l.Register(DefaultFamily, WeightNormal, goregular.TTF); err != nil {
		return nil, err
	}
	if err := l.Register(DefaultFamily, WeightBold, gobold.TTF); err != nil {
		return nil, err
	}
	return l, nil
}

// familyKey case-folds a family name. A Caser is stateful, so each call
// gets its own.
func familyKey(family string) string {
	return cases.Fold().String(family)
}

// Register parses TTF/OTF data and makes it available as family at weight.
// Family names are matched case-insensitively.
func (l *FontLibrary) Register(family string, weight int, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("textobj: register %s %d: %w", family, weight, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	k := familyKey(family)
	if l.families[k] == nil {
		l.families[k] = make(map[int]*text.FontSource)
	}
	l.families[k][weight] = src
	return nil
}

// Source returns the source of family closest to weight. Unknown families
// fall back to DefaultFamily.
func (l *FontLibrary) Source(family string, weight int) (*text.FontSource, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	weights, ok := l.families[familyKey(family)]
	if !ok {
		weights, ok = l.families[l.fallback]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownFamily, family)
		}
	}
	if weight <= 0 {
		weight = WeightNormal
	}

	var best *text.FontSource
	bestDist := 0
	for w, src := range weights {
		d := abs(w - weight)
		// Ties go to the heavier weight so the choice is deterministic.
		if best == nil || d < bestDist || (d == bestDist && w > weight) {
			best, bestDist = src, d
		}
	}
	return best, nil
}

// Families returns the number of registered families.
func (l *FontLibrary) Families() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.families)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
