package textobj

import (
	"errors"
	"testing"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goitalic"
)

func newLibrary(t *testing.T) *FontLibrary {
	t.Helper()
	l, err := NewFontLibrary()
	if err != nil {
		t.Fatalf("NewFontLibrary: %v", err)
	}
	return l
}

func TestFontLibraryDefaults(t *testing.T) {
	l := newLibrary(t)
	if l.Families() != 1 {
		t.Errorf("Families() = %d, want 1", l.Families())
	}

	regular, err := l.Source(DefaultFamily, WeightNormal)
	if err != nil {
		t.Fatalf("Source(regular): %v", err)
	}
	bold, err := l.Source(DefaultFamily, WeightBold)
	if err != nil {
		t.Fatalf("Source(bold): %v", err)
	}
	if regular == bold {
		t.Error("regular and bold should be different sources")
	}
}

func TestFontLibraryNearestWeight(t *testing.T) {
	l := newLibrary(t)
	bold, _ := l.Source(DefaultFamily, WeightBold)
	regular, _ := l.Source(DefaultFamily, WeightNormal)

	tests := []struct {
		weight int
		want   *text.FontSource
	}{
		{0, regular},
		{300, regular},
		{550, bold},
		{900, bold},
	}
	for _, tt := range tests {
		got, err := l.Source(DefaultFamily, tt.weight)
		if err != nil {
			t.Fatalf("Source(%d): %v", tt.weight, err)
		}
		if got != tt.want {
			t.Errorf("Source(%d) picked the wrong weight", tt.weight)
		}
	}
}

func TestFontLibraryFallbackAndCase(t *testing.T) {
	l := newLibrary(t)
	regular, _ := l.Source(DefaultFamily, WeightNormal)

	got, err := l.Source("No Such Family", WeightNormal)
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if got != regular {
		t.Error("unknown family should fall back to the default family")
	}

	if err := l.Register("Go Italic", WeightNormal, goitalic.TTF); err != nil {
		t.Fatalf("Register: %v", err)
	}
	italic, err := l.Source("GO ITALIC", WeightNormal)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if italic == regular {
		t.Error("family lookup should be case-insensitive")
	}
}

func TestFontLibraryRegisterInvalid(t *testing.T) {
	l := newLibrary(t)
	if err := l.Register("Broken", WeightNormal, nil); err == nil {
		t.Error("Register with empty data should fail")
	}
}

func TestFontLibraryNoFallback(t *testing.T) {
	l := &FontLibrary{families: map[string]map[int]*text.FontSource{}, fallback: familyKey(DefaultFamily)}
	if _, err := l.Source("x", WeightNormal); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("err = %v, want ErrUnknownFamily", err)
	}
}
