package deck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/slide/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlDeck = `
[resolution]
width = 1280
height = 720

[theme.background]
type = "gradient"
value = "135deg, #5EFCE8 10%, #736EFE 100%"

[[slides]]
[[slides.objects]]
kind = "box"
id = "panel"
rect = { left = 40, top = 40, right = 1240, bottom = 680 }
fill = "#FFFFFFCC"
corner_radius = 12

[[slides.objects]]
kind = "text"
id = "title"
rect = { left = 80, top = 60, right = 1200, bottom = 160 }
content = "Incremental rendering"
style = { font_family = "Go", font_size = 56, font_weight = 700, color = "#1B1B1B", align = "center" }

[[slides]]
[[slides.objects]]
kind = "image"
id = "photo"
rect = { left = 0, top = 0, right = 640, bottom = 720 }
source = "photo.png"
crop = { left = 0.1, top = 0, right = 0.9, bottom = 1 }
fit = "cover"
opacity = 0.75
`

const yamlDeck = `
resolution: {width: 1280, height: 720}
theme:
  background: {type: color, value: "#C9DCEB"}
slides:
  - objects:
      - kind: text
        id: title
        rect: {left: 80, top: 60, right: 1200, bottom: 160}
        content: Hello
        style: {font_size: 40, color: "#000"}
  - objects: []
`

func TestParseTOML(t *testing.T) {
	p, err := Parse([]byte(tomlDeck), TOML)
	require.NoError(t, err)

	assert.Equal(t, model.Size{Width: 1280, Height: 720}, p.Resolution)
	assert.Equal(t, model.BackgroundGradient, p.Theme.Background.Type)
	require.Len(t, p.Slides, 2)
	require.Len(t, p.Slides[0].Objects, 2)

	box, ok := p.Slides[0].Objects[0].(*model.Box)
	require.True(t, ok)
	assert.Equal(t, "panel", box.ID())
	assert.Equal(t, 12.0, box.CornerRadius)
	assert.Equal(t, model.Rect{Left: 40, Top: 40, Right: 1240, Bottom: 680}, box.Bounds())

	text, ok := p.Slides[0].Objects[1].(*model.Text)
	require.True(t, ok)
	assert.Equal(t, "Incremental rendering", text.Content)
	assert.Equal(t, 700, text.Style.FontWeight)
	assert.Equal(t, model.AlignCenter, text.Style.Align)

	img, ok := p.Slides[1].Objects[0].(*model.Image)
	require.True(t, ok)
	assert.Equal(t, "photo.png", img.Source)
	assert.Equal(t, model.FitCover, img.Fit)
	assert.InDelta(t, 0.9, img.Crop.Right, 1e-9)
	assert.InDelta(t, 0.75, img.Opacity, 1e-9)

	assert.NotEqual(t, p.Slides[0].ID(), p.Slides[1].ID())
}

func TestParseYAML(t *testing.T) {
	p, err := Parse([]byte(yamlDeck), YAML)
	require.NoError(t, err)

	assert.Equal(t, model.Background{Type: model.BackgroundColor, Value: "#C9DCEB"}, p.Theme.Background)
	require.Len(t, p.Slides, 2)
	assert.Empty(t, p.Slides[1].Objects)

	text, ok := p.Slides[0].Objects[0].(*model.Text)
	require.True(t, ok)
	assert.Equal(t, 40.0, text.Style.FontSize)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		target error
	}{
		{"unknown format", "", "json", ErrUnknownFormat},
		{"missing resolution", "[[slides]]", TOML, ErrInvalidDeck},
		{"empty yaml", "", YAML, ErrInvalidDeck},
		{"unknown kind", "[resolution]\nwidth = 1\nheight = 1\n[[slides]]\n[[slides.objects]]\nkind = \"video\"", TOML, ErrInvalidDeck},
		{"unknown toml key", "[resolution]\nwidth = 1\nheight = 1\ncolour = \"red\"", TOML, ErrInvalidDeck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := Parse([]byte("resolution: {width: 1, height: 1}\nextra: true\n"), YAML)
	assert.Error(t, err, "unknown YAML keys should be rejected")

	_, err = Parse([]byte("[resolution\n"), TOML)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "talk.toml")
	yamlPath := filepath.Join(dir, "talk.YML")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlDeck), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDeck), 0o600))

	p, err := Load(tomlPath)
	require.NoError(t, err)
	assert.Len(t, p.Slides, 2)

	p, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, p.Slides, 2)

	_, err = Load(filepath.Join(dir, "talk.json"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRefreshKeepsHandles(t *testing.T) {
	dst, err := Parse([]byte(tomlDeck), TOML)
	require.NoError(t, err)
	ids := []model.SlideID{dst.Slides[0].ID(), dst.Slides[1].ID()}

	src, err := Parse([]byte(yamlDeck), YAML)
	require.NoError(t, err)

	removed := Refresh(dst, src)
	assert.Empty(t, removed)
	require.Len(t, dst.Slides, 2)
	assert.Equal(t, ids[0], dst.Slides[0].ID())
	assert.Equal(t, ids[1], dst.Slides[1].ID())
	assert.Same(t, src.Slides[0].Objects[0], dst.Slides[0].Objects[0])
	assert.Equal(t, src.Theme, dst.Theme)
}

func TestRefreshGrowAndShrink(t *testing.T) {
	one := &model.Presentation{Slides: []*model.Slide{model.NewSlide()}}
	three := &model.Presentation{Slides: []*model.Slide{model.NewSlide(), model.NewSlide(), model.NewSlide()}}

	dst := &model.Presentation{Slides: []*model.Slide{one.Slides[0]}}
	first := dst.Slides[0].ID()

	assert.Empty(t, Refresh(dst, three))
	require.Len(t, dst.Slides, 3)
	assert.Equal(t, first, dst.Slides[0].ID())

	gone := []model.SlideID{dst.Slides[1].ID(), dst.Slides[2].ID()}
	assert.Equal(t, gone, Refresh(dst, one))
	assert.Len(t, dst.Slides, 1)
	assert.Equal(t, first, dst.Slides[0].ID())
}

func TestSelect(t *testing.T) {
	p, err := Parse([]byte(tomlDeck), TOML)
	require.NoError(t, err)

	sel := Select(p.Slides[0], "title", "missing", "panel", "title")
	items := sel.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "title", items[0].ID())
	assert.Equal(t, "panel", items[1].ID())
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{"a.toml": TOML, "b.yaml": YAML, "c.yml": YAML, "D.TOML": TOML} {
		got, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("deck")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
