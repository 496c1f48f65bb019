// Package deck loads presentations from TOML or YAML deck files.
//
// A deck describes the logical slide size, the theme background and the
// slides with their objects in paint order:
//
//	[resolution]
//	width = 1280
//	height = 720
//
//	[theme.background]
//	type = "gradient"
//	value = "135deg, #5EFCE8 10%, #736EFE 100%"
//
//	[[slides]]
//	[[slides.objects]]
//	kind = "text"
//	id = "title"
//	rect = { left = 80, top = 60, right = 1200, bottom = 160 }
//	content = "Incremental rendering"
//	style = { font_size = 56, font_weight = 700, color = "#1B1B1B" }
//
// YAML decks use the same keys.
package deck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/slide/model"
	"gopkg.in/yaml.v3"
)

// Format is a deck file syntax.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

var (
	// ErrUnknownFormat is returned for file extensions or formats that are
	// not TOML or YAML.
	ErrUnknownFormat = errors.New("deck: unknown format")

	// ErrInvalidDeck is returned for decks that decode but describe no
	// renderable presentation.
	ErrInvalidDeck = errors.New("deck: invalid deck")
)

type document struct {
	Resolution model.Size  `toml:"resolution" yaml:"resolution"`
	Theme      model.Theme `toml:"theme" yaml:"theme"`
	Slides     []slideDoc  `toml:"slides" yaml:"slides"`
}

type slideDoc struct {
	Objects []objectDoc `toml:"objects" yaml:"objects"`
}

// objectDoc is the union of all object variants; Kind selects which
// fields apply.
type objectDoc struct {
	Kind model.Kind `toml:"kind" yaml:"kind"`
	ID   string     `toml:"id" yaml:"id"`
	Rect model.Rect `toml:"rect" yaml:"rect"`

	// text
	Content string          `toml:"content" yaml:"content"`
	Style   model.TextStyle `toml:"style" yaml:"style"`

	// image
	Source  string     `toml:"source" yaml:"source"`
	Crop    model.Rect `toml:"crop" yaml:"crop"`
	Fit     model.Fit  `toml:"fit" yaml:"fit"`
	Opacity float64    `toml:"opacity" yaml:"opacity"`

	// box
	Fill         string  `toml:"fill" yaml:"fill"`
	CornerRadius float64 `toml:"corner_radius" yaml:"corner_radius"`
}

// FormatOf returns the format of a deck file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads and parses the deck file at path.
func Load(path string) (*model.Presentation, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a deck. Unknown keys are rejected.
func Parse(data []byte, format Format) (*model.Presentation, error) {
	var doc document
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidDeck, undecoded[0].String())
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return doc.presentation()
}

func (doc *document) presentation() (*model.Presentation, error) {
	if !(doc.Resolution.Width > 0) || !(doc.Resolution.Height > 0) {
		return nil, fmt.Errorf("%w: resolution %vx%v", ErrInvalidDeck, doc.Resolution.Width, doc.Resolution.Height)
	}
	p := &model.Presentation{
		Resolution: doc.Resolution,
		Theme:      doc.Theme,
		Slides:     make([]*model.Slide, 0, len(doc.Slides)),
	}
	for i, sd := range doc.Slides {
		objects := make([]model.Object, 0, len(sd.Objects))
		for j, od := range sd.Objects {
			obj, err := od.object()
			if err != nil {
				return nil, fmt.Errorf("slide %d object %d: %w", i, j, err)
			}
			objects = append(objects, obj)
		}
		p.Slides = append(p.Slides, model.NewSlide(objects...))
	}
	return p, nil
}

func (od *objectDoc) object() (model.Object, error) {
	base := model.Base{ObjectID: od.ID, Rect: od.Rect}
	switch od.Kind {
	case model.KindText:
		return &model.Text{Base: base, Content: od.Content, Style: od.Style}, nil
	case model.KindImage:
		return &model.Image{Base: base, Source: od.Source, Crop: od.Crop, Fit: od.Fit, Opacity: od.Opacity}, nil
	case model.KindBox:
		return &model.Box{Base: base, Fill: od.Fill, CornerRadius: od.CornerRadius}, nil
	}
	return nil, fmt.Errorf("%w: unknown object kind %q", ErrInvalidDeck, od.Kind)
}

// Refresh moves the content of a reloaded presentation src into dst.
// Slides present in both keep their dst handle and receive the objects of
// src, so a renderer only redraws tiles whose fingerprints changed. Extra
// src slides are appended. The handles of dst slides beyond the length of
// src are returned so their caches can be released.
func Refresh(dst, src *model.Presentation) (removed []model.SlideID) {
	dst.Resolution = src.Resolution
	dst.Theme = src.Theme

	for i, s := range src.Slides {
		if i < len(dst.Slides) {
			dst.Slides[i].Objects = s.Objects
			continue
		}
		dst.Slides = append(dst.Slides, s)
	}
	for _, s := range dst.Slides[len(src.Slides):] {
		removed = append(removed, s.ID())
	}
	dst.Slides = dst.Slides[:len(src.Slides)]
	return removed
}

// Select returns a selection of the objects of s with the given IDs, in
// the order the IDs are given. Unknown IDs are ignored.
func Select(s *model.Slide, ids ...string) *model.Selection {
	sel := model.NewSelection()
	for _, id := range ids {
		for _, obj := range s.Objects {
			if obj != nil && obj.ID() == id {
				sel.Add(obj)
				break
			}
		}
	}
	return sel
}
