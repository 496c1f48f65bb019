package slide

import (
	"fmt"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
)

// FrameListener is notified with the finished target surface after a slide
// has been rendered.
type FrameListener func(dc *gg.Context)

// ListenerID identifies a registered FrameListener.
type ListenerID uint64

type frameListener struct {
	id ListenerID
	fn FrameListener
}

// Renderer renders slides frame by frame, reusing unchanged tiles of the
// previous frame of each slide.
//
// A Renderer is not safe for concurrent use and must not be re-entered for
// the same slide from a frame listener.
type Renderer struct {
	registry       *Registry
	background     BackgroundPainter
	tiles          *TileCache
	minTargetWidth int

	listeners    map[model.SlideID][]frameListener
	lastListener ListenerID
}

// New creates a Renderer.
//
// Without WithRegistry the renderer uses a registry that only knows
// model.KindBox; text and image renderers are registered by the textobj and
// imageobj packages.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	reg := o.registry
	if reg == nil {
		reg = NewRegistry()
		reg.Register(model.KindBox, BoxRenderer{})
	}
	bg := o.background
	if bg == nil {
		bg = &ThemePainter{}
	}

	return &Renderer{
		registry:       reg,
		background:     bg,
		tiles:          NewTileCache(reg, o.newSurface),
		minTargetWidth: o.minTargetWidth,
		listeners:      make(map[model.SlideID][]frameListener),
	}
}

// Render paints slide s of presentation p onto dc.
//
// The resolution is derived from the logical size of p and the width of dc.
// Targets narrower than the minimum width are skipped: nothing is drawn,
// cached or notified.
//
// A background failure is returned immediately. Object failures are
// isolated: the rest of the frame paints, frame listeners are notified, and
// then requestRerender (if non-nil) is called once, the stored fingerprints
// of s are dropped so the next frame redraws every tile, and the joined
// object errors are returned.
func (r *Renderer) Render(dc *gg.Context, p *model.Presentation, s *model.Slide, requestRerender func()) error {
	if dc.Width() < r.minTargetWidth {
		return nil
	}
	res := NewResolution(p.Resolution, dc.Width())

	if err := r.background.PaintBackground(dc, res, p.Theme.Background); err != nil {
		return fmt.Errorf("slide: paint background: %w", err)
	}

	stats, err := r.tiles.Paint(dc, res, s)
	Logger().Debug("slide: frame",
		"slide", s.ID(),
		"objects", stats.Objects,
		"tileSize", stats.TileSize,
		"hits", stats.Hits,
		"misses", stats.Misses)

	r.notify(s.ID(), dc)

	if err != nil {
		r.tiles.ResetIdentity(s.ID())
		Logger().Warn("slide: frame rendered with object errors", "slide", s.ID(), "err", err)
		if requestRerender != nil {
			requestRerender()
		}
		return err
	}
	return nil
}

// notify calls the frame listeners of a slide in registration order.
func (r *Renderer) notify(id model.SlideID, dc *gg.Context) {
	ls := r.listeners[id]
	if len(ls) == 0 {
		return
	}
	// Listeners may remove themselves while being notified.
	for _, l := range slices.Clone(ls) {
		l.fn(dc)
	}
}

// AddFrameListener registers fn to be called after every completed frame
// of the slide with handle id.
func (r *Renderer) AddFrameListener(id model.SlideID, fn FrameListener) ListenerID {
	r.lastListener++
	lid := r.lastListener
	r.listeners[id] = append(r.listeners[id], frameListener{id: lid, fn: fn})
	return lid
}

// RemoveFrameListener unregisters a listener. Removing the last listener of
// a slide releases its listener set.
func (r *Renderer) RemoveFrameListener(id model.SlideID, lid ListenerID) {
	ls, ok := r.listeners[id]
	if !ok {
		return
	}
	ls = slices.DeleteFunc(ls, func(l frameListener) bool { return l.id == lid })
	if len(ls) == 0 {
		delete(r.listeners, id)
		return
	}
	r.listeners[id] = ls
}

// Forget drops all cached tiles of a slide, e.g. after it was deleted.
func (r *Renderer) Forget(id model.SlideID) {
	r.tiles.Forget(id)
}

// Tiles returns the tile cache of the renderer.
func (r *Renderer) Tiles() *TileCache {
	return r.tiles
}

// Registry returns the object renderer registry.
func (r *Renderer) Registry() *Registry {
	return r.registry
}
