package slide

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/slide/model"
)

// ObjectRenderer draws one object variant and produces its fingerprint.
//
// Draw paints obj onto dc using res to convert slide-space geometry to
// pixels. It may return an error or panic; either is isolated to the object.
//
// Fingerprint must be deterministic: the same object state at the same
// resolution yields an identical fingerprint on every call. It must include
// every input that affects the pixels of the object and nothing else.
type ObjectRenderer interface {
	Draw(dc *gg.Context, res Resolution, obj model.Object) error
	Fingerprint(res Resolution, obj model.Object) Fingerprint
}

// Registry maps object kinds to their renderers.
//
// A Registry is populated once at startup and read every frame; it is not
// safe to Register concurrently with rendering.
type Registry struct {
	renderers map[model.Kind]ObjectRenderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[model.Kind]ObjectRenderer)}
}

// Register installs r for kind, replacing any previous renderer.
func (reg *Registry) Register(kind model.Kind, r ObjectRenderer) {
	reg.renderers[kind] = r
}

// Lookup returns the renderer registered for kind.
func (reg *Registry) Lookup(kind model.Kind) (ObjectRenderer, bool) {
	r, ok := reg.renderers[kind]
	return r, ok
}

// Dispatch returns the renderer for obj, or an error wrapping ErrNoRenderer.
func (reg *Registry) Dispatch(obj model.Object) (ObjectRenderer, error) {
	if r, ok := reg.renderers[obj.Kind()]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w %q", ErrNoRenderer, obj.Kind())
}

// Kinds returns the number of registered kinds.
func (reg *Registry) Kinds() int {
	return len(reg.renderers)
}

// fingerprint returns the fingerprint of obj, or an empty one when its kind
// has no renderer. A panicking producer yields an empty fingerprint and a
// *PanicError.
func (reg *Registry) fingerprint(res Resolution, obj model.Object) (fp Fingerprint, err error) {
	r, ok := reg.renderers[obj.Kind()]
	if !ok {
		return Fingerprint{}, nil
	}
	defer func() {
		if v := recover(); v != nil {
			fp, err = Fingerprint{}, &PanicError{Value: v}
		}
	}()
	if fp = r.Fingerprint(res, obj); fp == nil {
		fp = Fingerprint{}
	}
	return fp, nil
}

// RegisterFunc registers a typed draw/fingerprint pair for kind.
// Objects of kind whose concrete type is not T fail to draw with
// ErrUnexpectedObject and get an empty fingerprint.
//
// Example:
//
//	slide.RegisterFunc(reg, model.KindBox, drawBox, boxFingerprint)
func RegisterFunc[T model.Object](
	reg *Registry,
	kind model.Kind,
	draw func(dc *gg.Context, res Resolution, obj T) error,
	fingerprint func(res Resolution, obj T) Fingerprint,
) {
	reg.Register(kind, funcRenderer[T]{draw: draw, fingerprint: fingerprint})
}

type funcRenderer[T model.Object] struct {
	draw        func(dc *gg.Context, res Resolution, obj T) error
	fingerprint func(res Resolution, obj T) Fingerprint
}

func (f funcRenderer[T]) Draw(dc *gg.Context, res Resolution, obj model.Object) error {
	o, ok := obj.(T)
	if !ok {
		return unexpected(obj)
	}
	return f.draw(dc, res, o)
}

func (f funcRenderer[T]) Fingerprint(res Resolution, obj model.Object) Fingerprint {
	o, ok := obj.(T)
	if !ok {
		return Fingerprint{}
	}
	return f.fingerprint(res, o)
}
