package model

import "sync/atomic"

// SlideID is an opaque handle identifying a slide for the lifetime of the
// process. Two slides never share an ID, so replacing a slide with a new one
// always yields a new handle.
type SlideID uint64

var lastSlideID atomic.Uint64

// Slide is an ordered sequence of objects. The order is the paint order:
// later objects paint over earlier ones.
type Slide struct {
	id      SlideID
	Objects []Object
}

// NewSlide creates a slide with a fresh handle.
func NewSlide(objects ...Object) *Slide {
	return &Slide{
		id:      SlideID(lastSlideID.Add(1)),
		Objects: objects,
	}
}

// ID returns the slide handle.
func (s *Slide) ID() SlideID {
	return s.id
}

// Len returns the number of objects on the slide.
func (s *Slide) Len() int {
	return len(s.Objects)
}
