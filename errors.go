package slide

import (
	"errors"
	"fmt"

	"github.com/gogpu/slide/model"
)

var (
	// ErrNoRenderer is reported for objects whose kind has no registered
	// renderer.
	ErrNoRenderer = errors.New("slide: no renderer for object kind")

	// ErrUnexpectedObject is returned by typed renderers that receive an
	// object of another concrete type than they were registered for.
	ErrUnexpectedObject = errors.New("slide: unexpected object type")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("slide: invalid color")

	// ErrInvalidBackground is returned for malformed theme backgrounds.
	ErrInvalidBackground = errors.New("slide: invalid background")
)

// ObjectError records the failure of one object's draw routine.
type ObjectError struct {
	// Index is the position of the object on its slide.
	Index int
	ID    string
	Kind  model.Kind
	Err   error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("slide: draw object %d (%s %q): %v", e.Index, e.Kind, e.ID, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking draw routine.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func unexpected(obj model.Object) error {
	return fmt.Errorf("%w: %T", ErrUnexpectedObject, obj)
}
