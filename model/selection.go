package model

// Selection is the ordered set of objects selected in the editor.
type Selection struct {
	items []Object
}

// NewSelection creates a selection of the given objects in order.
func NewSelection(items ...Object) *Selection {
	s := &Selection{}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends an object to the selection. Objects already selected are
// ignored.
func (s *Selection) Add(obj Object) {
	if obj == nil || s.Contains(obj) {
		return
	}
	s.items = append(s.items, obj)
}

// Items returns the selected objects in selection order.
func (s *Selection) Items() []Object {
	return s.items
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	return len(s.items) == 0
}

// Contains reports whether obj is part of the selection.
func (s *Selection) Contains(obj Object) bool {
	for _, item := range s.items {
		if item == obj {
			return true
		}
	}
	return false
}

// Bounds returns the union bounding box of the selected objects as they are
// now. For an empty selection the box has negative infinite width and height.
func (s *Selection) Bounds() Rect {
	r := emptyRect()
	for _, item := range s.items {
		r = r.Union(item.Bounds())
	}
	return r
}
