// Package model holds the read-only document snapshot consumed by the slide
// renderer: presentations, themes, slides, slide objects and the editor
// selection.
//
// The renderer never mutates these values. Callers own them and must not
// modify a slide while a render call that reads it is in progress.
package model
