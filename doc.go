// Package slide renders presentation slides onto gg raster surfaces at any
// target resolution, redrawing only what changed between frames.
//
// # Overview
//
// A [Renderer] is the per-frame entry point. Each call to [Renderer.Render]
// paints the theme background, then asks its tile cache to produce the object
// layer. Objects are grouped in paint order into tiles of round(sqrt(n))
// objects; each tile is kept as an off-screen surface together with the
// fingerprints of its objects. A tile whose fingerprints did not change is
// blitted instead of redrawn.
//
//	r := slide.New(slide.WithRegistry(reg))
//	dc := gg.NewContext(1280, 720)
//	if err := r.Render(dc, presentation, s, scheduleFrame); err != nil {
//	    // a slide object failed to draw; the rest of the frame is intact
//	    // and scheduleFrame was called once
//	}
//
// # Object renderers
//
// Each object variant is drawn by an [ObjectRenderer] registered in a
// [Registry] under its [model.Kind]. The renderer also produces a
// [Fingerprint]: the ordered primitive values that fully determine the pixels
// of the object at a given [Resolution]. Text and image renderers live in the
// textobj and imageobj packages; [BoxRenderer] draws background-only boxes.
//
// # Failures
//
// A failing object (an error or a panic in its draw routine) never aborts the
// frame. Sibling objects and other tiles still paint, frame listeners still
// fire, and the aggregated error is returned afterwards. Background failures
// are returned immediately.
//
// # Concurrency
//
// A Renderer is not safe for concurrent use. The whole render path runs
// synchronously on the caller's goroutine; callers own frame cadence.
//
// # Selection overlay
//
// [SelectionRenderer] draws the editor selection outlines with its own
// single-entry cache, so dragging a selection only blits.
package slide
