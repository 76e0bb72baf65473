// Package metrics implements the generic stack metrics of the board engine:
// where each piece of a stack goes and how the stack is painted.
//
// # Layout
//
// A [Layout] turns a stack and an anchor point into [Contents], a set of
// arrays parallel to the stack: one position per piece and, on request, one
// shape and one bounding box per piece. [Base] places the first visible
// piece on the anchor and offsets every following piece from the previous
// one by a [Separation], using the expanded or collapsed values depending on
// the stack's display mode.
//
// # Drawing
//
// A [Compositor] paints a stack onto a surface. [BaseCompositor] is the
// plain engine behavior: a single pass in stack order, covered pieces of a
// collapsed stack drawn as outlines, and the highlighter applied to selected
// pieces as they are reached.
//
// Draw calls are configured with options:
//
//	c.Draw(s, stack, at,
//	    metrics.WithZoom(1.5),
//	    metrics.WithViewport(visible),
//	)
//
// Nothing is cached between calls; every call recomputes from the current
// piece state.
package metrics
