// Package surface defines the drawing target that pieces and highlighters
// paint onto, together with three implementations:
//
//   - [SVG]: writes an SVG document into a buffer.
//   - [Raster]: paints into an in-memory RGBA image that can be encoded as PNG.
//   - [Recorder]: records every call, used by tests and the interactive inspector.
//
// A surface is owned by the caller for the duration of a single draw call.
// Renderers never retain a surface after returning.
//
// # Groups
//
// Surfaces that also implement [Grouper] receive begin/end markers around
// each piece and each highlight. [Group] is a no-op wrapper for surfaces that
// do not care, so renderers can call it unconditionally:
//
//	surface.Group(s, p.ID(), surface.ClassPiece, func() {
//	    p.Draw(s, at, zoom)
//	})
package surface
