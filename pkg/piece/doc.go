// Package piece models game pieces (counters) and the ordered stacks they
// sit in.
//
// A [Piece] is opaque to the layout and draw code: it is queried for
// properties, its shape and bounding box, and asked to draw itself. The
// renderers never change piece identity or order.
//
// # Properties
//
// Three property keys drive stack rendering:
//
//   - [InvisibleToMe]: the piece is hidden from the current viewer.
//   - [Selected]: the piece is part of the current UI selection.
//   - [Location]: the piece is a terrain/location marker rather than a unit.
//
// The boolean keys only count when the stored value is exactly the boolean
// true; any other value, including a string "true", is treated as absent.
// Location counts whenever a non-nil value is stored.
package piece
