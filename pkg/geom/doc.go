// Package geom provides the small amount of 2D geometry needed to lay out
// and draw counter stacks: points, axis-aligned rectangles and polygonal
// shapes.
//
// All coordinates use screen orientation: X grows to the right and Y grows
// downward. Values are float64 so that zoomed positions keep their precision
// until a surface rounds them.
package geom
