package geom

import "math"

// Shape is a closed polygon. The last vertex connects back to the first.
type Shape []Point

// RectShape returns the four-corner polygon of r, clockwise from the top-left.
func RectShape(r Rect) Shape {
	return Shape{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Translate returns a copy of s with every vertex moved by d.
// The receiver is not modified.
func (s Shape) Translate(d Point) Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for i, p := range s {
		out[i] = p.Add(d)
	}
	return out
}

// Bounds returns the smallest rectangle enclosing every vertex.
func (s Shape) Bounds() Rect {
	if len(s) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range s {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Contains reports whether p lies inside the polygon using the even-odd rule.
func (s Shape) Contains(p Point) bool {
	in := false
	for i, j := 0, len(s)-1; i < len(s); j, i = i, i+1 {
		a, b := s[i], s[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
