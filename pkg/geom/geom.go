package geom

import "math"

// Point is a location in a 2D coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point              { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point              { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point            { return Point{p.X * k, p.Y * k} }
func (p Point) Translate(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// ScaleAbout scales p away from anchor by zoom: anchor + zoom*(p-anchor).
func ScaleAbout(p, anchor Point, zoom float64) Point {
	return anchor.Add(p.Sub(anchor).Mul(zoom))
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Offset returns r moved by d.
func (r Rect) Offset(d Point) Rect { return r.Translate(d.X, d.Y) }

// Intersects reports whether r and o share interior area. Empty rectangles
// never intersect anything, and rectangles that only touch along an edge do
// not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether p lies inside r. The top and left edges are
// inclusive, the bottom and right edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest rectangle containing both r and o.
// An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.X+r.W, o.X+o.W)
	y1 := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Scale returns r scaled away from anchor by zoom.
func (r Rect) Scale(anchor Point, zoom float64) Rect {
	p := ScaleAbout(r.Min(), anchor, zoom)
	return Rect{p.X, p.Y, r.W * zoom, r.H * zoom}
}
