package metrics

import (
	"fmt"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
)

// Default separations, in map pixels.
const (
	DefaultExpandedX  = 6
	DefaultExpandedY  = 18
	DefaultCollapsedX = 2
	DefaultCollapsedY = 4
)

// Separation is the offset between consecutive pieces. A positive X lines up
// left edges and shifts right, a negative X lines up right edges and shifts
// left. A positive Y lines up bottom edges and shifts up, a negative Y lines
// up top edges and shifts down. Zero keeps the previous coordinate.
type Separation struct {
	ExpandedX, ExpandedY   float64
	CollapsedX, CollapsedY float64
}

// DefaultSeparation returns the engine defaults.
func DefaultSeparation() Separation {
	return Separation{
		ExpandedX:  DefaultExpandedX,
		ExpandedY:  DefaultExpandedY,
		CollapsedX: DefaultCollapsedX,
		CollapsedY: DefaultCollapsedY,
	}
}

// For returns the offsets for the given display mode.
func (s Separation) For(expanded bool) (dx, dy float64) {
	if expanded {
		return s.ExpandedX, s.ExpandedY
	}
	return s.CollapsedX, s.CollapsedY
}

// Request selects the optional arrays a layout should fill. Positions are
// always computed.
type Request struct {
	Shapes bool
	Bounds bool
}

// Contents holds arrays parallel to a stack. Shapes and Bounds are nil
// unless requested.
type Contents struct {
	Positions []geom.Point
	Shapes    []geom.Shape
	Bounds    []geom.Rect
}

// NewContents allocates arrays for n pieces.
func NewContents(n int, req Request) Contents {
	c := Contents{Positions: make([]geom.Point, n)}
	if req.Shapes {
		c.Shapes = make([]geom.Shape, n)
	}
	if req.Bounds {
		c.Bounds = make([]geom.Rect, n)
	}
	return c
}

// Len returns the number of pieces covered.
func (c Contents) Len() int { return len(c.Positions) }

// Translate moves entry i by d in every present array. Shapes are replaced
// by a translated copy.
func (c Contents) Translate(i int, d geom.Point) {
	c.Positions[i] = c.Positions[i].Add(d)
	if c.Bounds != nil {
		c.Bounds[i] = c.Bounds[i].Offset(d)
	}
	if c.Shapes != nil {
		c.Shapes[i] = c.Shapes[i].Translate(d)
	}
}

// MustMatch panics unless every present array has n entries.
func (c Contents) MustMatch(n int) {
	if len(c.Positions) != n ||
		(c.Shapes != nil && len(c.Shapes) != n) ||
		(c.Bounds != nil && len(c.Bounds) != n) {
		panic(fmt.Sprintf("metrics: contents sized %d/%d/%d for %d pieces",
			len(c.Positions), len(c.Shapes), len(c.Bounds), n))
	}
}

// Layout computes piece placement for a stack.
type Layout interface {
	Contents(s *piece.Stack, anchor geom.Point, req Request) Contents
}

// Base is the engine's default layout.
type Base struct {
	Sep Separation
}

var _ Layout = (*Base)(nil)

// NewBase returns a layout using sep.
func NewBase(sep Separation) *Base {
	return &Base{Sep: sep}
}

// Contents places every piece of s. Pieces invisible to the viewer collapse
// to an empty rectangle at the anchor and do not advance the placement.
func (b *Base) Contents(s *piece.Stack, anchor geom.Point, req Request) Contents {
	n := s.Len()
	c := NewContents(n, req)
	dx, dy := b.Sep.For(s.Expanded())

	var (
		started bool
		cur     geom.Point
		curSel  geom.Rect
	)
	for i := 0; i < n; i++ {
		p := s.At(i)
		if piece.IsInvisibleToMe(p) {
			blank := geom.Rect{X: anchor.X, Y: anchor.Y}
			c.Positions[i] = anchor
			if c.Bounds != nil {
				c.Bounds[i] = blank
			}
			if c.Shapes != nil {
				c.Shapes[i] = geom.RectShape(blank)
			}
			continue
		}

		sel := p.Shape().Bounds()
		var pos geom.Point
		if !started {
			pos, sel = anchor, sel.Offset(anchor)
			started = true
		} else {
			pos, sel = nextPosition(cur, curSel, sel, dx, dy)
		}

		c.Positions[i] = pos
		if c.Bounds != nil {
			c.Bounds[i] = p.BoundingBox().Offset(pos)
		}
		if c.Shapes != nil {
			c.Shapes[i] = p.Shape().Translate(pos)
		}
		cur, curSel = pos, sel
	}
	return c
}

// nextPosition places a piece whose local selection bounds are next against
// the previous piece at cur with selection bounds prev. It returns the new
// position and the selection bounds moved there.
func nextPosition(cur geom.Point, prev, next geom.Rect, dx, dy float64) (geom.Point, geom.Rect) {
	var x, y float64
	switch {
	case dx > 0:
		x = prev.X + dx - next.X
	case dx < 0:
		x = prev.X + prev.W - next.W + dx - next.X
	default:
		x = cur.X
	}
	switch {
	case dy > 0:
		y = prev.Y + prev.H - next.H - next.Y - dy
	case dy < 0:
		y = prev.Y - dy - next.Y
	default:
		y = cur.Y
	}
	return geom.Pt(x, y), next.Translate(x, y)
}
