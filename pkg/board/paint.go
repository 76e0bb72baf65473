package board

import (
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/metrics"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

type paintOptions struct {
	cull     bool
	viewport *geom.Rect
}

// PaintOption configures Paint.
type PaintOption func(*paintOptions)

// Culled skips pieces outside the visible part of the map.
func Culled() PaintOption {
	return func(o *paintOptions) { o.cull = true }
}

// InViewport culls against r, given in map space, instead of the visible
// map area.
func InViewport(r geom.Rect) PaintOption {
	return func(o *paintOptions) {
		o.cull = true
		o.viewport = &r
	}
}

// Paint draws every stack with c, in the order the stacks were added.
func (b *Board) Paint(s surface.Surface, c metrics.Compositor, opts ...PaintOption) {
	var po paintOptions
	for _, opt := range opts {
		opt(&po)
	}

	drawOpts := []metrics.DrawOption{metrics.WithZoom(b.zoom), metrics.WithProjection(b)}
	if po.cull {
		view := b.Visible()
		if po.viewport != nil {
			view = *po.viewport
		}
		drawOpts = append(drawOpts, metrics.WithViewport(view))
	}

	for _, pl := range b.placements {
		surface.Group(s, pl.Stack.ID, surface.ClassStack, func() {
			c.Draw(s, pl.Stack, pl.At, drawOpts...)
		})
	}
}

// FitStack returns the anchor at which stack id must be drawn, and the
// surface size needed, so that every piece placed by l lands on the surface
// with pad device units to spare on each side.
func (b *Board) FitStack(l metrics.Layout, id string, pad float64) (at geom.Point, w, h float64, ok bool) {
	pl, ok := b.Stack(id)
	if !ok {
		return geom.Point{}, 0, 0, false
	}
	c := l.Contents(pl.Stack, geom.Point{}, metrics.Request{Bounds: true})
	var u geom.Rect
	for _, r := range c.Bounds {
		u = u.Union(r)
	}
	at = geom.Pt(pad-u.X*b.zoom, pad-u.Y*b.zoom)
	return at, u.W*b.zoom + 2*pad, u.H*b.zoom + 2*pad, true
}

// PaintStack draws stack id alone at at, scaled by the board zoom. It
// backs the per-stack views of the CLI and server.
func (b *Board) PaintStack(s surface.Surface, c metrics.Compositor, id string, at geom.Point) bool {
	pl, ok := b.Stack(id)
	if !ok {
		return false
	}
	c.Draw(s, pl.Stack, at, metrics.WithZoom(b.zoom))
	return true
}

// Hit is a piece found by PieceAt.
type Hit struct {
	Stack *piece.Stack
	Index int
	Piece piece.Piece
}

// PieceAt returns the topmost piece whose layout shape contains p, a point
// in map space. Later stacks are above earlier ones and, within a stack,
// later pieces are above earlier ones. Pieces rejected by visible are never
// hit.
func (b *Board) PieceAt(l metrics.Layout, p geom.Point, visible piece.Filter) (Hit, bool) {
	for si := len(b.placements) - 1; si >= 0; si-- {
		pl := b.placements[si]
		c := l.Contents(pl.Stack, pl.At, metrics.Request{Shapes: true})
		c.MustMatch(pl.Stack.Len())
		for i := pl.Stack.Len() - 1; i >= 0; i-- {
			pc := pl.Stack.At(i)
			if visible != nil && !visible(pc) {
				continue
			}
			if c.Shapes[i].Contains(p) {
				return Hit{Stack: pl.Stack, Index: i, Piece: pc}, true
			}
		}
	}
	return Hit{}, false
}
