package metrics

import (
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/styles"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

// ModeSinglePass names the base compositor in draw statistics.
const ModeSinglePass = "single-pass"

// BaseCompositor is the engine's default stack painter.
type BaseCompositor struct {
	layout    Layout
	collapsed styles.CollapsedDrawer
	visible   piece.Filter
}

var _ Compositor = (*BaseCompositor)(nil)

// BaseOption configures a BaseCompositor.
type BaseOption func(*BaseCompositor)

// WithCollapsedDrawer replaces the drawer used for covered pieces.
func WithCollapsedDrawer(d styles.CollapsedDrawer) BaseOption {
	return func(c *BaseCompositor) { c.collapsed = d }
}

// WithVisibleFilter replaces the filter deciding which pieces are drawn.
func WithVisibleFilter(f piece.Filter) BaseOption {
	return func(c *BaseCompositor) { c.visible = f }
}

// NewBaseCompositor returns a compositor placing pieces with l.
func NewBaseCompositor(l Layout, opts ...BaseOption) *BaseCompositor {
	c := &BaseCompositor{
		layout:    l,
		collapsed: styles.DefaultCollapsed(),
		visible:   piece.Not(piece.IsInvisibleToMe),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layout returns the layout the compositor draws with.
func (c *BaseCompositor) Layout() Layout { return c.layout }

// Draw paints st in one pass, bottom to top. In a collapsed stack only the
// topmost visible piece is drawn in full; the others get the collapsed
// drawer. Selected pieces are highlighted right after being drawn.
func (c *BaseCompositor) Draw(s surface.Surface, st *piece.Stack, at geom.Point, opts ...DrawOption) {
	f := NewDrawOptions(opts...).Frame(at)
	contents := c.layout.Contents(st, f.Anchor, Request{Bounds: f.Culling()})
	contents.MustMatch(st.Len())
	hl := ResolveHighlighter(st)

	visible := st.Matching(c.visible)
	stats := observability.DrawStats{Mode: ModeSinglePass, Pieces: st.Len()}
	for n, i := range visible {
		if !f.InView(contents, i) {
			stats.Culled++
			continue
		}
		p := st.At(i)
		pt := f.Device(contents.Positions[i])
		if st.Expanded() || n == len(visible)-1 {
			surface.Group(s, p.ID(), surface.ClassPiece, func() { p.Draw(s, pt, f.Zoom) })
		} else {
			surface.Group(s, p.ID(), surface.ClassOutline, func() { c.collapsed(s, p, pt, f.Zoom) })
		}
		stats.Drawn++
		if piece.IsSelected(p) {
			surface.Group(s, p.ID(), surface.ClassHighlight, func() { hl.Highlight(s, p, pt, f.Zoom) })
			stats.Highlighted++
		}
	}
	observability.Stack().OnDraw(st.ID, stats)
}
