package blindstack

import (
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/metrics"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

// ModeTwoPass names this compositor in draw statistics.
const ModeTwoPass = "two-pass"

// Compositor paints stacks in two passes so selection highlights stay on top.
type Compositor struct {
	layout     metrics.Layout
	unselected piece.Filter
	selected   piece.Filter
}

var _ metrics.Compositor = (*Compositor)(nil)

// NewCompositor returns a compositor placing pieces with layout and
// choosing them with the given filters.
func NewCompositor(layout metrics.Layout, unselected, selected piece.Filter) *Compositor {
	return &Compositor{layout: layout, unselected: unselected, selected: selected}
}

// Draw paints st. Visible unselected pieces are drawn in stack order, then
// visible selected pieces in stack order, each followed by its highlight.
func (c *Compositor) Draw(s surface.Surface, st *piece.Stack, at geom.Point, opts ...metrics.DrawOption) {
	f := metrics.NewDrawOptions(opts...).Frame(at)
	contents := c.layout.Contents(st, f.Anchor, metrics.Request{Bounds: f.Culling()})
	contents.MustMatch(st.Len())
	hl := metrics.ResolveHighlighter(st)

	stats := observability.DrawStats{Mode: ModeTwoPass, Pieces: st.Len()}
	for _, i := range st.Matching(c.unselected) {
		if !f.InView(contents, i) {
			stats.Culled++
			continue
		}
		p := st.At(i)
		pt := f.Device(contents.Positions[i])
		surface.Group(s, p.ID(), surface.ClassPiece, func() { p.Draw(s, pt, f.Zoom) })
		stats.Drawn++
	}

	for _, i := range st.Matching(c.selected) {
		if !f.InView(contents, i) {
			stats.Culled++
			continue
		}
		p := st.At(i)
		pt := f.Device(contents.Positions[i])
		surface.Group(s, p.ID(), surface.ClassPiece, func() { p.Draw(s, pt, f.Zoom) })
		surface.Group(s, p.ID(), surface.ClassHighlight, func() { hl.Highlight(s, p, pt, f.Zoom) })
		stats.Drawn++
		stats.Highlighted++
	}
	observability.Stack().OnDraw(st.ID, stats)
}
