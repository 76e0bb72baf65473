package styles

import (
	"image/color"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

// CollapsedDrawer paints a piece that is mostly covered by the pieces above
// it in a collapsed stack.
type CollapsedDrawer func(s surface.Surface, p piece.Piece, at geom.Point, zoom float64)

// Colors of the blank edge drawn for covered pieces.
var (
	BlankColor  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	BorderColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// Outline draws only the piece's bounding box, filled with blank and edged
// with border. A nil blank draws the piece in full instead.
func Outline(blank, border color.Color) CollapsedDrawer {
	return func(s surface.Surface, p piece.Piece, at geom.Point, zoom float64) {
		if blank == nil {
			p.Draw(s, at, zoom)
			return
		}
		box := p.BoundingBox().Scale(geom.Point{}, zoom).Offset(at)
		s.FillRect(box, blank)
		if border != nil {
			s.StrokeRect(box, border, zoom)
		}
	}
}

// DefaultCollapsed is the outline drawer with the package colors.
func DefaultCollapsed() CollapsedDrawer { return Outline(BlankColor, BorderColor) }

// LocationAware draws location markers in full and defers every other
// piece to next.
func LocationAware(next CollapsedDrawer) CollapsedDrawer {
	return func(s surface.Surface, p piece.Piece, at geom.Point, zoom float64) {
		if piece.IsLocation(p) {
			p.Draw(s, at, zoom)
			return
		}
		next(s, p, at, zoom)
	}
}
