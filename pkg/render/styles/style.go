// Package styles holds the presentation strategies shared by the stack
// renderers: how a selected piece is highlighted and how a partly covered
// piece in a collapsed stack is drawn.
package styles

import (
	"image/color"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

// Highlighter decorates a selected piece. It is called right after the
// piece itself has been drawn, at the same device position and zoom.
type Highlighter interface {
	Highlight(s surface.Surface, p piece.Piece, at geom.Point, zoom float64)
}

// HighlighterFunc adapts a function to a Highlighter.
type HighlighterFunc func(s surface.Surface, p piece.Piece, at geom.Point, zoom float64)

func (f HighlighterFunc) Highlight(s surface.Surface, p piece.Piece, at geom.Point, zoom float64) {
	f(s, p, at, zoom)
}

// Ring outlines the piece bounding box with a thick colored border.
type Ring struct {
	Color     color.Color
	Thickness float64
}

// DefaultHighlightColor is the ring color used when nothing else is configured.
var DefaultHighlightColor = color.RGBA{0xff, 0x00, 0x00, 0xff}

// Default returns the highlighter used when the stack owner provides none.
func Default() Highlighter {
	return Ring{Color: DefaultHighlightColor, Thickness: 3}
}

// RingFromHex returns a ring highlighter in the color hex (#rgb or #rrggbb).
// Malformed input falls back to DefaultHighlightColor.
func RingFromHex(hex string) Ring {
	c, ok := surface.ParseHex(hex)
	if !ok {
		return Ring{Color: DefaultHighlightColor, Thickness: 3}
	}
	return Ring{Color: c, Thickness: 3}
}

func (r Ring) Highlight(s surface.Surface, p piece.Piece, at geom.Point, zoom float64) {
	t := r.Thickness * zoom
	box := p.BoundingBox().Scale(geom.Point{}, zoom).Offset(at)
	box = geom.R(box.X-t/2, box.Y-t/2, box.W+t, box.H+t)
	s.StrokeRect(box, r.Color, t)
}
