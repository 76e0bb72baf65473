package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"

	"github.com/matzehuels/stackview/pkg/geom"
)

// Group classes emitted by the stack renderers.
const (
	ClassPiece     = "piece"
	ClassOutline   = "outline"
	ClassHighlight = "highlight"
	ClassStack     = "stack"
)

// Surface is a 2D drawing target in device coordinates.
type Surface interface {
	// FillRect paints the interior of r.
	FillRect(r geom.Rect, c color.Color)
	// StrokeRect paints the border of r with the given line width.
	StrokeRect(r geom.Rect, c color.Color, width float64)
	// Text draws s with its baseline starting at at.
	Text(at geom.Point, size float64, c color.Color, s string)
	// Bounds returns the drawable area.
	Bounds() geom.Rect
}

// Grouper is implemented by surfaces that track which piece an operation
// belongs to.
type Grouper interface {
	BeginGroup(id, class string)
	EndGroup()
}

// Group runs fn between BeginGroup and EndGroup when s supports grouping,
// and just runs fn otherwise.
func Group(s Surface, id, class string, fn func()) {
	g, ok := s.(Grouper)
	if !ok {
		fn()
		return
	}
	g.BeginGroup(id, class)
	defer g.EndGroup()
	fn()
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// opacity returns the alpha channel of c in [0, 1].
func opacity(c color.Color) float64 {
	if c == nil {
		return 0
	}
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

// ParseHex parses #rgb or #rrggbb. The boolean is false for malformed input.
func ParseHex(s string) (color.RGBA, bool) {
	c := color.RGBA{A: 0xff}
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B); err != nil {
			return c, false
		}
	case 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B); err != nil {
			return c, false
		}
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		return c, false
	}
	return c, true
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
