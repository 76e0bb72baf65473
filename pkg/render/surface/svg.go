package surface

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/matzehuels/stackview/pkg/geom"
)

// SVG is a Surface that writes an SVG document into memory.
type SVG struct {
	buf    bytes.Buffer
	bounds geom.Rect
	depth  int
	closed bool
}

var _ Surface = (*SVG)(nil)
var _ Grouper = (*SVG)(nil)

// NewSVG starts a document of the given size, optionally filled with bg.
func NewSVG(width, height float64, bg color.Color) *SVG {
	s := &SVG{bounds: geom.R(0, 0, width, height)}
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if bg != nil {
		fmt.Fprintf(&s.buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", Hex(bg))
	}
	return s
}

func (s *SVG) Bounds() geom.Rect { return s.bounds }

func (s *SVG) FillRect(r geom.Rect, c color.Color) {
	s.indent()
	fmt.Fprintf(&s.buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`, r.X, r.Y, r.W, r.H, Hex(c))
	if a := opacity(c); a < 1 {
		fmt.Fprintf(&s.buf, ` fill-opacity="%.2f"`, a)
	}
	s.buf.WriteString("/>\n")
}

func (s *SVG) StrokeRect(r geom.Rect, c color.Color, width float64) {
	s.indent()
	fmt.Fprintf(&s.buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		r.X, r.Y, r.W, r.H, Hex(c), width)
}

func (s *SVG) Text(at geom.Point, size float64, c color.Color, text string) {
	s.indent()
	fmt.Fprintf(&s.buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s">%s</text>`+"\n",
		at.X, at.Y, size, Hex(c), EscapeXML(text))
}

func (s *SVG) BeginGroup(id, class string) {
	s.indent()
	fmt.Fprintf(&s.buf, `<g id="%s-%s" class="%s">`+"\n", class, EscapeXML(id), class)
	s.depth++
}

func (s *SVG) EndGroup() {
	if s.depth == 0 {
		return
	}
	s.depth--
	s.indent()
	s.buf.WriteString("</g>\n")
}

// Bytes closes the document and returns its contents. Drawing after Bytes
// has been called is not supported.
func (s *SVG) Bytes() []byte {
	if !s.closed {
		for s.depth > 0 {
			s.EndGroup()
		}
		s.buf.WriteString("</svg>\n")
		s.closed = true
	}
	return s.buf.Bytes()
}

func (s *SVG) indent() {
	for i := 0; i <= s.depth; i++ {
		s.buf.WriteString("  ")
	}
}
