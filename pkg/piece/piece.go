package piece

import (
	"image/color"
	"maps"

	"github.com/google/uuid"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

// Property keys understood by the stack renderers.
const (
	InvisibleToMe = "InvisibleToMe"
	Selected      = "Selected"
	Location      = "Location"
	Spotted       = "Spotted"
)

// Piece is a drawable game entity.
type Piece interface {
	// ID returns an identifier unique within a board.
	ID() string
	// Property returns the value stored under key, or nil.
	Property(key string) any
	// Shape returns the piece outline relative to its own position.
	Shape() geom.Shape
	// BoundingBox returns the area the piece may paint, relative to its
	// own position.
	BoundingBox() geom.Rect
	// Draw paints the piece with its position at at, scaled by zoom.
	Draw(s surface.Surface, at geom.Point, zoom float64)
}

// IsInvisibleToMe reports whether p is hidden from the current viewer.
func IsInvisibleToMe(p Piece) bool { return isTrue(p.Property(InvisibleToMe)) }

// IsSelected reports whether p is part of the current selection.
func IsSelected(p Piece) bool { return isTrue(p.Property(Selected)) }

// IsLocation reports whether p is a location marker.
func IsLocation(p Piece) bool { return p.Property(Location) != nil }

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// NewID returns a random piece identifier.
func NewID() string { return uuid.NewString() }

// Basic is a rectangular counter with a label. Its position is the center
// of the counter.
type Basic struct {
	id     string
	Name   string
	Width  float64
	Height float64
	Fill   color.Color
	Ink    color.Color
	props  map[string]any
}

var _ Piece = (*Basic)(nil)

// Default counter appearance.
var (
	DefaultFill = color.RGBA{0xd8, 0xc8, 0x9a, 0xff}
	DefaultInk  = color.RGBA{0x22, 0x22, 0x22, 0xff}
)

// DefaultSize is the edge length of a counter when none is given.
const DefaultSize = 48.0

// NewBasic creates a counter. An empty id is replaced with a random one and
// non-positive dimensions with DefaultSize.
func NewBasic(id, name string, width, height float64) *Basic {
	if id == "" {
		id = NewID()
	}
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}
	return &Basic{
		id:     id,
		Name:   name,
		Width:  width,
		Height: height,
		Fill:   DefaultFill,
		Ink:    DefaultInk,
		props:  make(map[string]any),
	}
}

func (b *Basic) ID() string { return b.id }

func (b *Basic) Property(key string) any { return b.props[key] }

// SetProperty stores v under key. A nil v removes the key.
func (b *Basic) SetProperty(key string, v any) {
	if v == nil {
		delete(b.props, key)
		return
	}
	b.props[key] = v
}

// Properties returns a copy of every stored property.
func (b *Basic) Properties() map[string]any { return maps.Clone(b.props) }

func (b *Basic) Shape() geom.Shape { return geom.RectShape(b.BoundingBox()) }

func (b *Basic) BoundingBox() geom.Rect {
	return geom.R(-b.Width/2, -b.Height/2, b.Width, b.Height)
}

func (b *Basic) Draw(s surface.Surface, at geom.Point, zoom float64) {
	r := b.BoundingBox().Scale(geom.Point{}, zoom).Offset(at)
	s.FillRect(r, b.Fill)
	s.StrokeRect(r, b.Ink, zoom)
	if b.Name != "" {
		size := 11 * zoom
		s.Text(geom.Pt(r.X+3*zoom, r.Y+r.H/2+size/3), size, b.Ink, b.Name)
	}
}
