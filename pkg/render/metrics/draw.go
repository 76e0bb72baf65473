package metrics

import (
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/styles"
	"github.com/matzehuels/stackview/pkg/render/surface"
)

// Projector maps between a stack's local space, the map space in which
// layout and culling happen, and device space on the surface. Hosts that
// pan or scroll the map supply one; otherwise draws scale about the anchor.
type Projector interface {
	// MapPoint converts a local point to map space.
	MapPoint(p geom.Point) geom.Point
	// MapRect converts a local rectangle to map space.
	MapRect(r geom.Rect) geom.Rect
	// ViewPoint converts a map-space point to device space.
	ViewPoint(p geom.Point) geom.Point
}

// HighlightOwner is implemented by stack owners that provide their own
// selection highlighter.
type HighlightOwner interface {
	Highlighter() styles.Highlighter
}

// DrawOptions configures a single draw call.
type DrawOptions struct {
	Zoom       float64
	Viewport   *geom.Rect
	Projection Projector
}

// DrawOption mutates DrawOptions.
type DrawOption func(*DrawOptions)

// WithZoom sets the zoom factor. Non-positive values are ignored.
func WithZoom(z float64) DrawOption {
	return func(o *DrawOptions) {
		if z > 0 {
			o.Zoom = z
		}
	}
}

// WithViewport enables culling: pieces whose bounding box misses r are not
// drawn. r is in the same space as the at argument of Draw.
func WithViewport(r geom.Rect) DrawOption {
	return func(o *DrawOptions) { o.Viewport = &r }
}

// WithProjection routes coordinates through a host projector.
func WithProjection(p Projector) DrawOption {
	return func(o *DrawOptions) { o.Projection = p }
}

// NewDrawOptions applies opts over the defaults (zoom 1, no culling).
func NewDrawOptions(opts ...DrawOption) DrawOptions {
	o := DrawOptions{Zoom: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Frame is the resolved coordinate setup of one draw call.
type Frame struct {
	Anchor geom.Point
	Region *geom.Rect
	Zoom   float64
	proj   Projector
}

// Frame resolves the layout anchor and culling region for a stack drawn at at.
func (o DrawOptions) Frame(at geom.Point) Frame {
	f := Frame{Anchor: at, Region: o.Viewport, Zoom: o.Zoom, proj: o.Projection}
	if o.Projection != nil {
		f.Anchor = o.Projection.MapPoint(at)
		if o.Viewport != nil {
			r := o.Projection.MapRect(*o.Viewport)
			f.Region = &r
		}
	}
	return f
}

// Device converts a layout position to surface coordinates.
func (f Frame) Device(p geom.Point) geom.Point {
	if f.proj != nil {
		return f.proj.ViewPoint(p)
	}
	return geom.ScaleAbout(p, f.Anchor, f.Zoom)
}

// Culling reports whether bounding boxes are needed.
func (f Frame) Culling() bool { return f.Region != nil }

// InView reports whether entry i should be drawn. Without a region or
// without bounds every entry is in view.
func (f Frame) InView(c Contents, i int) bool {
	if f.Region == nil || c.Bounds == nil {
		return true
	}
	return f.Region.Intersects(c.Bounds[i])
}

// ResolveHighlighter returns the owner's highlighter when it has one and
// styles.Default otherwise.
func ResolveHighlighter(s *piece.Stack) styles.Highlighter {
	if o, ok := s.Owner().(HighlightOwner); ok {
		if h := o.Highlighter(); h != nil {
			return h
		}
	}
	return styles.Default()
}

// Compositor paints stacks.
type Compositor interface {
	Draw(s surface.Surface, st *piece.Stack, at geom.Point, opts ...DrawOption)
}
