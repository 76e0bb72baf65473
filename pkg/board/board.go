package board

import (
	"errors"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/metrics"
	"github.com/matzehuels/stackview/pkg/render/styles"
)

var (
	// ErrInvalidStackID is returned by [Board.Add] for a nil stack or an
	// empty stack ID.
	ErrInvalidStackID = errors.New("stack ID must not be empty")

	// ErrDuplicateStackID is returned by [Board.Add] when a stack with the
	// same ID is already on the board.
	ErrDuplicateStackID = errors.New("duplicate stack ID")
)

// Default map size used when a board is created without WithSize.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Placement is a stack and its anchor in map space.
type Placement struct {
	Stack *piece.Stack
	At    geom.Point
}

// Board is a map with stacks on it.
type Board struct {
	name        string
	width       float64
	height      float64
	zoom        float64
	origin      geom.Point
	highlighter styles.Highlighter

	placements []Placement
	index      map[string]int
}

var (
	_ piece.Owner            = (*Board)(nil)
	_ metrics.HighlightOwner = (*Board)(nil)
	_ metrics.Projector      = (*Board)(nil)
)

// Option configures a Board.
type Option func(*Board)

// WithSize sets the map size. Non-positive values keep the default.
func WithSize(w, h float64) Option {
	return func(b *Board) {
		if w > 0 {
			b.width = w
		}
		if h > 0 {
			b.height = h
		}
	}
}

// WithZoom sets the display zoom. Non-positive values keep zoom 1.
func WithZoom(z float64) Option {
	return func(b *Board) {
		if z > 0 {
			b.zoom = z
		}
	}
}

// WithOrigin pans the view so that p is the top-left corner of the output.
func WithOrigin(p geom.Point) Option {
	return func(b *Board) { b.origin = p }
}

// WithHighlighter sets the selection highlighter used for every stack.
func WithHighlighter(h styles.Highlighter) Option {
	return func(b *Board) { b.highlighter = h }
}

// New returns an empty board.
func New(name string, opts ...Option) *Board {
	b := &Board{
		name:   name,
		width:  DefaultWidth,
		height: DefaultHeight,
		zoom:   1,
		index:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) Name() string { return b.name }

// Zoom returns the display zoom.
func (b *Board) Zoom() float64 { return b.zoom }

// Size returns the map size in map units.
func (b *Board) Size() (w, h float64) { return b.width, b.height }

// ViewSize returns the size of the painted output in device units.
func (b *Board) ViewSize() (w, h float64) { return b.width * b.zoom, b.height * b.zoom }

// Highlighter returns the board highlighter, or nil to use the default.
func (b *Board) Highlighter() styles.Highlighter { return b.highlighter }

// Add places st at at and makes the board its owner.
func (b *Board) Add(st *piece.Stack, at geom.Point) error {
	if st == nil || st.ID == "" {
		return ErrInvalidStackID
	}
	if _, ok := b.index[st.ID]; ok {
		return ErrDuplicateStackID
	}
	st.SetOwner(b)
	b.index[st.ID] = len(b.placements)
	b.placements = append(b.placements, Placement{Stack: st, At: at})
	return nil
}

// Stack returns the stack with the given ID and its anchor.
func (b *Board) Stack(id string) (Placement, bool) {
	i, ok := b.index[id]
	if !ok {
		return Placement{}, false
	}
	return b.placements[i], true
}

// Stacks returns every placement in the order stacks were added, which is
// also the paint order.
func (b *Board) Stacks() []Placement {
	out := make([]Placement, len(b.placements))
	copy(out, b.placements)
	return out
}

// Len returns the number of stacks.
func (b *Board) Len() int { return len(b.placements) }

// Stack coordinates are map coordinates, so the local-to-map mapping is the
// identity. The map-to-device mapping pans by the origin and scales by zoom.

func (b *Board) MapPoint(p geom.Point) geom.Point { return p }

func (b *Board) MapRect(r geom.Rect) geom.Rect { return r }

func (b *Board) ViewPoint(p geom.Point) geom.Point {
	return p.Sub(b.origin).Mul(b.zoom)
}

// Visible returns the map-space rectangle shown on the output.
func (b *Board) Visible() geom.Rect {
	return geom.Rect{X: b.origin.X, Y: b.origin.Y, W: b.width, H: b.height}
}
