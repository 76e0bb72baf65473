package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/blindstack"
	"github.com/matzehuels/stackview/pkg/render/metrics"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// =============================================================================
// Layout Export
// =============================================================================

// Visibility classes reported for each piece.
const (
	VisibilityUnselected = "unselected"
	VisibilitySelected   = "selected"
	VisibilityHidden     = "hidden"
)

// Layout is the serializable placement of every piece on a board, in map
// space.
type Layout struct {
	Board     string        `json:"board"`
	FullColor bool          `json:"full_color"`
	Stacks    []StackLayout `json:"stacks"`
}

// StackLayout is the placement of one stack.
type StackLayout struct {
	ID        string        `json:"id"`
	Anchor    geom.Point    `json:"anchor"`
	Expanded  bool          `json:"expanded"`
	Separated bool          `json:"separated"` // location markers moved aside
	Pieces    []PieceLayout `json:"pieces"`
}

// PieceLayout is the placement of one piece.
type PieceLayout struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Location   string     `json:"location,omitempty"`
	Visibility string     `json:"visibility"`
	Position   geom.Point `json:"position"`
	Bounds     geom.Rect  `json:"bounds"`
}

// ComputeLayout places every stack of b with m and classifies each piece
// with sp.
func ComputeLayout(b *board.Board, m *blindstack.Metrics, sp spotting.Spotter) Layout {
	base := m.Fallback().Layout()
	unselected := blindstack.UnselectedVisible(sp)
	selected := blindstack.SelectedVisible(sp)

	l := Layout{Board: b.Name(), FullColor: m.FullColor()}
	for _, pl := range b.Stacks() {
		st := pl.Stack
		c := m.Contents(st, pl.At, metrics.Request{Bounds: true})
		ref := base.Contents(st, pl.At, metrics.Request{})

		sl := StackLayout{ID: st.ID, Anchor: pl.At, Expanded: st.Expanded()}
		for i, p := range st.Pieces() {
			pc := PieceLayout{
				ID:         p.ID(),
				Name:       pieceName(p),
				Visibility: VisibilityHidden,
				Position:   c.Positions[i],
				Bounds:     c.Bounds[i],
			}
			if loc := p.Property(piece.Location); loc != nil {
				pc.Location = fmt.Sprint(loc)
			}
			switch {
			case unselected(p):
				pc.Visibility = VisibilityUnselected
			case selected(p):
				pc.Visibility = VisibilitySelected
			}
			if c.Positions[i] != ref.Positions[i] {
				sl.Separated = true
			}
			sl.Pieces = append(sl.Pieces, pc)
		}
		l.Stacks = append(l.Stacks, sl)
	}
	return l
}

// MarshalLayout encodes l as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout decodes a layout written by MarshalLayout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	err := json.Unmarshal(data, &l)
	return l, err
}

func pieceName(p piece.Piece) string {
	if b, ok := p.(*piece.Basic); ok {
		return b.Name
	}
	return ""
}
