package piece

import "slices"

// Owner is whatever a stack is placed on, typically a board. It is
// consulted for presentation hooks such as the selection highlighter.
type Owner interface {
	Name() string
}

// Stack is an ordered collection of pieces occupying one map location.
// Index 0 is the bottom of the stack.
type Stack struct {
	ID       string
	pieces   []Piece
	expanded bool
	owner    Owner
}

// NewStack returns a collapsed stack holding pieces in the given order.
func NewStack(id string, pieces ...Piece) *Stack {
	if id == "" {
		id = NewID()
	}
	return &Stack{ID: id, pieces: slices.Clone(pieces)}
}

// Add appends p to the top of the stack.
func (s *Stack) Add(p Piece) { s.pieces = append(s.pieces, p) }

// Len returns the number of pieces.
func (s *Stack) Len() int { return len(s.pieces) }

// At returns the piece at index i.
func (s *Stack) At(i int) Piece { return s.pieces[i] }

// IndexOf returns the index of p, or -1.
func (s *Stack) IndexOf(p Piece) int { return slices.Index(s.pieces, p) }

// Pieces returns a copy of the pieces, bottom first.
func (s *Stack) Pieces() []Piece { return slices.Clone(s.pieces) }

// Expanded reports whether the stack is fanned out.
func (s *Stack) Expanded() bool { return s.expanded }

// SetExpanded changes the display mode.
func (s *Stack) SetExpanded(expanded bool) { s.expanded = expanded }

// Owner returns the board holding the stack, or nil.
func (s *Stack) Owner() Owner { return s.owner }

// SetOwner records the board holding the stack.
func (s *Stack) SetOwner(o Owner) { s.owner = o }

// Filter selects pieces.
type Filter func(Piece) bool

// Matching returns the indices of pieces accepted by f, in stack order.
func (s *Stack) Matching(f Filter) []int {
	var idx []int
	for i, p := range s.pieces {
		if f(p) {
			idx = append(idx, i)
		}
	}
	return idx
}

// And combines filters; the result accepts a piece only when all do.
func And(filters ...Filter) Filter {
	return func(p Piece) bool {
		for _, f := range filters {
			if !f(p) {
				return false
			}
		}
		return true
	}
}

// Not negates f.
func Not(f Filter) Filter {
	return func(p Piece) bool { return !f(p) }
}
