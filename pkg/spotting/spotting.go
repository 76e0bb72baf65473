// Package spotting supplies the double-blind "has the viewer spotted this
// piece" predicate consumed by the stack renderers.
//
// Deciding whether a piece is spotted (line of sight, concealment, and so on)
// happens elsewhere; this package only adapts the answer to a [Spotter].
package spotting

import (
	"sync"

	"github.com/matzehuels/stackview/pkg/piece"
)

// Spotter reports whether the current viewer can see a piece.
type Spotter interface {
	Spotted(p piece.Piece) bool
}

// Func adapts a function to a Spotter.
type Func func(piece.Piece) bool

func (f Func) Spotted(p piece.Piece) bool { return f(p) }

// Always treats every piece as spotted, which is what a game without
// double-blind play sees.
type Always struct{}

func (Always) Spotted(piece.Piece) bool { return true }

// ByProperty reads the piece.Spotted property. Pieces without a boolean
// value are considered spotted.
type ByProperty struct{}

func (ByProperty) Spotted(p piece.Piece) bool {
	v, ok := p.Property(piece.Spotted).(bool)
	return !ok || v
}

// Set holds the ids of pieces the viewer has spotted. It is safe for
// concurrent use so that spotting updates may arrive from a game-state
// goroutine while the UI reads it.
type Set struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewSet returns a set containing ids.
func NewSet(ids ...string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Spot marks the piece with id as spotted.
func (s *Set) Spot(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Conceal removes the piece with id from the set.
func (s *Set) Conceal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Toggle flips the spotted state of id and returns the new state.
func (s *Set) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Len returns the number of spotted ids.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *Set) Spotted(p piece.Piece) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[p.ID()]
	return ok
}

var (
	_ Spotter = Always{}
	_ Spotter = ByProperty{}
	_ Spotter = (*Set)(nil)
	_ Spotter = Func(nil)
)
