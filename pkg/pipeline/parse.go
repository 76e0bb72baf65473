package pipeline

import (
	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/scene"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// Parse decodes the scene in opts and builds its board and the set of
// pieces the viewer has spotted. A non-zero opts.Zoom replaces the scene
// zoom.
func Parse(opts Options) (*scene.Scene, *board.Board, *spotting.Set, error) {
	s, err := scene.Parse(opts.Scene, opts.SceneFormat)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.Zoom > 0 {
		s.Board.Zoom = opts.Zoom
	}
	b, spotted, err := s.Build(
		scene.WithHighlightColor(opts.HighlightColor),
		scene.WithExpandAll(opts.ExpandAll),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return s, b, spotted, nil
}

// CountPieces returns the number of pieces on b.
func CountPieces(b *board.Board) int {
	n := 0
	for _, pl := range b.Stacks() {
		n += pl.Stack.Len()
	}
	return n
}
