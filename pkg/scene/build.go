package scene

import (
	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/styles"
	"github.com/matzehuels/stackview/pkg/render/surface"
	"github.com/matzehuels/stackview/pkg/spotting"
)

type buildConfig struct {
	highlightColor string
	expandAll      bool
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithHighlightColor replaces the scene's highlight color. Empty keeps it.
func WithHighlightColor(hex string) BuildOption {
	return func(c *buildConfig) {
		if hex != "" {
			c.highlightColor = hex
		}
	}
}

// WithExpandAll expands every stack regardless of the scene setting.
func WithExpandAll(expand bool) BuildOption {
	return func(c *buildConfig) { c.expandAll = expand }
}

// Build creates the board described by s and the set of spotted pieces.
func (s *Scene) Build(opts ...BuildOption) (*board.Board, *spotting.Set, error) {
	cfg := buildConfig{highlightColor: s.Board.HighlightColor}
	for _, opt := range opts {
		opt(&cfg)
	}

	bopts := []board.Option{
		board.WithSize(s.Board.Width, s.Board.Height),
		board.WithZoom(s.Board.Zoom),
		board.WithOrigin(geom.Pt(s.Board.OriginX, s.Board.OriginY)),
	}
	if cfg.highlightColor != "" {
		bopts = append(bopts, board.WithHighlighter(styles.RingFromHex(cfg.highlightColor)))
	}
	b := board.New(s.Board.Name, bopts...)
	spotted := spotting.NewSet()

	for _, st := range s.Stacks {
		stack := piece.NewStack(st.ID)
		stack.SetExpanded(st.Expanded || cfg.expandAll)
		for _, p := range st.Pieces {
			stack.Add(p.build())
			if p.IsSpotted() {
				spotted.Spot(p.ID)
			}
		}
		if err := b.Add(stack, geom.Pt(st.X, st.Y)); err != nil {
			return nil, nil, err
		}
	}
	return b, spotted, nil
}

func (p Piece) build() *piece.Basic {
	name := p.Name
	if name == "" {
		name = p.Location
	}
	pc := piece.NewBasic(p.ID, name, p.Width, p.Height)
	if c, ok := surface.ParseHex(p.Color); ok {
		pc.Fill = c
	}
	if p.Location != "" {
		pc.SetProperty(piece.Location, p.Location)
	}
	if p.Selected {
		pc.SetProperty(piece.Selected, true)
	}
	if p.Invisible {
		pc.SetProperty(piece.InvisibleToMe, true)
	}
	return pc
}
