package blindstack

import (
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/render/metrics"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// LocationOffset is applied to visible location markers in a collapsed
// stack that also shows other visible pieces.
var LocationOffset = geom.Point{X: -15, Y: 0}

// Layout wraps a base layout with the location separation rule.
type Layout struct {
	base    metrics.Layout
	spotter spotting.Spotter
}

var _ metrics.Layout = (*Layout)(nil)

// NewLayout returns a layout delegating to base and consulting spotter.
func NewLayout(base metrics.Layout, spotter spotting.Spotter) *Layout {
	return &Layout{base: base, spotter: spotter}
}

// Contents returns the base placement, with visible location markers moved
// by LocationOffset when the stack is collapsed and holds both visible
// location markers and visible other pieces.
func (l *Layout) Contents(s *piece.Stack, anchor geom.Point, req metrics.Request) metrics.Contents {
	c := l.base.Contents(s, anchor, req)
	c.MustMatch(s.Len())
	if s.Expanded() {
		return c
	}

	var locations, others []int
	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		if !l.visible(p) {
			continue
		}
		if piece.IsLocation(p) {
			locations = append(locations, i)
		} else {
			others = append(others, i)
		}
	}

	separated := len(locations) > 0 && len(others) > 0
	if separated {
		for _, i := range locations {
			c.Translate(i, LocationOffset)
		}
	}
	observability.Stack().OnLayout(s.ID, s.Len(), separated)
	return c
}

// visible reports whether the viewer can see p.
func (l *Layout) visible(p piece.Piece) bool {
	return !piece.IsInvisibleToMe(p) && l.spotter.Spotted(p)
}
