// Package board holds the stacks of a map and paints them.
//
// A [Board] places stacks at points in map space and acts as the host for
// the stack painters in [metrics] and [blindstack]: it owns every stack added
// to it, supplies the selection highlighter, and projects map space onto the
// output surface through its pan origin and zoom.
//
//	b := board.New("Hill 621", board.WithSize(800, 600), board.WithZoom(1.5))
//	_ = b.Add(stack, geom.Pt(120, 80))
//	b.Paint(svg, blindstack.Activate(p, spotter), board.Culled())
//
// Hit testing uses the bounding shapes of the painter's layout, so a location
// marker pushed aside in a collapsed stack is hit where it is drawn.
//
// [metrics]: github.com/matzehuels/stackview/pkg/render/metrics
// [blindstack]: github.com/matzehuels/stackview/pkg/render/blindstack
package board
