// Package blindstack specializes the engine stack metrics for double-blind
// play, where the viewer only sees pieces they have spotted and terrain
// location markers share stacks with unit counters.
//
// It adds two behaviors on top of [metrics]:
//
//   - [Layout] pushes visible location markers aside by [LocationOffset]
//     whenever a collapsed stack also shows at least one visible non-location
//     piece, so the marker is not buried under the units.
//   - [Compositor] draws the stack in two passes: every visible unselected
//     piece first, then every visible selected piece followed immediately by
//     its highlight. A highlight is therefore never covered by an unrelated
//     piece, whatever the stack order.
//
// Pieces the viewer has not spotted, or that are invisible to them, are not
// drawn at all.
//
// # Activation
//
// [Activate] builds a [Metrics] from the persisted preferences. When the
// "disable full color stacks" preference is set, drawing falls back to the
// plain engine compositor. The preference is read once; changing it
// requires a restart.
//
//	m := blindstack.Activate(p, spotter)
//	m.Draw(s, stack, at, metrics.WithZoom(board.Zoom))
//
// [metrics]: github.com/matzehuels/stackview/pkg/render/metrics
package blindstack
