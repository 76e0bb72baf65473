// Package render groups the stack painting packages.
//
// # Overview
//
// Painting a board is split across four subpackages:
//
//   - [surface]: Drawing targets (SVG, raster PNG, and a recorder for tests)
//   - [styles]: Highlighters and the collapsed-stack outline drawers
//   - [metrics]: The generic stack layout and single-pass compositor
//   - [blindstack]: The double-blind layout and two-pass compositor
//
// # Stack Metrics
//
// A stack metrics pair answers two questions about a stack: where does each
// piece sit (the layout), and in which order are pieces painted (the
// compositor). The [metrics] package provides the engine defaults; the
// [blindstack] package wraps them so that pieces the viewer has not spotted
// are skipped, selected pieces are painted last with a highlight, and
// location markers are moved aside in collapsed stacks.
//
//	m := blindstack.Activate(prefs, spotted)
//	m.Draw(svg, stack, geom.Pt(100, 100), metrics.WithZoom(1.5))
//
// When the user disables full color stacks, [blindstack.Activate] falls back
// to the engine's single-pass compositor for the rest of the session.
//
// [surface]: github.com/matzehuels/stackview/pkg/render/surface
// [styles]: github.com/matzehuels/stackview/pkg/render/styles
// [metrics]: github.com/matzehuels/stackview/pkg/render/metrics
// [blindstack]: github.com/matzehuels/stackview/pkg/render/blindstack
package render
