// Package pkg provides the core libraries for Stackview.
//
// # Overview
//
// Stackview lays out and paints stacks of game pieces on a board as a
// double-blind viewer sees them. The pkg directory is organized into three
// main areas:
//
//  1. Domain - pieces, stacks, spotting and the board
//  2. Rendering - stack metrics and drawing surfaces
//  3. Orchestration - scene files, preferences, caching and the pipeline
//
// # Architecture
//
// The typical data flow through Stackview:
//
//	Scene file (TOML / YAML / JSON)
//	         ↓
//	    [scene] package (decode, validate, build the board)
//	         ↓
//	    [render/blindstack] package (place and order pieces)
//	         ↓
//	    [board] package (paint every stack onto a surface)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
//	s, _ := scene.Load("hill621.toml")
//	b, spotted, _ := s.Build()
//	m := blindstack.Activate(prefs.Default(), spotted)
//
//	w, h := b.ViewSize()
//	svg := surface.NewSVG(w, h, pipeline.Background)
//	b.Paint(svg, m)
//	os.WriteFile("hill621.svg", svg.Bytes(), 0644)
//
// # Main Packages
//
// ## Domain
//
// [piece] - The piece interface, its well-known properties and stacks.
//
// [spotting] - Which pieces the viewer has spotted.
//
// [board] - Stacks placed on a map, with zoom, origin and highlighter.
//
// ## Rendering
//
// [render/metrics] - Engine stack layout and single-pass compositor.
//
// [render/blindstack] - Location-separating layout and two-pass compositor.
//
// [render/surface] - SVG, raster and recording surfaces.
//
// [render/styles] - Highlighters and collapsed outlines.
//
// ## Orchestration
//
// [scene] - Scene files describing a board.
//
// [prefs] - Persisted user preferences.
//
// [pipeline] - Parse → layout → render with caching.
//
// [cache] - File and null caches with content-hash keys.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Layout, draw, pipeline and cache hooks.
package pkg
