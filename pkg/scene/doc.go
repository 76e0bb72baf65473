// Package scene reads board descriptions from TOML, YAML or JSON files.
//
// A scene names the board, its zoom and size, and lists stacks with the
// pieces in them from bottom to top:
//
//	[board]
//	name = "Hill 621"
//	zoom = 1.5
//
//	[[stack]]
//	id = "a1"
//	x  = 120
//	y  = 80
//
//	[[stack.piece]]
//	name     = "Hill 621"
//	location = "Hill 621"
//
//	[[stack.piece]]
//	name     = "4-6-7"
//	selected = true
//
// YAML and JSON use the same field names with "stacks" and "pieces" for the
// lists. Pieces without an id get a random one. [Scene.Build] turns a parsed
// scene into a [board.Board] and the set of pieces the viewer has spotted.
//
// [board.Board]: github.com/matzehuels/stackview/pkg/board
package scene
