// Package pipeline renders scene files.
//
// This package implements the parse → layout → render pipeline shared by
// the CLI commands and the preview server. Centralizing it keeps the output
// of "stackview render" and of the server identical for the same scene.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode the scene file and build the board and spotted set
//  2. Layout: Place every piece with the active stack metrics
//  3. Render: Paint the board (or one stack) to SVG or PNG, or export the
//     layout as JSON
//
// Layouts and artifacts are cached by scene content hash, so re-rendering an
// unchanged scene is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:       data,
//	    SceneFormat: scene.FormatTOML,
//	    Formats:     []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/prefs"
	"github.com/matzehuels/stackview/pkg/scene"
)

// =============================================================================
// Default Values
// =============================================================================

// StackPadding is the margin around a single stack rendered on its own.
const StackPadding = 16.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Parse options
	Scene       []byte       `json:"-"`
	SceneFormat scene.Format `json:"scene_format"`
	ExpandAll   bool         `json:"expand_all,omitempty"`

	// Render options
	Formats        []string `json:"formats,omitempty"`
	Zoom           float64  `json:"zoom,omitempty"` // 0 keeps the scene zoom
	Cull           bool     `json:"cull,omitempty"`
	Stack          string   `json:"stack,omitempty"` // render one stack instead of the board
	HighlightColor string   `json:"highlight_color,omitempty"`
	Refresh        bool     `json:"refresh,omitempty"`

	// Preferences supply the full color switch and the default highlight
	// color. They are read once per run.
	Prefs prefs.Preferences `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the parsed scene file.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene file.
	SceneHash string

	// Board is the board built from the scene.
	Board *board.Board

	// Layout holds the placement of every piece.
	Layout Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StackCount int
	PieceCount int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Scene) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scene is required")
	}
	if o.SceneFormat == "" {
		o.SceneFormat = scene.FormatTOML
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Zoom != 0 {
		if err := errors.ValidateZoom(o.Zoom); err != nil {
			return err
		}
	}
	if o.HighlightColor == "" {
		o.HighlightColor = o.Prefs.General.HighlightColor
	}
	if o.HighlightColor != "" {
		if err := errors.ValidateColor(o.HighlightColor); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// FullColor reports whether the two-pass stack painter is used.
func (o *Options) FullColor() bool {
	return !o.Prefs.General.DisableFullColorStacks
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		FullColor: o.FullColor(),
		ExpandAll: o.ExpandAll,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:         format,
		Zoom:           o.Zoom,
		FullColor:      o.FullColor(),
		ExpandAll:      o.ExpandAll,
		Cull:           o.Cull,
		HighlightColor: o.HighlightColor,
		Stack:          o.Stack,
	}
}
