package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/board"
	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/render/blindstack"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use it.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	result = &Result{
		SceneHash: cache.Hash(opts.Scene),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	s, b, spotted, err := Parse(opts)
	if err != nil {
		return nil, err
	}
	result.Scene = s
	result.Board = b
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.StackCount = b.Len()
	result.Stats.PieceCount = CountPieces(b)

	r.Logger.Info("parsed scene",
		"board", b.Name(),
		"stacks", result.Stats.StackCount,
		"pieces", result.Stats.PieceCount,
		"duration", result.Stats.ParseTime)

	// The full color switch is read once here, for the whole run.
	m := blindstack.Activate(opts.Prefs, spotted)
	if !m.FullColor() {
		r.Logger.Debug("full color stacks disabled, using single-pass painter")
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit := r.LayoutWithCacheInfo(ctx, result.SceneHash, b, m, spotted, opts)
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"stacks", len(layout.Stacks),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.SceneHash, b, m, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout with caching and reports whether
// it came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, sceneHash string, b *board.Board, m *blindstack.Metrics, sp spotting.Spotter, opts Options) (Layout, bool) {
	key := r.Keyer.LayoutKey(sceneHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if l, err := UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeLayout)
				return l, true
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeLayout)

	l := ComputeLayout(b, m, sp)
	if data, err := MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", cache.KeyTypeLayout, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeLayout, len(data))
		}
	}
	return l, false
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sceneHash string, b *board.Board, m *blindstack.Metrics, l Layout, opts Options) (map[string][]byte, bool, error) {
	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)

	rendered, err := Render(b, m, l, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", cache.KeyTypeArtifact, "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
