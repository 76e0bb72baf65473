package blindstack

import (
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/prefs"
	"github.com/matzehuels/stackview/pkg/render/metrics"
	"github.com/matzehuels/stackview/pkg/render/styles"
	"github.com/matzehuels/stackview/pkg/render/surface"
	"github.com/matzehuels/stackview/pkg/spotting"
)

// Metrics is the stack painter installed on a map. It is fixed at
// construction to either the full color two-pass mode or the engine
// fallback.
type Metrics struct {
	fullColor bool
	base      metrics.Layout
	layout    *Layout
	twoPass   *Compositor
	fallback  *metrics.BaseCompositor
}

var _ metrics.Compositor = (*Metrics)(nil)

type config struct {
	base      metrics.Layout
	collapsed styles.CollapsedDrawer
}

// Option configures Metrics.
type Option func(*config)

// WithSeparation sets the piece offsets of the underlying engine layout.
func WithSeparation(sep metrics.Separation) Option {
	return func(c *config) { c.base = metrics.NewBase(sep) }
}

// WithBaseLayout replaces the underlying engine layout.
func WithBaseLayout(l metrics.Layout) Option {
	return func(c *config) {
		if l != nil {
			c.base = l
		}
	}
}

// WithCollapsedDrawer sets how the fallback mode paints covered pieces.
func WithCollapsedDrawer(d styles.CollapsedDrawer) Option {
	return func(c *config) {
		if d != nil {
			c.collapsed = d
		}
	}
}

// New returns Metrics in full color mode unless disableFullColor is set.
func New(disableFullColor bool, sp spotting.Spotter, opts ...Option) *Metrics {
	if sp == nil {
		sp = spotting.Always{}
	}
	cfg := config{
		base:      metrics.NewBase(metrics.DefaultSeparation()),
		collapsed: styles.LocationAware(styles.DefaultCollapsed()),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	layout := NewLayout(cfg.base, sp)
	return &Metrics{
		fullColor: !disableFullColor,
		base:      cfg.base,
		layout:    layout,
		twoPass:   NewCompositor(layout, UnselectedVisible(sp), SelectedVisible(sp)),
		fallback:  metrics.NewBaseCompositor(cfg.base, metrics.WithCollapsedDrawer(cfg.collapsed)),
	}
}

// Activate reads the full color switch from p once and returns the
// resulting Metrics. Later preference changes have no effect on it.
func Activate(p prefs.Preferences, sp spotting.Spotter, opts ...Option) *Metrics {
	return New(p.General.DisableFullColorStacks, sp, opts...)
}

// FullColor reports whether the two-pass mode is active.
func (m *Metrics) FullColor() bool { return m.fullColor }

// Layout returns the layout used by the active mode.
func (m *Metrics) Layout() metrics.Layout {
	if m.fullColor {
		return m.layout
	}
	return m.base
}

// Fallback returns the engine compositor used when full color is disabled.
func (m *Metrics) Fallback() *metrics.BaseCompositor { return m.fallback }

// Contents places the pieces of s with the active layout.
func (m *Metrics) Contents(s *piece.Stack, anchor geom.Point, req metrics.Request) metrics.Contents {
	return m.Layout().Contents(s, anchor, req)
}

// Draw paints st with the active mode.
func (m *Metrics) Draw(s surface.Surface, st *piece.Stack, at geom.Point, opts ...metrics.DrawOption) {
	if !m.fullColor {
		m.fallback.Draw(s, st, at, opts...)
		return
	}
	m.twoPass.Draw(s, st, at, opts...)
}
