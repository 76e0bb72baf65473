package blindstack

import (
	"reflect"
	"testing"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/piece"
	"github.com/matzehuels/stackview/pkg/prefs"
	"github.com/matzehuels/stackview/pkg/render/metrics"
	"github.com/matzehuels/stackview/pkg/render/styles"
	"github.com/matzehuels/stackview/pkg/spotting"
)

func scenario() *piece.Stack {
	return piece.NewStack("s", counter("unitA"), location("loc", "X"), selected(counter("unitB")))
}

func TestActivateReadsPreference(t *testing.T) {
	p := prefs.Default()
	if m := Activate(p, spotting.Always{}); !m.FullColor() {
		t.Error("default preferences should enable full color")
	}

	p.General.DisableFullColorStacks = true
	m := Activate(p, spotting.Always{})
	if m.FullColor() {
		t.Error("disabled preference should select the fallback")
	}

	// The mode is fixed once activated.
	p.General.DisableFullColorStacks = false
	if m.FullColor() {
		t.Error("Metrics followed a preference change after activation")
	}
}

func TestMetricsFullColor(t *testing.T) {
	m := New(false, spotting.ByProperty{})

	rec := draw(m, scenario())
	want := []string{"piece:unitA", "piece:loc", "piece:unitB", "highlight:unitB"}
	if got := rec.Sequence(); !reflect.DeepEqual(got, want) {
		t.Errorf("Sequence() = %v, want %v", got, want)
	}

	c := m.Contents(scenario(), geom.Pt(100, 100), metrics.Request{})
	if c.Positions[1] != geom.Pt(87, 96) {
		t.Errorf("location position = %v, want (87,96)", c.Positions[1])
	}
}

func TestMetricsFallbackMatchesBase(t *testing.T) {
	tests := []struct {
		name  string
		stack func() *piece.Stack
		opts  []metrics.DrawOption
	}{
		{"scenario", scenario, nil},
		{"expanded", func() *piece.Stack {
			st := scenario()
			st.SetExpanded(true)
			return st
		}, nil},
		{"zoomed and culled", scenario, []metrics.DrawOption{
			metrics.WithZoom(1.5), metrics.WithViewport(geom.R(0, 0, 90, 200)),
		}},
		{"with hidden pieces", func() *piece.Stack {
			return piece.NewStack("s", invisible(counter("ghost")), counter("a"), location("loc", "X"))
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(true, spotting.ByProperty{})
			base := metrics.NewBaseCompositor(
				metrics.NewBase(metrics.DefaultSeparation()),
				metrics.WithCollapsedDrawer(styles.LocationAware(styles.DefaultCollapsed())),
			)

			got := draw(m, tt.stack(), tt.opts...)
			want := draw(base, tt.stack(), tt.opts...)
			if !reflect.DeepEqual(got.Ops, want.Ops) {
				t.Errorf("fallback ops differ from base:\n got %v\nwant %v", got.Sequence(), want.Sequence())
			}
		})
	}
}

func TestMetricsFallbackHasNoLocationOffset(t *testing.T) {
	m := New(true, spotting.Always{})
	base := metrics.NewBase(metrics.DefaultSeparation())

	st := scenario()
	got := m.Contents(st, geom.Pt(100, 100), fullRequest)
	want := base.Contents(st, geom.Pt(100, 100), fullRequest)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fallback Contents() = %+v, want %+v", got, want)
	}

	rec := draw(m, scenario())
	wantSeq := []string{"outline:unitA", "outline:loc", "piece:unitB", "highlight:unitB"}
	if got := rec.Sequence(); !reflect.DeepEqual(got, wantSeq) {
		t.Errorf("Sequence() = %v, want %v", got, wantSeq)
	}
}

func TestMetricsOptions(t *testing.T) {
	sep := metrics.Separation{ExpandedX: 10, ExpandedY: -10, CollapsedX: 1, CollapsedY: 1}
	m := New(false, nil, WithSeparation(sep))

	c := m.Contents(piece.NewStack("s", counter("a"), counter("b")), geom.Pt(0, 0), metrics.Request{})
	base := metrics.NewBase(sep).Contents(piece.NewStack("s", counter("a"), counter("b")), geom.Pt(0, 0), metrics.Request{})
	if !reflect.DeepEqual(c, base) {
		t.Errorf("Contents() = %+v, want %+v", c, base)
	}

	if m.Fallback() == nil {
		t.Error("Fallback() = nil")
	}
	if _, ok := m.Layout().(*Layout); !ok {
		t.Errorf("Layout() = %T, want *Layout", m.Layout())
	}
	if _, ok := New(true, nil).Layout().(*metrics.Base); !ok {
		t.Error("fallback Layout() should be the engine layout")
	}
}
